//go:build windows

package launcher

import (
	"golang.org/x/sys/windows"
)

const openVerb = "open"

// shellExecute hands absPath to ShellExecuteW with the "open" verb. The shell
// returns once the request is dispatched.
func shellExecute(absPath string) error {
	verb, err := windows.UTF16PtrFromString(openVerb)
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(absPath)
	if err != nil {
		return err
	}
	return windows.ShellExecute(0, verb, file, nil, nil, windows.SW_SHOWNORMAL)
}
