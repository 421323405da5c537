//go:build !windows

package launcher

import "fmt"

func shellExecute(absPath string) error {
	return fmt.Errorf("%w: no ShellExecute outside windows", ErrUnsupported)
}
