// Package launcher opens collected files with the operating system's default
// handler. Launches are fire-and-forget: the handler process is started and
// reaped in the background, its exit status is never looked at. On Windows
// the path goes to ShellExecute directly so no command interpreter ever
// parses it.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSJS      = "js"
	OSWasip1  = "wasip1"
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
)

var (
	// ErrUnsupported is returned on platforms without a default-open mechanism.
	ErrUnsupported = errors.New("opening files is not supported on this platform")

	// ErrNoCommand is returned by Command on platforms that open files through
	// a shell API rather than a helper program.
	ErrNoCommand = errors.New("files are opened without a helper program")
)

// StartFunc starts name with args without waiting for it to finish.
type StartFunc func(name string, args ...string) error

// ShellFunc asks the desktop shell to open absPath with its default verb.
type ShellFunc func(absPath string) error

// Launcher opens files below a root directory.
type Launcher struct {
	goos  string
	start StartFunc
	shell ShellFunc
}

// New returns a Launcher for the running platform.
func New() *Launcher {
	return &Launcher{
		goos:  runtime.GOOS,
		start: startDetached,
		shell: shellExecute,
	}
}

// NewWithStarter returns a Launcher for goos that issues commands through
// start and shell requests through shell. Used by tests and by callers that
// want to observe launches.
func NewWithStarter(goos string, start StartFunc, shell ShellFunc) *Launcher {
	return &Launcher{
		goos:  goos,
		start: start,
		shell: shell,
	}
}

// AbsPath joins the canonical root and a slash-separated relative path.
func AbsPath(root, relativePath string) string {
	return filepath.Join(root, filepath.FromSlash(relativePath))
}

// Command returns the program and arguments that open absPath. Windows has
// none and reports ErrNoCommand.
func (l *Launcher) Command(absPath string) (string, []string, error) {
	switch l.goos {
	case OSDarwin:
		return OpenCommand, []string{absPath}, nil
	case OSWindows:
		return "", nil, fmt.Errorf("%w: %s uses ShellExecute", ErrNoCommand, l.goos)
	case OSJS, OSWasip1:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupported, l.goos)
	default:
		return XDGOpenCommand, []string{absPath}, nil
	}
}

// Launch asks the OS to open root/relativePath. Only a failure to issue the
// request is reported.
func (l *Launcher) Launch(root, relativePath string) error {
	absPath := AbsPath(root, relativePath)
	if l.goos == OSWindows {
		if err := l.shell(absPath); err != nil {
			return fmt.Errorf("failed to open %s: %w", absPath, err)
		}
		return nil
	}

	name, args, err := l.Command(absPath)
	if err != nil {
		return err
	}
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", absPath, err)
	}
	return nil
}

// startDetached starts the command and reaps it in the background so no
// zombie is left behind.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
