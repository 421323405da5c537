package fileutil

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors describing why a scan could not run or had to stop.
var (
	// ErrRootNotFound means the root directory does not exist.
	ErrRootNotFound = errors.New("root directory not found")
	// ErrNotDirectory means the root path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrCanonicalize means a path could not be resolved to its canonical form.
	ErrCanonicalize = errors.New("cannot canonicalize path")
	// ErrWalk means an entry could not be read during traversal.
	ErrWalk = errors.New("traversal failed")
)

// ScanError reports a configuration or traversal failure together with the
// path that caused it. Kind is one of the Err* sentinels above.
type ScanError struct {
	Kind error  // Sentinel describing the failure
	Path string // Offending path
	Err  error  // Underlying error (optional)
}

func newScanError(kind error, path string, err error) *ScanError {
	return &ScanError{Kind: kind, Path: path, Err: err}
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", e.Kind, e.Path))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap exposes both the kind and the underlying error to errors.Is/As.
func (e *ScanError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
