package fileutil

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unsafe"
)

// ScanOptions configures the soft-cap behavior of a scan
type ScanOptions struct {
	// MaxPaths is the collection cap applied when CheckCaps is set
	MaxPaths int
	// CheckCaps enables the MaxPaths cap
	CheckCaps bool
	// SkipFiles lists canonical absolute file paths that are never collected
	// (the running executable, for instance)
	SkipFiles []string
	// OnCapReached is called once when the cap stops the walk
	OnCapReached func(maxPaths int)
}

// ScanResult contains the outcome of a scan
type ScanResult struct {
	// Root is the canonical root the paths are relative to
	Root string
	// Paths holds slash-separated root-relative paths in traversal order
	Paths []string
	// FileCount is the number of collected files
	FileCount int
	// DirCount is the number of directories descended into
	DirCount int
	// CapReached is set when the soft cap truncated the walk
	CapReached bool
}

// MemoryUsage estimates the memory held by the collected paths: the slice of
// string headers plus the combined length of the string data.
func (r *ScanResult) MemoryUsage() (headerBytes, stringBytes int) {
	headerBytes = int(unsafe.Sizeof(r.Paths)) + int(unsafe.Sizeof(""))*len(r.Paths)
	for _, p := range r.Paths {
		stringBytes += len(p)
	}
	return headerBytes, stringBytes
}

// Scan walks root in lexical pre-order applying filter. root must be
// canonical (see ResolveRoot). Any traversal error aborts the scan and no
// partial result is returned; cancelling ctx aborts it with ctx.Err().
func Scan(ctx context.Context, root string, filter *Filter, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, newScanError(ErrRootNotFound, root, err)
	}
	if !info.IsDir() {
		return nil, newScanError(ErrNotDirectory, root, nil)
	}

	skip := make(map[string]struct{}, len(opts.SkipFiles))
	for _, f := range opts.SkipFiles {
		skip[f] = struct{}{}
	}

	result := &ScanResult{
		Root:  root,
		Paths: make([]string, 0),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return newScanError(ErrWalk, path, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return newScanError(ErrWalk, path, err)
		}
		depth := strings.Count(rel, string(filepath.Separator))

		if resolvesToDir(path, d) {
			canonical := path
			if d.Type()&fs.ModeSymlink != 0 {
				if canonical, err = filepath.EvalSymlinks(path); err != nil {
					return newScanError(ErrWalk, path, err)
				}
			}
			if filter.ShouldPrune(canonical, depth) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			result.DirCount++
			return nil
		}

		if _, skipped := skip[path]; skipped {
			return nil
		}
		if !filter.ShouldCollect(path) {
			return nil
		}

		result.Paths = append(result.Paths, filepath.ToSlash(rel))
		result.FileCount++

		if opts.CheckCaps && result.FileCount >= opts.MaxPaths {
			result.CapReached = true
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.CapReached && opts.OnCapReached != nil {
		opts.OnCapReached(opts.MaxPaths)
	}
	return result, nil
}

// resolvesToDir reports whether the entry is a directory, following a
// symlink one hop. Symlinked directories are counted but never descended
// into, matching filepath.WalkDir.
func resolvesToDir(path string, d fs.DirEntry) bool {
	if d.IsDir() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	// Dangling links are treated as plain files
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
