package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Limits shared with the CLI layer for help text and validation.
const (
	MinDepth     = 0     // Minimum (inclusive) depth
	MaxDepth     = 10    // Maximum (inclusive) depth while caps are enabled
	DefaultDepth = 5     // Depth used when none (or an invalid one) is given
	MaxPaths     = 50000 // Maximum collected paths while caps are enabled
)

// Delimiter separates entries in the exclusion and extension lists.
const Delimiter = ";"

// ExtensionDot is prepended to whitelist entries.
const ExtensionDot = "."

// Filter decides which directories are descended into and which files are
// collected. It is immutable after construction and safe to share.
type Filter struct {
	depthLimit int
	excluded   map[string]struct{}
	extensions map[string]struct{}
}

// NewFilter builds a Filter. excludedDirs must already be canonical (see
// CanonicalizeDirs) and extensions must already carry their leading dot (see
// NormalizeExtensions).
func NewFilter(depthLimit int, excludedDirs []string, extensions []string) *Filter {
	f := &Filter{
		depthLimit: depthLimit,
		excluded:   make(map[string]struct{}, len(excludedDirs)),
		extensions: make(map[string]struct{}, len(extensions)),
	}
	for _, dir := range excludedDirs {
		f.excluded[dir] = struct{}{}
	}
	for _, ext := range extensions {
		f.extensions[ext] = struct{}{}
	}
	return f
}

// DepthLimit returns the configured depth limit.
func (f *Filter) DepthLimit() int {
	return f.depthLimit
}

// ShouldPrune reports whether the directory at canonicalPath, found at the
// given depth below the root, must not be descended into.
func (f *Filter) ShouldPrune(canonicalPath string, depth int) bool {
	if depth >= f.depthLimit {
		return true
	}
	if len(f.excluded) == 0 {
		return false
	}
	_, excluded := f.excluded[canonicalPath]
	return excluded
}

// ShouldCollect reports whether the file at path passes the extension
// whitelist. Matching is exact and case-sensitive.
func (f *Filter) ShouldCollect(path string) bool {
	if len(f.extensions) == 0 {
		return true
	}
	_, ok := f.extensions[filepath.Ext(path)]
	return ok
}

// SplitList splits a delimited user list. Empty interior entries are kept, a
// trailing delimiter does not produce an extra entry and an empty input
// yields no entries.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, Delimiter)
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// NormalizeExtensions prefixes each entry with a dot unless it already has
// one. Entries are otherwise kept as given, so " mp4" only matches an
// extension that really starts with a blank. An empty entry becomes "."
// which never matches a real extension.
func NormalizeExtensions(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, ext := range raw {
		if !strings.HasPrefix(ext, ExtensionDot) {
			ext = ExtensionDot + ext
		}
		out = append(out, ext)
	}
	return out
}

// CanonicalizeDirs resolves every entry to an absolute path with symlinks
// evaluated. Blank entries are ignored. The first entry that cannot be
// resolved aborts with a *ScanError naming it.
func CanonicalizeDirs(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, dir := range raw {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		canonical, err := canonicalize(dir)
		if err != nil {
			return nil, newScanError(ErrCanonicalize, dir, err)
		}
		out = append(out, canonical)
	}
	return out, nil
}

// ResolveRoot canonicalizes the root directory. An empty raw value selects
// the current working directory.
func ResolveRoot(raw string) (string, error) {
	if raw == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", newScanError(ErrCanonicalize, ".", err)
		}
		raw = wd
	}

	canonical, err := canonicalize(raw)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", newScanError(ErrRootNotFound, raw, err)
		}
		return "", newScanError(ErrCanonicalize, raw, err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return "", newScanError(ErrCanonicalize, raw, err)
	}
	if !info.IsDir() {
		return "", newScanError(ErrNotDirectory, raw, nil)
	}
	return canonical, nil
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// AdjustDepth validates a requested depth. Values below MinDepth fall back to
// DefaultDepth. Values above MaxDepth are clamped only when checkCaps is set;
// clamped reports whether that happened so the caller can tell the user.
func AdjustDepth(requested int, checkCaps bool) (depth int, clamped bool) {
	if requested < MinDepth {
		return DefaultDepth, false
	}
	if requested > MaxDepth && checkCaps {
		return MaxDepth, true
	}
	return requested, false
}
