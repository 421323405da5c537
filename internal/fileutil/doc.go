// Package fileutil collects the candidate files for rfopener.
//
// It owns the two halves of the path-collection engine: the Filter, which
// decides which directories are descended into and which files are kept, and
// Scan, the depth-bounded recursive walk that applies it.
//
// # Depth Convention
//
// The root's immediate children are depth 0. A directory at depth d is pruned
// when d >= the depth limit, so a limit of 0 keeps only the files that sit
// directly in the root, a limit of 1 adds the files of the root's
// subdirectories, and so on. Files are always evaluated, never pruned by depth:
// they are only reachable through directories that survived pruning.
//
// # Filtering
//
//   - Directory exclusion compares canonical absolute paths for exact equality.
//     Excluding a directory stops the walk at that directory, which hides its
//     subtree, but there is no prefix matching on arbitrary paths.
//   - The extension whitelist is case-sensitive and includes the leading dot.
//     An empty whitelist keeps every file.
//
// # Soft Caps
//
// With caps enabled the walk stops as soon as MaxPaths files have been
// collected and the caller is notified through ScanOptions.OnCapReached.
// The depth limit is clamped by AdjustDepth before the walk starts.
//
// # Errors
//
// Resolution and traversal failures are returned as *ScanError values and no
// partial result is produced. Use errors.Is with the Err* sentinels to inspect
// the failure kind.
//
// Usage:
//
//	root, err := fileutil.ResolveRoot(rawRoot)
//	if err != nil {
//	    return err
//	}
//	excluded, err := fileutil.CanonicalizeDirs(fileutil.SplitList(rawExclude))
//	if err != nil {
//	    return err
//	}
//	depth, _ := fileutil.AdjustDepth(requested, true)
//	filter := fileutil.NewFilter(depth, excluded, fileutil.NormalizeExtensions(fileutil.SplitList(rawExt)))
//	result, err := fileutil.Scan(ctx, root, filter, fileutil.ScanOptions{
//	    MaxPaths:  fileutil.MaxPaths,
//	    CheckCaps: true,
//	})
package fileutil
