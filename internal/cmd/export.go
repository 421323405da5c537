package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/harrison/rfopener/internal/config"
	"github.com/harrison/rfopener/internal/display"
	"github.com/harrison/rfopener/internal/export"
	"github.com/harrison/rfopener/internal/fileutil"
	"github.com/harrison/rfopener/internal/filelock"
	"github.com/harrison/rfopener/internal/logger"
	"github.com/harrison/rfopener/internal/playlist"
	"github.com/harrison/rfopener/internal/watch"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	output  string
	format  export.Format
	shuffle bool
}

// NewExportCommand creates the 'rfopener export' command
func NewExportCommand() *cobra.Command {
	var output, format string
	var shuffle, watchTree bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the scanned collection to a playlist file",
		Long: fmt.Sprintf(`Scan with the same flags as the opener and write the collection to a file.

Formats: %s. Without --format the format is taken from the output file's
extension, falling back to m3u. The file is replaced atomically while a
lock file (<output>.lock) is held.

With --watch the tree is rescanned and the file rewritten whenever
something under the root changes, until interrupted.

Examples:
  rfopener export -r ~/Music -e "mp3;flac" -o music.m3u
  rfopener export -r ~/Pictures --shuffle --format html -o pictures.html
  rfopener export -r ~/Music -o music.json --watch`, strings.Join(export.Formats(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(cmd, format, output)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			opts := exportOptions{output: output, format: f, shuffle: shuffle}
			printer := newPrinter(cmd.OutOrStdout())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			root, err := exportOnce(ctx, cfg, log, printer, opts)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil || !watchTree {
				return err
			}
			return watchAndExport(ctx, root, cfg, log, printer, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (required)")
	cmd.Flags().StringVar(&format, "format", "", "Output format (default: from --output extension, else m3u)")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "Shuffle the collection before writing")
	cmd.Flags().BoolVarP(&watchTree, "watch", "w", false, "Rewrite the file whenever the tree changes")
	cmd.MarkFlagRequired("output")

	return cmd
}

func resolveFormat(cmd *cobra.Command, format, output string) (export.Format, error) {
	if cmd.Flags().Changed("format") {
		return export.ParseFormat(format)
	}
	if f, ok := export.FormatForPath(output); ok {
		return f, nil
	}
	return export.FormatM3U, nil
}

// exportOnce scans and writes the playlist, returning the canonical root.
func exportOnce(ctx context.Context, cfg *config.Config, log logger.Logger, printer *display.Printer, opts exportOptions) (string, error) {
	target := canonicalTarget(opts.output)
	result, err := scan(ctx, cfg, log, target, target+filelock.LockSuffix)
	if err != nil {
		return "", err
	}

	coll := playlist.NewCollection(result.Root, result.Paths, playlist.NewSource())
	if opts.shuffle {
		coll.Shuffle()
	}
	pl := export.NewPlaylist(coll.Root(), coll.Paths(), opts.shuffle)

	progress := printer.NewExportProgress(string(opts.format), opts.output)
	progress.Start(pl.Count)
	if err := export.ToFile(ctx, opts.output, pl, opts.format); err != nil {
		return "", fmt.Errorf("failed to export to %s: %w", opts.output, err)
	}
	progress.Complete(pl.Count)
	return result.Root, nil
}

// watchAndExport re-exports on every settled change below root until ctx ends.
func watchAndExport(ctx context.Context, root string, cfg *config.Config, log logger.Logger, printer *display.Printer, opts exportOptions) error {
	excluded, err := fileutil.CanonicalizeDirs(cfg.Exclude)
	if err != nil {
		return err
	}
	skip := make(map[string]bool, len(excluded))
	for _, d := range excluded {
		skip[d] = true
	}
	target := canonicalTarget(opts.output)

	w, err := watch.New(root, watch.Options{
		SkipDir: func(p string) bool { return skip[p] },
		Ignore:  func(p string) bool { return isExportArtifact(p, target) },
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	defer w.Close()

	log.LogInfo(fmt.Sprintf("Watching %s for changes (Ctrl-C to stop)", root))
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			log.LogWarn(fmt.Sprintf("watch: %v", err))
		case <-w.Changes():
			log.LogDebug("tree changed, exporting again")
			if _, err := exportOnce(ctx, cfg, log, printer, opts); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.LogError(err.Error())
			}
		}
	}
}

// canonicalTarget returns output as an absolute path whose directory has its
// symlinks resolved, matching the paths the scanner and watcher report.
func canonicalTarget(output string) string {
	abs, err := filepath.Abs(output)
	if err != nil {
		return output
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs
	}
	return filepath.Join(dir, filepath.Base(abs))
}

// isExportArtifact reports the export target, its lock and temp files.
// target must come from canonicalTarget.
func isExportArtifact(path, target string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if path == target || path == target+filelock.LockSuffix {
		return true
	}
	return filepath.Dir(path) == filepath.Dir(target) && strings.HasPrefix(filepath.Base(path), filelock.TempPrefix)
}
