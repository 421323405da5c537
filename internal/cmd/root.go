package cmd

import (
	"fmt"

	"github.com/harrison/rfopener/internal/fileutil"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for rfopener.
// Running it without a subcommand scans the root and starts an interactive
// session.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rfopener",
		Short: "Open random files from a directory tree",
		Long: fmt.Sprintf(`Random File Opener scans a directory tree and opens its files with the
system's default application, either one random file at a time or as a
shuffled playlist navigated with the arrow keys.

Random mode:   Enter/Space opens another file, Esc/q exits.
Playlist mode: Right/Down next, Left/Up previous, Esc/q exits.

Limits:
  depth     %d..%d (default %d, clamped to %d unless --nocap)
  paths     %d (scan stops there unless --nocap)
  lists     entries separated by %q

Examples:
  rfopener -r ~/Music -e "mp3;flac"
  rfopener -r ~/Pictures -p -x "/home/me/Pictures/raw" -d 2
  rfopener list -r ~/Videos --shuffle | head
  rfopener export -r ~/Music --format m3u -o music.m3u`,
			fileutil.MinDepth, fileutil.MaxDepth, fileutil.DefaultDepth, fileutil.MaxDepth,
			fileutil.MaxPaths, fileutil.Delimiter),
		Version: Version,
		Args:    cobra.NoArgs,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runOpener,
	}

	addScanFlags(cmd)
	cmd.Flags().BoolP("playlist", "p", false, "Playlist mode: shuffle once and navigate sequentially")
	cmd.Flags().Bool("no-history", false, "Do not record launches in the history database")

	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}

// addScanFlags registers the flags shared by every command that scans.
func addScanFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("root", "r", "", "Root directory to scan (default: current directory)")
	pf.StringP("exclude", "x", "", fmt.Sprintf("Directories to skip, separated by %q", fileutil.Delimiter))
	pf.StringP("extensions", "e", "", fmt.Sprintf("Extensions to collect, separated by %q (e.g. \"mp3;flac\")", fileutil.Delimiter))
	pf.IntP("depth", "d", fileutil.DefaultDepth, fmt.Sprintf("Directory levels to descend (%d-%d, negative = default)", fileutil.MinDepth, fileutil.MaxDepth))
	pf.BoolP("nocap", "n", false, fmt.Sprintf("Disable soft caps (max depth %d, max paths %d)", fileutil.MaxDepth, fileutil.MaxPaths))
	pf.String("config", "", "Path to config file (default: $RFOPENER_HOME/config.yaml)")
	pf.String("log-level", "", "Log level: trace, debug, info, warn, error")
}
