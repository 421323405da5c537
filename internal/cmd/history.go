package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/harrison/rfopener/internal/history"
	"github.com/harrison/rfopener/internal/launcher"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'rfopener history' command
func NewHistoryCommand() *cobra.Command {
	var limit int
	var clearAll, yes bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the files opened in past runs",
		Long: `List the most recently opened files, newest first, or delete the whole
launch history with --clear.

The database lives at history.db_path, default $RFOPENER_HOME/history.db.

Examples:
  rfopener history --limit 5
  rfopener history --clear --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if clearAll {
				if !yes {
					fmt.Fprintf(out, "WARNING: This will delete all launch history in %s.\n", store.Path())
					if !confirmAction(cmd.InOrStdin(), out) {
						fmt.Fprintf(out, "Operation cancelled.\n")
						return nil
					}
				}
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d launches.\n", removed)
				return nil
			}

			launches, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printLaunches(out, launches)
			if len(launches) > 0 {
				total, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Showing %d of %d launches.\n", len(launches), total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of launches to show (0 = all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all launch history")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func printLaunches(out io.Writer, launches []*history.Launch) {
	if len(launches) == 0 {
		fmt.Fprintln(out, "No launches recorded.")
		return
	}
	for _, l := range launches {
		where := string(l.Mode)
		if l.Mode == history.ModePlaylist {
			where = fmt.Sprintf("%s %d/%d", l.Mode, l.Position, l.Total)
		}
		fmt.Fprintf(out, "%s  %-16s  %s\n",
			l.OpenedAt.Local().Format("2006-01-02 15:04:05"), where, launcher.AbsPath(l.Root, l.Path))
	}
}

// confirmAction asks a yes/no question on in; anything but y/yes is a no.
func confirmAction(in io.Reader, out io.Writer) bool {
	fmt.Fprintf(out, "Continue? [y/N]: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
