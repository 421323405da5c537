package cmd

import (
	"fmt"

	"github.com/harrison/rfopener/internal/launcher"
	"github.com/harrison/rfopener/internal/playlist"
	"github.com/spf13/cobra"
)

// NewListCommand creates the 'rfopener list' command
func NewListCommand() *cobra.Command {
	var shuffle, absolute bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the files a scan would collect",
		Long: `Scan with the same flags as the opener and print one collected path per
line, relative to the root unless --absolute is given. Log output goes to
stderr so the list can be piped.

Examples:
  rfopener list -r ~/Music -e mp3 | wc -l
  rfopener list -r ~/Pictures --shuffle --absolute | head -5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			result, err := scan(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}

			coll := playlist.NewCollection(result.Root, result.Paths, playlist.NewSource())
			if shuffle {
				coll.Shuffle()
			}

			out := cmd.OutOrStdout()
			for _, p := range coll.Paths() {
				if absolute {
					p = launcher.AbsPath(coll.Root(), p)
				}
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "Shuffle the paths before printing")
	cmd.Flags().BoolVar(&absolute, "absolute", false, "Print absolute platform paths")

	return cmd
}
