package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/harrison/rfopener/internal/config"
	"github.com/harrison/rfopener/internal/display"
	"github.com/harrison/rfopener/internal/history"
	"github.com/harrison/rfopener/internal/keys"
	"github.com/harrison/rfopener/internal/launcher"
	"github.com/harrison/rfopener/internal/playlist"
	"github.com/harrison/rfopener/internal/session"
	"github.com/spf13/cobra"
)

// newOpener returns the file opener used by interactive sessions.
var newOpener = func() session.Opener {
	return launcher.New()
}

// runOpener scans the configured root and runs the interactive session.
func runOpener(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	printer := newPrinter(cmd.OutOrStdout())
	printer.Banner(Version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := scan(ctx, cfg, log)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	coll := playlist.NewCollection(result.Root, result.Paths, playlist.NewSource())

	opts := session.Options{
		Keys:    newKeyReader(cmd.InOrStdin()),
		Opener:  newOpener(),
		Logger:  log,
		Printer: printer,
		RunID:   history.NewRunID(),
	}
	if cfg.History.Enabled {
		store, err := openHistory(cfg)
		if err != nil {
			log.LogWarn(fmt.Sprintf("launch history disabled: %v", err))
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	err = session.New(coll, opts).Run(ctx, cfg.Playlist)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		return nil, err
	}
	return history.NewStore(dbPath, cfg.History.Keep)
}

// newPrinter enables colors only for a real terminal.
func newPrinter(w io.Writer) *display.Printer {
	if f, ok := w.(*os.File); ok {
		return display.NewPrinter(f)
	}
	return display.NewPrinterWithColor(w, false)
}

// newKeyReader reads raw keys from a terminal and lines from anything else.
func newKeyReader(r io.Reader) keys.Reader {
	if f, ok := r.(*os.File); ok {
		return keys.NewReader(f)
	}
	return keys.NewLineReader(r)
}

