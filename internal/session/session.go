// Package session runs the interactive loops over a scanned collection.
//
// Random mode opens one uniformly chosen file, then another on every confirm
// key until exit. Playlist mode shuffles the collection once, opens the first
// entry and steps forward or back (wrapping at both ends) on the arrow keys.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/harrison/rfopener/internal/display"
	"github.com/harrison/rfopener/internal/history"
	"github.com/harrison/rfopener/internal/keys"
	"github.com/harrison/rfopener/internal/launcher"
	"github.com/harrison/rfopener/internal/logger"
	"github.com/harrison/rfopener/internal/playlist"
)

// Opener starts the OS handler for a file below root.
type Opener interface {
	Launch(root, relativePath string) error
}

// Recorder stores launches.
type Recorder interface {
	Record(ctx context.Context, l *history.Launch) error
}

// Options wires a Session's collaborators. Logger, Printer and Recorder may
// be nil.
type Options struct {
	Keys     keys.Reader
	Opener   Opener
	Logger   logger.Logger
	Printer  *display.Printer
	Recorder Recorder
	RunID    string
}

// Session drives one interactive run.
type Session struct {
	coll     *playlist.Collection
	keys     keys.Reader
	opener   Opener
	log      logger.Logger
	printer  *display.Printer
	recorder Recorder
	runID    string
	launches int
}

// New creates a Session over coll.
func New(coll *playlist.Collection, opts Options) *Session {
	s := &Session{
		coll:     coll,
		keys:     opts.Keys,
		opener:   opts.Opener,
		log:      opts.Logger,
		printer:  opts.Printer,
		recorder: opts.Recorder,
		runID:    opts.RunID,
	}
	if s.log == nil {
		s.log = logger.NewNoOpLogger()
	}
	if s.printer == nil {
		s.printer = display.NewPrinterWithColor(io.Discard, false)
	}
	if s.runID == "" {
		s.runID = history.NewRunID()
	}
	return s
}

// Launches returns how many files were handed to the opener successfully.
func (s *Session) Launches() int {
	return s.launches
}

// Run starts playlist mode when playlistMode is set and random mode otherwise.
func (s *Session) Run(ctx context.Context, playlistMode bool) error {
	if playlistMode {
		return s.RunPlaylist(ctx)
	}
	return s.RunRandom(ctx)
}

// RunRandom opens a random file, then one more per confirm until exit.
func (s *Session) RunRandom(ctx context.Context) error {
	s.warnIfEmpty()
	s.openRandom(ctx)
	s.printer.Controls(false)

	for {
		action, err := s.next(ctx)
		if err != nil {
			return err
		}
		switch action {
		case keys.ActionExit:
			return nil
		case keys.ActionConfirm:
			s.openRandom(ctx)
		}
	}
}

// RunPlaylist shuffles the collection and walks it with a cursor.
func (s *Session) RunPlaylist(ctx context.Context) error {
	s.warnIfEmpty()
	s.coll.Shuffle()
	cursor := playlist.NewCursor(s.coll)
	s.openAt(ctx, cursor, cursor.JumpToFirst)
	s.printer.Controls(true)

	for {
		action, err := s.next(ctx)
		if err != nil {
			return err
		}
		switch action {
		case keys.ActionExit:
			return nil
		case keys.ActionForward:
			s.openAt(ctx, cursor, cursor.StepForward)
		case keys.ActionBack:
			s.openAt(ctx, cursor, cursor.StepBackward)
		}
	}
}

// warnIfEmpty reports an empty collection. The loops still run so that
// every selection reports that there is nothing to open.
func (s *Session) warnIfEmpty() {
	if s.coll.IsEmpty() {
		s.printer.Warn(display.WarnEmptyCollection(s.coll.Root()))
	}
}

// next waits for the next action. End of input and a cancelled context both
// end the loop; a cancelled context is reported as its error.
func (s *Session) next(ctx context.Context) (keys.Action, error) {
	type result struct {
		action keys.Action
		err    error
	}
	done := make(chan result, 1)
	go func() {
		a, err := s.keys.ReadAction()
		done <- result{a, err}
	}()

	select {
	case <-ctx.Done():
		return keys.ActionExit, ctx.Err()
	case r := <-done:
		if errors.Is(r.err, io.EOF) {
			return keys.ActionExit, nil
		}
		if r.err != nil {
			return keys.ActionExit, fmt.Errorf("read key: %w", r.err)
		}
		s.log.LogTrace(fmt.Sprintf("key action: %s", r.action))
		return r.action, nil
	}
}

func (s *Session) openRandom(ctx context.Context) {
	rel, err := s.coll.PickOne()
	if err != nil {
		s.log.LogWarn(fmt.Sprintf("Nothing to open: %v", err))
		return
	}
	s.open(ctx, rel, history.ModeRandom, playlist.Position{Total: s.coll.Len()})
}

func (s *Session) openAt(ctx context.Context, cursor *playlist.Cursor, step func() (string, error)) {
	rel, err := step()
	if err != nil {
		s.log.LogWarn(fmt.Sprintf("Nothing to open: %v", err))
		return
	}
	pos := cursor.Position()
	s.log.LogPosition(pos.Index, pos.Total)
	s.open(ctx, rel, history.ModePlaylist, pos)
}

func (s *Session) open(ctx context.Context, rel string, mode history.Mode, pos playlist.Position) {
	root := s.coll.Root()
	abs := launcher.AbsPath(root, rel)
	s.log.LogOpening(abs)

	if err := s.opener.Launch(root, rel); err != nil {
		s.log.LogWarn(err.Error())
		s.printer.Warn(display.WarnLaunchFailed(abs, err))
		return
	}
	s.launches++

	if s.recorder == nil {
		return
	}
	launch := &history.Launch{
		RunID:    s.runID,
		Mode:     mode,
		Root:     root,
		Path:     rel,
		Position: pos.Index,
		Total:    pos.Total,
	}
	if err := s.recorder.Record(ctx, launch); err != nil {
		s.log.LogWarn(fmt.Sprintf("failed to record launch: %v", err))
	}
}
