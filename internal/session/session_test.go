package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/harrison/rfopener/internal/display"
	"github.com/harrison/rfopener/internal/history"
	"github.com/harrison/rfopener/internal/keys"
	"github.com/harrison/rfopener/internal/logger"
	"github.com/harrison/rfopener/internal/playlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedKeys replays a fixed list of actions, then reports io.EOF.
type scriptedKeys struct {
	actions []keys.Action
}

func (s *scriptedKeys) ReadAction() (keys.Action, error) {
	if len(s.actions) == 0 {
		return keys.ActionExit, io.EOF
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

// blockingKeys never returns, like a terminal nobody types into.
type blockingKeys struct{}

func (blockingKeys) ReadAction() (keys.Action, error) {
	select {}
}

type errKeys struct{ err error }

func (e errKeys) ReadAction() (keys.Action, error) { return keys.ActionNone, e.err }

type recordingOpener struct {
	opened []string
	err    error
}

func (r *recordingOpener) Launch(root, rel string) error {
	if r.err != nil {
		return r.err
	}
	r.opened = append(r.opened, rel)
	return nil
}

type memRecorder struct {
	launches []*history.Launch
}

func (m *memRecorder) Record(_ context.Context, l *history.Launch) error {
	m.launches = append(m.launches, l)
	return nil
}

func newCollection(paths ...string) *playlist.Collection {
	return playlist.NewCollection("/root", paths, rand.New(rand.NewPCG(7, 11)))
}

func actions(a ...keys.Action) *scriptedKeys {
	return &scriptedKeys{actions: a}
}

func TestRunRandomOpensFirstThenPerConfirm(t *testing.T) {
	coll := newCollection("a.txt", "b.txt", "c.txt")
	opener := &recordingOpener{}
	rec := &memRecorder{}

	s := New(coll, Options{
		Keys:     actions(keys.ActionConfirm, keys.ActionNone, keys.ActionForward, keys.ActionConfirm, keys.ActionExit, keys.ActionConfirm),
		Opener:   opener,
		Recorder: rec,
		RunID:    "run-1",
	})
	require.NoError(t, s.RunRandom(context.Background()))

	assert.Len(t, opener.opened, 3, "initial open plus two confirms, nothing after exit")
	assert.Equal(t, 3, s.Launches())
	for _, p := range opener.opened {
		assert.Contains(t, []string{"a.txt", "b.txt", "c.txt"}, p)
	}

	require.Len(t, rec.launches, 3)
	for _, l := range rec.launches {
		assert.Equal(t, "run-1", l.RunID)
		assert.Equal(t, history.ModeRandom, l.Mode)
		assert.Equal(t, "/root", l.Root)
		assert.Zero(t, l.Position)
		assert.Equal(t, 3, l.Total)
	}
}

// TestRunPlaylistWalk opens the first entry, walks forward past the end and back
func TestRunPlaylistWalk(t *testing.T) {
	coll := newCollection("a", "b", "c", "d")
	opener := &recordingOpener{}
	rec := &memRecorder{}

	s := New(coll, Options{
		// three steps to the end, wrap to 0, wrap back to 3; confirm is ignored
		Keys: actions(
			keys.ActionForward, keys.ActionForward, keys.ActionForward,
			keys.ActionForward,
			keys.ActionBack,
			keys.ActionConfirm,
			keys.ActionExit,
		),
		Opener:   opener,
		Recorder: rec,
	})
	require.NoError(t, s.RunPlaylist(context.Background()))

	shuffled := coll.Paths()
	want := []string{shuffled[0], shuffled[1], shuffled[2], shuffled[3], shuffled[0], shuffled[3]}
	assert.Equal(t, want, opener.opened)

	sorted := append([]string(nil), shuffled...)
	sort.Strings(sorted)
	assert.Equal(t, []string{"a", "b", "c", "d"}, sorted, "shuffle must be a permutation")

	positions := make([]int, 0, len(rec.launches))
	for _, l := range rec.launches {
		positions = append(positions, l.Position)
		assert.Equal(t, history.ModePlaylist, l.Mode)
		assert.Equal(t, 4, l.Total)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 1, 4}, positions)
}

func TestRunPlaylistLogsPosition(t *testing.T) {
	var buf bytes.Buffer
	s := New(newCollection("x", "y"), Options{
		Keys:   actions(keys.ActionForward),
		Opener: &recordingOpener{},
		Logger: logger.NewConsoleLogger(&buf, "info"),
	})
	require.NoError(t, s.RunPlaylist(context.Background()))

	assert.Contains(t, buf.String(), "1 of 2")
	assert.Contains(t, buf.String(), "2 of 2")
	assert.Contains(t, buf.String(), "Opening /root")
}

func TestEmptyCollectionWarns(t *testing.T) {
	for _, playlistMode := range []bool{false, true} {
		var out, logs bytes.Buffer
		opener := &recordingOpener{}
		s := New(newCollection(), Options{
			Keys:    actions(keys.ActionConfirm, keys.ActionForward, keys.ActionBack),
			Opener:  opener,
			Logger:  logger.NewConsoleLogger(&logs, "info"),
			Printer: display.NewPrinterWithColor(&out, false),
		})

		require.NoError(t, s.Run(context.Background(), playlistMode))
		assert.Empty(t, opener.opened)
		assert.Contains(t, out.String(), "No files matched")
		assert.Contains(t, logs.String(), "Nothing to open: no paths available")
	}
}

// TestLaunchFailureContinues verifies a failed launch is a warning, not an abort
func TestLaunchFailureContinues(t *testing.T) {
	var out bytes.Buffer
	opener := &recordingOpener{err: errors.New("xdg-open not found")}
	rec := &memRecorder{}

	s := New(newCollection("a.txt"), Options{
		Keys:     actions(keys.ActionConfirm, keys.ActionExit),
		Opener:   opener,
		Printer:  display.NewPrinterWithColor(&out, false),
		Recorder: rec,
	})
	require.NoError(t, s.RunRandom(context.Background()))

	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Could not open file")))
	assert.Zero(t, s.Launches())
	assert.Empty(t, rec.launches)
}

func TestCancelledContextStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opener := &recordingOpener{}
	s := New(newCollection("a.txt"), Options{Keys: blockingKeys{}, Opener: opener})

	cancel()
	err := s.RunRandom(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, opener.opened, 1)
}

func TestReadErrorIsReturned(t *testing.T) {
	boom := errors.New("tty gone")
	s := New(newCollection("a"), Options{Keys: errKeys{boom}, Opener: &recordingOpener{}})
	assert.ErrorIs(t, s.RunPlaylist(context.Background()), boom)
}

func TestRecordsToHistoryStore(t *testing.T) {
	store, err := history.NewStore(":memory:", 0)
	require.NoError(t, err)
	defer store.Close()

	s := New(newCollection("a", "b"), Options{
		Keys:     actions(keys.ActionForward, keys.ActionExit),
		Opener:   &recordingOpener{},
		Recorder: store,
		RunID:    history.NewRunID(),
	})
	require.NoError(t, s.RunPlaylist(context.Background()))

	launches, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, launches, 2)
}
