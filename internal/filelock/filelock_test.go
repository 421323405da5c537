package filelock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForTarget(t *testing.T) {
	lock := ForTarget("/tmp/out/list.m3u")
	assert.Equal(t, "/tmp/out/list.m3u.lock", lock.Path())
}

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "nested", "a.lock"))

	require.NoError(t, lock.Lock(context.Background()))
	require.NoError(t, lock.Unlock())
}

// TestTryLockContended verifies a second handle cannot take a held lock
func TestTryLockContended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lock")
	first := NewFileLock(path)
	second := NewFileLock(path)

	require.NoError(t, first.Lock(context.Background()))
	defer first.Unlock()

	ok, err := second.tryLock()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLockHonorsContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lock")
	holder := NewFileLock(path)
	require.NoError(t, holder.Lock(context.Background()))
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := NewFileLock(path).Lock(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.txt")

	require.NoError(t, AtomicWrite(path, []byte("first"), 0644))
	require.NoError(t, AtomicWrite(path, []byte("second"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

// TestConcurrentLockAndWrite verifies the lock serializes read-modify-write cycles
func TestConcurrentLockAndWrite(t *testing.T) {
	dir := t.TempDir()
	counterPath := filepath.Join(dir, "counter.txt")
	require.NoError(t, os.WriteFile(counterPath, []byte("0"), 0644))

	const goroutines = 5
	const iterations = 10

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				lock := ForTarget(counterPath)
				if err := lock.Lock(context.Background()); err != nil {
					t.Errorf("lock: %v", err)
					return
				}
				data, _ := os.ReadFile(counterPath)
				n, _ := strconv.Atoi(string(data))
				if err := AtomicWrite(counterPath, []byte(strconv.Itoa(n+1)), 0644); err != nil {
					t.Errorf("write: %v", err)
				}
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(counterPath)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(goroutines*iterations), string(data))
}

func TestWriteWith(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")

	err := WriteWith(context.Background(), path, func(w io.Writer) error {
		_, err := io.WriteString(w, "#EXTM3U\na.mp3\n")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\na.mp3\n", string(data))
}

func TestWriteWithRenderErrorLeavesTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

	boom := errors.New("render failed")
	err := WriteWith(context.Background(), path, func(w io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}
