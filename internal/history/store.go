// Package history records every file rfopener launches in a SQLite database
// so past picks can be listed with `rfopener history`.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Mode names the session kind that produced a launch.
type Mode string

const (
	ModeRandom   Mode = "random"
	ModePlaylist Mode = "playlist"
)

// Launch is one opened file.
type Launch struct {
	ID       int64
	RunID    string
	Mode     Mode
	Root     string
	Path     string // relative to Root, slash separated
	Position int    // 1-based playlist position, 0 in random mode
	Total    int
	OpenedAt time.Time
}

// NewRunID returns a fresh identifier shared by all launches of one run.
func NewRunID() string {
	return uuid.NewString()
}

// Store manages the launch history database.
type Store struct {
	db     *sql.DB
	dbPath string
	keep   int
}

// NewStore opens (creating if needed) the database at dbPath. When keep > 0
// only the newest keep launches are retained.
func NewStore(dbPath string, keep int) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath, keep: keep}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// execWithRetry retries statements that fail with "database is locked".
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts a launch, filling in ID and a zero OpenedAt, then prunes
// the table to the retention limit.
func (s *Store) Record(ctx context.Context, l *Launch) error {
	if l.OpenedAt.IsZero() {
		l.OpenedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO launches (run_id, mode, root, path, position, total, opened_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.RunID, string(l.Mode), l.Root, l.Path, l.Position, l.Total, l.OpenedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert launch: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get launch id: %w", err)
	}
	l.ID = id

	if s.keep > 0 {
		if _, err := s.Prune(ctx, s.keep); err != nil {
			return err
		}
	}
	return nil
}

// Recent returns up to limit launches, newest first. limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Launch, error) {
	query := `SELECT id, run_id, mode, root, path, position, total, opened_at FROM launches ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query launches: %w", err)
	}
	defer rows.Close()

	var launches []*Launch
	for rows.Next() {
		l := &Launch{}
		var mode string
		if err := rows.Scan(&l.ID, &l.RunID, &mode, &l.Root, &l.Path, &l.Position, &l.Total, &l.OpenedAt); err != nil {
			return nil, fmt.Errorf("scan launch: %w", err)
		}
		l.Mode = Mode(mode)
		launches = append(launches, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate launches: %w", err)
	}
	return launches, nil
}

// Count returns the number of stored launches.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM launches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count launches: %w", err)
	}
	return n, nil
}

// Prune deletes all but the newest keep launches and reports how many went.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM launches WHERE id NOT IN (SELECT id FROM launches ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune launches: %w", err)
	}
	return result.RowsAffected()
}

// Clear deletes every launch and reports how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM launches`)
	if err != nil {
		return 0, fmt.Errorf("clear launches: %w", err)
	}
	return result.RowsAffected()
}
