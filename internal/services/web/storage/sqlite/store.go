package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/earlypay/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/louisbranch/earlypay/internal/services/web/storage"
	"github.com/louisbranch/earlypay/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for session values.
type Store struct {
	sqlDB *sql.DB
	idle  time.Duration
	now   func() time.Time
}

// Open opens and migrates a session SQLite store. Sessions untouched for
// longer than idle read as empty; a non-positive idle disables expiry.
func Open(ctx context.Context, path string, idle time.Duration) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, idle: idle, now: time.Now}
	if _, err := sqlitemigrate.ApplyFS(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetValue loads one session value and refreshes the session idle clock.
func (s *Store) GetValue(ctx context.Context, sessionID, key string) (string, bool, error) {
	sessionID, err := s.prepare(sessionID)
	if err != nil {
		return "", false, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT value FROM web_sessions
		 WHERE session_id = ? AND value_key = ? AND updated_at >= ?`,
		sessionID,
		key,
		s.cutoff(),
	)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session value: %w", err)
	}
	if err := s.touch(ctx, sessionID); err != nil {
		return "", false, err
	}
	return value, true, nil
}

// PutValue upserts one session value.
func (s *Store) PutValue(ctx context.Context, sessionID, key, value string) error {
	sessionID, err := s.prepare(sessionID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("session key is required")
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO web_sessions (session_id, value_key, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id, value_key) DO UPDATE SET
		    value = excluded.value,
		    updated_at = excluded.updated_at`,
		sessionID,
		key,
		value,
		timeToUnixMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("put session value: %w", err)
	}
	return s.touch(ctx, sessionID)
}

// DeleteValue removes one session value.
func (s *Store) DeleteValue(ctx context.Context, sessionID, key string) error {
	sessionID, err := s.prepare(sessionID)
	if err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE session_id = ? AND value_key = ?`, sessionID, key); err != nil {
		return fmt.Errorf("delete session value: %w", err)
	}
	return nil
}

// DeleteSession removes every value of a session.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	sessionID, err := s.prepare(sessionID)
	if err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PruneExpired deletes values of idle sessions and reports the row count.
func (s *Store) PruneExpired(ctx context.Context) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if s.idle <= 0 {
		return 0, nil
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE updated_at < ?`, s.cutoff())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return int(affected), nil
}

func (s *Store) prepare(sessionID string) (string, error) {
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", webstorage.ErrSessionRequired
	}
	return sessionID, nil
}

func (s *Store) touch(ctx context.Context, sessionID string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `UPDATE web_sessions SET updated_at = ? WHERE session_id = ?`, timeToUnixMillis(s.now()), sessionID); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

func (s *Store) cutoff() int64 {
	if s.idle <= 0 {
		return 0
	}
	return timeToUnixMillis(s.now().Add(-s.idle))
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}
