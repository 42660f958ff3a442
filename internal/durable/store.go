package durable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"marquee/internal/logging"
)

// ErrUnavailable reports that the durable store cannot be used this session.
var ErrUnavailable = errors.New("durable store unavailable")

// ErrNotFound reports that no value exists for the requested key.
var ErrNotFound = errors.New("key not found")

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store is a bucketed key-value store backed by SQLite. A single flock
// guards the state directory so two processes never write the same database.
type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	logger *slog.Logger
}

// Open initializes the store under dir. Lock contention, creation failures,
// and schema errors all yield an unavailable store rather than an error;
// only an empty dir is a caller bug.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state directory required")
	}
	logger = logging.NewComponentLogger(logger, "durable")

	store := &Store{logger: logger}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("state directory unavailable",
			logging.String(logging.FieldEventType, "durable_open_failed"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no persistence this session"))
		return store, nil
	}

	lock := flock.New(filepath.Join(dir, "state.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		if err == nil {
			err = errors.New("already locked by another process")
		}
		logger.Warn("state lock unavailable",
			logging.String(logging.FieldEventType, "durable_lock_failed"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no persistence this session"))
		return store, nil
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "state.db"))
	if err == nil {
		for _, pragma := range []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout = 5000",
		} {
			if _, execErr := db.Exec(pragma); execErr != nil {
				err = fmt.Errorf("apply pragma %q: %w", pragma, execErr)
				break
			}
		}
	}
	if err == nil {
		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv_entries (
            bucket TEXT NOT NULL,
            key TEXT NOT NULL,
            value BLOB NOT NULL,
            updated_at TEXT NOT NULL,
            PRIMARY KEY (bucket, key)
        )`)
	}
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		_ = lock.Unlock()
		logger.Warn("state database unavailable",
			logging.String(logging.FieldEventType, "durable_open_failed"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no persistence this session"))
		return store, nil
	}

	store.db = db
	store.lock = lock
	return store, nil
}

// Available reports whether operations can persist anything this session.
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

// Get returns the stored value for (bucket, key).
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE bucket = ? AND key = ?`, bucket, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}

// Put stores value under (bucket, key), replacing any existing value.
func (s *Store) Put(ctx context.Context, bucket, key string, value []byte) error {
	if !s.Available() {
		return ErrUnavailable
	}
	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO kv_entries (bucket, key, value, updated_at) VALUES (?, ?, ?, ?)
             ON CONFLICT (bucket, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			bucket, key, value, time.Now().UTC().Format(time.RFC3339Nano))
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete removes one key; deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM kv_entries WHERE bucket = ? AND key = ?`, bucket, key)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// DeleteBucket removes every key in bucket.
func (s *Store) DeleteBucket(ctx context.Context, bucket string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE bucket = ?`, bucket)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the database and the directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
		s.lock = nil
	}
	return err
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > busyRetryMaxBackoff {
			delay = busyRetryMaxBackoff
		}
	}
	return lastErr
}
