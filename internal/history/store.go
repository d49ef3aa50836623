package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Actions recorded in the journal.
const (
	ActionPlaced         = "placed"
	ActionQuarantined    = "quarantined"
	ActionArchiveRemoved = "archive_removed"
	ActionFailed         = "failed"
)

// Event is one journal row.
type Event struct {
	ID          int64
	CreatedAt   time.Time
	PassID      string
	Action      string
	Name        string
	Source      string
	Destination string
	Category    string
	Detail      string
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one event to the journal.
func (s *Store) Record(ctx context.Context, event Event) error {
	if s == nil {
		return nil
	}
	created := event.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return s.execWithRetry(ctx,
		`INSERT INTO events (created_at, pass_id, action, name, source, destination, category, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		created.Format(time.RFC3339Nano),
		event.PassID, event.Action, event.Name,
		event.Source, event.Destination, event.Category, event.Detail,
	)
}

// Recent returns up to limit events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, pass_id, action, name, source, destination, category, detail
		 FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		var created string
		if err := rows.Scan(&event.ID, &created, &event.PassID, &event.Action,
			&event.Name, &event.Source, &event.Destination, &event.Category, &event.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
			event.CreatedAt = ts
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// CountByAction returns journal totals per action label.
func (s *Store) CountByAction(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT action, COUNT(1) FROM events GROUP BY action")
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var action string
		var count int64
		if err := rows.Scan(&action, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[action] = count
	}
	return counts, rows.Err()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
