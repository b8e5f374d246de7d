package recorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"CurbClicker/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists event and save history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS economy_events (
			id         TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			kind       TEXT NOT NULL,
			payload    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON economy_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS save_history (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			scope        TEXT NOT NULL,
			source       TEXT,
			currency     INTEGER,
			total_earned INTEGER,
			level        INTEGER,
			total_clicks INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saves_scope_ts ON save_history(scope, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvent(evt model.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT OR IGNORE INTO economy_events
		(id, timestamp, kind, payload)
		VALUES (?,?,?,?)`,
		evt.ID, evt.At.UnixMilli(), string(evt.Kind), string(payload),
	)
	return err
}

// Deliver lets the recorder sit behind the notification dispatcher.
func (r *SQLiteRecorder) Deliver(_ context.Context, evt model.Event) error {
	return r.RecordEvent(evt)
}

func (r *SQLiteRecorder) RecordSave(s *SaveSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := s.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO save_history
		(timestamp, scope, source, currency, total_earned, level, total_clicks)
		VALUES (?,?,?,?,?,?,?)`,
		at.UnixMilli(), s.Scope, s.Trigger,
		s.Currency, s.TotalEarned, s.Level, s.TotalClicks,
	)
	return err
}

// RecentSaves returns up to limit saves for scope, newest first.
func (r *SQLiteRecorder) RecentSaves(scope string, limit int) ([]SaveSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, source, currency, total_earned, level, total_clicks
		FROM save_history WHERE scope = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, scope, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaveSummary
	for rows.Next() {
		s := SaveSummary{Scope: scope}
		var ts int64
		if err := rows.Scan(&ts, &s.Trigger, &s.Currency, &s.TotalEarned, &s.Level, &s.TotalClicks); err != nil {
			return nil, err
		}
		s.At = time.UnixMilli(ts)
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountEvents returns how many events of kind were recorded.
func (r *SQLiteRecorder) CountEvents(kind model.EventKind) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM economy_events WHERE kind = ?`, string(kind)).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
