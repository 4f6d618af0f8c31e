// Package history keeps an append-only journal of ledger events in
// SQLite, so observers can query what happened after the fact.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/propasset/propd/internal/core/events"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_events (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	at      TEXT NOT NULL,
	kind    TEXT NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS ledger_events_kind ON ledger_events(kind);
`

// Journal is an append-only log of ledger events.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one journaled event.
type Entry struct {
	Seq     int64           `json:"seq"`
	At      time.Time       `json:"at"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Open opens or creates the journal at path. Use ":memory:" for an
// ephemeral journal.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

// Record appends one event to the journal.
func (j *Journal) Record(ev events.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = j.db.Exec(
		`INSERT INTO ledger_events (at, kind, payload) VALUES (?, ?, ?)`,
		j.now().UTC().Format(time.RFC3339Nano),
		string(ev.EventType()),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := j.db.Query(
		`SELECT seq, at, kind, payload FROM ledger_events ORDER BY seq DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			at      string
			payload string
		)
		if err := rows.Scan(&entry.Seq, &at, &entry.Kind, &payload); err != nil {
			return nil, err
		}
		entry.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse journal timestamp: %w", err)
		}
		entry.Payload = json.RawMessage(payload)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
