// Package ledger provides SQLite storage for processing outcomes. The
// ledger is what makes the pipeline idempotent: a message recorded here
// is never fetched or delivered again.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/sawadari/hankyo/internal/types"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for ledger operations.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (or creates) a ledger database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pipeline workers write outcomes concurrently; a single writer
	// connection avoids SQLITE_BUSY under contention.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(Schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Now returns the current time as an ISO 8601 string.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ContentHash fingerprints normalized message text. Stored alongside
// the outcome so duplicate content under a fresh message ID can be
// spotted when inspecting the ledger.
func ContentHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// IsProcessed reports whether a message ID already has an outcome.
func (d *DB) IsProcessed(messageID string) (bool, error) {
	var one int
	err := d.conn.QueryRow(`SELECT 1 FROM messages WHERE message_id = ?`, messageID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query message %s: %w", messageID, err)
	}
	return true, nil
}

// RecordOutcome upserts the outcome for a message. Reprocessing the
// same ID overwrites the previous row rather than duplicating it.
func (d *DB) RecordOutcome(e *types.LedgerEntry) error {
	_, err := d.conn.Exec(`
		INSERT INTO messages
			(message_id, processed_at, relevant, webhook_sent, archived, mean_confidence, field_count, content_hash, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(message_id) DO UPDATE SET
			processed_at    = excluded.processed_at,
			relevant        = excluded.relevant,
			webhook_sent    = excluded.webhook_sent,
			archived        = excluded.archived,
			mean_confidence = excluded.mean_confidence,
			field_count     = excluded.field_count,
			content_hash    = excluded.content_hash,
			error           = excluded.error`,
		e.MessageID, e.ProcessedAt, e.Relevant, e.WebhookSent, e.Archived,
		e.MeanConfidence, e.FieldCount, e.ContentHash, e.Error,
	)
	if err != nil {
		return fmt.Errorf("record outcome for %s: %w", e.MessageID, err)
	}
	return nil
}

// AddDailyStats adds counts to today's row.
func (d *DB) AddDailyStats(date string, processed, webhookOK, webhookFail int) error {
	_, err := d.conn.Exec(`
		INSERT INTO daily_stats (date, processed, webhook_ok, webhook_fail)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			processed    = processed + excluded.processed,
			webhook_ok   = webhook_ok + excluded.webhook_ok,
			webhook_fail = webhook_fail + excluded.webhook_fail`,
		date, processed, webhookOK, webhookFail,
	)
	if err != nil {
		return fmt.Errorf("update daily stats for %s: %w", date, err)
	}
	return nil
}

// Stats returns aggregate and per-day processing counts.
func (d *DB) Stats() (*types.LedgerStats, error) {
	s := &types.LedgerStats{}
	var last sql.NullString
	err := d.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(webhook_sent), 0),
		       COALESCE(SUM(CASE WHEN relevant = 1 AND webhook_sent = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(archived), 0),
		       MAX(processed_at)
		FROM messages`).Scan(&s.TotalProcessed, &s.WebhookOK, &s.WebhookFail, &s.Archived, &last)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	s.LastProcessed = last.String

	rows, err := d.conn.Query(`
		SELECT date, processed, webhook_ok, webhook_fail
		FROM daily_stats ORDER BY date DESC LIMIT 30`)
	if err != nil {
		return nil, fmt.Errorf("query daily stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var day types.DailyStats
		if err := rows.Scan(&day.Date, &day.Processed, &day.WebhookOK, &day.WebhookFail); err != nil {
			return nil, fmt.Errorf("scan daily stats: %w", err)
		}
		s.Daily = append(s.Daily, day)
	}
	return s, rows.Err()
}

// Recent returns the most recently processed entries, newest first.
func (d *DB) Recent(limit int) ([]*types.LedgerEntry, error) {
	rows, err := d.conn.Query(`
		SELECT message_id, processed_at, relevant, webhook_sent, archived,
		       mean_confidence, field_count, COALESCE(content_hash, ''), COALESCE(error, '')
		FROM messages ORDER BY processed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var entries []*types.LedgerEntry
	for rows.Next() {
		e := &types.LedgerEntry{}
		if err := rows.Scan(&e.MessageID, &e.ProcessedAt, &e.Relevant, &e.WebhookSent,
			&e.Archived, &e.MeanConfidence, &e.FieldCount, &e.ContentHash, &e.Error); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearAll removes every outcome and daily counter.
func (d *DB) ClearAll() (int64, error) {
	res, err := d.conn.Exec(`DELETE FROM messages`)
	if err != nil {
		return 0, fmt.Errorf("clear messages: %w", err)
	}
	n, _ := res.RowsAffected()
	if _, err := d.conn.Exec(`DELETE FROM daily_stats`); err != nil {
		return n, fmt.Errorf("clear daily stats: %w", err)
	}
	return n, nil
}
