// Package types defines core data structures for hankyo.
package types

import (
	"regexp"
	"strings"
	"time"
)

// BodyPart is one decoded MIME part of a message body.
type BodyPart struct {
	MimeType string `json:"mime_type"`
	Content  string `json:"content"`
}

// RawMessage is a fetched mailbox message, immutable for one pipeline pass.
type RawMessage struct {
	ID       string     `json:"id"`
	ThreadID string     `json:"thread_id"`
	Sender   string     `json:"sender"`
	Subject  string     `json:"subject"`
	Date     string     `json:"date"`
	Parts    []BodyPart `json:"parts,omitempty"`
	Received time.Time  `json:"received"`
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// BodyText flattens the MIME parts into a single text body.
// text/plain parts are used as-is; text/html parts have tags stripped.
func (m *RawMessage) BodyText() string {
	var pieces []string
	for _, p := range m.Parts {
		switch p.MimeType {
		case "text/plain":
			pieces = append(pieces, p.Content)
		case "text/html":
			pieces = append(pieces, htmlTagRe.ReplaceAllString(p.Content, ""))
		}
	}
	return strings.TrimSpace(strings.Join(pieces, "\n"))
}

// ExtractedField is one validated field value chosen from rule candidates.
type ExtractedField struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Rule       string  `json:"rule"`
	Position   int     `json:"position"`
	Validated  bool    `json:"validated"`
}

// LedgerEntry is the durable per-message outcome, upserted by message ID.
type LedgerEntry struct {
	MessageID      string  `json:"message_id"`
	ProcessedAt    string  `json:"processed_at"`
	Relevant       bool    `json:"relevant"`
	WebhookSent    bool    `json:"webhook_sent"`
	Archived       bool    `json:"archived"`
	MeanConfidence float64 `json:"mean_confidence"`
	FieldCount     int     `json:"field_count"`
	ContentHash    string  `json:"content_hash,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// DailyStats holds additive counters for one calendar date.
type DailyStats struct {
	Date        string `json:"date"`
	Processed   int    `json:"processed"`
	WebhookOK   int    `json:"webhook_ok"`
	WebhookFail int    `json:"webhook_fail"`
}

// LedgerStats aggregates ledger totals plus recent daily counters.
type LedgerStats struct {
	TotalProcessed int          `json:"total_processed"`
	WebhookOK      int          `json:"webhook_ok"`
	WebhookFail    int          `json:"webhook_fail"`
	Archived       int          `json:"archived"`
	LastProcessed  string       `json:"last_processed,omitempty"`
	Daily          []DailyStats `json:"daily,omitempty"`
}

// Message outcome status values.
const (
	StatusSkipped     = "skipped"      // already in the ledger
	StatusNotRelevant = "not_relevant" // below the relevance threshold
	StatusNoData      = "no_data"      // relevant but nothing meaningful extracted
	StatusDelivered   = "delivered"    // webhook accepted the record
	StatusFailed      = "failed"       // webhook exhausted its attempts
	StatusError       = "error"        // unexpected per-message failure
)

// MessageResult is the per-message outcome within one batch.
type MessageResult struct {
	MessageID      string        `json:"message_id"`
	Status         string        `json:"status"`
	MeanConfidence float64       `json:"mean_confidence"`
	FieldCount     int           `json:"field_count"`
	Archived       bool          `json:"archived"`
	Elapsed        time.Duration `json:"elapsed"`
	Error          string        `json:"error,omitempty"`
}

// BatchSummary is returned by one orchestrator pass over a batch.
type BatchSummary struct {
	Fetched        int             `json:"fetched"`
	Processed      int             `json:"processed"`
	Skipped        int             `json:"skipped"`
	NotRelevant    int             `json:"not_relevant"`
	WebhookOK      int             `json:"webhook_ok"`
	WebhookFail    int             `json:"webhook_fail"`
	Archived       int             `json:"archived"`
	Errors         int             `json:"errors"`
	MeanConfidence float64         `json:"mean_confidence"`
	Elapsed        time.Duration   `json:"elapsed"`
	Results        []MessageResult `json:"results,omitempty"`
}
