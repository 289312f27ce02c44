// Package webhook delivers canonical records to the configured
// endpoint with bounded retries.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sawadari/hankyo/internal/record"
	"github.com/sawadari/hankyo/internal/retry"
)

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
	initialBackoff = time.Second
	userAgent      = "hankyo/1.0"
)

// Envelope wraps a record for delivery. DeliveryID changes on every
// attempt batch so the receiver can tell redeliveries apart.
type Envelope struct {
	MessageID        string         `json:"message_id"`
	DeliveryID       string         `json:"delivery_id"`
	Timestamp        string         `json:"timestamp"`
	ProcessorVersion string         `json:"processor_version"`
	Data             *record.Record `json:"data"`
}

// Dispatcher posts records to a webhook URL. An empty URL disables
// delivery and reports every send as successful.
type Dispatcher struct {
	url     string
	version string
	client  *http.Client
	log     *slog.Logger
	now     func() time.Time
	backoff time.Duration
}

func NewDispatcher(url, version string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		url:     url,
		version: version,
		client:  &http.Client{Timeout: requestTimeout},
		log:     logger,
		now:     time.Now,
		backoff: initialBackoff,
	}
}

// statusError marks a response outside the accepted set. Server side
// statuses are retried, client side ones are not.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.code)
}

func retryableError(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	// transport level failures without a typed error are worth a retry
	return true
}

// Send posts the record for messageID. It returns true when the
// endpoint accepted the payload, false otherwise; delivery failures
// are reported, never fatal.
func (d *Dispatcher) Send(ctx context.Context, messageID string, rec *record.Record) bool {
	if d.url == "" {
		d.log.Debug("webhook disabled, skipping delivery", "message_id", messageID)
		return true
	}

	env := Envelope{
		MessageID:        messageID,
		DeliveryID:       uuid.NewString(),
		Timestamp:        d.now().UTC().Format(time.RFC3339),
		ProcessorVersion: d.version,
		Data:             rec,
	}
	body, err := json.Marshal(env)
	if err != nil {
		d.log.Error("failed to encode webhook payload", "message_id", messageID, "error", err)
		return false
	}

	attempt := 0
	err = retry.Do(ctx, maxAttempts, d.backoff, retryableError, func() error {
		attempt++
		return d.post(ctx, body)
	})
	if err != nil {
		d.log.Warn("webhook delivery failed",
			"message_id", messageID, "delivery_id", env.DeliveryID,
			"attempts", attempt, "error", err)
		return false
	}
	d.log.Info("webhook delivered",
		"message_id", messageID, "delivery_id", env.DeliveryID, "attempts", attempt)
	return true
}

func (d *Dispatcher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Processor-Version", d.version)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	}
	return &statusError{code: resp.StatusCode}
}
