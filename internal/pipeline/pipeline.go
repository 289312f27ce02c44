// Package pipeline runs the batch flow: fetch candidate messages,
// score relevance, extract fields, deliver the canonical record, and
// write the outcome to the ledger exactly once per message.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sawadari/hankyo/internal/extract"
	"github.com/sawadari/hankyo/internal/ledger"
	"github.com/sawadari/hankyo/internal/normalize"
	"github.com/sawadari/hankyo/internal/record"
	"github.com/sawadari/hankyo/internal/relevance"
	"github.com/sawadari/hankyo/internal/types"
)

// Source fetches candidate messages from the mailbox.
type Source interface {
	FetchCandidateIDs(ctx context.Context, max int) ([]string, error)
	FetchFullMessage(ctx context.Context, id string) (*types.RawMessage, error)
	ArchiveMessage(ctx context.Context, id string) error
}

// Dispatcher delivers a canonical record. It reports acceptance, never
// an error; delivery failure does not stop the batch.
type Dispatcher interface {
	Send(ctx context.Context, messageID string, rec *record.Record) bool
}

// Ledger records per-message outcomes durably.
type Ledger interface {
	IsProcessed(messageID string) (bool, error)
	RecordOutcome(e *types.LedgerEntry) error
	AddDailyStats(date string, processed, webhookOK, webhookFail int) error
}

// Config tunes one orchestrator.
type Config struct {
	MaxMessages      int
	MinConfidence    float64
	MinFieldCount    int
	ArchiveOnSuccess bool
	Workers          int
}

// Orchestrator drives batches through the pipeline stages.
type Orchestrator struct {
	src     Source
	disp    Dispatcher
	ldg     Ledger
	cfg     Config
	log     *slog.Logger
	stopped atomic.Bool
}

func New(src Source, disp Dispatcher, ldg Ledger, cfg Config, logger *slog.Logger) *Orchestrator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxMessages < 1 {
		cfg.MaxMessages = 10
	}
	return &Orchestrator{src: src, disp: disp, ldg: ldg, cfg: cfg, log: logger}
}

// Stop makes the orchestrator finish in-flight messages and skip the
// rest of the batch. Safe from any goroutine.
func (o *Orchestrator) Stop() {
	o.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (o *Orchestrator) Stopped() bool {
	return o.stopped.Load()
}

// ProcessBatch runs one pass. A message failure is recorded and the
// batch continues; only a failure to list candidates aborts the pass.
func (o *Orchestrator) ProcessBatch(ctx context.Context) (*types.BatchSummary, error) {
	start := time.Now()
	ids, err := o.src.FetchCandidateIDs(ctx, o.cfg.MaxMessages)
	if err != nil {
		return &types.BatchSummary{Elapsed: time.Since(start)}, fmt.Errorf("list candidates: %w", err)
	}

	results := make([]types.MessageResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers)
	for i, id := range ids {
		if o.stopped.Load() {
			break
		}
		i, id := i, id
		g.Go(func() error {
			results[i] = o.processOne(gctx, id)
			return nil
		})
	}
	g.Wait()

	sum := o.summarize(ids, results, start)
	if sum.Processed > 0 {
		date := time.Now().UTC().Format("2006-01-02")
		if err := o.ldg.AddDailyStats(date, sum.Processed, sum.WebhookOK, sum.WebhookFail); err != nil {
			o.log.Warn("failed to update daily stats", "error", err)
		}
	}
	o.log.Info("batch finished",
		"fetched", sum.Fetched, "processed", sum.Processed, "skipped", sum.Skipped,
		"not_relevant", sum.NotRelevant, "webhook_ok", sum.WebhookOK,
		"webhook_fail", sum.WebhookFail, "errors", sum.Errors,
		"mean_confidence", sum.MeanConfidence, "elapsed", sum.Elapsed)
	return sum, nil
}

func (o *Orchestrator) summarize(ids []string, results []types.MessageResult, start time.Time) *types.BatchSummary {
	sum := &types.BatchSummary{Fetched: len(ids)}
	var confSum float64
	var confN int
	for _, r := range results {
		if r.MessageID == "" {
			continue // slot never ran, batch was stopped
		}
		sum.Results = append(sum.Results, r)
		switch r.Status {
		case types.StatusSkipped:
			sum.Skipped++
			continue
		case types.StatusNotRelevant:
			sum.NotRelevant++
		case types.StatusDelivered:
			sum.WebhookOK++
		case types.StatusFailed:
			sum.WebhookFail++
		}
		sum.Processed++
		if r.Error != "" {
			sum.Errors++
		}
		if r.Archived {
			sum.Archived++
		}
		if r.Status == types.StatusDelivered || r.Status == types.StatusFailed || r.Status == types.StatusNoData {
			confSum += r.MeanConfidence
			confN++
		}
	}
	if confN > 0 {
		sum.MeanConfidence = confSum / float64(confN)
	}
	sum.Elapsed = time.Since(start)
	return sum
}

// processOne takes a message through every stage. It always records an
// outcome unless the message was already in the ledger, and converts a
// stage panic into an error outcome so one malformed message cannot
// take down the batch.
func (o *Orchestrator) processOne(ctx context.Context, id string) (res types.MessageResult) {
	start := time.Now()
	res = types.MessageResult{MessageID: id}
	defer func() {
		if r := recover(); r != nil {
			res.Status = types.StatusError
			res.Error = fmt.Sprintf("panic: %v", r)
			o.log.Error("message processing panicked", "message_id", id, "panic", r)
			o.record(&res, false, "")
		}
		res.Elapsed = time.Since(start)
	}()

	done, err := o.ldg.IsProcessed(id)
	if err != nil {
		res.Status = types.StatusError
		res.Error = err.Error()
		o.record(&res, false, "")
		return res
	}
	if done {
		res.Status = types.StatusSkipped
		o.log.Debug("message already processed", "message_id", id)
		return res
	}

	// A fetch failure gets no ledger row: the message stays eligible
	// for the next batch once the mailbox recovers.
	msg, err := o.src.FetchFullMessage(ctx, id)
	if err != nil {
		res.Status = types.StatusError
		res.Error = fmt.Sprintf("fetch message: %v", err)
		o.log.Warn("failed to fetch message, leaving for next batch", "message_id", id, "error", err)
		return res
	}

	text := normalize.Message(msg.Subject, msg.BodyText())
	hash := ledger.ContentHash(text)

	relevant, score := relevance.Score(text)
	if !relevant {
		res.Status = types.StatusNotRelevant
		o.log.Info("message not relevant", "message_id", id, "score", score)
		o.record(&res, false, hash)
		return res
	}

	fields := extract.Fields(text)
	res.FieldCount = len(fields)
	res.MeanConfidence = extract.MeanConfidence(fields)

	if !o.meaningful(fields, res.MeanConfidence) {
		res.Status = types.StatusNoData
		o.log.Info("nothing meaningful extracted",
			"message_id", id, "fields", res.FieldCount, "mean_confidence", res.MeanConfidence)
		o.record(&res, true, hash)
		return res
	}

	rec := record.Assemble(record.Envelope{
		MessageID: msg.ID,
		Sender:    msg.Sender,
		Subject:   msg.Subject,
		Date:      msg.Date,
		Received:  msg.Received,
		Elapsed:   time.Since(start),
	}, fields)

	if o.disp.Send(ctx, id, rec) {
		res.Status = types.StatusDelivered
		if o.cfg.ArchiveOnSuccess {
			if err := o.src.ArchiveMessage(ctx, id); err != nil {
				o.log.Warn("failed to archive message", "message_id", id, "error", err)
			} else {
				res.Archived = true
			}
		}
	} else {
		res.Status = types.StatusFailed
	}

	o.record(&res, true, hash)
	return res
}

// meaningful gates delivery: enough confident fields, or any of the
// contact fields that make a record actionable on their own.
func (o *Orchestrator) meaningful(fields []types.ExtractedField, meanConf float64) bool {
	if meanConf >= o.cfg.MinConfidence && len(fields) >= o.cfg.MinFieldCount {
		return true
	}
	for _, f := range fields {
		switch f.Name {
		case "name", "email", "phone", "inquiry_text":
			return true
		}
	}
	return false
}

// record writes the outcome row. A ledger write failure is surfaced on
// the result so the batch error count reflects it.
func (o *Orchestrator) record(res *types.MessageResult, relevant bool, hash string) {
	err := o.ldg.RecordOutcome(&types.LedgerEntry{
		MessageID:      res.MessageID,
		ProcessedAt:    ledger.Now(),
		Relevant:       relevant,
		WebhookSent:    res.Status == types.StatusDelivered,
		Archived:       res.Archived,
		MeanConfidence: res.MeanConfidence,
		FieldCount:     res.FieldCount,
		ContentHash:    hash,
		Error:          res.Error,
	})
	if err != nil {
		o.log.Error("failed to record outcome", "message_id", res.MessageID, "error", err)
		if res.Error == "" {
			res.Error = fmt.Sprintf("ledger write: %v", err)
		}
	}
}
