package ledger

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawadari/hankyo/internal/types"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIsProcessedAfterRecord(t *testing.T) {
	db := openTest(t)

	done, err := db.IsProcessed("msg-1")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, db.RecordOutcome(&types.LedgerEntry{
		MessageID:      "msg-1",
		ProcessedAt:    Now(),
		Relevant:       true,
		WebhookSent:    true,
		MeanConfidence: 0.82,
		FieldCount:     5,
		ContentHash:    ContentHash("body"),
	}))

	done, err = db.IsProcessed("msg-1")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestRecordOutcomeUpserts(t *testing.T) {
	db := openTest(t)

	require.NoError(t, db.RecordOutcome(&types.LedgerEntry{
		MessageID: "msg-2", ProcessedAt: "2026-01-10T00:00:00Z", WebhookSent: false, Error: "status 502",
	}))
	require.NoError(t, db.RecordOutcome(&types.LedgerEntry{
		MessageID: "msg-2", ProcessedAt: "2026-01-11T00:00:00Z", Relevant: true, WebhookSent: true, FieldCount: 3,
	}))

	entries, err := db.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1, "same message ID must not duplicate")
	assert.True(t, entries[0].WebhookSent)
	assert.Empty(t, entries[0].Error)
	assert.Equal(t, 3, entries[0].FieldCount)
}

func TestDailyStatsAccumulate(t *testing.T) {
	db := openTest(t)

	require.NoError(t, db.AddDailyStats("2026-01-10", 5, 4, 1))
	require.NoError(t, db.AddDailyStats("2026-01-10", 2, 2, 0))
	require.NoError(t, db.AddDailyStats("2026-01-11", 1, 1, 0))

	stats, err := db.Stats()
	require.NoError(t, err)
	require.Len(t, stats.Daily, 2)
	assert.Equal(t, "2026-01-11", stats.Daily[0].Date, "newest day first")
	assert.Equal(t, 7, stats.Daily[1].Processed)
	assert.Equal(t, 6, stats.Daily[1].WebhookOK)
	assert.Equal(t, 1, stats.Daily[1].WebhookFail)
}

func TestStatsTotals(t *testing.T) {
	db := openTest(t)

	require.NoError(t, db.RecordOutcome(&types.LedgerEntry{
		MessageID: "a", ProcessedAt: "2026-01-10T01:00:00Z", Relevant: true, WebhookSent: true, Archived: true,
	}))
	require.NoError(t, db.RecordOutcome(&types.LedgerEntry{
		MessageID: "b", ProcessedAt: "2026-01-10T02:00:00Z", Relevant: true, WebhookSent: false,
	}))
	require.NoError(t, db.RecordOutcome(&types.LedgerEntry{
		MessageID: "c", ProcessedAt: "2026-01-10T03:00:00Z", Relevant: false,
	}))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProcessed)
	assert.Equal(t, 1, stats.WebhookOK)
	assert.Equal(t, 1, stats.WebhookFail, "irrelevant messages are not delivery failures")
	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, "2026-01-10T03:00:00Z", stats.LastProcessed)
}

func TestRecentOrderAndLimit(t *testing.T) {
	db := openTest(t)

	for _, e := range []types.LedgerEntry{
		{MessageID: "old", ProcessedAt: "2026-01-09T00:00:00Z"},
		{MessageID: "mid", ProcessedAt: "2026-01-10T00:00:00Z"},
		{MessageID: "new", ProcessedAt: "2026-01-11T00:00:00Z"},
	} {
		e := e
		require.NoError(t, db.RecordOutcome(&e))
	}

	entries, err := db.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].MessageID)
	assert.Equal(t, "mid", entries[1].MessageID)
}

func TestClearAll(t *testing.T) {
	db := openTest(t)

	require.NoError(t, db.RecordOutcome(&types.LedgerEntry{MessageID: "x", ProcessedAt: Now()}))
	require.NoError(t, db.AddDailyStats("2026-01-10", 1, 1, 0))

	n, err := db.ClearAll()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProcessed)
	assert.Empty(t, stats.Daily)
}

func TestConcurrentRecordOutcome(t *testing.T) {
	db := openTest(t)

	const workers, perWorker = 5, 100
	errs := make(chan error, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				errs <- db.RecordOutcome(&types.LedgerEntry{
					MessageID:   fmt.Sprintf("w%d-m%d", w, i),
					ProcessedAt: Now(),
					Relevant:    true,
				})
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, stats.TotalProcessed)
}

func TestContentHashStable(t *testing.T) {
	assert.Equal(t, ContentHash("おなじ本文"), ContentHash("おなじ本文"))
	assert.NotEqual(t, ContentHash("a"), ContentHash("b"))
	assert.Len(t, ContentHash("x"), 16)
}
