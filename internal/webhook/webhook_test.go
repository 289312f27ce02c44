package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawadari/hankyo/internal/record"
)

func testDispatcher(url string) *Dispatcher {
	d := NewDispatcher(url, "1.0.0-test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	d.backoff = time.Millisecond
	return d
}

func sampleRecord() *record.Record {
	r := record.New()
	r.Subject = "お問い合わせ"
	r.CustomerInfo[0].Name = "山田太郎"
	return r
}

func TestSendSuccess(t *testing.T) {
	var got Envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "1.0.0-test", r.Header.Get("X-Processor-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ok := testDispatcher(srv.URL).Send(context.Background(), "msg-7", sampleRecord())

	assert.True(t, ok)
	assert.Equal(t, "msg-7", got.MessageID)
	assert.NotEmpty(t, got.DeliveryID)
	assert.Equal(t, "1.0.0-test", got.ProcessorVersion)
	require.NotNil(t, got.Data)
	assert.Equal(t, "山田太郎", got.Data.CustomerInfo[0].Name)
}

func TestSendRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ok := testDispatcher(srv.URL).Send(context.Background(), "msg-8", sampleRecord())

	assert.True(t, ok)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendClientErrorIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	ok := testDispatcher(srv.URL).Send(context.Background(), "msg-9", sampleRecord())

	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestSendGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ok := testDispatcher(srv.URL).Send(context.Background(), "msg-10", sampleRecord())

	assert.False(t, ok)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestSendEmptyURLShortCircuits(t *testing.T) {
	ok := testDispatcher("").Send(context.Background(), "msg-11", sampleRecord())
	assert.True(t, ok)
}
