// internal/infrastructure/api/currency_api_client_test.go
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *CurrencyAPIClient {
	log := logger.NewJSONLogger(nil, logger.ErrorLevel)
	return NewCurrencyAPIClient(Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, nil, log)
}

func TestFetchRates(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 6, 10, 15, 42, 0, 0, time.UTC)

	t.Run("Parses bare-number rates and sends credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
			assert.Equal(t, "2024-06-10", r.URL.Query().Get("date"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"USD":1.0,"EUR":0.9234,"JPY":157.23}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		table, err := client.FetchRates(ctx, date)

		require.NoError(t, err)
		assert.Equal(t, "2024-06-10", table.DateKey())
		assert.Equal(t, 0.9234, table.Rates["EUR"])
		assert.Len(t, table.Rates, 3)
		assert.False(t, table.RetrievedAt.IsZero())
	})

	t.Run("Parses object-form rates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"USD":{"code":"USD","value":1.0},"EUR":{"code":"EUR","value":0.9}}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		table, err := client.FetchRates(ctx, date)

		require.NoError(t, err)
		assert.Equal(t, 0.9, table.Rates["EUR"])
	})

	t.Run("Non-2xx status is provider unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.FetchRates(ctx, date)

		assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
		assert.Contains(t, err.Error(), "429")
		assert.Contains(t, err.Error(), "2024-06-10")
	})

	t.Run("Empty data payload is provider unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.FetchRates(ctx, date)

		assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	})

	t.Run("Malformed body is provider unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.FetchRates(ctx, date)

		assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	})

	t.Run("Unreachable provider is provider unavailable", func(t *testing.T) {
		client := newTestClient("http://127.0.0.1:1")
		_, err := client.FetchRates(ctx, date)

		assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	})

	t.Run("No retry on failure", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.FetchRates(ctx, date)

		assert.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Cancelled context aborts the request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"data":{"USD":1.0}}`))
		}))
		defer server.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		client := newTestClient(server.URL)
		_, err := client.FetchRates(cancelled, date)

		assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	})
}
