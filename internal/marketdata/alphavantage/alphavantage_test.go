package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockchat/internal/marketdata"
	"stockchat/internal/types"
)

const dailyBody = `{
  "Meta Data": {"2. Symbol": "AAPL"},
  "Time Series (Daily)": {
    "2024-01-04": {"1. open": "181.0", "2. high": "182.0", "3. low": "180.0", "4. close": "181.9", "5. volume": "100"},
    "2024-01-02": {"1. open": "187.1", "2. high": "188.4", "3. low": "183.8", "4. close": "185.6", "5. volume": "300"},
    "2024-01-03": {"1. open": "184.2", "2. high": "185.8", "3. low": "183.4", "4. close": "n/a",   "5. volume": "200"},
    "2024-01-05": {"1. open": "181.9", "2. high": "182.7", "3. low": "180.1", "4. close": "181.1", "5. volume": "50"}
  }
}`

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestDailySeriesCleansSortsAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "TIME_SERIES_DAILY", q.Get("function"))
		assert.Equal(t, "AAPL", q.Get("symbol"))
		assert.Equal(t, "full", q.Get("outputsize"))
		assert.Equal(t, "demo", q.Get("apikey"))
		w.Write([]byte(dailyBody))
	}))
	defer srv.Close()

	c := New(Params{BaseURL: srv.URL, APIKey: "demo"})
	bars, err := c.DailySeries(context.Background(), "aapl", date("2024-01-02"), date("2024-01-04"))
	require.NoError(t, err)

	require.Len(t, bars, 2)
	assert.Equal(t, date("2024-01-02"), bars[0].Time)
	assert.Equal(t, 185.6, bars[0].Close)
	assert.Equal(t, 300.0, bars[0].Volume)
	assert.Equal(t, date("2024-01-04"), bars[1].Time)
	assert.Equal(t, 181.9, bars[1].Close)
}

func TestDailySeriesOpenRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(dailyBody))
	}))
	defer srv.Close()

	bars, err := New(Params{BaseURL: srv.URL}).DailySeries(context.Background(), "AAPL", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, bars, 3)
	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i].Time.After(bars[i-1].Time))
	}
}

func TestDailySeriesRateLimitNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`))
	}))
	defer srv.Close()

	_, err := New(Params{BaseURL: srv.URL}).DailySeries(context.Background(), "AAPL", time.Time{}, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUpstreamUnavailable))
	assert.Contains(t, err.Error(), "5 calls per minute")
}

func TestDailySeriesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(Params{BaseURL: srv.URL}).DailySeries(context.Background(), "AAPL", time.Time{}, time.Time{})
	assert.True(t, errors.Is(err, types.ErrUpstreamUnavailable))
}

func TestDailySeriesUsesCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(dailyBody))
	}))
	defer srv.Close()

	cache, err := marketdata.NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	c := New(Params{BaseURL: srv.URL, Cache: cache})

	for i := 0; i < 3; i++ {
		_, err := c.DailySeries(context.Background(), "AAPL", time.Time{}, time.Time{})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDailySeriesNoteIsNotCached(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Write([]byte(`{"Information": "rate limited"}`))
			return
		}
		w.Write([]byte(dailyBody))
	}))
	defer srv.Close()

	cache, err := marketdata.NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	c := New(Params{BaseURL: srv.URL, Cache: cache})

	_, err = c.DailySeries(context.Background(), "AAPL", time.Time{}, time.Time{})
	require.Error(t, err)
	bars, err := c.DailySeries(context.Background(), "AAPL", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, bars, 3)
}
