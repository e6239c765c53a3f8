package alpaca

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockchat/internal/types"
)

func TestBarsReturnsOldestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/stocks/AAPL/bars", r.URL.Path)
		assert.Equal(t, "id", r.Header.Get("APCA-API-KEY-ID"))
		assert.Equal(t, "secret", r.Header.Get("APCA-API-SECRET-KEY"))
		q := r.URL.Query()
		assert.Equal(t, "1Min", q.Get("timeframe"))
		assert.Equal(t, "2", q.Get("limit"))
		assert.Equal(t, "desc", q.Get("sort"))
		assert.Equal(t, "iex", q.Get("feed"))
		assert.NotEmpty(t, q.Get("start"))

		w.Write([]byte(`{"symbol":"AAPL","bars":[
			{"t":"2024-01-02T15:31:00Z","o":1,"h":2,"l":0.5,"c":185.5,"v":10},
			{"t":"2024-01-02T15:30:00Z","o":1,"h":2,"l":0.5,"c":185.25,"v":20}
		],"next_page_token":null}`))
	}))
	defer srv.Close()

	c := New(Params{BaseURL: srv.URL, KeyID: "id", SecretKey: "secret", Feed: "iex"})
	bars, err := c.Bars(context.Background(), "aapl", types.OneMinute, 2)
	require.NoError(t, err)

	require.Len(t, bars, 2)
	assert.Equal(t, 185.25, bars[0].Close)
	assert.Equal(t, 185.5, bars[1].Close)
	assert.True(t, bars[1].Time.After(bars[0].Time))
}

func TestBarsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1Day", r.URL.Query().Get("timeframe"))
		w.Write([]byte(`{"symbol":"TSLA","bars":null}`))
	}))
	defer srv.Close()

	bars, err := New(Params{BaseURL: srv.URL, KeyID: "id", SecretKey: "s"}).Bars(context.Background(), "TSLA", types.OneDay, 7)
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestBarsForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"forbidden."}`))
	}))
	defer srv.Close()

	_, err := New(Params{BaseURL: srv.URL, KeyID: "id", SecretKey: "s"}).Bars(context.Background(), "TSLA", types.OneDay, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUpstreamUnavailable))
}

func TestDailyLookbackCoversLimit(t *testing.T) {
	c := New(Params{})
	c.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	start := c.start(types.OneDay, 365)
	assert.True(t, start.Before(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBarsMissingKeys(t *testing.T) {
	_, err := New(Params{}).Bars(context.Background(), "AAPL", types.OneDay, 1)
	require.Error(t, err)
}
