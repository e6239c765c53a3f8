// Package alpaca reads stock bars from the Alpaca market data v2 API.
package alpaca

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stockchat/internal/api"
	"stockchat/internal/interfaces"
	"stockchat/internal/types"
)

const DefaultBaseURL = "https://data.alpaca.markets"

type Params struct {
	BaseURL   string
	KeyID     string
	SecretKey string
	Feed      string
	Timeout   time.Duration
}

type Client struct {
	p   Params
	api *api.Client
	now func() time.Time
}

var _ interfaces.Broker = (*Client)(nil)

func New(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	return &Client{
		p: p,
		api: api.NewClient(
			api.WithBaseURL(p.BaseURL),
			api.WithTimeout(p.Timeout),
			api.WithHeader("APCA-API-KEY-ID", p.KeyID),
			api.WithHeader("APCA-API-SECRET-KEY", p.SecretKey),
			api.WithLogging(true),
		),
		now: time.Now,
	}
}

type barsResponse struct {
	Bars []struct {
		T time.Time `json:"t"`
		O float64   `json:"o"`
		H float64   `json:"h"`
		L float64   `json:"l"`
		C float64   `json:"c"`
		V float64   `json:"v"`
	} `json:"bars"`
	Symbol string `json:"symbol"`
}

// Bars returns the most recent limit bars of symbol, oldest first. The
// request asks for newest-first so that limit trims the old end.
func (c *Client) Bars(ctx context.Context, symbol string, size types.BarSize, limit int) ([]types.Bar, error) {
	if c.p.KeyID == "" || c.p.SecretKey == "" {
		return nil, errors.New("ALPACA_KEY_ID/ALPACA_SECRET_KEY missing")
	}
	if limit <= 0 {
		limit = 1
	}
	symbol = strings.ToUpper(symbol)

	params := url.Values{}
	params.Set("timeframe", size.String())
	params.Set("limit", strconv.Itoa(limit))
	params.Set("start", c.start(size, limit).Format(time.RFC3339))
	params.Set("sort", "desc")
	params.Set("adjustment", "raw")
	if c.p.Feed != "" {
		params.Set("feed", c.p.Feed)
	}

	resp, err := c.api.GET(ctx, "/v2/stocks/"+url.PathEscape(symbol)+"/bars", params)
	if err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}

	var r barsResponse
	if err := resp.ParseJSON(&r); err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}

	bars := make([]types.Bar, len(r.Bars))
	for i, b := range r.Bars {
		bars[len(r.Bars)-1-i] = types.Bar{Time: b.T, Open: b.O, High: b.H, Low: b.L, Close: b.C, Volume: b.V}
	}
	return bars, nil
}

// start bounds the lookback; without it Alpaca only searches the current day.
func (c *Client) start(size types.BarSize, limit int) time.Time {
	now := c.now().UTC()
	if size == types.OneMinute {
		return now.AddDate(0, 0, -5)
	}
	return now.AddDate(0, 0, -(limit*7/5 + 10))
}
