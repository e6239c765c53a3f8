// Package alphavantage reads daily OHLCV series from the Alpha Vantage
// TIME_SERIES_DAILY endpoint.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"stockchat/internal/api"
	"stockchat/internal/interfaces"
	"stockchat/internal/logger"
	"stockchat/internal/marketdata"
	"stockchat/internal/types"
)

const DefaultBaseURL = "https://www.alphavantage.co"

const dateLayout = "2006-01-02"

type Params struct {
	BaseURL        string
	APIKey         string
	RequestsPerMin int
	Timeout        time.Duration
	Cache          *marketdata.Cache
}

type Client struct {
	apiKey string
	api    *api.Client
	cache  *marketdata.Cache
}

var _ interfaces.MarketData = (*Client)(nil)

func New(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	opts := []api.ClientOption{
		api.WithBaseURL(p.BaseURL),
		api.WithTimeout(p.Timeout),
		api.WithLogging(true),
	}
	if l := api.PerMinute(p.RequestsPerMin); l != nil {
		opts = append(opts, api.WithRateLimiter(l))
	}
	return &Client{
		apiKey: p.APIKey,
		api:    api.NewClient(opts...),
		cache:  p.Cache,
	}
}

type dailyResponse struct {
	Series       map[string]ohlcv `json:"Time Series (Daily)"`
	Note         string           `json:"Note"`
	Information  string           `json:"Information"`
	ErrorMessage string           `json:"Error Message"`
}

type ohlcv struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// DailySeries returns the daily bars of symbol whose date lies in
// [start, end], ascending. A zero start or end leaves that side open.
func (c *Client) DailySeries(ctx context.Context, symbol string, start, end time.Time) ([]types.Bar, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("daily series: %w: empty symbol", types.ErrUnresolvedEntity)
	}

	body, err := c.cache.GetOrFetch(marketdata.MakeKey("TIME_SERIES_DAILY", symbol), func() ([]byte, error) {
		return c.fetch(ctx, symbol)
	})
	if err != nil {
		return nil, fmt.Errorf("daily series %s: %w", symbol, err)
	}

	bars, err := parseDaily(body)
	if err != nil {
		return nil, fmt.Errorf("daily series %s: %w", symbol, err)
	}
	return filterRange(bars, start, end), nil
}

// fetch returns the raw body only when it carries a time series, so rate limit
// notes never end up in the cache.
func (c *Client) fetch(ctx context.Context, symbol string) ([]byte, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", "full")
	params.Set("apikey", c.apiKey)

	resp, err := c.api.GET(ctx, "/query", params)
	if err != nil {
		return nil, err
	}
	if _, err := parseDaily(resp.Body); err != nil {
		return nil, err
	}
	logger.Debug(ctx, "Alpha Vantage series fetched", "symbol", symbol, "bytes", len(resp.Body))
	return resp.Body, nil
}

func parseDaily(body []byte) ([]types.Bar, error) {
	var r dailyResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", types.ErrUpstreamUnavailable, err)
	}
	if r.Series == nil {
		msg := firstNonEmpty(r.ErrorMessage, r.Note, r.Information, "missing \"Time Series (Daily)\"")
		return nil, fmt.Errorf("%w: %s", types.ErrUpstreamUnavailable, msg)
	}

	bars := make([]types.Bar, 0, len(r.Series))
	for date, v := range r.Series {
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			continue
		}
		closePx, err := strconv.ParseFloat(strings.TrimSpace(v.Close), 64)
		if err != nil {
			continue
		}
		bars = append(bars, types.Bar{
			Time:   t,
			Open:   parseOrZero(v.Open),
			High:   parseOrZero(v.High),
			Low:    parseOrZero(v.Low),
			Close:  closePx,
			Volume: parseOrZero(v.Volume),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func filterRange(bars []types.Bar, start, end time.Time) []types.Bar {
	out := bars[:0:0]
	for _, b := range bars {
		if !start.IsZero() && b.Time.Before(start) {
			continue
		}
		if !end.IsZero() && b.Time.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func parseOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
