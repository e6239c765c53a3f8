package interfaces

import (
	"context"
	"time"

	"stockchat/internal/types"
)

// MarketData returns daily bars for symbol within [start, end], ascending by time.
type MarketData interface {
	DailySeries(ctx context.Context, symbol string, start, end time.Time) ([]types.Bar, error)
}

// NewsFeed returns up to n of the newest headlines. An empty slice is a valid result.
type NewsFeed interface {
	Headlines(ctx context.Context, n int) ([]types.NewsArticle, error)
}
