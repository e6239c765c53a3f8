package mdobs

import (
	"context"
	"time"

	"stockchat/internal/interfaces"
	"stockchat/internal/logger"
	"stockchat/internal/trace"
	"stockchat/internal/types"
)

// observableMarketData wraps a MarketData source with observability (logging & tracing)
type observableMarketData struct {
	md interfaces.MarketData
}

var _ interfaces.MarketData = (*observableMarketData)(nil)

func Wrap(md interfaces.MarketData) interfaces.MarketData {
	return &observableMarketData{md: md}
}

func (o *observableMarketData) DailySeries(ctx context.Context, symbol string, start, end time.Time) ([]types.Bar, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.DailySeries")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching daily series",
		"symbol", symbol,
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
	)

	bars, err := o.md.DailySeries(ctx, symbol, start, end)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch daily series", err, "symbol", symbol)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Daily series fetched", "symbol", symbol, "bars", len(bars))
	return bars, nil
}
