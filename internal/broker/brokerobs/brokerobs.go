package brokerobs

import (
	"context"

	"stockchat/internal/interfaces"
	"stockchat/internal/logger"
	"stockchat/internal/trace"
	"stockchat/internal/types"
)

// observableBroker wraps a Broker with observability (logging & tracing)
type observableBroker struct {
	broker interfaces.Broker
}

// Compile-time interface check
var _ interfaces.Broker = (*observableBroker)(nil)

// Wrap wraps a broker with observability middleware
func Wrap(broker interfaces.Broker) interfaces.Broker {
	return &observableBroker{
		broker: broker,
	}
}

// Bars fetches bars with observability
func (ob *observableBroker) Bars(ctx context.Context, symbol string, size types.BarSize, limit int) ([]types.Bar, error) {
	ctx, span := trace.StartSpan(ctx, "broker.Bars")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching bars", "symbol", symbol, "bar_size", size.String(), "limit", limit)

	bars, err := ob.broker.Bars(ctx, symbol, size, limit)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch bars", err, "symbol", symbol, "bar_size", size.String())
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Bars fetched successfully", "symbol", symbol, "count", len(bars))
	return bars, nil
}
