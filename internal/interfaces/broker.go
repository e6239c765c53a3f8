package interfaces

import (
	"context"

	"stockchat/internal/types"
)

// Broker returns the most recent bars for a symbol, oldest first.
type Broker interface {
	Bars(ctx context.Context, symbol string, size types.BarSize, limit int) ([]types.Bar, error)
}
