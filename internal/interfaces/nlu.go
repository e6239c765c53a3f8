package interfaces

import (
	"context"

	"stockchat/internal/types"
)

type IntentExtractor interface {
	Extract(ctx context.Context, text string) (types.ParsedUtterance, error)
}
