package noop

import (
	"context"

	"stockchat/internal/logger"
	"stockchat/internal/types"
)

// Extractor is the fallback used when no NLU provider is configured. Every
// message classifies as Unknown.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, text string) (types.ParsedUtterance, error) {
	logger.Debug(ctx, "Noop extractor called - always returns Unknown")
	return types.ParsedUtterance{RawText: text, Intent: types.Unknown, Entities: map[string][]string{}}, nil
}
