package nluobs

import (
	"context"
	"time"

	"stockchat/internal/interfaces"
	"stockchat/internal/logger"
	"stockchat/internal/trace"
	"stockchat/internal/types"
)

// observableExtractor wraps an IntentExtractor with observability (logging & tracing)
type observableExtractor struct {
	extractor interfaces.IntentExtractor
	provider  string
}

var _ interfaces.IntentExtractor = (*observableExtractor)(nil)

func Wrap(extractor interfaces.IntentExtractor, provider string) interfaces.IntentExtractor {
	return &observableExtractor{
		extractor: extractor,
		provider:  provider,
	}
}

func (oe *observableExtractor) Extract(ctx context.Context, text string) (types.ParsedUtterance, error) {
	ctx, span := trace.StartSpan(ctx, "nlu.Extract")
	defer span.End()

	start := time.Now()
	logger.DebugSkip(ctx, 1, "Classifying message", "provider", oe.provider, "length", len(text))

	parsed, err := oe.extractor.Extract(ctx, text)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Intent extraction failed", err,
			"provider", oe.provider,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return types.ParsedUtterance{}, err
	}

	logger.InfoSkip(ctx, 1, "Message classified",
		"provider", oe.provider,
		"intent", parsed.Intent.String(),
		"slots", len(parsed.Entities),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return parsed, nil
}
