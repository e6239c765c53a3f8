// Package timeframe turns user phrases like "last month" into broker queries.
package timeframe

import (
	"strings"

	"stockchat/internal/types"
)

type rule struct {
	keyword string
	count   int
}

// Checked in order; the first keyword found in the phrase wins.
var rules = []rule{
	{"day", 1},
	{"week", 7},
	{"month", 30},
	{"year", 365},
}

// Normalize maps a raw timeframe phrase onto daily bars. Unmatched phrases
// yield a single daily bar.
func Normalize(rawPhrase string) types.TimeframeSpec {
	phrase := strings.ToLower(rawPhrase)
	for _, r := range rules {
		if strings.Contains(phrase, r.keyword) {
			return types.TimeframeSpec{BarSize: types.OneDay, BarCount: r.count}
		}
	}
	return types.TimeframeSpec{BarSize: types.OneDay, BarCount: 1}
}

// ParseInterval recognizes the interval entity. ok is false for phrases that
// name no bar size.
func ParseInterval(raw string) (types.BarSize, bool) {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, " ", ""))) {
	case "1min", "1m", "minute", "1minute", "minutely":
		return types.OneMinute, true
	case "1d", "1day", "day", "daily":
		return types.OneDay, true
	}
	return types.OneDay, false
}

// WithInterval applies a parsed interval entity on top of a normalized spec.
func WithInterval(spec types.TimeframeSpec, interval string) types.TimeframeSpec {
	if size, ok := ParseInterval(interval); ok {
		spec.BarSize = size
	}
	return spec
}
