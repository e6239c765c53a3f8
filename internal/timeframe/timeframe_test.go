package timeframe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockchat/internal/types"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		phrase string
		count  int
	}{
		{"3 months from now", 30},
		{"next week", 7},
		{"tomorrow", 1},
		{"past YEAR", 365},
		{"today", 1},
		{"1D", 1},
		{"", 1},
		{"a week or a month", 7},
		{"weekday", 1},
	}
	for _, c := range cases {
		got := Normalize(c.phrase)
		assert.Equal(t, types.OneDay, got.BarSize, c.phrase)
		assert.Equal(t, c.count, got.BarCount, c.phrase)
	}
}

func TestParseInterval(t *testing.T) {
	size, ok := ParseInterval("1Min")
	assert.True(t, ok)
	assert.Equal(t, types.OneMinute, size)

	size, ok = ParseInterval("daily")
	assert.True(t, ok)
	assert.Equal(t, types.OneDay, size)

	_, ok = ParseInterval("fortnightly")
	assert.False(t, ok)
}

func TestWithInterval(t *testing.T) {
	spec := WithInterval(Normalize("last week"), "1 min")
	assert.Equal(t, types.TimeframeSpec{BarSize: types.OneMinute, BarCount: 7}, spec)

	spec = WithInterval(Normalize("last week"), "")
	assert.Equal(t, types.TimeframeSpec{BarSize: types.OneDay, BarCount: 7}, spec)
}
