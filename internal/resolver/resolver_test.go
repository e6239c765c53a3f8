package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownCompanies(t *testing.T) {
	cases := map[string]string{
		"apple":     "AAPL",
		"tesla":     "TSLA",
		"google":    "GOOGL",
		"amazon":    "AMZN",
		"microsoft": "MSFT",
	}
	for name, want := range cases {
		got, ok := Resolve(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestResolveUnknownCompany(t *testing.T) {
	for _, name := range []string{"netflix", "", "Apple", "apple inc"} {
		got, ok := Resolve(name)
		assert.False(t, ok, name)
		assert.Empty(t, got, name)
	}
}

func TestResolveSymbol(t *testing.T) {
	r := ResolveSymbol("Tesla", "")
	assert.Equal(t, "tesla", r.CompanyName)
	assert.Equal(t, "TSLA", r.Ticker)
	assert.Equal(t, "Tesla", r.DisplayName())

	r = ResolveSymbol("apple", "msft")
	assert.Equal(t, "MSFT", r.Ticker, "explicit symbol wins")

	r = ResolveSymbol("", "nvda")
	assert.Equal(t, "NVDA", r.Ticker)
	assert.Equal(t, "NVDA", r.DisplayName())

	r = ResolveSymbol("Netflix", "")
	assert.False(t, r.Resolved())
	assert.Equal(t, "Netflix", r.DisplayName())
}
