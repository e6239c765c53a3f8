// Package recommend holds the canned investment suggestions keyed by horizon and risk.
package recommend

import "strings"

type Horizon string

const (
	ShortTerm Horizon = "short-term"
	LongTerm  Horizon = "long-term"
)

type Risk string

const (
	Low    Risk = "low"
	Medium Risk = "medium"
	High   Risk = "high"
)

// Defaults applied when the message named no timeframe or risk level.
const (
	DefaultHorizon = LongTerm
	DefaultRisk    = Medium
)

const Fallback = "For a balanced portfolio, consider a mix of ETFs and Mutual Funds."

type key struct {
	horizon Horizon
	risk    Risk
}

var table = map[key]string{
	{ShortTerm, Low}:    "For low-risk short-term investments, consider Treasury Bills or Money Market Funds.",
	{ShortTerm, Medium}: "For medium-risk short-term investments, consider Corporate Bonds or Dividend Stocks.",
	{ShortTerm, High}:   "For high-risk short-term investments, consider Growth Stocks or Cryptocurrencies.",
	{LongTerm, Low}:     "For low-risk long-term investments, consider Index Funds or Municipal Bonds.",
	{LongTerm, Medium}:  "For medium-risk long-term investments, consider Blue-Chip Stocks or REITs.",
	{LongTerm, High}:    "For high-risk long-term investments, consider Tech Stocks or Emerging Markets.",
}

// Lookup is total: any pair outside the table yields Fallback.
func Lookup(h Horizon, r Risk) string {
	if s, ok := table[key{h, r}]; ok {
		return s
	}
	return Fallback
}

// Recommend takes the raw entity values. Matching is exact after trimming
// and lower-casing, so "short term" without the hyphen falls back.
func Recommend(timeframe, risk string) string {
	return Lookup(
		Horizon(strings.ToLower(strings.TrimSpace(timeframe))),
		Risk(strings.ToLower(strings.TrimSpace(risk))),
	)
}
