// Package resolver maps company names onto exchange tickers.
package resolver

import (
	"strings"

	"stockchat/internal/types"
)

var companyToTicker = map[string]string{
	"apple":     "AAPL",
	"tesla":     "TSLA",
	"google":    "GOOGL",
	"amazon":    "AMZN",
	"microsoft": "MSFT",
}

// Resolve looks up an already lower-cased company name.
func Resolve(companyNameLower string) (string, bool) {
	ticker, ok := companyToTicker[companyNameLower]
	return ticker, ok
}

// ResolveSymbol normalizes the company_name and symbol entities of one message.
// An explicit symbol always wins; the table is only consulted when a company
// was named without one.
func ResolveSymbol(companyName, symbol string) types.ResolvedSymbol {
	r := types.ResolvedSymbol{
		CompanyName: strings.ToLower(strings.TrimSpace(companyName)),
		Ticker:      strings.ToUpper(strings.TrimSpace(symbol)),
	}
	if r.CompanyName != "" && r.Ticker == "" {
		r.Ticker, _ = Resolve(r.CompanyName)
	}
	return r
}
