package types

type Intent int

const (
	Unknown Intent = iota
	GetPrice
	Buy
	Sell
	GetPortfolio
	GetNews
	GetRecommendation
	GetHistorical
)

var intentNames = map[string]Intent{
	"get_stock_price":               GetPrice,
	"buy_stock":                     Buy,
	"sell_stock":                    Sell,
	"get_portfolio":                 GetPortfolio,
	"get_market_news":               GetNews,
	"get_investment_recommendation": GetRecommendation,
	"get_historical_data":           GetHistorical,
}

// ParseIntent maps an NLU intent label onto Intent. Unrecognized and empty
// labels yield Unknown.
func ParseIntent(name string) Intent {
	if in, ok := intentNames[name]; ok {
		return in
	}
	return Unknown
}

func (i Intent) String() string {
	for name, in := range intentNames {
		if in == i {
			return name
		}
	}
	return "unknown"
}

// ParsedUtterance is the result of classifying one user message.
type ParsedUtterance struct {
	RawText  string
	Intent   Intent
	Entities map[string][]string
}

// Entity returns the first extracted value for slot, or fallback when the
// slot is absent or empty.
func (p ParsedUtterance) Entity(slot, fallback string) string {
	vals := p.Entities[slot]
	if len(vals) == 0 || vals[0] == "" {
		return fallback
	}
	return vals[0]
}
