// Package nlu holds the pieces shared by the intent extractors.
package nlu

import (
	"encoding/json"
	"strings"

	"stockchat/internal/types"
)

// SlotName strips Wit's "role" suffix: "company_name:company_name" -> "company_name".
func SlotName(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[:i]
	}
	return key
}

// DefaultSystemPrompt instructs an LLM to behave like an intent classifier.
const DefaultSystemPrompt = `You classify finance chat messages. Respond ONLY with compact JSON:
{"intent": one of "get_stock_price","buy_stock","sell_stock","get_portfolio","get_market_news","get_investment_recommendation","get_historical_data" or "",
 "entities": {"company_name"?: string, "symbol"?: string, "timeframe"?: string, "interval"?: string, "risk_level"?: "low"|"medium"|"high"}}
Use "short-term" or "long-term" for timeframe when the user asks for a recommendation.`

type classification struct {
	Intent   string            `json:"intent"`
	Entities map[string]string `json:"entities"`
}

// ParseClassification locates the JSON object in an LLM reply. Replies that
// cannot be parsed classify as Unknown with no entities.
func ParseClassification(text, raw string) types.ParsedUtterance {
	out := types.ParsedUtterance{RawText: raw, Intent: types.Unknown, Entities: map[string][]string{}}

	t := strings.TrimSpace(text)
	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start < 0 || end <= start {
		return out
	}

	var c classification
	if err := json.Unmarshal([]byte(t[start:end+1]), &c); err != nil {
		return out
	}

	out.Intent = types.ParseIntent(strings.TrimSpace(c.Intent))
	for slot, v := range c.Entities {
		if v = strings.TrimSpace(v); v != "" {
			out.Entities[SlotName(slot)] = []string{v}
		}
	}
	return out
}
