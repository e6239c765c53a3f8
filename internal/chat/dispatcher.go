// Package chat turns classified user messages into reply text.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockchat/internal/interfaces"
	"stockchat/internal/recommend"
	"stockchat/internal/resolver"
	"stockchat/internal/timeframe"
	"stockchat/internal/types"
)

const (
	FallbackReply = "Sorry, I can only help with finance-related queries."
	NoNewsReply   = "No news articles found."
)

// DefaultHeadlines is how many articles a news reply lists.
const DefaultHeadlines = 5

type Dispatcher struct {
	nlu       interfaces.IntentExtractor
	broker    interfaces.Broker
	news      interfaces.NewsFeed
	headlines int
}

func NewDispatcher(nlu interfaces.IntentExtractor, broker interfaces.Broker, news interfaces.NewsFeed) *Dispatcher {
	return &Dispatcher{
		nlu:       nlu,
		broker:    broker,
		news:      news,
		headlines: DefaultHeadlines,
	}
}

// Respond classifies text and dispatches it. Extractor failures become an
// apology; the returned utterance then carries only the raw text.
func (d *Dispatcher) Respond(ctx context.Context, text string) (types.ParsedUtterance, string) {
	parsed, err := d.nlu.Extract(ctx, text)
	if err != nil {
		return types.ParsedUtterance{RawText: text}, fmt.Sprintf("Sorry, I couldn't understand that right now: %v", err)
	}
	return parsed, d.Dispatch(ctx, parsed)
}

// Dispatch resolves the entities of p and acts on its intent.
func (d *Dispatcher) Dispatch(ctx context.Context, p types.ParsedUtterance) string {
	sym := resolver.ResolveSymbol(p.Entity("company_name", ""), p.Entity("symbol", ""))

	switch p.Intent {
	case types.GetHistorical:
		tf := timeframe.WithInterval(timeframe.Normalize(p.Entity("timeframe", "1D")), p.Entity("interval", ""))
		return d.Act(ctx, p.Intent, sym, tf, "", "")
	case types.GetRecommendation:
		return d.Act(ctx, p.Intent, sym, types.TimeframeSpec{},
			p.Entity("timeframe", string(recommend.DefaultHorizon)),
			p.Entity("risk_level", string(recommend.DefaultRisk)))
	default:
		return d.Act(ctx, p.Intent, sym, types.TimeframeSpec{}, "", "")
	}
}

// Act produces the reply for an intent whose entities are already resolved.
// horizon and risk are only read for GetRecommendation, tf only for GetHistorical.
func (d *Dispatcher) Act(ctx context.Context, intent types.Intent, sym types.ResolvedSymbol, tf types.TimeframeSpec, horizon, risk string) string {
	switch intent {
	case types.GetPrice:
		return d.price(ctx, sym)
	case types.GetHistorical:
		return d.historical(ctx, sym, tf)
	case types.GetRecommendation:
		return recommend.Recommend(horizon, risk)
	case types.GetNews:
		return d.newsReply(ctx)
	case types.Buy:
		return notSupported("buying stocks")
	case types.Sell:
		return notSupported("selling stocks")
	case types.GetPortfolio:
		return notSupported("portfolio tracking")
	default:
		return FallbackReply
	}
}

func (d *Dispatcher) price(ctx context.Context, sym types.ResolvedSymbol) string {
	if !sym.Resolved() {
		return unresolved(sym)
	}
	name := sym.DisplayName()

	bars, err := d.broker.Bars(ctx, sym.Ticker, types.OneMinute, 1)
	if err != nil {
		return fmt.Sprintf("Failed to fetch price: %v", err)
	}
	if len(bars) > 0 {
		return fmt.Sprintf("The current price of %s (%s) is $%s.", name, sym.Ticker, money(bars[len(bars)-1].Close))
	}

	bars, err = d.broker.Bars(ctx, sym.Ticker, types.OneDay, 1)
	if err != nil {
		return fmt.Sprintf("Failed to fetch price: %v", err)
	}
	if len(bars) > 0 {
		return fmt.Sprintf("The latest price of %s (%s) is $%s.", name, sym.Ticker, money(bars[len(bars)-1].Close))
	}
	return fmt.Sprintf("No data found for %s (%s).", name, sym.Ticker)
}

func (d *Dispatcher) historical(ctx context.Context, sym types.ResolvedSymbol, tf types.TimeframeSpec) string {
	if !sym.Resolved() {
		return unresolved(sym)
	}
	name := sym.DisplayName()

	bars, err := d.broker.Bars(ctx, sym.Ticker, tf.BarSize, tf.BarCount)
	if err != nil {
		return fmt.Sprintf("Failed to fetch historical data: %v", err)
	}
	if len(bars) == 0 {
		return fmt.Sprintf("No historical data found for %s (%s).", name, sym.Ticker)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Historical data for %s (%s):", name, sym.Ticker)
	for _, b := range bars {
		fmt.Fprintf(&sb, "\n%s: $%s", b.Time.Format(time.RFC3339), money(b.Close))
	}
	return sb.String()
}

func (d *Dispatcher) newsReply(ctx context.Context) string {
	if d.news == nil {
		return notSupported("market news")
	}
	articles, err := d.news.Headlines(ctx, d.headlines)
	if err != nil {
		return fmt.Sprintf("Failed to fetch news: %v", err)
	}
	if len(articles) == 0 {
		return NoNewsReply
	}

	var sb strings.Builder
	sb.WriteString("Latest market news:")
	for i, a := range articles {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, a.Title)
		if a.Link != "" {
			fmt.Fprintf(&sb, " - %s", a.Link)
		}
	}
	return sb.String()
}

func unresolved(sym types.ResolvedSymbol) string {
	return fmt.Sprintf("Sorry, I couldn't find the ticker symbol for %s.", sym.DisplayName())
}

func notSupported(action string) string {
	return fmt.Sprintf("Sorry, %s is not supported yet.", action)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
