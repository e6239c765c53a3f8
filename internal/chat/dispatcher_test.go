package chat

import (
	"context"
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockchat/internal/types"
)

func bar(day int, close float64) types.Bar {
	return types.Bar{Time: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC), Close: close}
}

func TestPriceMinuteBar(t *testing.T) {
	b := &fakeBroker{bars: map[types.BarSize][]types.Bar{types.OneMinute: {bar(2, 185.5)}}}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	reply := d.Dispatch(context.Background(), utterance(types.GetPrice, "company_name", "Apple"))

	assert.Equal(t, "The current price of Apple (AAPL) is $185.50.", reply)
	require.Len(t, b.calls, 1)
	assert.Equal(t, barsCall{"AAPL", types.OneMinute, 1}, b.calls[0])
}

func TestPriceFallsBackToDaily(t *testing.T) {
	b := &fakeBroker{bars: map[types.BarSize][]types.Bar{types.OneDay: {bar(2, 248.42)}}}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	reply := d.Dispatch(context.Background(), utterance(types.GetPrice, "company_name", "TESLA"))

	assert.Equal(t, "The latest price of Tesla (TSLA) is $248.42.", reply)
	require.Len(t, b.calls, 2)
	assert.Equal(t, types.OneDay, b.calls[1].size)
}

func TestPriceUnresolvedNonASCIICompany(t *testing.T) {
	d := NewDispatcher(&fakeExtractor{}, &fakeBroker{}, &fakeNews{})

	reply := d.Dispatch(context.Background(), utterance(types.GetPrice, "company_name", "émile"))

	assert.Equal(t, "Sorry, I couldn't find the ticker symbol for Émile.", reply)
	assert.True(t, utf8.ValidString(reply))
}

func TestPriceNoData(t *testing.T) {
	d := NewDispatcher(&fakeExtractor{}, &fakeBroker{}, &fakeNews{})
	reply := d.Dispatch(context.Background(), utterance(types.GetPrice, "company_name", "google"))
	assert.Equal(t, "No data found for Google (GOOGL).", reply)
}

func TestPriceUpstreamError(t *testing.T) {
	b := &fakeBroker{err: errors.New("forbidden")}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})
	reply := d.Dispatch(context.Background(), utterance(types.GetPrice, "company_name", "amazon"))
	assert.Equal(t, "Failed to fetch price: forbidden", reply)
}

func TestPriceUnresolvedMakesNoCall(t *testing.T) {
	b := &fakeBroker{}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	reply := d.Dispatch(context.Background(), utterance(types.GetPrice, "company_name", "netflix"))

	assert.Equal(t, "Sorry, I couldn't find the ticker symbol for Netflix.", reply)
	assert.Empty(t, b.calls)
}

func TestExplicitSymbolWins(t *testing.T) {
	b := &fakeBroker{bars: map[types.BarSize][]types.Bar{types.OneMinute: {bar(2, 10)}}}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	reply := d.Dispatch(context.Background(), utterance(types.GetPrice, "company_name", "netflix", "symbol", "nflx"))

	assert.Equal(t, "The current price of Netflix (NFLX) is $10.00.", reply)
}

func TestSymbolOnlyDisplaysTicker(t *testing.T) {
	b := &fakeBroker{bars: map[types.BarSize][]types.Bar{types.OneMinute: {bar(2, 420.1)}}}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	reply := d.Dispatch(context.Background(), utterance(types.GetPrice, "symbol", "msft"))
	assert.Equal(t, "The current price of MSFT (MSFT) is $420.10.", reply)
}

func TestHistorical(t *testing.T) {
	b := &fakeBroker{bars: map[types.BarSize][]types.Bar{types.OneDay: {bar(2, 100), bar(3, 101.256)}}}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	reply := d.Dispatch(context.Background(), utterance(types.GetHistorical, "company_name", "apple", "timeframe", "last week"))

	assert.Equal(t, "Historical data for Apple (AAPL):\n"+
		"2024-01-02T00:00:00Z: $100.00\n"+
		"2024-01-03T00:00:00Z: $101.26", reply)
	require.Len(t, b.calls, 1)
	assert.Equal(t, barsCall{"AAPL", types.OneDay, 7}, b.calls[0])
}

func TestHistoricalDefaultsToOneDay(t *testing.T) {
	b := &fakeBroker{}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	reply := d.Dispatch(context.Background(), utterance(types.GetHistorical, "company_name", "microsoft"))

	assert.Equal(t, "No historical data found for Microsoft (MSFT).", reply)
	assert.Equal(t, barsCall{"MSFT", types.OneDay, 1}, b.calls[0])
}

func TestHistoricalMinuteInterval(t *testing.T) {
	b := &fakeBroker{}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	d.Dispatch(context.Background(), utterance(types.GetHistorical, "company_name", "apple", "timeframe", "past month", "interval", "1min"))

	assert.Equal(t, barsCall{"AAPL", types.OneMinute, 30}, b.calls[0])
}

func TestHistoricalError(t *testing.T) {
	d := NewDispatcher(&fakeExtractor{}, &fakeBroker{err: errors.New("timeout")}, &fakeNews{})
	reply := d.Dispatch(context.Background(), utterance(types.GetHistorical, "company_name", "apple"))
	assert.Equal(t, "Failed to fetch historical data: timeout", reply)
}

func TestHistoricalUnresolved(t *testing.T) {
	b := &fakeBroker{}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})
	reply := d.Dispatch(context.Background(), utterance(types.GetHistorical, "company_name", "ibm"))
	assert.Equal(t, "Sorry, I couldn't find the ticker symbol for Ibm.", reply)
	assert.Empty(t, b.calls)
}

func TestRecommendation(t *testing.T) {
	d := NewDispatcher(&fakeExtractor{}, &fakeBroker{}, &fakeNews{})

	tests := []struct {
		name string
		p    types.ParsedUtterance
		want string
	}{
		{"defaults", utterance(types.GetRecommendation),
			"For medium-risk long-term investments, consider Blue-Chip Stocks or REITs."},
		{"short high", utterance(types.GetRecommendation, "timeframe", "short-term", "risk_level", "high"),
			"For high-risk short-term investments, consider Growth Stocks or Cryptocurrencies."},
		{"unknown horizon", utterance(types.GetRecommendation, "timeframe", "forever"),
			"For a balanced portfolio, consider a mix of ETFs and Mutual Funds."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Dispatch(context.Background(), tt.p))
		})
	}
}

func TestUnknownIntent(t *testing.T) {
	b := &fakeBroker{}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	assert.Equal(t, FallbackReply, d.Dispatch(context.Background(), utterance(types.Unknown, "company_name", "apple")))
	assert.Empty(t, b.calls)
}

func TestUnsupportedActions(t *testing.T) {
	b := &fakeBroker{}
	d := NewDispatcher(&fakeExtractor{}, b, &fakeNews{})

	assert.Equal(t, "Sorry, buying stocks is not supported yet.", d.Dispatch(context.Background(), utterance(types.Buy, "company_name", "apple")))
	assert.Equal(t, "Sorry, selling stocks is not supported yet.", d.Dispatch(context.Background(), utterance(types.Sell)))
	assert.Equal(t, "Sorry, portfolio tracking is not supported yet.", d.Dispatch(context.Background(), utterance(types.GetPortfolio)))
	assert.Empty(t, b.calls)
}

func TestNews(t *testing.T) {
	n := &fakeNews{articles: []types.NewsArticle{
		{Title: "Stocks rally", Link: "https://example.com/1"},
		{Title: "Fed holds rates"},
	}}
	d := NewDispatcher(&fakeExtractor{}, &fakeBroker{}, n)

	reply := d.Dispatch(context.Background(), utterance(types.GetNews))

	assert.Equal(t, "Latest market news:\n1. Stocks rally - https://example.com/1\n2. Fed holds rates", reply)
	assert.Equal(t, DefaultHeadlines, n.asked)
}

func TestNewsEmpty(t *testing.T) {
	d := NewDispatcher(&fakeExtractor{}, &fakeBroker{}, &fakeNews{})
	assert.Equal(t, NoNewsReply, d.Dispatch(context.Background(), utterance(types.GetNews)))
}

func TestRespondExtractorFailure(t *testing.T) {
	d := NewDispatcher(&fakeExtractor{err: errors.New("wit down")}, &fakeBroker{}, &fakeNews{})

	parsed, reply := d.Respond(context.Background(), "price of apple")

	assert.Equal(t, "Sorry, I couldn't understand that right now: wit down", reply)
	assert.Equal(t, types.Unknown, parsed.Intent)
	assert.Equal(t, "price of apple", parsed.RawText)
}
