package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/shopspring/decimal"

	"stockchat/internal/ta"
	"stockchat/internal/types"
)

type ChartOptions struct {
	Height int
	Width  int
}

// Report is everything one dashboard run shows.
type Report struct {
	Ticker     string
	Bars       []types.Bar
	Prediction *Prediction
	News       []types.NewsArticle
	NewsErr    error
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Render writes the report as plain text: chart, latest close, table,
// optional prediction and headlines.
func Render(w io.Writer, r Report, opts ChartOptions) error {
	var sb strings.Builder

	if len(r.Bars) > 0 {
		fmt.Fprintf(&sb, "Stock Prices for %s\n\n", r.Ticker)
		sb.WriteString(Chart(r.Bars, opts))
		sb.WriteString("\n\n")

		latest, _ := LatestClose(r.Bars)
		fmt.Fprintf(&sb, "Latest Closing Price for %s: $%s\n\n", r.Ticker, money(latest))

		writeIndicators(&sb, ta.Summarize(r.Bars))

		fmt.Fprintf(&sb, "Stock Data Table for %s\n", r.Ticker)
		if err := writeTable(&sb, r.Bars); err != nil {
			return err
		}
		sb.WriteString("\n")
	}

	if r.Prediction != nil {
		sb.WriteString("Stock Price Prediction\n")
		fmt.Fprintf(&sb, "Predicted Closing Price for %s on %s: $%s\n\n", r.Prediction.Ticker, r.Prediction.Date, money(r.Prediction.Price))
	}

	fmt.Fprintf(&sb, "Top %d Stock News\n", TopNews)
	switch {
	case r.NewsErr != nil:
		fmt.Fprintf(&sb, "Failed to fetch news: %v\n", r.NewsErr)
	case len(r.News) == 0:
		sb.WriteString("No news articles found.\n")
	default:
		for _, a := range r.News {
			fmt.Fprintf(&sb, "\n%s\nPublished on: %s\nRead more: %s\n---\n", a.Title, a.Published, a.Link)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Chart plots close prices as an ASCII line chart.
func Chart(bars []types.Bar, opts ChartOptions) string {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	var gopts []asciigraph.Option
	if opts.Height > 0 {
		gopts = append(gopts, asciigraph.Height(opts.Height))
	}
	if opts.Width > 0 {
		gopts = append(gopts, asciigraph.Width(opts.Width))
	}
	gopts = append(gopts, asciigraph.Caption(fmt.Sprintf("Close %s to %s",
		bars[0].Time.Format(DateLayout), bars[len(bars)-1].Time.Format(DateLayout))))
	return asciigraph.Plot(closes, gopts...)
}

func writeTable(w io.Writer, bars []types.Bar) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tOpen\tHigh\tLow\tClose\tVolume\t")
	for _, b := range bars {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			b.Time.Format(DateLayout),
			money(b.Open), money(b.High), money(b.Low), money(b.Close),
			decimal.NewFromFloat(b.Volume).StringFixed(0),
		)
	}
	return tw.Flush()
}

func writeIndicators(sb *strings.Builder, s ta.Summary) {
	var parts []string
	if s.SMA != nil {
		parts = append(parts, fmt.Sprintf("SMA(%d) $%s", ta.SMAPeriod, money(*s.SMA)))
	}
	if s.RSI != nil {
		parts = append(parts, fmt.Sprintf("RSI(%d) %s", ta.RSIPeriod, money(*s.RSI)))
	}
	if s.BollingerUpper != nil {
		parts = append(parts, fmt.Sprintf("Bollinger $%s-$%s", money(*s.BollingerLower), money(*s.BollingerUpper)))
	}
	if s.ATR != nil {
		parts = append(parts, fmt.Sprintf("ATR(%d) %s", ta.ATRPeriod, money(*s.ATR)))
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintf(sb, "Indicators: %s\n\n", strings.Join(parts, ", "))
}
