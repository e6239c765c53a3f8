// Package dashboard assembles the stock dashboard: a daily close series, a
// linear-trend prediction and market headlines.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockchat/internal/interfaces"
	"stockchat/internal/trend"
	"stockchat/internal/types"
)

const DateLayout = "2006-01-02"

// TopNews is how many headlines the dashboard shows.
const TopNews = 10

type Service struct {
	md   interfaces.MarketData
	news interfaces.NewsFeed
}

func NewService(md interfaces.MarketData, news interfaces.NewsFeed) *Service {
	return &Service{md: md, news: news}
}

type Prediction struct {
	Ticker string           `json:"ticker"`
	Date   string           `json:"date"`
	Price  float64          `json:"price"`
	Model  types.TrendModel `json:"model"`
	Bars   int              `json:"bars"`
}

// Series returns the cleaned daily bars of ticker in [start, end]. An empty
// range is reported as types.ErrNoData.
func (s *Service) Series(ctx context.Context, ticker string, start, end time.Time) ([]types.Bar, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", types.ErrUnresolvedEntity)
	}
	if !end.IsZero() && end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", end.Format(DateLayout), start.Format(DateLayout))
	}

	bars, err := s.md.DailySeries(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s between %s and %s", types.ErrNoData, ticker, start.Format(DateLayout), end.Format(DateLayout))
	}
	return bars, nil
}

// LatestClose is the close of the last bar.
func LatestClose(bars []types.Bar) (float64, error) {
	if len(bars) == 0 {
		return 0, types.ErrNoData
	}
	return bars[len(bars)-1].Close, nil
}

// Predict fits a trend over the series in [start, end] and evaluates it at future.
func (s *Service) Predict(ctx context.Context, ticker string, start, end, future time.Time) (Prediction, error) {
	bars, err := s.Series(ctx, ticker, start, end)
	if err != nil {
		return Prediction{}, err
	}
	return PredictFromBars(strings.ToUpper(ticker), bars, future)
}

// PredictFromBars is Predict over bars the caller already holds.
func PredictFromBars(ticker string, bars []types.Bar, future time.Time) (Prediction, error) {
	model, err := trend.Fit(bars)
	if err != nil {
		return Prediction{}, err
	}
	return Prediction{
		Ticker: ticker,
		Date:   future.Format(DateLayout),
		Price:  trend.Predict(model, future),
		Model:  model,
		Bars:   len(bars),
	}, nil
}

// News returns the top headlines. A feed without items is not an error.
func (s *Service) News(ctx context.Context) ([]types.NewsArticle, error) {
	if s.news == nil {
		return []types.NewsArticle{}, nil
	}
	return s.news.Headlines(ctx, TopNews)
}

// ParseDate accepts YYYY-MM-DD and returns midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
