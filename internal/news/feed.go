package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"stockchat/internal/logger"
	"stockchat/internal/types"
)

// DefaultFeedURL is Yahoo Finance's general market headlines feed.
const DefaultFeedURL = "https://finance.yahoo.com/news/rssindex"

// Feed reads headlines from an RSS 2.0 document
type Feed struct {
	url     string
	timeout time.Duration
}

func NewFeed(url string, timeout time.Duration) *Feed {
	if url == "" {
		url = DefaultFeedURL
	}
	return &Feed{url: url, timeout: timeout}
}

// Fetch returns every <item> of the feed in document order. A feed with no
// items yields an empty slice and no error.
func (f *Feed) Fetch(ctx context.Context) ([]types.NewsArticle, error) {
	articles := []types.NewsArticle{}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
	)
	if f.timeout > 0 {
		c.SetRequestTimeout(f.timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
		default:
		}
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
		r.Headers.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")
	})

	c.OnXML("//item", func(e *colly.XMLElement) {
		title := strings.TrimSpace(e.ChildText("title"))
		if title == "" {
			return
		}
		articles = append(articles, types.NewsArticle{
			Title:     title,
			Link:      strings.TrimSpace(e.ChildText("link")),
			Published: strings.TrimSpace(e.ChildText("pubDate")),
		})
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("%w: HTTP %d: %v", types.ErrUpstreamUnavailable, r.StatusCode, err)
	})

	if err := c.Visit(f.url); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("%w: %v", types.ErrUpstreamUnavailable, err)
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fetchErr != nil {
		logger.ErrorWithErr(ctx, "News feed fetch failed", fetchErr, "url", f.url)
		return nil, fmt.Errorf("news feed: %w", fetchErr)
	}

	logger.Debug(ctx, "News feed fetched", "url", f.url, "items", len(articles))
	return articles, nil
}
