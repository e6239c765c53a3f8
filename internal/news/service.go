package news

import (
	"context"
	"sync"
	"time"

	"stockchat/internal/interfaces"
	"stockchat/internal/logger"
	"stockchat/internal/types"
)

// Service serves headlines from a Feed with in-memory caching
type Service struct {
	feed  *Feed
	cache *headlineCache
	cfg   *ServiceConfig
}

type ServiceConfig struct {
	FeedURL       string
	MaxArticles   int           // Upper bound on articles returned per call
	CacheDuration time.Duration // Zero disables caching
	FetchTimeout  time.Duration
}

func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		FeedURL:       DefaultFeedURL,
		MaxArticles:   10,
		CacheDuration: 15 * time.Minute,
		FetchTimeout:  10 * time.Second,
	}
}

var _ interfaces.NewsFeed = (*Service)(nil)

// headlineCache stores the last successful fetch of a feed
type headlineCache struct {
	mu        sync.RWMutex
	articles  []types.NewsArticle
	timestamp time.Time
	ttl       time.Duration
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	return &headlineCache{ttl: ttl}
}

func (c *headlineCache) get() ([]types.NewsArticle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ttl <= 0 || c.timestamp.IsZero() || time.Since(c.timestamp) > c.ttl {
		return nil, false
	}
	return c.articles, true
}

func (c *headlineCache) set(articles []types.NewsArticle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.articles = articles
	c.timestamp = time.Now()
}

func NewService(cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = 10
	}
	return &Service{
		feed:  NewFeed(cfg.FeedURL, cfg.FetchTimeout),
		cache: newHeadlineCache(cfg.CacheDuration),
		cfg:   cfg,
	}
}

// Headlines returns at most n articles, capped by MaxArticles. n <= 0 means MaxArticles.
func (s *Service) Headlines(ctx context.Context, n int) ([]types.NewsArticle, error) {
	if n <= 0 || n > s.cfg.MaxArticles {
		n = s.cfg.MaxArticles
	}

	articles, ok := s.cache.get()
	if ok {
		logger.Debug(ctx, "Using cached headlines", "count", len(articles))
	} else {
		fresh, err := s.feed.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.set(fresh)
		articles = fresh
	}

	if len(articles) > n {
		articles = articles[:n]
	}
	out := make([]types.NewsArticle, len(articles))
	copy(out, articles)
	return out, nil
}
