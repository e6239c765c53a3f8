package api

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implements token bucket rate limiting
type RateLimiter struct {
	tokens         int
	maxTokens      int
	refillRate     time.Duration
	lastRefillTime time.Time
	now            func() time.Time
	mu             sync.Mutex
}

// NewRateLimiter creates a bucket of maxTokens that regains one token every refillRate.
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillRate:     refillRate,
		lastRefillTime: time.Now(),
		now:            time.Now,
	}
}

// PerMinute allows n requests per minute with a burst of n.
func PerMinute(n int) *RateLimiter {
	if n <= 0 {
		return nil
	}
	return NewRateLimiter(n, time.Minute/time.Duration(n))
}

// Wait blocks until a token is available or ctx is done
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.tryAcquire() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func (rl *RateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	tokensToAdd := int(now.Sub(rl.lastRefillTime) / rl.refillRate)
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		// carry the partial interval into the next refill
		rl.lastRefillTime = rl.lastRefillTime.Add(time.Duration(tokensToAdd) * rl.refillRate)
		if rl.tokens >= rl.maxTokens {
			rl.tokens = rl.maxTokens
			rl.lastRefillTime = now
		}
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}
