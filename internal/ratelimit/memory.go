package ratelimit

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLimiter keeps counters in process memory. Counts are not shared
// between replicas.
type MemoryLimiter struct {
	store  *cache.Cache
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewMemoryLimiter allows limit hits per key in every window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		store:  cache.New(window, 2*window),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records one hit for key.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	for {
		if err := l.store.Add(key, 1, l.window); err == nil {
			return newResult(1, l.limit, l.window), nil
		}
		count, err := l.store.IncrementInt(key, 1)
		if err != nil {
			// Expired between Add and IncrementInt; start a new window.
			continue
		}
		_, expires, found := l.store.GetWithExpiration(key)
		if !found {
			continue
		}
		return newResult(count, l.limit, expires.Sub(l.now())), nil
	}
}
