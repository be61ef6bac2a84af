package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is a process-local fixed-window limiter used when Redis is
// not configured (dev) and in tests. Increments happen under the mutex so
// concurrent requests from the same seller cannot undercount.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[int64]*window
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[int64]*window),
		now:     time.Now,
	}
}

var _ Limiter = (*MemoryLimiter)(nil)

func (l *MemoryLimiter) Allow(_ context.Context, sellerID int64, limitPerMin int) (bool, error) {
	if limitPerMin <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// windows align to the wall-clock minute, same keying as RedisLimiter,
	// so the middleware's Retry-After hint holds for both implementations
	start := l.now().Truncate(time.Minute)
	w, ok := l.windows[sellerID]
	if !ok || w.start.Before(start) {
		w = &window{start: start}
		l.windows[sellerID] = w
	}

	if w.count >= limitPerMin {
		// rejected requests do not consume quota
		return false, nil
	}
	w.count++
	return true, nil
}
