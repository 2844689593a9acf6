package verify

import (
	"sync"
	"time"
)

// RateLimiter throttles OTP sends per phone number. Best effort and
// process local; restarting the server resets it.
type RateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
}

func NewRateLimiter(window time.Duration) *RateLimiter {
	return &RateLimiter{
		window: window,
		seen:   make(map[string]time.Time),
	}
}

// Allow reports whether a send for key may proceed, recording it if so.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	// Drop expired entries so the map doesn't grow with every phone ever seen.
	for k, t := range l.seen {
		if now.Sub(t) >= l.window {
			delete(l.seen, k)
		}
	}

	if t, ok := l.seen[key]; ok && now.Sub(t) < l.window {
		return false
	}

	l.seen[key] = now
	return true
}
