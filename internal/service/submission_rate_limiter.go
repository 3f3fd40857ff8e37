package service

import (
	"context"
	"strings"
	"sync"
	"time"
)

// SubmissionRateLimiter limita cuántos cuestionarios puede enviar un usuario por ventana.
type SubmissionRateLimiter interface {
	Allow(ctx context.Context, userID string) bool
}

type memorySubmissionLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	now    func() time.Time
}

// NewSubmissionRateLimiter crea un rate limiter en memoria (un solo proceso).
func NewSubmissionRateLimiter(window time.Duration, max int) SubmissionRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memorySubmissionLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *memorySubmissionLimiter) Allow(_ context.Context, userID string) bool {
	key := strings.TrimSpace(userID)
	if key == "" {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}
