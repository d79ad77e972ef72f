// Package ratelimit provides a per-user message rate limiter with a
// resetting window.
package ratelimit

import (
	"sync"
	"time"
)

// userWindow tracks one user's count inside the current window.
type userWindow struct {
	count       int
	windowStart time.Time
}

// Limiter allows at most max calls per user inside a fixed window. The
// count resets when the window elapses. A single mutex guards the map, so
// concurrent calls for the same user are serialized and never overcount.
type Limiter struct {
	mu     sync.Mutex
	users  map[string]*userWindow
	max    int
	window time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// New creates a limiter permitting max calls per user per window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		users:  make(map[string]*userWindow),
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Allow reports whether userID may send another message. A rejected call
// does not increment the counter.
func (l *Limiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.users[userID]
	if !ok {
		l.users[userID] = &userWindow{count: 1, windowStart: now}
		return true
	}

	if now.Sub(w.windowStart) >= l.window {
		w.count = 1
		w.windowStart = now
		return true
	}

	if w.count >= l.max {
		return false
	}

	w.count++
	return true
}

// Cleanup removes users whose window started more than five windows ago
// and returns how many were removed. Meant to run from the background
// sweeper so the map does not grow without bound.
func (l *Limiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, w := range l.users {
		if now.Sub(w.windowStart) > 5*l.window {
			delete(l.users, id)
			removed++
		}
	}
	return removed
}
