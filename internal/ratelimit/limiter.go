// Package ratelimit implements a per-client sliding-window request limiter
// for the sentiment endpoint. State is process-local; a single mutex makes
// check-then-record atomic so two simultaneous requests from the same
// client cannot both slip under the limit.
package ratelimit

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/AlessandroLop/evaluacion-api/internal/metrics"
)

// Result is the outcome of one check-and-record call. Reset is when a
// full window will have elapsed from this request.
type Result struct {
	Allowed           bool
	Limit             int
	Remaining         int
	RetryAfterSeconds int
	Reset             time.Time
}

// Limiter tracks request timestamps per client key within a trailing window.
type Limiter struct {
	mu          sync.Mutex
	clients     map[string][]time.Time
	window      time.Duration
	maxRequests int
	clock       clockwork.Clock
}

// New creates a limiter allowing maxRequests per client key per window.
func New(maxRequests int, window time.Duration, clock clockwork.Clock) *Limiter {
	return &Limiter{
		clients:     make(map[string][]time.Time),
		window:      window,
		maxRequests: maxRequests,
		clock:       clock,
	}
}

// Allow prunes timestamps older than the window from the client's list,
// rejects if the remaining count has reached the limit, and otherwise
// records the current request and allows it.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	kept := prune(l.clients[key], now, l.window)

	if len(kept) >= l.maxRequests {
		l.clients[key] = kept
		metrics.SentimentRateLimited.Inc()
		return Result{
			Allowed:           false,
			Limit:             l.maxRequests,
			Remaining:         0,
			RetryAfterSeconds: int(l.window / time.Second),
			Reset:             now.Add(l.window),
		}
	}

	kept = append(kept, now)
	l.clients[key] = kept

	return Result{
		Allowed:   true,
		Limit:     l.maxRequests,
		Remaining: l.maxRequests - len(kept),
		Reset:     now.Add(l.window),
	}
}

// Sweep re-prunes every client and drops those whose list becomes empty,
// bounding memory growth from one-shot clients. Returns the number of
// clients removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	removed := 0

	for key, timestamps := range l.clients {
		kept := prune(timestamps, now, l.window)
		if len(kept) == 0 {
			delete(l.clients, key)
			removed++
			continue
		}
		l.clients[key] = kept
	}

	return removed
}

// Clients returns the number of tracked client keys.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// StartSweeper runs Sweep on a background ticker. Returns a stop function
// that terminates the goroutine.
func (l *Limiter) StartSweeper(interval time.Duration) func() {
	ticker := l.clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				l.Sweep()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}

func prune(timestamps []time.Time, now time.Time, window time.Duration) []time.Time {
	kept := timestamps[:0]
	for _, ts := range timestamps {
		if now.Sub(ts) < window {
			kept = append(kept, ts)
		}
	}
	return kept
}
