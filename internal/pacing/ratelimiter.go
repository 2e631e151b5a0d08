// Package pacing implements the safety layer that throttles batch
// submissions: a sliding-window rate limiter, a jittered delay scheduler,
// and a per-session quota guard.
package pacing

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// rateLimitBuffer is added on top of the computed wait so the oldest entry
// is safely outside the window when the caller retries.
const rateLimitBuffer = time.Second

// RateLimiter tracks recent request timestamps in a sliding window and
// decides whether a new request is currently allowed.
//
// The window resets whenever the process restarts; there is no persistence.
type RateLimiter struct {
	maxRequests int
	window      time.Duration

	mu       sync.Mutex
	requests []time.Time

	now    func() time.Time
	logger *slog.Logger
}

// NewRateLimiter creates a limiter allowing maxRequests per window.
func NewRateLimiter(maxRequests int, window time.Duration, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		logger:      logger,
	}
}

// CanProceed prunes entries older than the window and reports whether a new
// request is currently allowed.
func (r *RateLimiter) CanProceed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune(r.now())
	return len(r.requests) < r.maxRequests
}

// Record appends the current instant to the window. Call it only for
// requests that were actually sent; validation failures and dry-run
// simulations do not consume quota.
func (r *RateLimiter) Record() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, r.now())
}

// Wait blocks until a request is allowed or the context is cancelled. The
// wait duration is the time until the oldest entry exits the window, plus a
// small safety buffer.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := r.now()
		r.prune(now)
		if len(r.requests) < r.maxRequests {
			r.mu.Unlock()
			return nil
		}
		wait := r.window - now.Sub(r.requests[0]) + rateLimitBuffer
		r.mu.Unlock()

		if r.logger != nil {
			r.logger.Warn("rate limit reached, waiting",
				"wait", wait.Round(100*time.Millisecond),
				"max_requests", r.maxRequests,
				"window", r.window)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// prune drops entries older than the window. Callers must hold mu.
func (r *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-r.window)
	i := 0
	for i < len(r.requests) && !r.requests[i].After(cutoff) {
		i++
	}
	if i > 0 {
		r.requests = append(r.requests[:0], r.requests[i:]...)
	}
}
