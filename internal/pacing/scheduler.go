package pacing

import (
	"context"
	"log/slog"
	"math/rand"
	"time"
)

const (
	// jitterFraction is the symmetric jitter applied to the default delay.
	jitterFraction = 0.25

	// maxChunkSeconds bounds each sleep increment so cancellation and
	// progress reporting can happen at chunk boundaries.
	maxChunkSeconds = 10
)

// Scheduler computes and performs the pause between consecutive
// submissions.
type Scheduler struct {
	defaultDelay int
	minDelay     int
	maxDelay     int

	rng    *rand.Rand
	tick   time.Duration
	logger *slog.Logger
}

// NewScheduler creates a scheduler with the given delay bounds, all in
// seconds. A nil source seeds from the current time.
func NewScheduler(defaultDelay, minDelay, maxDelay int, src rand.Source, logger *slog.Logger) *Scheduler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Scheduler{
		defaultDelay: defaultDelay,
		minDelay:     minDelay,
		maxDelay:     maxDelay,
		rng:          rand.New(src),
		tick:         time.Second,
		logger:       logger,
	}
}

// ComputeDelay returns the number of seconds to pause before the next
// submission. An explicit override is used as-is, clamped only to a minimum
// of one second: explicit caller intent beats the heuristics. Otherwise the
// default delay gets symmetric jitter and is clamped to the configured
// floor and ceiling.
func (s *Scheduler) ComputeDelay(explicitSeconds *int) int {
	if explicitSeconds != nil {
		delay := *explicitSeconds
		if delay < 1 {
			delay = 1
		}
		return delay
	}

	jitter := (s.rng.Float64()*2 - 1) * jitterFraction * float64(s.defaultDelay)
	delay := s.defaultDelay + int(jitter)

	if delay < s.minDelay {
		delay = s.minDelay
	}
	if delay > s.maxDelay {
		delay = s.maxDelay
	}
	return delay
}

// Wait pauses for the given number of seconds, sleeping in increments of at
// most ten seconds so that progress can report remaining time and
// cancellation takes effect at each chunk boundary. The increments sum to
// the requested delay exactly.
func (s *Scheduler) Wait(ctx context.Context, seconds int, progress func(remaining int)) error {
	remaining := seconds
	for remaining > 0 {
		chunk := remaining
		if chunk > maxChunkSeconds {
			chunk = maxChunkSeconds
		}

		timer := time.NewTimer(time.Duration(chunk) * s.tick)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		remaining -= chunk
		if remaining > 0 {
			if s.logger != nil {
				s.logger.Info("waiting before next post", "seconds_remaining", remaining)
			}
			if progress != nil {
				progress(remaining)
			}
		}
	}
	return nil
}
