package pacing

import (
	"fmt"
	"time"
)

// SessionGuard tracks cumulative post count and elapsed session time, and
// vetoes further submissions once either bound is exceeded. One guard is
// owned by exactly one submission session; there is no cross-session
// coordination.
type SessionGuard struct {
	maxPosts    int
	maxDuration time.Duration

	postCount    int
	sessionStart time.Time

	now func() time.Time
}

// NewSessionGuard creates a guard for a session starting now.
func NewSessionGuard(maxPosts int, maxDuration time.Duration) *SessionGuard {
	g := &SessionGuard{
		maxPosts:    maxPosts,
		maxDuration: maxDuration,
		now:         time.Now,
	}
	g.sessionStart = g.now()
	return g
}

// CheckCanContinue reports whether another submission is allowed. When it
// is not, the returned reason names the limit that tripped.
func (g *SessionGuard) CheckCanContinue() (bool, string) {
	if g.postCount >= g.maxPosts {
		return false, fmt.Sprintf("session limit reached (%d posts)", g.maxPosts)
	}

	if g.now().Sub(g.sessionStart) > g.maxDuration {
		return false, fmt.Sprintf("session duration limit reached (%s)", g.maxDuration)
	}

	return true, ""
}

// RecordPost increments the post counter. It must be called exactly once
// per successful live submission, never for dry-run simulations or failed
// attempts.
func (g *SessionGuard) RecordPost() {
	g.postCount++
}

// PostCount returns the number of successful live submissions this session.
func (g *SessionGuard) PostCount() int {
	return g.postCount
}
