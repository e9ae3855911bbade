package control

import "time"

// LinkMonitor implements the link-loss failsafe.
type LinkMonitor struct {
	timeout     time.Duration
	lastInRange time.Time
	seen        bool
}

// NewLinkMonitor creates a monitor that declares the link lost after timeout.
func NewLinkMonitor(timeout time.Duration) *LinkMonitor {
	return &LinkMonitor{timeout: timeout}
}

// Update records the in-range flag of the current packet and reports whether
// the link is lost. Before the first in-range packet the link counts as lost.
func (m *LinkMonitor) Update(inRange bool, now time.Time) (lost bool) {
	if inRange {
		m.lastInRange = now
		m.seen = true
	}
	return !m.seen || now.Sub(m.lastInRange) >= m.timeout
}

// LastInRange returns the time of the last in-range packet.
func (m *LinkMonitor) LastInRange() time.Time {
	return m.lastInRange
}

// RateLimiter allows an action at most once per interval.
type RateLimiter struct {
	interval time.Duration
	last     time.Time
	started  bool
}

// NewRateLimiter creates a limiter with the given minimum interval.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Allow reports whether the action may run at now, and if so records now as
// the time of the last run.
func (r *RateLimiter) Allow(now time.Time) bool {
	if r.started && now.Sub(r.last) < r.interval {
		return false
	}
	r.last = now
	r.started = true
	return true
}
