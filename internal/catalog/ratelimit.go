// Package catalog provides the rate-limited client for the external event catalog.
package catalog

import (
	"sync"
	"time"
)

// DefaultMinInterval is the default pacing gap between outbound catalog calls.
const DefaultMinInterval = 5 * time.Second

// RateLimiter enforces a minimum interval between the start of one outbound
// call and the next, measured from a single shared last-call timestamp.
//
// Construct one limiter per process and inject it into every Client so that
// all instances collectively respect one pacing budget against the remote
// service. Callers block rather than being rejected; calls are served in
// program order.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

// NewRateLimiter creates a limiter with the given minimum interval.
// A non-positive interval disables pacing.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// newTestRateLimiter allows injecting a fake clock in tests.
func newTestRateLimiter(interval time.Duration, now func() time.Time, sleep func(time.Duration)) *RateLimiter {
	return &RateLimiter{interval: interval, now: now, sleep: sleep}
}

// Wait blocks until the minimum interval since the previous call has elapsed,
// then stamps the new last-call time. The lock is held across the sleep so
// concurrent callers queue up instead of racing on the shared timestamp.
func (l *RateLimiter) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.interval > 0 && !l.lastCall.IsZero() {
		if wait := l.interval - l.now().Sub(l.lastCall); wait > 0 {
			l.sleep(wait)
		}
	}
	l.lastCall = l.now()
}
