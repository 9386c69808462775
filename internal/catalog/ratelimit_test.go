package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when sleep is called, so the accumulated sleep
// time is exactly the pacing the limiter enforced.
type fakeClock struct {
	now   time.Time
	slept time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept += d
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestRateLimiterFirstCallDoesNotBlock(t *testing.T) {
	clock := newFakeClock()
	l := newTestRateLimiter(5*time.Second, clock.Now, clock.Sleep)

	l.Wait()

	assert.Equal(t, time.Duration(0), clock.slept)
}

func TestRateLimiterEnforcesMinimumInterval(t *testing.T) {
	clock := newFakeClock()
	interval := 5 * time.Second
	l := newTestRateLimiter(interval, clock.Now, clock.Sleep)

	const calls = 4
	for i := 0; i < calls; i++ {
		l.Wait()
	}

	// N back-to-back calls must be paced by at least (N-1) intervals.
	assert.GreaterOrEqual(t, clock.slept, time.Duration(calls-1)*interval)
}

func TestRateLimiterSkipsSleepAfterNaturalGap(t *testing.T) {
	clock := newFakeClock()
	l := newTestRateLimiter(5*time.Second, clock.Now, clock.Sleep)

	l.Wait()
	clock.Advance(10 * time.Second)
	l.Wait()

	assert.Equal(t, time.Duration(0), clock.slept)
}

func TestRateLimiterPartialGapSleepsRemainder(t *testing.T) {
	clock := newFakeClock()
	l := newTestRateLimiter(5*time.Second, clock.Now, clock.Sleep)

	l.Wait()
	clock.Advance(2 * time.Second)
	l.Wait()

	assert.Equal(t, 3*time.Second, clock.slept)
}

func TestRateLimiterSharedAcrossClients(t *testing.T) {
	clock := newFakeClock()
	interval := 5 * time.Second
	l := newTestRateLimiter(interval, clock.Now, clock.Sleep)

	// Two clients sharing one limiter still observe one pacing budget.
	a := NewClient("http://example.invalid", "key", l, nil)
	b := NewClient("http://example.invalid", "key", l, nil)
	a.limiter.Wait()
	b.limiter.Wait()

	assert.Equal(t, interval, clock.slept)
}

func TestRateLimiterZeroIntervalDisabled(t *testing.T) {
	clock := newFakeClock()
	l := newTestRateLimiter(0, clock.Now, clock.Sleep)

	for i := 0; i < 10; i++ {
		l.Wait()
	}

	assert.Equal(t, time.Duration(0), clock.slept)
}
