package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(cfg Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return New(cfg).WithClock(clock.Now), clock
}

func TestAllow_SixtyFirstRequestRejected(t *testing.T) {
	l, clock := newTestLimiter(Config{})

	for i := 1; i <= 60; i++ {
		d := l.Allow("10.0.0.1")
		require.Truef(t, d.Allowed, "request %d should be admitted", i)
		assert.Equal(t, i, d.Count)
		clock.Advance(500 * time.Millisecond)
	}

	d := l.Allow("10.0.0.1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 61, d.Count)
	assert.Equal(t, 0, d.Remaining)

	// Hard cliff: sigue rechazando hasta el reset
	assert.False(t, l.Allow("10.0.0.1").Allowed)
}

func TestAllow_ResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(Config{Window: time.Minute, Max: 2})

	assert.True(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)

	// exactamente en resetAt todavía es la misma ventana
	clock.Advance(time.Minute)
	assert.False(t, l.Allow("a").Allowed)

	clock.Advance(time.Millisecond)
	d := l.Allow("a")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
	assert.Equal(t, clock.Now().Add(time.Minute), d.ResetAt)
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{Max: 1})

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
}

func TestSweep_RemovesExpiredWindows(t *testing.T) {
	l, clock := newTestLimiter(Config{Window: 10 * time.Second})

	l.Allow("old")
	clock.Advance(8 * time.Second)
	l.Allow("new")
	clock.Advance(5 * time.Second)

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
}

func TestTable_IsBounded(t *testing.T) {
	l, _ := newTestLimiter(Config{TableSize: 2})

	l.Allow("a")
	l.Allow("b")
	l.Allow("c")

	assert.Equal(t, 2, l.Len())
}

func TestDecision_RetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := Decision{ResetAt: now.Add(42 * time.Second)}
	assert.Equal(t, 42*time.Second, d.RetryAfter(now))
	assert.Equal(t, time.Second, Decision{ResetAt: now}.RetryAfter(now))
}
