package ratelimit

import (
	"testing"
	"time"
)

// fakeClock advances only when Sleep is called
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestIntervalFirstCallNeverBlocks(t *testing.T) {
	clock := newFakeClock()
	pacer := NewIntervalWithClock(5*time.Second, clock)

	pacer.Acquire()

	if len(clock.sleeps) != 0 {
		t.Errorf("Expected no sleep on first call, got %v", clock.sleeps)
	}
}

func TestIntervalEnforcesMinimumGap(t *testing.T) {
	clock := newFakeClock()
	pacer := NewIntervalWithClock(5*time.Second, clock)

	pacer.Acquire()
	clock.Advance(2 * time.Second)
	pacer.Acquire()

	if len(clock.sleeps) != 1 {
		t.Fatalf("Expected exactly one sleep, got %d", len(clock.sleeps))
	}
	if clock.sleeps[0] != 3*time.Second {
		t.Errorf("Expected sleep of 3s to fill the 5s gap, got %v", clock.sleeps[0])
	}
}

func TestIntervalAdmitsImmediatelyAfterLongIdle(t *testing.T) {
	clock := newFakeClock()
	pacer := NewIntervalWithClock(5*time.Second, clock)

	pacer.Acquire()
	clock.Advance(10 * time.Second)
	pacer.Acquire()

	if len(clock.sleeps) != 0 {
		t.Errorf("Expected no sleep after idle longer than interval, got %v", clock.sleeps)
	}
}

func TestIntervalGapMeasuredFromCallStart(t *testing.T) {
	clock := newFakeClock()
	pacer := NewIntervalWithClock(5*time.Second, clock)

	// Admit a sequence of back-to-back calls and verify every
	// consecutive pair of admission points is >= the interval apart.
	var admissions []time.Time
	for i := 0; i < 4; i++ {
		pacer.Acquire()
		admissions = append(admissions, clock.Now())
	}

	for i := 1; i < len(admissions); i++ {
		gap := admissions[i].Sub(admissions[i-1])
		if gap < 5*time.Second {
			t.Errorf("Gap between call %d and %d is %v, want >= 5s", i-1, i, gap)
		}
	}
}

func TestIntervalReset(t *testing.T) {
	clock := newFakeClock()
	pacer := NewIntervalWithClock(5*time.Second, clock)

	pacer.Acquire()
	pacer.Reset()
	pacer.Acquire()

	if len(clock.sleeps) != 0 {
		t.Errorf("Expected no sleep after reset, got %v", clock.sleeps)
	}
}
