package ratelimit

import (
	"time"
)

// Clock abstracts wall-clock access so pacing can be tested without
// real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// systemClock is the real wall clock
type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real wall clock
func SystemClock() Clock {
	return systemClock{}
}

// Pacer admits outbound API calls
type Pacer interface {
	// Acquire blocks until the next call is allowed to start
	Acquire()
	// Reset clears the pacing state
	Reset()
}

// Interval enforces a minimum wall-clock gap between the starts of any
// two admitted calls. The first call in a process lifetime never blocks.
//
// Callers must be sequential: the aggregation loop issues one call at a
// time, so Interval carries no internal locking. Any reentrant use from
// multiple goroutines must serialize through Acquire itself.
type Interval struct {
	minInterval time.Duration
	lastCall    time.Time
	clock       Clock
}

// NewInterval creates an interval pacer using the system clock
func NewInterval(minInterval time.Duration) *Interval {
	return NewIntervalWithClock(minInterval, SystemClock())
}

// NewIntervalWithClock creates an interval pacer with an injected clock
func NewIntervalWithClock(minInterval time.Duration, clock Clock) *Interval {
	return &Interval{
		minInterval: minInterval,
		clock:       clock,
	}
}

// Acquire blocks until at least the configured interval has elapsed
// since the start of the previously admitted call, then records the
// current time as the new admission point.
func (i *Interval) Acquire() {
	if !i.lastCall.IsZero() {
		elapsed := i.clock.Now().Sub(i.lastCall)
		if elapsed < i.minInterval {
			i.clock.Sleep(i.minInterval - elapsed)
		}
	}
	i.lastCall = i.clock.Now()
}

// Reset clears the admission state so the next call never blocks
func (i *Interval) Reset() {
	i.lastCall = time.Time{}
}

// MinInterval returns the configured minimum gap
func (i *Interval) MinInterval() time.Duration {
	return i.minInterval
}
