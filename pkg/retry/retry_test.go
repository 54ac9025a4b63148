package retry

import (
	goerrors "errors"
	"testing"
	"time"

	errs "emojiusage/pkg/errors"
	"emojiusage/pkg/logger"
	"emojiusage/pkg/ratelimit"
)

// fakeClock records sleep requests without waiting
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

// countingPacer records how often calls were admitted
type countingPacer struct {
	acquired int
}

func (p *countingPacer) Acquire() { p.acquired++ }
func (p *countingPacer) Reset()   {}

func newTestPolicy(maxRetry int, clock *fakeClock, pacer ratelimit.Pacer) *Policy {
	return &Policy{
		MaxRetry: maxRetry,
		Backoff:  &ConstantBackoff{Delay: 2 * time.Second},
		Pacer:    pacer,
		Clock:    clock,
		Logger:   logger.NewNopLogger(),
	}
}

func throttled(retryAfter time.Duration) error {
	return &errs.Error{
		Type:       errs.ErrorTypeRateLimit,
		Message:    "ratelimited",
		Code:       429,
		RetryAfter: retryAfter,
	}
}

func TestPolicySucceedsFirstAttempt(t *testing.T) {
	clock := newFakeClock()
	pacer := &countingPacer{}
	policy := newTestPolicy(3, clock, pacer)

	calls := 0
	err := policy.Do(func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
	if pacer.acquired != 1 {
		t.Errorf("Expected 1 quota acquisition, got %d", pacer.acquired)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("Expected no retry sleeps, got %v", clock.sleeps)
	}
}

func TestPolicyHonorsRetryAfterExactly(t *testing.T) {
	clock := newFakeClock()
	policy := newTestPolicy(3, clock, &countingPacer{})

	calls := 0
	err := policy.Do(func() error {
		calls++
		if calls == 1 {
			return throttled(10 * time.Second)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Expected success after retry, got %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
	if len(clock.sleeps) != 1 || clock.sleeps[0] != 10*time.Second {
		t.Errorf("Expected exactly one 10s sleep, got %v", clock.sleeps)
	}
}

func TestPolicyFallsBackToBackoffWithoutAdvisory(t *testing.T) {
	clock := newFakeClock()
	policy := newTestPolicy(3, clock, &countingPacer{})

	calls := 0
	err := policy.Do(func() error {
		calls++
		if calls == 1 {
			return throttled(0) // no Retry-After header
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Expected success after retry, got %v", err)
	}
	if len(clock.sleeps) != 1 || clock.sleeps[0] != 2*time.Second {
		t.Errorf("Expected one backoff sleep of 2s, got %v", clock.sleeps)
	}
}

func TestPolicyExhaustsRetryBudget(t *testing.T) {
	clock := newFakeClock()
	pacer := &countingPacer{}
	policy := newTestPolicy(3, clock, pacer)

	calls := 0
	err := policy.Do(func() error {
		calls++
		return throttled(7 * time.Second)
	})

	var exhausted *errs.RateLimitExceededError
	if !goerrors.As(err, &exhausted) {
		t.Fatalf("Expected RateLimitExceededError, got %v", err)
	}

	// 3 retries means 4 total attempts, and no call after exhaustion
	if calls != 4 {
		t.Errorf("Expected 4 attempts, got %d", calls)
	}
	if pacer.acquired != 4 {
		t.Errorf("Expected 4 quota acquisitions, got %d", pacer.acquired)
	}
	if len(clock.sleeps) != 3 {
		t.Errorf("Expected 3 retry sleeps, got %d", len(clock.sleeps))
	}
	if exhausted.Attempts != 4 {
		t.Errorf("Expected 4 attempts recorded, got %d", exhausted.Attempts)
	}
	if exhausted.LastWait != 7*time.Second {
		t.Errorf("Expected last wait 7s, got %v", exhausted.LastWait)
	}
}

func TestPolicyDoesNotRetryTransportErrors(t *testing.T) {
	clock := newFakeClock()
	policy := newTestPolicy(3, clock, &countingPacer{})

	netErr := &errs.Error{Type: errs.ErrorTypeNetwork, Message: "connection refused"}

	calls := 0
	err := policy.Do(func() error {
		calls++
		return netErr
	})

	if !goerrors.Is(err, netErr) {
		t.Fatalf("Expected network error to propagate unchanged, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected no retry for transport error, got %d calls", calls)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("Expected no sleeps, got %v", clock.sleeps)
	}
}

func TestPolicyDoesNotRetryAuthErrors(t *testing.T) {
	clock := newFakeClock()
	policy := newTestPolicy(3, clock, &countingPacer{})

	calls := 0
	err := policy.Do(func() error {
		calls++
		return &errs.Error{Type: errs.ErrorTypeAuth, Message: "invalid_auth", Code: 401}
	})

	var apiErr *errs.Error
	if !goerrors.As(err, &apiErr) || apiErr.Type != errs.ErrorTypeAuth {
		t.Fatalf("Expected auth error to propagate, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestPolicyStateTransitions(t *testing.T) {
	clock := newFakeClock()
	policy := newTestPolicy(3, clock, &countingPacer{})

	var states []State
	policy.OnTransition = func(s State) { states = append(states, s) }

	calls := 0
	err := policy.Do(func() error {
		calls++
		if calls == 1 {
			return throttled(5 * time.Second)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	want := []State{
		StateWaitingForQuota, StatePending, StateWaitingForRetryAfter,
		StateWaitingForQuota, StatePending, StateSucceeded,
	}
	if len(states) != len(want) {
		t.Fatalf("Expected %d transitions, got %d (%v)", len(want), len(states), states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("Transition %d: expected %s, got %s", i, want[i], states[i])
		}
	}
}

func TestDoWithResult(t *testing.T) {
	clock := newFakeClock()
	policy := newTestPolicy(3, clock, &countingPacer{})

	calls := 0
	count, err := DoWithResult(policy, func() (int, error) {
		calls++
		if calls == 1 {
			return 0, throttled(time.Second)
		}
		return 42, nil
	})

	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if count != 42 {
		t.Errorf("Expected 42, got %d", count)
	}
}
