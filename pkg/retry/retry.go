package retry

import (
	goerrors "errors"
	"time"

	errs "emojiusage/pkg/errors"
	"emojiusage/pkg/logger"
	"emojiusage/pkg/ratelimit"
)

// State identifies where a wrapped call currently is in its lifecycle.
// The explicit states keep the wait-then-retry control flow testable
// with a fake clock instead of wall-clock sleeps.
type State int

const (
	StatePending State = iota
	StateWaitingForQuota
	StateWaitingForRetryAfter
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateWaitingForQuota:
		return "waiting_for_quota"
	case StateWaitingForRetryAfter:
		return "waiting_for_retry_after"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Operation is a function that performs one outbound request
type Operation func() error

// OperationWithResult is an operation that returns a result
type OperationWithResult[T any] func() (T, error)

// Policy wraps an outbound call with pacing and throttling recovery.
//
// Every attempt is admitted through the pacer first. Only throttling
// errors are retried: the server's Retry-After advisory is honored
// exactly, with exponential backoff as fallback when the advisory is
// absent. MaxRetry bounds the retries, so a call makes at most
// MaxRetry+1 attempts. Any non-throttling error propagates immediately.
type Policy struct {
	// MaxRetry is the number of retries after the first attempt
	MaxRetry int
	// Backoff is the fallback wait when no Retry-After advisory is present
	Backoff BackoffStrategy
	// Pacer admits each attempt
	Pacer ratelimit.Pacer
	// Clock performs the post-throttle wait
	Clock ratelimit.Clock
	// Logger for retry attempts
	Logger logger.Logger
	// OnTransition is called on every state change (optional)
	OnTransition func(State)
}

// NewPolicy creates a retry policy with the system clock
func NewPolicy(maxRetry int, backoff BackoffStrategy, pacer ratelimit.Pacer, log logger.Logger) *Policy {
	if backoff == nil {
		backoff = DefaultExponentialBackoff()
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Policy{
		MaxRetry: maxRetry,
		Backoff:  backoff,
		Pacer:    pacer,
		Clock:    ratelimit.SystemClock(),
		Logger:   log,
	}
}

// Do executes an operation under the policy
func (p *Policy) Do(op Operation) error {
	transition := func(s State) {
		if p.OnTransition != nil {
			p.OnTransition(s)
		}
	}

	var lastWait time.Duration

	for attempt := 1; ; attempt++ {
		transition(StateWaitingForQuota)
		p.Pacer.Acquire()

		transition(StatePending)
		err := op()
		if err == nil {
			if attempt > 1 {
				p.Logger.DebugWithFields("operation succeeded after retry", map[string]interface{}{
					"attempt": attempt,
				})
			}
			transition(StateSucceeded)
			return nil
		}

		var apiErr *errs.Error
		if !goerrors.As(err, &apiErr) || !errs.IsRetryable(apiErr.Type) {
			transition(StateFailed)
			return err
		}

		// The server's advisory is authoritative; the backoff only
		// fills in when the response carried none.
		wait := apiErr.RetryAfter
		if wait <= 0 {
			wait = p.Backoff.NextDelay(attempt)
		}
		lastWait = wait

		if attempt > p.MaxRetry {
			p.Logger.ErrorWithFields("rate limit retry budget exhausted", map[string]interface{}{
				"attempts":  attempt,
				"last_wait": lastWait,
			})
			transition(StateFailed)
			return &errs.RateLimitExceededError{
				Attempts: attempt,
				LastWait: lastWait,
			}
		}

		p.Logger.WarnWithFields("throttled, waiting before retry", map[string]interface{}{
			"attempt":   attempt,
			"max_retry": p.MaxRetry,
			"wait":      wait,
		})

		transition(StateWaitingForRetryAfter)
		p.Clock.Sleep(wait)
	}
}

// DoWithResult executes an operation that returns a result under the policy
func DoWithResult[T any](p *Policy, op OperationWithResult[T]) (T, error) {
	var result T

	err := p.Do(func() error {
		var opErr error
		result, opErr = op()
		return opErr
	})

	return result, err
}
