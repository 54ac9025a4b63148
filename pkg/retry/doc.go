// Package retry recovers from Slack throttling responses.
//
// The scope is deliberately narrow: only rate-limit errors are retried.
// Auth failures, transport errors and server errors propagate
// immediately, because retrying them risks silently under-counting a
// long aggregation run.
//
// Each wrapped call moves through explicit states (waiting_for_quota,
// pending, waiting_for_retry_after, succeeded, failed), which makes the
// exhaustion and propagation rules testable with a fake clock.
//
// Basic usage:
//
//	pacer := ratelimit.NewInterval(5 * time.Second)
//	policy := retry.NewPolicy(3, nil, pacer, logger.GetLogger())
//
//	count, err := retry.DoWithResult(policy, func() (int, error) {
//		return client.SearchCount(query)
//	})
//
// When a throttling response carries a Retry-After advisory the policy
// sleeps exactly that long; the advisory is a correctness requirement,
// not a hint. Without an advisory it falls back to exponential backoff.
// After MaxRetry consecutive throttles the call fails with
// errors.RateLimitExceededError carrying the last advised wait.
package retry
