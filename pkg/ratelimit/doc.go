// Package ratelimit paces outbound Slack API calls.
//
// The aggregation loop can run for hours and every cell of the
// emoji x month matrix costs one search call, so the pacing strategy is
// deliberately strict: a fixed minimum interval between the starts of
// any two calls, with no burst allowance. A token bucket would admit
// bursts that the rolling per-minute search quota cannot absorb.
//
// Interface:
//
// Pacers implement the Pacer interface:
//   - Acquire() - Block until the next call may start
//   - Reset() - Clear the pacing state
//
// Usage:
//
//	// One call every 5 seconds (12 calls/minute)
//	pacer := ratelimit.NewInterval(5 * time.Second)
//
//	pacer.Acquire()
//	// Proceed with the API call
//
// The zero state never blocks: the first Acquire of a process returns
// immediately. Pacing state lives only for the process lifetime.
package ratelimit
