// Package slack implements the small slice of the Slack Web API the
// aggregator consumes: search.messages for per-cell usage counts,
// emoji.list for the custom emoji catalog, and team.info / auth.test
// for diagnostics.
//
// The client is transport only. It maps HTTP failures and ok:false
// envelopes to the typed errors in pkg/errors, including the
// Retry-After advisory on throttling responses, and leaves pacing and
// retrying to the caller, since all endpoints share one rate-limit
// budget owned by the aggregation loop.
package slack
