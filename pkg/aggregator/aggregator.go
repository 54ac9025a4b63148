// Package aggregator orchestrates a full usage scan: it assembles the
// emoji working set, walks the month window, and measures every
// emoji/month cell through the paced search pipeline.
package aggregator

import (
	"fmt"
	"sort"
	"time"

	"emojiusage/pkg/config"
	"emojiusage/pkg/emoji"
	"emojiusage/pkg/errors"
	"emojiusage/pkg/logger"
	"emojiusage/pkg/period"
	"emojiusage/pkg/ratelimit"
	"emojiusage/pkg/retry"
	"emojiusage/pkg/slack"
)

// SlackAPI is the slice of the Slack client the aggregator uses
type SlackAPI interface {
	SearchCount(query string) (int, error)
	ListCustomEmoji() (map[string]string, error)
	TeamInfo() (*slack.Team, error)
}

// Aggregator runs the scan sequentially. Every outbound call shares one
// pacer and one retry policy, so the whole run stays under the search
// quota no matter how the calls interleave.
type Aggregator struct {
	config  *config.Config
	api     SlackAPI
	catalog *emoji.Catalog
	probe   *Probe
	policy  *retry.Policy
	clock   ratelimit.Clock
	logger  logger.Logger

	retriesSpent int
}

// New creates an aggregator wired to the real Slack API
func New(cfg *config.Config, log logger.Logger) (*Aggregator, error) {
	if cfg.Slack.Token == "" {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeConfig,
			Message: "slack token is required",
		}
	}
	if log == nil {
		log = logger.GetLogger()
	}

	client := slack.NewClient(cfg.Slack.Token, cfg.Slack.APITimeout, log)
	return newWithAPI(cfg, client, ratelimit.SystemClock(), log), nil
}

// newWithAPI wires the pipeline around any API implementation. Tests
// inject a fake API and a fake clock here.
func newWithAPI(cfg *config.Config, api SlackAPI, clock ratelimit.Clock, log logger.Logger) *Aggregator {
	pacer := ratelimit.NewIntervalWithClock(cfg.RateLimit.MinInterval, clock)
	policy := retry.NewPolicy(
		cfg.RateLimit.MaxRetry,
		&retry.ExponentialBackoff{
			BaseDelay:  cfg.RateLimit.BackoffBase,
			MaxDelay:   time.Minute,
			Multiplier: 2.0,
		},
		pacer,
		log,
	)
	policy.Clock = clock

	agg := &Aggregator{
		config:  cfg,
		api:     api,
		policy:  policy,
		clock:   clock,
		logger:  log,
		catalog: emoji.NewCatalog(&pacedLister{api: api, policy: policy}, log),
		probe:   NewProbe(api, policy, cfg.Aggregation.IncludeReactions),
	}
	policy.OnTransition = func(s retry.State) {
		if s == retry.StateWaitingForRetryAfter {
			agg.retriesSpent++
		}
	}
	return agg
}

// pacedLister routes the custom emoji fetch through the shared policy,
// so it is paced and throttle-protected like every other call
type pacedLister struct {
	api    SlackAPI
	policy *retry.Policy
}

func (l *pacedLister) ListCustomEmoji() (map[string]string, error) {
	return retry.DoWithResult(l.policy, l.api.ListCustomEmoji)
}

// Run executes the full scan anchored at the current month.
//
// On a fatal error the records measured so far are still returned, so
// the caller can flush a partial CSV before exiting.
func (a *Aggregator) Run() ([]Record, Stats, error) {
	// Filter contradictions and a bad window must surface before any
	// quota is spent; WorkingSet validates before its own fetch.
	months, err := period.Window(a.config.Aggregation.Months, a.clock.Now())
	if err != nil {
		return nil, Stats{}, err
	}

	set, err := a.catalog.WorkingSet(a.emojiOptions())
	if err != nil {
		return nil, Stats{}, err
	}

	a.describeWorkspace()

	totalQueries := len(set) * len(months) * a.probe.QueriesPerCell()
	a.logger.WithFields(map[string]interface{}{
		"emoji":     len(set),
		"months":    len(months),
		"queries":   totalQueries,
		"estimated": (time.Duration(totalQueries) * a.config.RateLimit.MinInterval).String(),
	}).Info("Starting usage scan")

	records := make([]Record, 0, len(set)*len(months))
	stats := Stats{EmojiCount: len(set), MonthCount: len(months)}

	for _, e := range set {
		a.logger.WithFields(map[string]interface{}{
			"emoji": e.Name,
			"kind":  string(e.Kind),
		}).Debug("Measuring emoji")

		for _, p := range months {
			rec, err := a.probe.Measure(e, p)
			stats.QueriesMade += a.probe.QueriesPerCell()
			if err != nil {
				stats.RetriesSpent = a.retriesSpent
				return records, stats, fmt.Errorf("measuring %s for %s: %w", e.Marker(), p, err)
			}

			records = append(records, rec)
			stats.TotalUsage += rec.Count

			if stats.QueriesMade%10 == 0 {
				logger.LogAggregationProgress(a.logger, stats.QueriesMade, totalQueries)
			}
		}
	}

	stats.RetriesSpent = a.retriesSpent
	a.logRunSummary(records, stats)
	return records, stats, nil
}

// emojiOptions converts the configured filter flags to catalog options
func (a *Aggregator) emojiOptions() emoji.Options {
	return emoji.Options{
		OnlyStandard: a.config.Emoji.OnlyStandard,
		OnlyCustom:   a.config.Emoji.OnlyCustom,
		NoStandard:   a.config.Emoji.NoStandard,
		NoCustom:     a.config.Emoji.NoCustom,
		MaxEmojis:    a.config.Emoji.MaxEmojis,
	}
}

// describeWorkspace logs which workspace the token belongs to. A
// failure here is only a warning: the scan itself will surface a bad
// token on its first search.
func (a *Aggregator) describeWorkspace() {
	team, err := retry.DoWithResult(a.policy, a.api.TeamInfo)
	if err != nil {
		a.logger.WithError(err).Warn("Could not fetch workspace info")
		return
	}
	a.logger.WithFields(map[string]interface{}{
		"team":   team.Name,
		"domain": team.Domain,
	}).Info("Scanning workspace")
}

func (a *Aggregator) logRunSummary(records []Record, stats Stats) {
	nonZero := 0
	for _, r := range records {
		if r.Count > 0 {
			nonZero++
		}
	}

	a.logger.WithFields(map[string]interface{}{
		"emoji":         stats.EmojiCount,
		"months":        stats.MonthCount,
		"queries":       stats.QueriesMade,
		"total_usage":   stats.TotalUsage,
		"nonzero_cells": nonZero,
		"retries":       stats.RetriesSpent,
	}).Info("Usage scan complete")

	for _, t := range topEmoji(records, 10) {
		a.logger.WithFields(map[string]interface{}{
			"emoji": t.name,
			"usage": t.total,
		}).Info("Top emoji")
	}
}

type emojiTotal struct {
	name  string
	total int
}

// topEmoji sums each emoji's usage across the window and returns the
// n highest, ties broken by name
func topEmoji(records []Record, n int) []emojiTotal {
	sums := make(map[string]int)
	for _, r := range records {
		sums[r.Emoji.Name] += r.Count
	}

	totals := make([]emojiTotal, 0, len(sums))
	for name, total := range sums {
		totals = append(totals, emojiTotal{name: name, total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].total != totals[j].total {
			return totals[i].total > totals[j].total
		}
		return totals[i].name < totals[j].name
	})

	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}
