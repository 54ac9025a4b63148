package aggregator

import (
	"fmt"

	"emojiusage/pkg/emoji"
	"emojiusage/pkg/period"
	"emojiusage/pkg/retry"
)

// Searcher is the slice of the Slack client the probe needs
type Searcher interface {
	SearchCount(query string) (int, error)
}

// Probe measures one cell of the usage matrix. Every search goes
// through the retry policy, which paces the call and absorbs 429s.
type Probe struct {
	searcher Searcher
	policy   *retry.Policy

	// includeReactions adds a second has::name: query per cell and
	// sums both counts
	includeReactions bool
}

func NewProbe(searcher Searcher, policy *retry.Policy, includeReactions bool) *Probe {
	return &Probe{
		searcher:         searcher,
		policy:           policy,
		includeReactions: includeReactions,
	}
}

// textQuery matches messages whose text contains the emoji marker
func textQuery(e emoji.Emoji, p period.Period) string {
	after, before := p.QueryBounds()
	return fmt.Sprintf("%s after:%s before:%s", e.Marker(), after, before)
}

// reactionQuery matches messages that carry the emoji as a reaction
func reactionQuery(e emoji.Emoji, p period.Period) string {
	after, before := p.QueryBounds()
	return fmt.Sprintf("has:%s after:%s before:%s", e.Marker(), after, before)
}

// Measure returns the usage record for one emoji in one month
func (pr *Probe) Measure(e emoji.Emoji, p period.Period) (Record, error) {
	count, err := pr.count(textQuery(e, p))
	if err != nil {
		return Record{}, err
	}

	if pr.includeReactions {
		reactions, err := pr.count(reactionQuery(e, p))
		if err != nil {
			return Record{}, err
		}
		count += reactions
	}

	return Record{Emoji: e, Period: p, Count: count}, nil
}

// QueriesPerCell reports how many searches one Measure call issues
func (pr *Probe) QueriesPerCell() int {
	if pr.includeReactions {
		return 2
	}
	return 1
}

func (pr *Probe) count(query string) (int, error) {
	return retry.DoWithResult(pr.policy, func() (int, error) {
		return pr.searcher.SearchCount(query)
	})
}
