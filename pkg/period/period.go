package period

import (
	"fmt"
	"time"

	"emojiusage/pkg/errors"
)

// Period identifies one calendar month. The month covers its first day
// inclusive through the first day of the following month exclusive.
type Period struct {
	Year  int
	Month time.Month
}

// String renders the period as YYYY-MM, the form used in output rows
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start returns midnight UTC on the first day of the month
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar month
func (p Period) Next() Period {
	t := p.Start().AddDate(0, 1, 0)
	return Period{Year: t.Year(), Month: t.Month()}
}

// QueryBounds returns the date strings for a search scoped to this
// month. Slack's after:/before: operators exclude the named day, so
// the bounds are the last day of the previous month and the first day
// of the next month.
func (p Period) QueryBounds() (after, before string) {
	afterDay := p.Start().AddDate(0, 0, -1)
	beforeDay := p.Next().Start()
	return afterDay.Format("2006-01-02"), beforeDay.Format("2006-01-02")
}

// Window produces the months contiguous calendar months ending at (and
// including) the anchor's month, ordered ascending. The ascending order
// drives the aggregation loop, so log lines progress oldest to newest.
func Window(months int, anchor time.Time) ([]Period, error) {
	if months < 1 {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeConfig,
			Message: fmt.Sprintf("window length must be at least 1 month, got %d", months),
		}
	}

	periods := make([]Period, months)
	for i := 0; i < months; i++ {
		t := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, -(months - 1 - i), 0)
		periods[i] = Period{Year: t.Year(), Month: t.Month()}
	}

	return periods, nil
}
