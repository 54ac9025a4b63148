package period

import (
	goerrors "errors"
	"testing"
	"time"

	"emojiusage/pkg/errors"
)

func TestWindowCrossesYearBoundary(t *testing.T) {
	anchor := time.Date(2024, time.February, 15, 10, 30, 0, 0, time.UTC)

	periods, err := Window(3, anchor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"2023-12", "2024-01", "2024-02"}
	if len(periods) != len(want) {
		t.Fatalf("Expected %d periods, got %d", len(want), len(periods))
	}
	for i, w := range want {
		if periods[i].String() != w {
			t.Errorf("Period %d: expected %s, got %s", i, w, periods[i])
		}
	}
}

func TestWindowIsContiguousAndDistinct(t *testing.T) {
	anchor := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	periods, err := Window(24, anchor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(periods) != 24 {
		t.Fatalf("Expected 24 periods, got %d", len(periods))
	}

	seen := make(map[string]bool)
	for i, p := range periods {
		if seen[p.String()] {
			t.Errorf("Duplicate period %s", p)
		}
		seen[p.String()] = true

		if i > 0 && periods[i-1].Next() != p {
			t.Errorf("Gap between %s and %s", periods[i-1], p)
		}
	}

	if periods[23].String() != "2024-07" {
		t.Errorf("Expected window to end at anchor month, got %s", periods[23])
	}
}

func TestWindowSingleMonth(t *testing.T) {
	anchor := time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC)

	periods, err := Window(1, anchor)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(periods) != 1 || periods[0].String() != "2024-05" {
		t.Errorf("Expected [2024-05], got %v", periods)
	}
}

func TestWindowRejectsNonPositiveLength(t *testing.T) {
	anchor := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	for _, months := range []int{0, -3} {
		_, err := Window(months, anchor)
		var apiErr *errors.Error
		if !goerrors.As(err, &apiErr) || apiErr.Type != errors.ErrorTypeConfig {
			t.Errorf("Window(%d): expected config error, got %v", months, err)
		}
	}
}

func TestQueryBoundsCoverWholeMonth(t *testing.T) {
	p := Period{Year: 2024, Month: time.March}

	after, before := p.QueryBounds()

	// after:/before: exclude the named day, so the bounds sit just
	// outside the month on both sides.
	if after != "2024-02-29" {
		t.Errorf("Expected after bound 2024-02-29 (leap year), got %s", after)
	}
	if before != "2024-04-01" {
		t.Errorf("Expected before bound 2024-04-01, got %s", before)
	}
}

func TestPeriodNextAcrossDecember(t *testing.T) {
	p := Period{Year: 2023, Month: time.December}
	next := p.Next()
	if next.Year != 2024 || next.Month != time.January {
		t.Errorf("Expected 2024-01, got %s", next)
	}
}
