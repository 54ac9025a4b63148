package aggregator

import (
	"strings"
	"testing"
	"time"

	"emojiusage/pkg/config"
	"emojiusage/pkg/emoji"
	"emojiusage/pkg/errors"
	"emojiusage/pkg/logger"
	"emojiusage/pkg/slack"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

type fakeAPI struct {
	custom  map[string]string
	counts  map[string]int
	queries []string

	// failOn makes the Nth search (1-based) return failErr
	failOn  int
	failErr error

	// throttleFirst makes the first search return a throttling error
	// before succeeding on retry
	throttleFirst bool
	throttled     bool
}

func (f *fakeAPI) SearchCount(query string) (int, error) {
	f.queries = append(f.queries, query)
	if f.throttleFirst && !f.throttled {
		f.throttled = true
		return 0, &errors.Error{
			Type:       errors.ErrorTypeRateLimit,
			Message:    "rate limit exceeded",
			Code:       429,
			RetryAfter: 10 * time.Second,
		}
	}
	if f.failOn > 0 && len(f.queries) == f.failOn {
		return 0, f.failErr
	}
	return f.counts[query], nil
}

func (f *fakeAPI) ListCustomEmoji() (map[string]string, error) {
	return f.custom, nil
}

func (f *fakeAPI) TeamInfo() (*slack.Team, error) {
	return &slack.Team{ID: "T1", Name: "Acme", Domain: "acme"}, nil
}

func testConfig(months int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Slack.Token = "xoxp-test"
	cfg.Aggregation.Months = months
	cfg.Emoji.OnlyCustom = true
	return cfg
}

func testAggregator(cfg *config.Config, api *fakeAPI) (*Aggregator, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)}
	return newWithAPI(cfg, api, clock, logger.NewNopLogger()), clock
}

func TestRunProducesFullMatrix(t *testing.T) {
	api := &fakeAPI{
		custom: map[string]string{
			"partyparrot": "https://emoji.example/p.gif",
			"shipit":      "https://emoji.example/s.png",
		},
		counts: map[string]int{
			":partyparrot: after:2024-03-31 before:2024-05-01": 3,
			":partyparrot: after:2024-04-30 before:2024-06-01": 5,
			":shipit: after:2024-03-31 before:2024-05-01":      0,
			":shipit: after:2024-04-30 before:2024-06-01":      2,
		},
	}
	agg, _ := testAggregator(testConfig(2), api)

	records, stats, err := agg.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Run() returned %d records, want 4", len(records))
	}

	// emoji sorted by name, months ascending within each emoji
	wantOrder := []struct {
		name  string
		month string
		count int
	}{
		{"partyparrot", "2024-04", 3},
		{"partyparrot", "2024-05", 5},
		{"shipit", "2024-04", 0},
		{"shipit", "2024-05", 2},
	}
	for i, want := range wantOrder {
		got := records[i]
		if got.Emoji.Name != want.name || got.Period.String() != want.month || got.Count != want.count {
			t.Errorf("records[%d] = %s %s %d, want %s %s %d",
				i, got.Emoji.Name, got.Period, got.Count, want.name, want.month, want.count)
		}
		if got.Emoji.Kind != emoji.KindCustom {
			t.Errorf("records[%d] kind = %s, want custom", i, got.Emoji.Kind)
		}
	}

	if stats.EmojiCount != 2 || stats.MonthCount != 2 {
		t.Errorf("stats = %+v, want 2 emoji and 2 months", stats)
	}
	if stats.QueriesMade != 4 {
		t.Errorf("stats.QueriesMade = %d, want 4", stats.QueriesMade)
	}
	if stats.TotalUsage != 10 {
		t.Errorf("stats.TotalUsage = %d, want 10", stats.TotalUsage)
	}
	if stats.RetriesSpent != 0 {
		t.Errorf("stats.RetriesSpent = %d, want 0", stats.RetriesSpent)
	}
}

func TestRunQueryFormat(t *testing.T) {
	api := &fakeAPI{
		custom: map[string]string{"shipit": "https://emoji.example/s.png"},
		counts: map[string]int{},
	}
	agg, _ := testAggregator(testConfig(1), api)

	if _, _, err := agg.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(api.queries) != 1 {
		t.Fatalf("made %d queries, want 1", len(api.queries))
	}
	if api.queries[0] != ":shipit: after:2024-04-30 before:2024-06-01" {
		t.Errorf("query = %q", api.queries[0])
	}
}

func TestRunFlushesPartialRecordsOnFatalError(t *testing.T) {
	api := &fakeAPI{
		custom: map[string]string{
			"partyparrot": "https://emoji.example/p.gif",
			"shipit":      "https://emoji.example/s.png",
		},
		counts:  map[string]int{},
		failOn:  3,
		failErr: &errors.Error{Type: errors.ErrorTypeAuth, Message: "token_revoked"},
	}
	agg, _ := testAggregator(testConfig(2), api)

	records, stats, err := agg.Run()
	if err == nil {
		t.Fatal("Run() succeeded, want auth failure")
	}
	if !strings.Contains(err.Error(), ":shipit:") || !strings.Contains(err.Error(), "2024-04") {
		t.Errorf("error lacks cell context: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Run() flushed %d records, want the 2 completed cells", len(records))
	}
	if records[0].Emoji.Name != "partyparrot" || records[1].Emoji.Name != "partyparrot" {
		t.Errorf("partial records = %v", records)
	}
	if stats.QueriesMade != 3 {
		t.Errorf("stats.QueriesMade = %d, want 3", stats.QueriesMade)
	}
}

func TestRunRecoversFromThrottling(t *testing.T) {
	api := &fakeAPI{
		custom:        map[string]string{"shipit": "https://emoji.example/s.png"},
		counts:        map[string]int{":shipit: after:2024-04-30 before:2024-06-01": 7},
		throttleFirst: true,
	}
	agg, clock := testAggregator(testConfig(1), api)

	records, stats, err := agg.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 1 || records[0].Count != 7 {
		t.Fatalf("records = %v, want one record with count 7", records)
	}
	if stats.RetriesSpent != 1 {
		t.Errorf("stats.RetriesSpent = %d, want 1", stats.RetriesSpent)
	}

	var sawRetryAfter bool
	for _, d := range clock.sleeps {
		if d == 10*time.Second {
			sawRetryAfter = true
		}
	}
	if !sawRetryAfter {
		t.Errorf("clock sleeps = %v, want a 10s Retry-After wait", clock.sleeps)
	}
}

func TestRunIncludeReactionsDoublesQueries(t *testing.T) {
	cfg := testConfig(1)
	cfg.Aggregation.IncludeReactions = true
	api := &fakeAPI{
		custom: map[string]string{"shipit": "https://emoji.example/s.png"},
		counts: map[string]int{
			":shipit: after:2024-04-30 before:2024-06-01":     4,
			"has::shipit: after:2024-04-30 before:2024-06-01": 3,
		},
	}
	agg, _ := testAggregator(cfg, api)

	records, stats, err := agg.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(api.queries) != 2 {
		t.Fatalf("made %d queries, want 2", len(api.queries))
	}
	if records[0].Count != 7 {
		t.Errorf("record count = %d, want text plus reaction total 7", records[0].Count)
	}
	if stats.QueriesMade != 2 {
		t.Errorf("stats.QueriesMade = %d, want 2", stats.QueriesMade)
	}
}

func TestRunContradictoryFiltersFailBeforeSearch(t *testing.T) {
	cfg := testConfig(1)
	cfg.Emoji.OnlyCustom = true
	cfg.Emoji.OnlyStandard = true
	api := &fakeAPI{custom: map[string]string{"shipit": "https://emoji.example/s.png"}}
	agg, _ := testAggregator(cfg, api)

	_, _, err := agg.Run()
	apiErr, ok := err.(*errors.Error)
	if !ok || apiErr.Type != errors.ErrorTypeConfig {
		t.Fatalf("Run() error = %v, want config error", err)
	}
	if len(api.queries) != 0 {
		t.Errorf("made %d searches before validation", len(api.queries))
	}
}

func TestTopEmoji(t *testing.T) {
	records := []Record{
		{Emoji: emoji.Emoji{Name: "a"}, Count: 1},
		{Emoji: emoji.Emoji{Name: "a"}, Count: 4},
		{Emoji: emoji.Emoji{Name: "b"}, Count: 3},
		{Emoji: emoji.Emoji{Name: "c"}, Count: 3},
	}

	top := topEmoji(records, 2)
	if len(top) != 2 {
		t.Fatalf("topEmoji() returned %d entries, want 2", len(top))
	}
	if top[0].name != "a" || top[0].total != 5 {
		t.Errorf("top[0] = %+v", top[0])
	}
	if top[1].name != "b" || top[1].total != 3 {
		t.Errorf("top[1] = %+v, want b before c on tie", top[1])
	}
}
