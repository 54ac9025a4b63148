package aggregator

import (
	"emojiusage/pkg/emoji"
	"emojiusage/pkg/period"
)

// Record is one cell of the usage matrix: how many matching messages
// one emoji had in one calendar month.
type Record struct {
	Emoji  emoji.Emoji
	Period period.Period
	Count  int
}

// Stats summarizes a completed (or aborted) aggregation run
type Stats struct {
	EmojiCount   int
	MonthCount   int
	QueriesMade  int
	TotalUsage   int
	RetriesSpent int
}
