package emoji

import (
	"emojiusage/pkg/errors"
)

// Kind distinguishes platform-wide emoji from workspace-defined ones
type Kind string

const (
	KindStandard Kind = "standard"
	KindCustom   Kind = "custom"
)

// Emoji is one entry of the working set. Name is the Slack shortcode
// without the surrounding colons.
type Emoji struct {
	Name string
	Kind Kind
}

// Marker returns the :name: form used in search queries
func (e Emoji) Marker() string {
	return ":" + e.Name + ":"
}

// Options selects which emoji enter the working set.
// The Only* and No* flags are mutually exclusive in pairs.
type Options struct {
	OnlyStandard bool
	OnlyCustom   bool
	NoStandard   bool
	NoCustom     bool

	// MaxEmojis truncates the filtered set, preserving order.
	// Zero means no limit. Diagnostic affordance for cheap test runs.
	MaxEmojis int
}

// Validate rejects contradictory flag combinations. It runs before any
// network call, so a bad invocation fails without spending quota.
func (o Options) Validate() error {
	fail := func(msg string) error {
		return &errors.Error{Type: errors.ErrorTypeConfig, Message: msg}
	}

	if o.OnlyStandard && o.OnlyCustom {
		return fail("only-standard and only-custom cannot both be set")
	}
	if o.NoStandard && o.NoCustom {
		return fail("no-standard and no-custom cannot both be set")
	}
	if o.OnlyStandard && (o.NoStandard || o.NoCustom) {
		return fail("only-standard cannot be combined with exclusion flags")
	}
	if o.OnlyCustom && (o.NoStandard || o.NoCustom) {
		return fail("only-custom cannot be combined with exclusion flags")
	}
	if !o.IncludeStandard() && !o.IncludeCustom() {
		return fail("the requested filters exclude every emoji")
	}
	if o.MaxEmojis < 0 {
		return fail("max emojis cannot be negative")
	}
	return nil
}

// IncludeStandard reports whether standard emoji are selected
func (o Options) IncludeStandard() bool {
	if o.OnlyCustom {
		return false
	}
	return !o.NoStandard
}

// IncludeCustom reports whether custom emoji are selected
func (o Options) IncludeCustom() bool {
	if o.OnlyStandard {
		return false
	}
	return !o.NoCustom
}
