package emoji

import (
	"sort"

	"emojiusage/pkg/logger"
)

// CustomLister fetches the workspace's custom emoji names. Satisfied by
// the Slack client, wrapped in the retry pipeline by the caller.
type CustomLister interface {
	ListCustomEmoji() (map[string]string, error)
}

// Catalog builds the working set of emoji for an aggregation run:
// the standard reference set merged with the workspace's custom emoji,
// filtered per Options.
type Catalog struct {
	lister CustomLister
	logger logger.Logger
}

func NewCatalog(lister CustomLister, log logger.Logger) *Catalog {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Catalog{lister: lister, logger: log}
}

// WorkingSet returns the filtered, ordered emoji list. Standard emoji
// come first in reference order, then custom emoji sorted by name.
// A custom emoji that reuses a standard name shadows the standard one,
// matching how Slack renders the collision.
//
// Filters are validated before any network access.
func (c *Catalog) WorkingSet(opts Options) ([]Emoji, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var customNames []string
	customSet := make(map[string]struct{})
	if opts.IncludeCustom() {
		custom, err := c.lister.ListCustomEmoji()
		if err != nil {
			return nil, err
		}
		customNames = make([]string, 0, len(custom))
		for name := range custom {
			customNames = append(customNames, name)
			customSet[name] = struct{}{}
		}
		sort.Strings(customNames)
		c.logger.WithField("count", len(customNames)).Debug("Fetched custom emoji list")
	}

	var set []Emoji
	if opts.IncludeStandard() {
		for _, name := range standardNames {
			if _, shadowed := customSet[name]; shadowed {
				continue
			}
			set = append(set, Emoji{Name: name, Kind: KindStandard})
		}
	}
	for _, name := range customNames {
		set = append(set, Emoji{Name: name, Kind: KindCustom})
	}

	if opts.MaxEmojis > 0 && len(set) > opts.MaxEmojis {
		c.logger.WithFields(map[string]interface{}{
			"total": len(set),
			"limit": opts.MaxEmojis,
		}).Warn("Truncating emoji working set")
		set = set[:opts.MaxEmojis]
	}

	c.logger.WithField("count", len(set)).Info("Emoji working set assembled")
	return set, nil
}
