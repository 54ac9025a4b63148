package slack

const (
	// BaseURL is the base URL for the Slack Web API
	BaseURL = "https://slack.com/api"

	// SearchMessagesEndpoint reports a match total for a search query
	SearchMessagesEndpoint = "/search.messages"

	// EmojiListEndpoint returns the workspace's custom emoji mapping
	EmojiListEndpoint = "/emoji.list"

	// TeamInfoEndpoint returns workspace metadata (diagnostics only)
	TeamInfoEndpoint = "/team.info"

	// AuthTestEndpoint validates the configured token
	AuthTestEndpoint = "/auth.test"

	// searchCount is the page size requested on searches. The match
	// total in the response is independent of page size, so the
	// smallest page keeps responses cheap.
	searchCount = "1"
)
