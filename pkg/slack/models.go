package slack

// SearchResponse is the envelope returned by search.messages
type SearchResponse struct {
	OK       bool            `json:"ok"`
	Error    string          `json:"error,omitempty"`
	Query    string          `json:"query,omitempty"`
	Messages *SearchMessages `json:"messages,omitempty"`
}

// SearchMessages carries the result-count metadata of a search.
// Total reports all matches regardless of the requested page size.
type SearchMessages struct {
	Total  int     `json:"total"`
	Paging *Paging `json:"paging,omitempty"`
}

// Paging describes search result pagination
type Paging struct {
	Count int `json:"count"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// EmojiListResponse is the envelope returned by emoji.list.
// Emoji maps custom emoji names to their image URLs (or alias targets).
type EmojiListResponse struct {
	OK    bool              `json:"ok"`
	Error string            `json:"error,omitempty"`
	Emoji map[string]string `json:"emoji,omitempty"`
}

// TeamInfoResponse is the envelope returned by team.info
type TeamInfoResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Team  *Team  `json:"team,omitempty"`
}

// Team holds workspace metadata
type Team struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// AuthTestResponse is the envelope returned by auth.test
type AuthTestResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	URL    string `json:"url,omitempty"`
	Team   string `json:"team,omitempty"`
	User   string `json:"user,omitempty"`
	TeamID string `json:"team_id,omitempty"`
	UserID string `json:"user_id,omitempty"`
}
