package slack

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"emojiusage/pkg/errors"
	"emojiusage/pkg/logger"
)

// Client is a minimal Slack Web API client covering the endpoints the
// aggregation needs. It performs no pacing or retrying itself; callers
// wrap it in the retry policy.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a new Slack API client
func NewClient(token string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		token:   token,
		baseURL: BaseURL,
		logger:  log,
	}
}

// SetBaseURL overrides the API base URL (used by tests)
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// SearchCount submits a search query and returns the total number of
// matching messages from the response metadata, without enumerating
// the matches themselves.
func (c *Client) SearchCount(query string) (int, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("count", searchCount)

	c.logger.DebugWithFields("searching messages", map[string]interface{}{
		"query": query,
	})

	var resp SearchResponse
	if err := c.callAPI(SearchMessagesEndpoint, params, &resp); err != nil {
		return 0, err
	}
	if !resp.OK {
		return 0, c.apiError(SearchMessagesEndpoint, resp.Error)
	}

	total := 0
	if resp.Messages != nil {
		total = resp.Messages.Total
	}

	c.logger.DebugWithFields("search completed", map[string]interface{}{
		"query": query,
		"total": total,
	})

	return total, nil
}

// ListCustomEmoji fetches the workspace's custom emoji name to URL mapping
func (c *Client) ListCustomEmoji() (map[string]string, error) {
	c.logger.Debug("fetching custom emoji list")

	var resp EmojiListResponse
	if err := c.callAPI(EmojiListEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, c.apiError(EmojiListEndpoint, resp.Error)
	}

	c.logger.InfoWithFields("custom emoji fetched", map[string]interface{}{
		"count": len(resp.Emoji),
	})

	return resp.Emoji, nil
}

// TeamInfo fetches workspace metadata
func (c *Client) TeamInfo() (*Team, error) {
	var resp TeamInfoResponse
	if err := c.callAPI(TeamInfoEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, c.apiError(TeamInfoEndpoint, resp.Error)
	}
	if resp.Team == nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: "team.info response carried no team object",
		}
	}
	return resp.Team, nil
}

// AuthTest validates the configured token and identifies its workspace
func (c *Client) AuthTest() (*AuthTestResponse, error) {
	var resp AuthTestResponse
	if err := c.callAPI(AuthTestEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, c.apiError(AuthTestEndpoint, resp.Error)
	}
	return &resp, nil
}

// callAPI performs one GET request against the Web API and decodes the
// JSON envelope into target.
func (c *Client) callAPI(endpoint string, params url.Values, target interface{}) error {
	apiURL := c.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
		}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
			"duration": duration,
		})
		return &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
		}
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if err := c.checkResponseStatus(resp, endpoint); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"endpoint":     endpoint,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return nil
}

// checkResponseStatus maps HTTP-level failures to typed errors
func (c *Client) checkResponseStatus(resp *http.Response, endpoint string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp)
		logger.LogRateLimit(c.logger, endpoint, retryAfter)
		return &errors.Error{
			Type:       errors.ErrorTypeRateLimit,
			Message:    "rate limit exceeded",
			Code:       resp.StatusCode,
			RetryAfter: retryAfter,
		}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &errors.Error{
			Type:    errors.ErrorTypeAuth,
			Message: "credential rejected by the platform",
			Code:    resp.StatusCode,
		}
	case resp.StatusCode == http.StatusNotFound:
		return &errors.Error{
			Type:    errors.ErrorTypeNotFound,
			Message: "endpoint not found",
			Code:    resp.StatusCode,
		}
	case resp.StatusCode >= 500:
		return &errors.Error{
			Type:    errors.ErrorTypeServerError,
			Message: "server error",
			Code:    resp.StatusCode,
		}
	default:
		return &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}
}

// apiError maps an ok:false API error code to a typed error. Slack can
// report throttling and auth failures inside a 200 envelope as well.
func (c *Client) apiError(endpoint, code string) error {
	c.logger.WarnWithFields("API returned error", map[string]interface{}{
		"endpoint": endpoint,
		"error":    code,
	})

	switch code {
	case "invalid_auth", "not_authed", "token_revoked", "token_expired", "account_inactive", "missing_scope":
		return &errors.Error{
			Type:    errors.ErrorTypeAuth,
			Message: code,
			Code:    http.StatusOK,
		}
	case "ratelimited", "rate_limited":
		return &errors.Error{
			Type:    errors.ErrorTypeRateLimit,
			Message: code,
			Code:    http.StatusOK,
		}
	default:
		return &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: code,
			Code:    http.StatusOK,
		}
	}
}

// parseRetryAfter reads the advisory wait from a throttling response.
// Returns zero when the header is absent or malformed.
func parseRetryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
