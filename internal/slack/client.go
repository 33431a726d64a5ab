// Package slack implements the subset of the Slack Web API used by the sync
// engine: display-name resolution, channel membership listing, and paginated
// channel history.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/models"
	"github.com/sethvargo/go-retry"
)

const (
	defaultBaseURL = "https://slack.com/api"
	// pageLimit is the Slack-recommended page size for membership and
	// history listings.
	pageLimit = 100

	channelTypes = "public_channel,private_channel"
)

// Client is a thin HTTP client over the Slack Web API. Transient failures
// (429, 5xx, network errors) are retried with exponential backoff; envelope
// errors surface as *APIError.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries uint64
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout bounds every individual API call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient returns a Client authorized with the given bot token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserInfo resolves a user's display name via users.info. The name falls back
// from profile display name to real name to the raw ID when fields are empty.
func (c *Client) UserInfo(ctx context.Context, userID string) (*models.User, error) {
	q := url.Values{}
	q.Set("user", userID)

	var resp userInfoResponse
	if err := c.call(ctx, "users.info", q, &resp); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(resp.User.Profile.DisplayName)
	if name == "" {
		name = resp.User.RealName
	}
	if name == "" {
		name = userID
	}

	return &models.User{ID: userID, Name: name}, nil
}

// UserChannels lists the IDs of every public or private channel the user is a
// member of, following users.conversations cursors until exhausted.
func (c *Client) UserChannels(ctx context.Context, userID string) ([]string, error) {
	var channels []string
	cursor := ""

	for {
		q := url.Values{}
		q.Set("user", userID)
		q.Set("limit", strconv.Itoa(pageLimit))
		q.Set("types", channelTypes)
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var resp conversationsResponse
		if err := c.call(ctx, "users.conversations", q, &resp); err != nil {
			return nil, err
		}

		for _, ch := range resp.Channels {
			if ch.ID != "" {
				channels = append(channels, ch.ID)
			}
		}

		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			return channels, nil
		}
	}
}

// History fetches one page of conversations.history for the channel, limited
// to messages at or after oldest. An empty cursor starts from the newest page.
func (c *Client) History(ctx context.Context, channelID string, oldest int64, cursor string) (*HistoryPage, error) {
	q := url.Values{}
	q.Set("channel", channelID)
	q.Set("oldest", strconv.FormatInt(oldest, 10))
	q.Set("limit", strconv.Itoa(pageLimit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var resp historyResponse
	if err := c.call(ctx, "conversations.history", q, &resp); err != nil {
		return nil, err
	}

	page := &HistoryPage{NextCursor: resp.ResponseMetadata.NextCursor}
	for _, m := range resp.Messages {
		ts, err := parseTS(m.TS)
		if err != nil {
			// bot events and thread markers carry odd ts values, skip them
			continue
		}
		page.Messages = append(page.Messages, Message{UserID: m.User, Timestamp: ts})
	}
	return page, nil
}

// call performs one GET against the API with retry on transient failures and
// decodes the envelope into out.
func (c *Client) call(ctx context.Context, method string, q url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, method, q.Encode())

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(500*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("slack: %s returned %s", method, resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("slack: %s returned %s", method, resp.Status)
		}

		return json.NewDecoder(resp.Body).Decode(out)
	})
	if err != nil {
		return err
	}

	// The HTTP layer succeeded; check the Slack envelope.
	type envelope interface{ ok() (bool, string) }
	if env, isEnv := out.(envelope); isEnv {
		if ok, reason := env.ok(); !ok {
			return &APIError{Method: method, Reason: reason}
		}
	}
	return nil
}

func parseTS(ts string) (int64, error) {
	if ts == "" {
		return 0, fmt.Errorf("empty ts")
	}
	sec, _, _ := strings.Cut(ts, ".")
	return strconv.ParseInt(sec, 10, 64)
}
