package slack

import "fmt"

// Message is the subset of a Slack message the sync engine cares about.
type Message struct {
	// UserID is the author of the message.
	UserID string
	// Timestamp is the message time in Unix seconds (Slack "ts" with the
	// fractional part dropped).
	Timestamp int64
}

// HistoryPage is one page of channel history. NextCursor is empty on the
// last page.
type HistoryPage struct {
	Messages   []Message
	NextCursor string
}

// APIError is a Slack envelope error ("ok": false) for a given API method.
type APIError struct {
	Method string
	Reason string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack: %s failed: %s", e.Method, e.Reason)
}

// apiEnvelope is the common "ok"/"error" pair every Web API response carries.
type apiEnvelope struct {
	OK       bool   `json:"ok"`
	ErrorMsg string `json:"error"`
}

func (e apiEnvelope) ok() (bool, string) {
	return e.OK, e.ErrorMsg
}

type userInfoResponse struct {
	apiEnvelope
	User struct {
		RealName string `json:"real_name"`
		Profile  struct {
			DisplayName string `json:"display_name"`
		} `json:"profile"`
	} `json:"user"`
}

type conversationsResponse struct {
	apiEnvelope
	Channels []struct {
		ID string `json:"id"`
	} `json:"channels"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}

type historyResponse struct {
	apiEnvelope
	Messages []struct {
		User string `json:"user"`
		TS   string `json:"ts"`
	} `json:"messages"`
	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	} `json:"response_metadata"`
}
