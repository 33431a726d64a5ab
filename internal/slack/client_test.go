package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient("xoxb-test", WithBaseURL(ts.URL), WithMaxRetries(1))
}

func TestUserInfo_NameFallbacks(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		realName    string
		want        string
	}{
		{name: "prefers display name", displayName: "ali", realName: "Alice Q", want: "ali"},
		{name: "falls back to real name", displayName: "  ", realName: "Alice Q", want: "Alice Q"},
		{name: "falls back to id", displayName: "", realName: "", want: "U1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/users.info", r.URL.Path)
				require.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))
				require.Equal(t, "U1", r.URL.Query().Get("user"))

				fmt.Fprintf(w, `{"ok":true,"user":{"real_name":%q,"profile":{"display_name":%q}}}`,
					tc.realName, tc.displayName)
			}))

			u, err := c.UserInfo(context.Background(), "U1")
			require.NoError(t, err)
			assert.Equal(t, "U1", u.ID)
			assert.Equal(t, tc.want, u.Name)
		})
	}
}

func TestUserInfo_EnvelopeError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"error":"user_not_found"}`)
	}))

	_, err := c.UserInfo(context.Background(), "U404")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "users.info", apiErr.Method)
	assert.Equal(t, "user_not_found", apiErr.Reason)
}

func TestUserChannels_FollowsCursor(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users.conversations", r.URL.Path)
		require.Equal(t, "public_channel,private_channel", r.URL.Query().Get("types"))

		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"ok":true,"channels":[{"id":"C1"},{"id":"C2"}],"response_metadata":{"next_cursor":"page2"}}`)
		case "page2":
			fmt.Fprint(w, `{"ok":true,"channels":[{"id":"C3"}],"response_metadata":{"next_cursor":""}}`)
		default:
			t.Fatalf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))

	got, err := c.UserChannels(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "C2", "C3"}, got)
}

func TestHistory_ParsesMessages(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations.history", r.URL.Path)
		require.Equal(t, "C1", r.URL.Query().Get("channel"))
		require.Equal(t, "1700000000", r.URL.Query().Get("oldest"))

		fmt.Fprint(w, `{"ok":true,"messages":[
			{"user":"U1","ts":"1700000100.000200"},
			{"user":"U2","ts":"1700000200.001000"},
			{"user":"U1","ts":""}
		],"response_metadata":{"next_cursor":"abc"}}`)
	}))

	page, err := c.History(context.Background(), "C1", 1700000000, "")
	require.NoError(t, err)
	assert.Equal(t, "abc", page.NextCursor)
	// the message with an empty ts is dropped
	require.Len(t, page.Messages, 2)
	assert.Equal(t, Message{UserID: "U1", Timestamp: 1700000100}, page.Messages[0])
	assert.Equal(t, Message{UserID: "U2", Timestamp: 1700000200}, page.Messages[1])
}

func TestCall_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"ok":true,"user":{"real_name":"Alice"}}`)
	}))

	u, err := c.UserInfo(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCall_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.UserInfo(context.Background(), "U1")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHistoryPager_ExhaustsAndStops(t *testing.T) {
	pages := []*HistoryPage{
		{Messages: []Message{{UserID: "U1", Timestamp: 1}}, NextCursor: "c2"},
		{Messages: []Message{{UserID: "U1", Timestamp: 2}}, NextCursor: ""},
	}

	var fetched []string
	p := NewHistoryPager(func(ctx context.Context, cursor string) (*HistoryPage, error) {
		fetched = append(fetched, cursor)
		if cursor == "" {
			return pages[0], nil
		}
		return pages[1], nil
	})

	ctx := context.Background()

	first, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, pages[0], first)

	second, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, pages[1], second)

	done, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Nil(t, done)

	assert.Equal(t, []string{"", "c2"}, fetched)
}

func TestHistoryPager_OverClient(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"ok":       true,
			"messages": []map[string]any{{"user": "U1", "ts": "1700000100.000100"}},
			"response_metadata": map[string]any{
				"next_cursor": "",
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))

	p := c.HistoryPager("C1", 1700000000)

	page, err := p.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)

	page, err = p.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, page)
}
