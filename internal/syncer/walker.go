package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/models"
	"github.com/dmitrijs2005/slackpulse/internal/slack"
)

// MessageSource is the chat-platform capability the sync engine depends on.
// *slack.Client satisfies it; tests substitute fakes.
type MessageSource interface {
	// UserInfo resolves a user's display name.
	UserInfo(ctx context.Context, userID string) (*models.User, error)

	// UserChannels lists IDs of all channels the user is a member of.
	UserChannels(ctx context.Context, userID string) ([]string, error)

	// History fetches one page of channel history at or after oldest.
	History(ctx context.Context, channelID string, oldest int64, cursor string) (*slack.HistoryPage, error)
}

// DefaultMaxPagesPerChannel caps how many history pages one channel walk may
// fetch. At 100 messages per page this allows 10k messages per channel per
// pass.
const DefaultMaxPagesPerChannel = 100

// Walker produces one user's per-day message counts for a given lower time
// bound by walking every channel the user is a member of.
type Walker struct {
	src      MessageSource
	maxPages int
}

// NewWalker returns a Walker over src. maxPagesPerChannel <= 0 selects
// DefaultMaxPagesPerChannel.
func NewWalker(src MessageSource, maxPagesPerChannel int) *Walker {
	if maxPagesPerChannel <= 0 {
		maxPagesPerChannel = DefaultMaxPagesPerChannel
	}
	return &Walker{src: src, maxPages: maxPagesPerChannel}
}

// Walk returns date → count of messages authored by userID at or after
// oldest, bucketed by UTC calendar day. Any source error aborts the whole
// walk: partial per-user results are never returned.
func (w *Walker) Walk(ctx context.Context, userID string, oldest time.Time) (map[string]int64, error) {
	channels, err := w.src.UserChannels(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch failed for user %s: %w", userID, err)
	}

	oldestUnix := oldest.Unix()
	byDate := make(map[string]int64)

	for _, channelID := range channels {
		pager := slack.NewHistoryPager(func(ctx context.Context, cursor string) (*slack.HistoryPage, error) {
			return w.src.History(ctx, channelID, oldestUnix, cursor)
		})

		for fetched := 0; fetched < w.maxPages; fetched++ {
			page, err := pager.Next(ctx)
			if err != nil {
				return nil, fmt.Errorf("fetch failed for user %s: %w", userID, err)
			}
			if page == nil {
				break
			}

			for _, msg := range page.Messages {
				if msg.UserID != userID || msg.Timestamp < oldestUnix {
					continue
				}
				date := time.Unix(msg.Timestamp, 0).UTC().Format(time.DateOnly)
				byDate[date]++
			}
		}
	}

	return byDate, nil
}
