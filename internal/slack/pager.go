package slack

import "context"

// FetchPage fetches one history page for an opaque cursor. An empty cursor
// means "start from the newest page".
type FetchPage func(ctx context.Context, cursor string) (*HistoryPage, error)

// HistoryPager walks channel history as a lazy sequence of pages. Each call
// to Next fetches exactly one page; after the source reports no further
// cursor, Next returns (nil, nil). Creating a new pager restarts the walk,
// so callers can cap the number of pages they consume.
type HistoryPager struct {
	fetch  FetchPage
	cursor string
	done   bool
}

// NewHistoryPager returns a pager over the pages produced by fetch.
func NewHistoryPager(fetch FetchPage) *HistoryPager {
	return &HistoryPager{fetch: fetch}
}

// HistoryPager returns a pager over the channel's history pages, newest
// first, limited to messages at or after oldest.
func (c *Client) HistoryPager(channelID string, oldest int64) *HistoryPager {
	return NewHistoryPager(func(ctx context.Context, cursor string) (*HistoryPage, error) {
		return c.History(ctx, channelID, oldest, cursor)
	})
}

// Next fetches the next page, or (nil, nil) once the sequence is exhausted.
func (p *HistoryPager) Next(ctx context.Context) (*HistoryPage, error) {
	if p.done {
		return nil, nil
	}

	page, err := p.fetch(ctx, p.cursor)
	if err != nil {
		return nil, err
	}

	p.cursor = page.NextCursor
	if p.cursor == "" {
		p.done = true
	}
	return page, nil
}
