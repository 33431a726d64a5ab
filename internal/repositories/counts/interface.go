package counts

import "context"

// Repository describes persistence operations for the per-user, per-day
// message counters.
type Repository interface {
	// UpsertBatch writes all day counts for one user as a single transaction.
	// Existing (user, date) rows are replaced, not added to: every sync pass
	// recomputes full per-day totals for the days it touches. The batch either
	// fully applies or not at all.
	UpsertBatch(ctx context.Context, userID string, byDate map[string]int64) error

	// QueryRange returns counters for the inclusive [startDate, endDate]
	// window as userID → date → count. Dates are ISO 8601 days ("2006-01-02").
	// Absent entries mean zero.
	QueryRange(ctx context.Context, startDate, endDate string) (map[string]map[string]int64, error)
}
