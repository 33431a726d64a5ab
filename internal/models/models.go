// Package models defines the data models persisted in the database and the
// value types exchanged between the sync engine and its callers.
package models

import "time"

// User is a tracked chat-platform member. ID is the platform's stable
// identifier; Name is a best-effort resolved display name.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DailyCount is one row of the per-user, per-day message counter.
// Date is an ISO 8601 calendar day ("2006-01-02"), UTC-normalized.
type DailyCount struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
	Count  int64  `json:"count"`
}

// SyncSummary reports the outcome of one sync pass. Failed holds the IDs of
// users whose walk could not be completed; their data is simply not merged
// this pass.
type SyncSummary struct {
	PassID    string    `json:"pass_id"`
	Attempted int       `json:"attempted"`
	Succeeded []string  `json:"succeeded"`
	Failed    []string  `json:"failed"`
	From      time.Time `json:"from"`
	Until     time.Time `json:"until"`
}
