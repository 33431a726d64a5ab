// Package aggregate derives charting-ready series from the daily counters.
//
// # Overview
//
// BuildViews turns one counter-store range query into three parallel views:
// daily, ISO-weekly and calendar-monthly. Buckets are labeled, ordered
// chronologically and aligned per user, so a renderer can plot them without
// re-deriving anything.
//
// # Zero vs gap
//
// Every data point is a tri-state: present with a count, or absent. The
// daily view fills missing days with explicit zeros; the weekly and monthly
// views emit a gap for buckets whose aggregate is zero, so a month with
// literally nothing is not drawn as a flat zero line. The rule is carried by
// an explicit FillPolicy, not an implicit convention.
package aggregate
