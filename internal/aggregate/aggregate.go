package aggregate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/models"
)

// Palette is the colorblind-friendly fill palette (Wong, 2011). Its length is
// the hard ceiling on how many user series one chart may carry.
var Palette = []string{
	"rgba(0, 114, 178, 0.6)",   // blue
	"rgba(230, 159, 0, 0.6)",   // orange
	"rgba(0, 158, 115, 0.6)",   // green
	"rgba(204, 121, 167, 0.6)", // purple
	"rgba(213, 94, 0, 0.6)",    // vermillion
}

// MaxSeries is the largest number of per-user series a single request may ask
// for, bounded by the palette.
var MaxSeries = len(Palette)

// TooManySeriesError rejects a request for more user series than the palette
// can distinguish.
type TooManySeriesError struct {
	Requested int
	Limit     int
}

func (e *TooManySeriesError) Error() string {
	return fmt.Sprintf("too many users (%d): at most %d series are supported", e.Requested, e.Limit)
}

// FillPolicy decides how a bucket with no underlying activity is represented.
type FillPolicy int

const (
	// FillZero emits an explicit zero-valued point for empty buckets.
	FillZero FillPolicy = iota
	// GapWhenEmpty emits an absent point for buckets whose aggregate is
	// zero, so the renderer leaves a gap instead of drawing a zero.
	GapWhenEmpty
)

// Point is one tri-state chart value: present with a count, or absent.
// It marshals as a JSON number or null.
type Point struct {
	Count   int64
	Present bool
}

func (p Point) MarshalJSON() ([]byte, error) {
	if !p.Present {
		return []byte("null"), nil
	}
	return json.Marshal(p.Count)
}

func (p *Point) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Point{}
		return nil
	}
	if err := json.Unmarshal(b, &p.Count); err != nil {
		return err
	}
	p.Present = true
	return nil
}

// Series is one aggregated view: ordered bucket labels plus, for every user,
// a sequence of points aligned 1:1 with the labels.
type Series struct {
	Labels  []string           `json:"labels"`
	PerUser map[string][]Point `json:"per_user"`
}

// Views bundles the three parallel aggregations of one date range.
type Views struct {
	Day   Series `json:"day"`
	Week  Series `json:"week"`
	Month Series `json:"month"`
}

// Range enumerates every UTC calendar day of the inclusive [start, end]
// interval as ISO 8601 dates.
func Range(start, end time.Time) []string {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(time.DateOnly))
	}
	return dates
}

// LastNDays returns the date range covering the n days up to and including
// today, mirroring the 90-day default chart window.
func LastNDays(n int, now time.Time) []string {
	end := now.UTC()
	return Range(end.AddDate(0, 0, -(n-1)), end)
}

// bucketer maps a calendar day to a sortable bucket key and a display label.
type bucketer func(day time.Time) (key, label string)

func dayBucket(day time.Time) (string, string) {
	d := day.Format(time.DateOnly)
	return d, d
}

func weekBucket(day time.Time) (string, string) {
	year, week := day.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week), fmt.Sprintf("Week %d, %d", week, year)
}

func monthBucket(day time.Time) (string, string) {
	return day.Format("2006-01"), day.Format("January 2006")
}

// BuildViews turns a counter-store range result into the three chart views
// for the given users over the given date range. It rejects requests for
// more users than the palette supports.
func BuildViews(byUser map[string]map[string]int64, users []models.User, dates []string) (*Views, error) {
	if len(users) > MaxSeries {
		return nil, &TooManySeriesError{Requested: len(users), Limit: MaxSeries}
	}

	day, err := buildSeries(byUser, users, dates, dayBucket, FillZero)
	if err != nil {
		return nil, err
	}
	week, err := buildSeries(byUser, users, dates, weekBucket, GapWhenEmpty)
	if err != nil {
		return nil, err
	}
	month, err := buildSeries(byUser, users, dates, monthBucket, GapWhenEmpty)
	if err != nil {
		return nil, err
	}

	return &Views{Day: *day, Week: *week, Month: *month}, nil
}

func buildSeries(byUser map[string]map[string]int64, users []models.User, dates []string, bucket bucketer, policy FillPolicy) (*Series, error) {
	keys := make([]string, 0, len(dates))
	labels := make(map[string]string)
	sums := make(map[string]map[string]int64, len(users))
	for _, u := range users {
		sums[u.ID] = make(map[string]int64)
	}

	for _, dateStr := range dates {
		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", dateStr, err)
		}

		key, label := bucket(date)
		if _, seen := labels[key]; !seen {
			labels[key] = label
			keys = append(keys, key)
		}

		for _, u := range users {
			sums[u.ID][key] += byUser[u.ID][dateStr]
		}
	}

	// bucket keys sort chronologically by construction
	sort.Strings(keys)

	series := &Series{
		Labels:  make([]string, len(keys)),
		PerUser: make(map[string][]Point, len(users)),
	}
	for i, key := range keys {
		series.Labels[i] = labels[key]
	}

	for _, u := range users {
		points := make([]Point, len(keys))
		for i, key := range keys {
			sum := sums[u.ID][key]
			switch policy {
			case GapWhenEmpty:
				if sum > 0 {
					points[i] = Point{Count: sum, Present: true}
				}
			default:
				points[i] = Point{Count: sum, Present: true}
			}
		}
		series.PerUser[u.ID] = points
	}

	return series, nil
}

// SeriesColor returns the fill and stroke colors for the series at index i.
// The stroke is the fill at full opacity.
func SeriesColor(i int) (fill, stroke string) {
	fill = Palette[i%len(Palette)]
	stroke = strings.Replace(fill, "0.6", "1", 1)
	return fill, stroke
}
