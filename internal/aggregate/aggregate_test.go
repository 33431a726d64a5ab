package aggregate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var u1 = models.User{ID: "U1", Name: "alice"}

func TestRange_InclusiveUTCBounds(t *testing.T) {
	start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	got := Range(start, end)
	assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}, got)
}

func TestLastNDays_CoversToday(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	got := LastNDays(3, now)
	assert.Equal(t, []string{"2024-03-08", "2024-03-09", "2024-03-10"}, got)
}

func TestBuildViews_DailyFillsZeros(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	counts := map[string]map[string]int64{
		"U1": {"2024-01-01": 3, "2024-01-03": 5},
	}

	views, err := BuildViews(counts, []models.User{u1}, dates)
	require.NoError(t, err)

	assert.Equal(t, dates, views.Day.Labels)
	assert.Equal(t, []Point{
		{Count: 3, Present: true},
		{Count: 0, Present: true}, // missing day is an explicit zero
		{Count: 5, Present: true},
	}, views.Day.PerUser["U1"])
}

func TestBuildViews_WeeklySumsOneISOWeek(t *testing.T) {
	// 2024-01-01 is a Monday: these seven days are exactly ISO week 1 of 2024
	dates := Range(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
	)
	daily := []int64{1, 0, 2, 0, 0, 0, 3}
	counts := map[string]map[string]int64{"U1": {}}
	for i, d := range dates {
		counts["U1"][d] = daily[i]
	}

	views, err := BuildViews(counts, []models.User{u1}, dates)
	require.NoError(t, err)

	require.Equal(t, []string{"Week 1, 2024"}, views.Week.Labels)
	assert.Equal(t, []Point{{Count: 6, Present: true}}, views.Week.PerUser["U1"],
		"a week with activity sums to its total, not zero and not a gap")
}

func TestBuildViews_AllZeroWeekIsGapDailyIsZeros(t *testing.T) {
	// ISO week 2 of 2024 with no activity at all
	dates := Range(
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
	)
	counts := map[string]map[string]int64{}

	views, err := BuildViews(counts, []models.User{u1}, dates)
	require.NoError(t, err)

	require.Equal(t, []string{"Week 2, 2024"}, views.Week.Labels)
	assert.Equal(t, []Point{{}}, views.Week.PerUser["U1"],
		"an all-zero week must be absent, not a zero-height point")

	for _, p := range views.Day.PerUser["U1"] {
		assert.True(t, p.Present, "daily zeros stay explicit")
		assert.Zero(t, p.Count)
	}
}

func TestBuildViews_WeeksOrderedChronologically(t *testing.T) {
	// late December 2020 runs into ISO week 53 of 2020, then week 1 of 2021
	dates := Range(
		time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 10, 0, 0, 0, 0, time.UTC),
	)
	counts := map[string]map[string]int64{
		"U1": {"2020-12-28": 1, "2021-01-04": 2},
	}

	views, err := BuildViews(counts, []models.User{u1}, dates)
	require.NoError(t, err)

	assert.Equal(t, []string{"Week 53, 2020", "Week 1, 2021"}, views.Week.Labels)
	assert.Equal(t, []Point{
		{Count: 1, Present: true},
		{Count: 2, Present: true},
	}, views.Week.PerUser["U1"])
}

func TestBuildViews_MonthlyLabelsAndSums(t *testing.T) {
	dates := Range(
		time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	)
	counts := map[string]map[string]int64{
		"U1": {
			"2024-01-30": 2,
			"2024-01-31": 3,
			"2024-03-01": 7,
		},
	}

	views, err := BuildViews(counts, []models.User{u1}, dates)
	require.NoError(t, err)

	require.Equal(t, []string{"January 2024", "February 2024", "March 2024"}, views.Month.Labels)
	assert.Equal(t, []Point{
		{Count: 5, Present: true},
		{}, // February has nothing: gap
		{Count: 7, Present: true},
	}, views.Month.PerUser["U1"])
}

func TestBuildViews_TooManySeries(t *testing.T) {
	users := make([]models.User, MaxSeries+1)
	for i := range users {
		users[i] = models.User{ID: string(rune('A' + i))}
	}

	_, err := BuildViews(nil, users, []string{"2024-01-01"})
	require.Error(t, err)

	var tooMany *TooManySeriesError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 6, tooMany.Requested)
	assert.Equal(t, 5, tooMany.Limit)
	assert.Contains(t, err.Error(), "6")
	assert.Contains(t, err.Error(), "5")
}

func TestPoint_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal([]Point{{Count: 4, Present: true}, {}})
	require.NoError(t, err)
	assert.JSONEq(t, `[4, null]`, string(b))

	var pts []Point
	require.NoError(t, json.Unmarshal([]byte(`[4, null]`), &pts))
	assert.Equal(t, []Point{{Count: 4, Present: true}, {}}, pts)
}

func TestSeriesColor_StrokeIsOpaqueFill(t *testing.T) {
	fill, stroke := SeriesColor(0)
	assert.Equal(t, "rgba(0, 114, 178, 0.6)", fill)
	assert.Equal(t, "rgba(0, 114, 178, 1)", stroke)

	// wraps past the palette end
	wrapFill, _ := SeriesColor(len(Palette))
	assert.Equal(t, fill, wrapFill)
}
