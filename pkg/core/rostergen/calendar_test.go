package rostergen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCalendar_SnapsStartForward(t *testing.T) {
	req := baseRequest(1, "mon")
	req.Period.StartDate = "2026-01-07" // a Wednesday

	cal, err := resolveCalendar(&req)
	require.NoError(t, err)

	// Snapped forward to the next Monday.
	assert.Equal(t, "2026-01-12", dateKey(cal.start))
}

func TestResolveCalendar_RejectsBrokenWeekPair(t *testing.T) {
	req := baseRequest(1, "mon")
	req.Period.WeekEndDay = "fri"

	_, err := resolveCalendar(&req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seven-day week")
}

func TestResolveCalendar_OffSeasonFollowsOpenWeekdays(t *testing.T) {
	req := baseRequest(2, "mon", "tue")

	cal, err := resolveCalendar(&req)
	require.NoError(t, err)

	var open []string
	for _, d := range cal.days {
		if d.mainOpen {
			open = append(open, dateKey(d.date))
		}
	}
	// January sits outside every season window, so the weekday set governs.
	assert.Equal(t, []string{"2026-01-05", "2026-01-06", "2026-01-12", "2026-01-13"}, open)
}

func TestResolveCalendar_SpringIsWeekendOnly(t *testing.T) {
	req := baseRequest(1)
	req.Period.StartDate = "2026-05-18" // between Victoria Day and June 30

	cal, err := resolveCalendar(&req)
	require.NoError(t, err)

	for _, d := range cal.days {
		assert.Equal(t, isWeekend(d.date), d.mainOpen, dateKey(d.date))
	}
}

func TestResolveCalendar_PeakOpensEveryDay(t *testing.T) {
	req := baseRequest(1)
	req.Period.StartDate = "2026-07-06"
	req.Options.ScheduleBeachShop = true

	cal, err := resolveCalendar(&req)
	require.NoError(t, err)

	for _, d := range cal.days {
		assert.True(t, d.mainOpen, dateKey(d.date))
		assert.True(t, d.beachOpen, dateKey(d.date))
	}
}

func TestResolveCalendar_BeachWeekendOnlyOffPeak(t *testing.T) {
	req := baseRequest(1)
	req.Options.ScheduleBeachShop = true

	cal, err := resolveCalendar(&req)
	require.NoError(t, err)

	for _, d := range cal.days {
		assert.Equal(t, isWeekend(d.date), d.beachOpen, dateKey(d.date))
	}
}

func TestResolveSeasonAnchors_RecomputedForPeriodYear(t *testing.T) {
	rules := testSeason()
	rules.VictoriaDay = "2024-05-20"
	rules.LabourDay = "2024-09-02"
	rules.June30 = "2024-06-30"
	rules.Oct31 = "2024-10-31"

	anchors, err := resolveSeasonAnchors(rules, 2026)
	require.NoError(t, err)

	assert.Equal(t, "2026-05-18", dateKey(anchors.victoriaDay))
	assert.Equal(t, "2026-09-07", dateKey(anchors.labourDay))
	assert.Equal(t, "2026-06-30", dateKey(anchors.june30))
	assert.Equal(t, "2026-07-01", dateKey(anchors.july1))
	assert.Equal(t, "2026-10-31", dateKey(anchors.oct31))
}

func TestCalendar_WeekOf(t *testing.T) {
	req := baseRequest(2, "mon")
	cal, err := resolveCalendar(&req)
	require.NoError(t, err)

	assert.Equal(t, 0, cal.weekOf("2026-01-05"))
	assert.Equal(t, 0, cal.weekOf("2026-01-11"))
	assert.Equal(t, 1, cal.weekOf("2026-01-12"))
	assert.Equal(t, -1, cal.weekOf("2026-01-19"))
	assert.Equal(t, -1, cal.weekOf("2026-01-04"))
	assert.Equal(t, -1, cal.weekOf("not-a-date"))
}

func TestWindowSpanHours(t *testing.T) {
	assert.Equal(t, 8.0, windowSpanHours("09:00", "17:00"))
	assert.Equal(t, 8.5, windowSpanHours("09:00", "17:30"))
	assert.Equal(t, 0.0, windowSpanHours("17:00", "09:00"))
	assert.Equal(t, 0.0, windowSpanHours("bad", "17:00"))
}

func TestSplitWindow(t *testing.T) {
	start, end, err := splitWindow("08:30-17:30")
	require.NoError(t, err)
	assert.Equal(t, "08:30", start)
	assert.Equal(t, "17:30", end)

	_, _, err = splitWindow("08:30")
	assert.Error(t, err)
}

func TestWeekdayKey(t *testing.T) {
	mon := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "mon", weekdayKey(mon))
	assert.Equal(t, "sun", weekdayKey(mon.AddDate(0, 0, 6)))
}
