package rostergen

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fobe-ops/roster/pkg/core/model"
)

const dateLayout = "2006-01-02"
const clockLayout = "15:04"

// dayInfo is one resolved calendar day of the period.
type dayInfo struct {
	date      time.Time
	week      int // zero-based
	mainOpen  bool
	beachOpen bool
}

// calendar is the fully resolved open/closed map for the period. Week 0
// starts at start; every week spans exactly seven days.
type calendar struct {
	start time.Time
	weeks int
	days  []dayInfo
}

// OpenDay is one resolved calendar day, exposed for calendar previews.
type OpenDay struct {
	Date      string
	Week      int
	MainOpen  bool
	BeachOpen bool
}

// ResolveOpenDays resolves the period calendar without running allocation.
func ResolveOpenDays(req Request) ([]OpenDay, error) {
	cal, err := resolveCalendar(&req)
	if err != nil {
		return nil, err
	}
	out := make([]OpenDay, 0, len(cal.days))
	for _, d := range cal.days {
		out = append(out, OpenDay{
			Date:      dateKey(d.date),
			Week:      d.week,
			MainOpen:  d.mainOpen,
			BeachOpen: d.beachOpen,
		})
	}
	return out, nil
}

type seasonAnchors struct {
	victoriaDay time.Time
	june30      time.Time
	july1       time.Time
	labourDay   time.Time
	oct31       time.Time
}

// resolveCalendar snaps the requested start date forward to the configured
// week start day and classifies every day of the period.
func resolveCalendar(req *Request) (*calendar, error) {
	start, err := time.Parse(dateLayout, req.Period.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing period start date %q: %w", req.Period.StartDate, err)
	}
	if req.Period.Weeks <= 0 {
		return nil, fmt.Errorf("period must cover at least one week, got %d", req.Period.Weeks)
	}

	startIdx, ok := dayKeyIndex(req.Period.WeekStartDay)
	if !ok {
		return nil, fmt.Errorf("unknown week start day %q", req.Period.WeekStartDay)
	}
	endIdx, ok := dayKeyIndex(req.Period.WeekEndDay)
	if !ok {
		return nil, fmt.Errorf("unknown week end day %q", req.Period.WeekEndDay)
	}
	if (endIdx-startIdx+7)%7 != 6 {
		return nil, fmt.Errorf("week end day %q does not close a seven-day week starting %q",
			req.Period.WeekEndDay, req.Period.WeekStartDay)
	}

	for weekdayIndex(start) != startIdx {
		start = start.AddDate(0, 0, 1)
	}

	anchors, err := resolveSeasonAnchors(req.Season, start.Year())
	if err != nil {
		return nil, err
	}

	open := map[string]bool{}
	for _, k := range req.Options.OpenWeekdays {
		if !model.IsDayKey(k) {
			return nil, fmt.Errorf("unknown open weekday %q", k)
		}
		open[k] = true
	}

	cal := &calendar{start: start, weeks: req.Period.Weeks}
	for i := 0; i < req.Period.Weeks*7; i++ {
		d := start.AddDate(0, 0, i)
		info := dayInfo{date: d, week: i / 7}
		info.mainOpen = mainOpenOn(d, anchors, open)
		if info.mainOpen && req.Options.ScheduleBeachShop {
			info.beachOpen = isWeekend(d) || anchors.inPeak(d)
		}
		cal.days = append(cal.days, info)
	}
	return cal, nil
}

// resolveSeasonAnchors returns the four season boundary dates for the given
// year. Configured anchors are used as-is when they fall in that year;
// otherwise the civic dates are recomputed (Victoria Day is the last Monday
// on or before May 24, Labour Day the first Monday of September).
func resolveSeasonAnchors(rules model.SeasonRules, year int) (seasonAnchors, error) {
	parse := func(field, value string) (time.Time, error) {
		d, err := time.Parse(dateLayout, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing season %s %q: %w", field, value, err)
		}
		return d, nil
	}

	victoria, err := parse("victoria_day", rules.VictoriaDay)
	if err != nil {
		return seasonAnchors{}, err
	}
	june30, err := parse("june_30", rules.June30)
	if err != nil {
		return seasonAnchors{}, err
	}
	labour, err := parse("labour_day", rules.LabourDay)
	if err != nil {
		return seasonAnchors{}, err
	}
	oct31, err := parse("october_31", rules.Oct31)
	if err != nil {
		return seasonAnchors{}, err
	}

	if victoria.Year() != year {
		victoria = lastMondayOnOrBefore(time.Date(year, time.May, 24, 0, 0, 0, 0, time.UTC))
	}
	if june30.Year() != year {
		june30 = time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC)
	}
	if labour.Year() != year {
		labour = firstMondayOf(time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC))
	}
	if oct31.Year() != year {
		oct31 = time.Date(year, time.October, 31, 0, 0, 0, 0, time.UTC)
	}

	return seasonAnchors{
		victoriaDay: victoria,
		june30:      june30,
		july1:       june30.AddDate(0, 0, 1),
		labourDay:   labour,
		oct31:       oct31,
	}, nil
}

// mainOpenOn classifies one day for the main location. Days outside all
// season windows are governed only by the open-weekday set.
func mainOpenOn(d time.Time, anchors seasonAnchors, openWeekdays map[string]bool) bool {
	if len(openWeekdays) > 0 && !openWeekdays[weekdayKey(d)] {
		return false
	}
	switch {
	case between(d, anchors.victoriaDay, anchors.june30):
		return isWeekend(d)
	case between(d, anchors.july1, anchors.labourDay):
		return true
	case between(d, anchors.labourDay.AddDate(0, 0, 1), anchors.oct31):
		return isWeekend(d)
	default:
		return true
	}
}

func (a seasonAnchors) inPeak(d time.Time) bool {
	return between(d, a.july1, a.labourDay)
}

func (c *calendar) weekOf(date string) int {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return -1
	}
	offset := int(d.Sub(c.start).Hours() / 24)
	if offset < 0 || offset >= c.weeks*7 {
		return -1
	}
	return offset / 7
}

func (c *calendar) contains(d time.Time) bool {
	return c.weekOf(dateKey(d)) >= 0
}

// weekDays returns the seven dayInfo entries of the given week.
func (c *calendar) weekDays(week int) []dayInfo {
	return c.days[week*7 : week*7+7]
}

func (c *calendar) weekStart(week int) time.Time {
	return c.start.AddDate(0, 0, week*7)
}

func (c *calendar) dayAt(d time.Time) (dayInfo, bool) {
	offset := int(d.Sub(c.start).Hours() / 24)
	if offset < 0 || offset >= len(c.days) {
		return dayInfo{}, false
	}
	return c.days[offset], true
}

func between(d, lo, hi time.Time) bool {
	return !d.Before(lo) && !d.After(hi)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func lastMondayOnOrBefore(d time.Time) time.Time {
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func firstMondayOf(d time.Time) time.Time {
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// weekdayIndex maps Monday to 0 through Sunday to 6.
func weekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func weekdayKey(d time.Time) string {
	return model.DayKeys[weekdayIndex(d)]
}

func dayKeyIndex(key string) (int, bool) {
	for i, k := range model.DayKeys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

func dateKey(d time.Time) string {
	return d.Format(dateLayout)
}

// windowSpanHours returns the duration of a clock window in hours, rounded
// to two decimal places. Malformed or inverted windows yield zero.
func windowSpanHours(start, end string) float64 {
	s, err := time.Parse(clockLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(clockLayout, end)
	if err != nil {
		return 0
	}
	if !e.After(s) {
		return 0
	}
	return math.Round(e.Sub(s).Hours()*100) / 100
}

// splitWindow parses an availability window of the form "08:30-17:30".
func splitWindow(w string) (start, end string, err error) {
	i := strings.Index(w, "-")
	if i < 0 {
		return "", "", fmt.Errorf("malformed availability window %q", w)
	}
	start, end = strings.TrimSpace(w[:i]), strings.TrimSpace(w[i+1:])
	if _, err := time.Parse(clockLayout, start); err != nil {
		return "", "", fmt.Errorf("malformed availability window %q: %w", w, err)
	}
	if _, err := time.Parse(clockLayout, end); err != nil {
		return "", "", fmt.Errorf("malformed availability window %q: %w", w, err)
	}
	return start, end, nil
}

// windowCovers reports whether [outerStart, outerEnd] fully contains
// [start, end]. All four values are clock strings.
func windowCovers(outerStart, outerEnd, start, end string) bool {
	os, err := time.Parse(clockLayout, outerStart)
	if err != nil {
		return false
	}
	oe, err := time.Parse(clockLayout, outerEnd)
	if err != nil {
		return false
	}
	s, err := time.Parse(clockLayout, start)
	if err != nil {
		return false
	}
	e, err := time.Parse(clockLayout, end)
	if err != nil {
		return false
	}
	return !s.Before(os) && !e.After(oe)
}
