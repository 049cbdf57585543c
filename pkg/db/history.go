package db

import (
	"fmt"
	"math"
	"time"

	"github.com/fobe-ops/roster/pkg/core/model"
)

const dateLayout = "2006-01-02"
const clockLayout = "15:04"

// BuildHistoricalAggregates folds stored assignment rows into the weekly
// summaries the engine's fairness pass consumes. Week starts are aligned to
// the new period's grid: the week containing periodStart minus seven days
// keys as periodStart minus seven days, and so on backwards. Rows on or
// after periodStart are ignored.
func BuildHistoricalAggregates(rows []ScheduleAssignment, periodStart string) (model.HistoricalAggregates, error) {
	start, err := time.Parse(dateLayout, periodStart)
	if err != nil {
		return model.HistoricalAggregates{}, fmt.Errorf("parsing period start %q: %w", periodStart, err)
	}

	agg := model.EmptyHistory()

	// Per employee per date, only the longest span counts toward hours.
	daySpans := map[model.WeekEmployee]map[string]float64{}
	leaderDates := map[model.WeekEmployee]map[string]bool{}

	for _, row := range rows {
		d, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			return model.HistoricalAggregates{}, fmt.Errorf("parsing assignment date %q: %w", row.Date, err)
		}
		if !d.Before(start) {
			continue
		}

		weekOffset := int(math.Floor(d.Sub(start).Hours() / 24 / 7))
		weekStart := start.AddDate(0, 0, weekOffset*7)
		key := model.WeekEmployee{WeekStart: weekStart.Format(dateLayout), EmployeeID: row.EmployeeID}

		if agg.WorkedDays[key] == nil {
			agg.WorkedDays[key] = map[string]bool{}
		}
		agg.WorkedDays[key][row.Date] = true

		if row.Role == string(model.RoleTeamLeader) && row.Location == string(model.LocationGreystones) {
			if leaderDates[key] == nil {
				leaderDates[key] = map[string]bool{}
			}
			leaderDates[key][row.Date] = true
		}

		if daySpans[key] == nil {
			daySpans[key] = map[string]float64{}
		}
		if span := shiftSpanHours(row.StartTime, row.EndTime); span > daySpans[key][row.Date] {
			daySpans[key][row.Date] = span
		}
	}

	for key, days := range daySpans {
		for _, span := range days {
			agg.WeeklyHours[key] += span
		}
	}
	for key, dates := range leaderDates {
		agg.LeaderDays[key] = len(dates)
	}

	return agg, nil
}

func shiftSpanHours(start, end string) float64 {
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
