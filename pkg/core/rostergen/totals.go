package rostergen

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fobe-ops/roster/pkg/core/model"
)

// computeTotals re-derives employee totals and the hour and manager
// compliance violations from the final assignment set. Nothing here reads
// allocation-time state beyond the assignments themselves, so layered
// ad-hoc bookings and backfill shifts are counted identically to generated
// ones.
func (s *scheduleState) computeTotals() (map[string]*EmployeeTotals, []Violation) {
	spans := map[string]map[string]float64{}   // employee -> date -> max span
	mainDay := map[string]map[string]bool{}    // employee -> date worked outside the Beach Shop
	locShifts := map[string]map[model.Location]int{}

	for _, a := range s.assignments {
		if spans[a.EmployeeID] == nil {
			spans[a.EmployeeID] = map[string]float64{}
			mainDay[a.EmployeeID] = map[string]bool{}
			locShifts[a.EmployeeID] = map[model.Location]int{}
		}
		if span := windowSpanHours(a.Start, a.End); span > spans[a.EmployeeID][a.Date] {
			spans[a.EmployeeID][a.Date] = span
		}
		if a.Location != model.LocationBeachShop {
			mainDay[a.EmployeeID][a.Date] = true
		}
		locShifts[a.EmployeeID][a.Location]++
	}

	totals := map[string]*EmployeeTotals{}
	for _, e := range s.emps {
		t := &EmployeeTotals{
			WeekHours:      make([]float64, s.cal.weeks),
			WeekDays:       make([]float64, s.cal.weeks),
			LocationShifts: map[model.Location]int{},
		}
		for date, span := range spans[e.ID] {
			wk := s.cal.weekOf(date)
			if wk < 0 {
				continue
			}
			t.WeekHours[wk] += span
			if mainDay[e.ID][date] {
				t.WeekDays[wk]++
			} else {
				t.WeekDays[wk] += 0.5
			}
			if d, err := time.Parse(dateLayout, date); err == nil && isWeekend(d) {
				t.WeekendDays++
			}
		}
		for loc, n := range locShifts[e.ID] {
			t.LocationShifts[loc] = n
		}
		totals[e.ID] = t
	}

	var violations []Violation
	violations = append(violations, s.hourViolations(totals)...)
	violations = append(violations, s.managerViolations(totals)...)
	return totals, violations
}

func (s *scheduleState) hourViolations(totals map[string]*EmployeeTotals) []Violation {
	var out []Violation
	for wk := 0; wk < s.cal.weeks; wk++ {
		weekStart := dateKey(s.cal.weekStart(wk))
		for _, e := range s.emps {
			hours := totals[e.ID].WeekHours[wk]
			if hours > e.MaxHoursPerWeek {
				out = append(out, Violation{
					Date: weekStart,
					Kind: ViolationMaxHours,
					Detail: fmt.Sprintf("%s scheduled %sh, maximum is %sh",
						e.Name, formatHours(hours), formatHours(e.MaxHoursPerWeek)),
				})
			}
			if s.req.Options.ShoulderSeason || e.MinHoursPerWeek <= 0 {
				continue
			}
			if s.blackoutInWeek(e.ID, wk) {
				continue
			}
			if hours < e.MinHoursPerWeek {
				out = append(out, Violation{
					Date: weekStart,
					Kind: ViolationMinHours,
					Detail: fmt.Sprintf("%s scheduled %sh, minimum is %sh",
						e.Name, formatHours(hours), formatHours(e.MinHoursPerWeek)),
				})
			}
		}
	}
	return out
}

// managerViolations checks each Store Manager's week for the two
// consecutive days off and the expected-day count. Both checks hang off
// the same leadership rule that drives the forced-off reservation.
func (s *scheduleState) managerViolations(totals map[string]*EmployeeTotals) []Violation {
	if !s.req.Leadership.ManagerTwoConsecutiveDaysOff {
		return nil
	}
	allowance := 2
	if s.req.Options.ShoulderSeason {
		allowance = 0
	}

	var out []Violation
	for _, e := range s.emps {
		if e.Role != model.RoleStoreManager {
			continue
		}
		for wk := 0; wk < s.cal.weeks; wk++ {
			days := s.cal.weekDays(wk)
			weekStart := dateKey(days[0].date)

			openCount, blackouts, worked := 0, 0, 0
			fullyOpen := true
			for _, day := range days {
				if !day.mainOpen {
					fullyOpen = false
					continue
				}
				openCount++
				if s.unavailable[e.ID][dateKey(day.date)] {
					blackouts++
				}
				if s.workedDays[e.ID][dateKey(day.date)] {
					worked++
				}
			}

			if fullyOpen && !s.req.Options.ShoulderSeason {
				pair := false
				for i := 0; i < 6; i++ {
					if !s.workedDays[e.ID][dateKey(days[i].date)] &&
						!s.workedDays[e.ID][dateKey(days[i+1].date)] {
						pair = true
						break
					}
				}
				if !pair {
					out = append(out, Violation{
						Date: weekStart,
						Kind: ViolationLeaderDaysOff,
						Detail: fmt.Sprintf("Manager %s has no two consecutive days off in week %d",
							e.Name, wk+1),
					})
				}
			}

			expected := openCount - allowance - blackouts
			if expected < 0 {
				expected = 0
			}
			if worked < expected {
				out = append(out, Violation{
					Date: weekStart,
					Kind: ViolationLeaderExpected,
					Detail: fmt.Sprintf("Manager %s worked %d of expected %d days in week %d",
						e.Name, worked, expected, wk+1),
				})
			}
		}
	}
	return out
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
