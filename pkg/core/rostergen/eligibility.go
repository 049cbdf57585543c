package rostergen

import (
	"time"

	"github.com/fobe-ops/roster/pkg/core/model"
)

const (
	// maxConsecutiveWorkDays caps the run of worked calendar days; a sixth
	// consecutive day is never scheduled, even across period boundaries.
	maxConsecutiveWorkDays = 5

	// managerWeeklyDayCap limits Store Manager days per week outside
	// shoulder season.
	managerWeeklyDayCap = 5
)

// slotRequest describes one opening the allocator is trying to fill.
type slotRequest struct {
	date   time.Time
	role   model.Role
	window model.LocationHours

	// ignoreMaxHours admits candidates whose weekly ceiling the shift would
	// breach. Used for must-fill slots; the violation surfaces later in
	// aggregation.
	ignoreMaxHours bool

	// allowDoubleBooking admits candidates already assigned elsewhere that
	// day. Used only for the Beach Shop floor pull.
	allowDoubleBooking bool
}

// eligible returns the candidates for the slot in fairness order, best
// first. The filter is a fixed sequence of hard constraints; soft
// preferences live entirely in the comparator.
func (s *scheduleState) eligible(req slotRequest) []model.Employee {
	var out []model.Employee
	for _, e := range s.emps {
		if s.canTake(e, req) {
			out = append(out, e)
		}
	}
	s.orderCandidates(out, req)
	return out
}

func (s *scheduleState) canTake(e model.Employee, req slotRequest) bool {
	if e.Role != req.role {
		return false
	}
	ds := dateKey(req.date)
	if s.unavailable[e.ID][ds] {
		return false
	}
	if !req.allowDoubleBooking && s.dayAssigned[ds][e.ID] {
		return false
	}
	if e.Role == model.RoleStoreManager && s.managerOff[e.ID][ds] {
		return false
	}
	if s.consecutiveWorkedBefore(e.ID, req.date) >= maxConsecutiveWorkDays {
		return false
	}
	wk := s.cal.weekOf(ds)
	if e.Role == model.RoleStoreManager && !s.req.Options.ShoulderSeason {
		if wk >= 0 && s.workedDaysInWeek(e.ID, wk) >= managerWeeklyDayCap {
			return false
		}
	}
	if s.req.Options.ShoulderSeason && e.Student && !isWeekend(req.date) {
		return false
	}
	if !req.ignoreMaxHours && wk >= 0 {
		span := windowSpanHours(req.window.Start, req.window.End)
		add := span - s.dayHours[ds][e.ID]
		if add < 0 {
			add = 0
		}
		if s.weekHours[wk][e.ID]+add > e.MaxHoursPerWeek {
			return false
		}
	}
	return availabilityCovers(e, req.date, req.window.Start, req.window.End)
}

// consecutiveWorkedBefore counts the unbroken run of worked days
// immediately preceding the date, looking through both this run and
// historical worked-day sets.
func (s *scheduleState) consecutiveWorkedBefore(employeeID string, d time.Time) int {
	n := 0
	for {
		prev := d.AddDate(0, 0, -(n + 1))
		if !s.worked(employeeID, prev) {
			return n
		}
		n++
	}
}

func (s *scheduleState) workedDaysInWeek(employeeID string, week int) int {
	n := 0
	for _, day := range s.cal.weekDays(week) {
		if s.workedDays[employeeID][dateKey(day.date)] {
			n++
		}
	}
	return n
}

// availabilityCovers reports whether one of the employee's windows for the
// date's weekday fully contains the shift window.
func availabilityCovers(e model.Employee, d time.Time, start, end string) bool {
	windows, ok := e.Availability[weekdayKey(d)]
	if !ok {
		return false
	}
	for _, w := range windows {
		ws, we, err := splitWindow(w)
		if err != nil {
			continue
		}
		if windowCovers(ws, we, start, end) {
			return true
		}
	}
	return false
}
