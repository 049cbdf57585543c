package rostergen

import (
	"github.com/fobe-ops/roster/pkg/core/model"
)

// makeUpDayOrder lists the preferred weekdays for topping an employee up to
// their weekly minimum, quietest days first so make-up shifts pad midweek
// coverage instead of crowding the weekend.
var makeUpDayOrder = map[model.Role][]string{
	model.RoleStoreManager: {"wed", "thu", "fri", "tue", "mon", "sat", "sun"},
	model.RoleTeamLeader:   {"fri", "sat", "sun", "thu", "wed", "tue", "mon"},
	model.RoleStoreClerk:   {"tue", "wed", "thu", "fri", "mon", "sat", "sun"},
}

// backfillMinimumHours adds shifts for employees still under their weekly
// minimum after allocation. Weeks containing an approved blackout are left
// alone, as is the whole pass in shoulder season; a remaining shortfall
// surfaces later as a min_hours violation.
func (s *scheduleState) backfillMinimumHours() {
	if s.req.Options.ShoulderSeason {
		return
	}
	for wk := 0; wk < s.cal.weeks; wk++ {
		for _, e := range s.emps {
			if e.MinHoursPerWeek <= 0 {
				continue
			}
			if s.weekHours[wk][e.ID] >= e.MinHoursPerWeek {
				continue
			}
			if s.blackoutInWeek(e.ID, wk) {
				continue
			}
			s.backfillEmployeeWeek(e, wk)
		}
	}
}

func (s *scheduleState) backfillEmployeeWeek(e model.Employee, wk int) {
	window := s.req.Hours.Greystones
	loc := model.LocationGreystones
	if e.Role == model.RoleBoatCaptain {
		loc = model.LocationBoat
	}

	for _, day := range s.makeUpDays(e.Role, wk) {
		if s.weekHours[wk][e.ID] >= e.MinHoursPerWeek {
			return
		}
		req := slotRequest{date: day.date, role: e.Role, window: window}
		if !s.canTake(e, req) {
			continue
		}
		s.record(Assignment{
			Date:       dateKey(day.date),
			Location:   loc,
			Start:      window.Start,
			End:        window.End,
			EmployeeID: e.ID,
			Role:       e.Role,
			Source:     SourceGenerated,
		})
	}
}

// makeUpDays returns the week's open days in the role's preference order.
// Boat Captains have no quiet-day ordering; the boat runs the same every
// open day, so chronological order stands.
func (s *scheduleState) makeUpDays(role model.Role, wk int) []dayInfo {
	days := s.cal.weekDays(wk)
	order, ok := makeUpDayOrder[role]
	if !ok {
		var open []dayInfo
		for _, d := range days {
			if d.mainOpen {
				open = append(open, d)
			}
		}
		return open
	}

	var out []dayInfo
	for _, key := range order {
		for _, d := range days {
			if d.mainOpen && weekdayKey(d.date) == key {
				out = append(out, d)
			}
		}
	}
	return out
}

func (s *scheduleState) blackoutInWeek(employeeID string, wk int) bool {
	for _, day := range s.cal.weekDays(wk) {
		if s.unavailable[employeeID][dateKey(day.date)] {
			return true
		}
	}
	return false
}
