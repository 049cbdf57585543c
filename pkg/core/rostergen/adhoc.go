package rostergen

import (
	"fmt"
	"time"

	"github.com/fobe-ops/roster/pkg/core/model"
)

// roleLocations maps each location to the roles allowed to work it.
var roleLocations = map[model.Location][]model.Role{
	model.LocationGreystones: {model.RoleStoreManager, model.RoleTeamLeader, model.RoleStoreClerk},
	model.LocationBeachShop:  {model.RoleTeamLeader, model.RoleStoreClerk},
	model.LocationBoat:       {model.RoleBoatCaptain},
}

// applyBooking validates one ad-hoc booking against the schedule built so
// far and either records it or records an ad_hoc_conflict violation. A
// booking never displaces a generated shift and a rejected booking never
// aborts the run.
func (s *scheduleState) applyBooking(b model.AdHocBooking) {
	conflict := func(reason string) {
		who := b.EmployeeID
		if e, ok := s.empByID[b.EmployeeID]; ok {
			who = e.Name
		}
		s.addViolation(b.Date, ViolationAdHocConflict,
			fmt.Sprintf("Ad-hoc booking for %s: %s", who, reason))
	}

	e, ok := s.empByID[b.EmployeeID]
	if !ok {
		conflict(fmt.Sprintf("unknown employee %q", b.EmployeeID))
		return
	}

	d, err := time.Parse(dateLayout, b.Date)
	if err != nil {
		conflict(fmt.Sprintf("invalid date %q", b.Date))
		return
	}
	day, inPeriod := s.cal.dayAt(d)
	if !inPeriod {
		conflict("date is outside the schedule period")
		return
	}
	if !day.mainOpen {
		conflict(fmt.Sprintf("Greystones is closed on %s (%s)", b.Date, s.closureReason(d)))
		return
	}

	if !roleAllowedAt(e.Role, b.Location) {
		conflict(fmt.Sprintf("role %s cannot work at %s", e.Role, b.Location))
		return
	}
	if b.Location == model.LocationBeachShop && !day.beachOpen {
		conflict(fmt.Sprintf("Beach Shop is closed on %s", b.Date))
		return
	}

	if s.unavailable[e.ID][b.Date] {
		conflict("employee is unavailable that day")
		return
	}
	if s.dayAssigned[b.Date][e.ID] {
		conflict("employee already has a shift that day")
		return
	}

	if _, err := time.Parse(clockLayout, b.Start); err != nil {
		conflict(fmt.Sprintf("invalid start time %q", b.Start))
		return
	}
	if _, err := time.Parse(clockLayout, b.End); err != nil {
		conflict(fmt.Sprintf("invalid end time %q", b.End))
		return
	}
	span := windowSpanHours(b.Start, b.End)
	if span <= 0 {
		conflict(fmt.Sprintf("start %s is not before end %s", b.Start, b.End))
		return
	}

	if !availabilityCovers(e, d, b.Start, b.End) {
		conflict("booking window is outside the employee's availability")
		return
	}
	if s.consecutiveWorkedBefore(e.ID, d) >= maxConsecutiveWorkDays {
		conflict(fmt.Sprintf("would be a %dth consecutive work day", maxConsecutiveWorkDays+1))
		return
	}
	if wk := s.cal.weekOf(b.Date); wk >= 0 {
		if s.weekHours[wk][e.ID]+span > e.MaxHoursPerWeek {
			conflict("would exceed weekly max hours")
			return
		}
	}

	s.record(Assignment{
		Date:       b.Date,
		Location:   b.Location,
		Start:      b.Start,
		End:        b.End,
		EmployeeID: e.ID,
		Role:       e.Role,
		Source:     SourceAdHoc,
	})
}

func roleAllowedAt(role model.Role, loc model.Location) bool {
	for _, r := range roleLocations[loc] {
		if r == role {
			return true
		}
	}
	return false
}

// closureReason explains why a main-location day is closed: either the
// weekday is outside the configured open set or the season calendar closes
// it.
func (s *scheduleState) closureReason(d time.Time) string {
	open := map[string]bool{}
	for _, k := range s.req.Options.OpenWeekdays {
		open[k] = true
	}
	if len(open) > 0 && !open[weekdayKey(d)] {
		return "weekday not in the open set"
	}
	return "closed by the season calendar"
}
