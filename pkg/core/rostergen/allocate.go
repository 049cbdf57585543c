package rostergen

import (
	"fmt"
	"sort"

	"github.com/fobe-ops/roster/pkg/core/model"
)

// Generate produces a full schedule for the request. It is a pure function
// of its input: the same request always yields the same result, and the
// request is never mutated. Rule breaches the engine cannot satisfy come
// back as violations in the result; only malformed input is an error.
func Generate(req Request) (*Result, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	cal, err := resolveCalendar(&req)
	if err != nil {
		return nil, err
	}

	s := newScheduleState(&req, cal)
	s.planManagerDaysOff()

	adhocByDate := map[string][]int{}
	for i, b := range req.AdHocBookings {
		adhocByDate[b.Date] = append(adhocByDate[b.Date], i)
	}
	applied := make([]bool, len(req.AdHocBookings))

	for _, day := range cal.days {
		if !day.mainOpen {
			continue
		}
		s.scheduleMainDay(day)
		if day.beachOpen {
			s.scheduleBeachDay(day)
		}
		for _, i := range adhocByDate[dateKey(day.date)] {
			s.applyBooking(req.AdHocBookings[i])
			applied[i] = true
		}
	}

	// Bookings on closed or out-of-period dates never matched an open day;
	// run them through the same checks so they surface as conflicts.
	for i, b := range req.AdHocBookings {
		if !applied[i] {
			s.applyBooking(b)
		}
	}

	s.backfillMinimumHours()

	totals, complianceViolations := s.computeTotals()
	s.violations = append(s.violations, complianceViolations...)

	sort.SliceStable(s.assignments, func(i, j int) bool {
		a, b := s.assignments[i], s.assignments[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		an, bn := s.empByID[a.EmployeeID].Name, s.empByID[b.EmployeeID].Name
		if an != bn {
			return an < bn
		}
		return a.Start < b.Start
	})
	sort.SliceStable(s.violations, func(i, j int) bool {
		a, b := s.violations[i], s.violations[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Detail < b.Detail
	})

	return &Result{
		Assignments: s.assignments,
		Violations:  s.violations,
		Totals:      totals,
	}, nil
}

func validateRequest(req *Request) error {
	if req.Options.ShoulderSeason && req.Options.ScheduleBeachShop {
		return fmt.Errorf("shoulder season and Beach Shop scheduling are mutually exclusive")
	}
	seen := map[string]bool{}
	for _, e := range req.Employees {
		if e.ID == "" {
			return fmt.Errorf("employee %q has no ID", e.Name)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate employee ID %q", e.ID)
		}
		seen[e.ID] = true
		if !e.Role.IsValid() {
			return fmt.Errorf("employee %s has unknown role %q", e.ID, e.Role)
		}
		if !e.PriorityTier.IsValid() {
			return fmt.Errorf("employee %s has unknown priority tier %q", e.ID, e.PriorityTier)
		}
		if e.MaxHoursPerWeek < e.MinHoursPerWeek {
			return fmt.Errorf("employee %s has max hours below min hours", e.ID)
		}
	}
	return nil
}

func newScheduleState(req *Request, cal *calendar) *scheduleState {
	s := &scheduleState{
		req:           req,
		cal:           cal,
		empByID:       map[string]model.Employee{},
		unavailable:   map[string]map[string]bool{},
		dayAssigned:   map[string]map[string]bool{},
		dayHours:      map[string]map[string]float64{},
		workedDays:    map[string]map[string]bool{},
		historyWorked: map[string]map[string]bool{},
		managerOff:    map[string]map[string]bool{},
	}

	s.emps = append(s.emps, req.Employees...)
	sort.Slice(s.emps, func(i, j int) bool { return s.emps[i].ID < s.emps[j].ID })
	for _, e := range s.emps {
		s.empByID[e.ID] = e
		if e.Role == model.RoleTeamLeader {
			s.leaders = append(s.leaders, e)
		}
	}
	s.rotationPair = len(s.leaders) == 2

	for _, u := range req.Unavailability {
		if s.unavailable[u.EmployeeID] == nil {
			s.unavailable[u.EmployeeID] = map[string]bool{}
		}
		s.unavailable[u.EmployeeID][u.Date] = true
	}

	for key, days := range req.History.WorkedDays {
		for d, worked := range days {
			if !worked {
				continue
			}
			if s.historyWorked[key.EmployeeID] == nil {
				s.historyWorked[key.EmployeeID] = map[string]bool{}
			}
			s.historyWorked[key.EmployeeID][d] = true
		}
	}

	for w := 0; w < cal.weeks; w++ {
		s.weekHours = append(s.weekHours, map[string]float64{})
		s.leaderDays = append(s.leaderDays, map[string]int{})
	}
	s.weekPreferredLeader = make([]*string, cal.weeks)
	s.weekPrefComputed = make([]bool, cal.weeks)
	return s
}

// planManagerDaysOff reserves two consecutive days off per manager per
// week. Weeks that already contain a consecutive closed or blacked-out pair
// need no reservation; otherwise the earliest all-weekday pair of working
// days is taken, falling back to the earliest pair of any kind.
func (s *scheduleState) planManagerDaysOff() {
	if !s.req.Leadership.ManagerTwoConsecutiveDaysOff || s.req.Options.ShoulderSeason {
		return
	}
	for _, e := range s.emps {
		if e.Role != model.RoleStoreManager {
			continue
		}
		for wk := 0; wk < s.cal.weeks; wk++ {
			days := s.cal.weekDays(wk)
			offAt := func(i int) bool {
				return !days[i].mainOpen || s.unavailable[e.ID][dateKey(days[i].date)]
			}
			natural := false
			for i := 0; i < 6; i++ {
				if offAt(i) && offAt(i+1) {
					natural = true
					break
				}
			}
			if natural {
				continue
			}

			pick := -1
			for i := 0; i < 6; i++ {
				if offAt(i) || offAt(i+1) {
					continue
				}
				if !isWeekend(days[i].date) && !isWeekend(days[i+1].date) {
					pick = i
					break
				}
				if pick < 0 {
					pick = i
				}
			}
			if pick < 0 {
				continue
			}
			if s.managerOff[e.ID] == nil {
				s.managerOff[e.ID] = map[string]bool{}
			}
			s.managerOff[e.ID][dateKey(days[pick].date)] = true
			s.managerOff[e.ID][dateKey(days[pick+1].date)] = true
		}
	}
}

// scheduleMainDay fills one open Greystones day: the manager slot, the
// leadership minimum, the general floor, and the boat.
func (s *scheduleState) scheduleMainDay(day dayInfo) {
	date := dateKey(day.date)
	window := s.req.Hours.Greystones
	shoulder := s.req.Options.ShoulderSeason

	managerScheduled := false
	cands := s.eligible(slotRequest{date: day.date, role: model.RoleStoreManager, window: window})
	if len(cands) == 0 && shoulder {
		cands = s.eligible(slotRequest{date: day.date, role: model.RoleStoreManager, window: window, ignoreMaxHours: true})
	}
	if len(cands) > 0 {
		s.record(Assignment{
			Date: date, Location: model.LocationGreystones,
			Start: window.Start, End: window.End,
			EmployeeID: cands[0].ID, Role: model.RoleStoreManager, Source: SourceGenerated,
		})
		managerScheduled = true
	} else if shoulder {
		s.addViolation(date, ViolationLeaderGap, "No Store Manager available")
	}

	requiredLeaders := s.req.Leadership.MinTeamLeadersEveryOpenDay
	if !managerScheduled && s.req.Leadership.TeamLeadersIfManagerOff > requiredLeaders {
		requiredLeaders = s.req.Leadership.TeamLeadersIfManagerOff
	}
	scheduledLeaders := 0
	for i := 0; i < requiredLeaders; i++ {
		cands := s.eligible(slotRequest{date: day.date, role: model.RoleTeamLeader, window: window, ignoreMaxHours: true})
		if len(cands) == 0 {
			s.addViolation(date, ViolationLeaderGap,
				fmt.Sprintf("Team leader coverage short: need %d, scheduled %d", requiredLeaders, scheduledLeaders))
			break
		}
		s.record(Assignment{
			Date: date, Location: model.LocationGreystones,
			Start: window.Start, End: window.End,
			EmployeeID: cands[0].ID, Role: model.RoleTeamLeader, Source: SourceGenerated,
		})
		scheduledLeaders++
	}

	target := s.req.Coverage.GreystonesWeekdayStaff
	if isWeekend(day.date) {
		target = s.req.Coverage.GreystonesWeekendStaff
	}
	floorScheduled := scheduledLeaders
	for floorScheduled < target {
		cands := s.eligible(slotRequest{date: day.date, role: model.RoleStoreClerk, window: window})
		if len(cands) == 0 {
			s.addViolation(date, ViolationCoverageGap,
				fmt.Sprintf("Greystones floor short: need %d, scheduled %d", target, floorScheduled))
			break
		}
		s.record(Assignment{
			Date: date, Location: model.LocationGreystones,
			Start: window.Start, End: window.End,
			EmployeeID: cands[0].ID, Role: model.RoleStoreClerk, Source: SourceGenerated,
		})
		floorScheduled++
	}

	cands = s.eligible(slotRequest{date: day.date, role: model.RoleBoatCaptain, window: window})
	if len(cands) == 0 {
		cands = s.eligible(slotRequest{date: day.date, role: model.RoleBoatCaptain, window: window, ignoreMaxHours: true})
	}
	if len(cands) == 0 {
		s.addViolation(date, ViolationRoleMissing, "No Boat Captain available")
		return
	}
	s.record(Assignment{
		Date: date, Location: model.LocationBoat,
		Start: window.Start, End: window.End,
		EmployeeID: cands[0].ID, Role: model.RoleBoatCaptain, Source: SourceGenerated,
	})
}

// floorFillOrder walks the floor roles in reverse assignment precedence, so
// the Beach Shop drains clerks before it touches leaders.
var floorFillOrder = func() []model.Role {
	var order []model.Role
	for i := len(model.RolePrecedence) - 1; i >= 0; i-- {
		if r := model.RolePrecedence[i]; r.IsFloor() {
			order = append(order, r)
		}
	}
	return order
}()

// scheduleBeachDay staffs the Beach Shop: unassigned floor staff first,
// clerks before leaders, then at most one employee pulled across from the
// Greystones floor.
func (s *scheduleState) scheduleBeachDay(day dayInfo) {
	date := dateKey(day.date)
	window := s.req.Hours.BeachShop
	need := s.req.Coverage.BeachShopStaff
	scheduled := 0

	for _, role := range floorFillOrder {
		for scheduled < need {
			cands := s.eligible(slotRequest{date: day.date, role: role, window: window})
			if len(cands) == 0 {
				break
			}
			s.record(Assignment{
				Date: date, Location: model.LocationBeachShop,
				Start: window.Start, End: window.End,
				EmployeeID: cands[0].ID, Role: role, Source: SourceGenerated,
			})
			scheduled++
		}
	}

	if scheduled < need {
		if pulled := s.pullFloorToBeach(day, window); pulled {
			scheduled++
		}
	}
	if scheduled < need {
		s.addViolation(date, ViolationSecondaryGap,
			fmt.Sprintf("Beach Shop short: need %d, scheduled %d", need, scheduled))
	}
}

// pullFloorToBeach double-books one already-assigned Greystones floor
// employee onto the Beach Shop. A single pull per day keeps the main floor
// from draining.
func (s *scheduleState) pullFloorToBeach(day dayInfo, window model.LocationHours) bool {
	date := dateKey(day.date)
	for _, role := range floorFillOrder {
		cands := s.eligible(slotRequest{
			date: day.date, role: role, window: window,
			ignoreMaxHours: true, allowDoubleBooking: true,
		})
		for _, e := range cands {
			if !s.assignedAt(date, e.ID, model.LocationGreystones) {
				continue
			}
			s.record(Assignment{
				Date: date, Location: model.LocationBeachShop,
				Start: window.Start, End: window.End,
				EmployeeID: e.ID, Role: role, Source: SourceGenerated,
			})
			return true
		}
	}
	return false
}

func (s *scheduleState) assignedAt(date, employeeID string, loc model.Location) bool {
	for _, a := range s.assignments {
		if a.Date == date && a.EmployeeID == employeeID && a.Location == loc {
			return true
		}
	}
	return false
}
