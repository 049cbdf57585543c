package rostergen

import (
	"github.com/fobe-ops/roster/pkg/core/model"
)

// Fixtures shared across the engine tests. The period sits in January so
// the season calendar stays out of the way unless a test opts in.

func fullAvailability() map[string][]string {
	av := map[string][]string{}
	for _, k := range model.DayKeys {
		av[k] = []string{"08:00-20:00"}
	}
	return av
}

func testEmployee(id, name string, role model.Role, tier model.Tier) model.Employee {
	return model.Employee{
		ID:              id,
		Name:            name,
		Role:            role,
		MaxHoursPerWeek: 40,
		PriorityTier:    tier,
		Availability:    fullAvailability(),
	}
}

func testSeason() model.SeasonRules {
	return model.SeasonRules{
		VictoriaDay: "2026-05-18",
		June30:      "2026-06-30",
		LabourDay:   "2026-09-07",
		Oct31:       "2026-10-31",
	}
}

// baseRequest builds a one-manager, one-lead, one-clerk, one-captain
// request starting Monday 2026-01-05.
func baseRequest(weeks int, openDays ...string) Request {
	return Request{
		Period: model.Period{
			StartDate:    "2026-01-05",
			Weeks:        weeks,
			WeekStartDay: "mon",
			WeekEndDay:   "sun",
		},
		Season: testSeason(),
		Hours: model.Hours{
			Greystones: model.LocationHours{Start: "09:00", End: "17:00"},
			BeachShop:  model.LocationHours{Start: "10:00", End: "18:00"},
		},
		Coverage: model.Coverage{
			GreystonesWeekdayStaff: 1,
			GreystonesWeekendStaff: 2,
			BeachShopStaff:         1,
		},
		Leadership: model.LeadershipRules{
			MinTeamLeadersEveryOpenDay: 1,
			TeamLeadersIfManagerOff:    2,
		},
		Employees: []model.Employee{
			testEmployee("mgr", "Morgan", model.RoleStoreManager, model.TierA),
			testEmployee("lead", "Lee", model.RoleTeamLeader, model.TierA),
			testEmployee("clerk", "Casey", model.RoleStoreClerk, model.TierB),
			testEmployee("capt", "Charlie", model.RoleBoatCaptain, model.TierA),
		},
		History: model.EmptyHistory(),
		Options: Options{OpenWeekdays: openDays, RerollToken: "t0"},
	}
}

func newTestState(req Request) *scheduleState {
	cal, err := resolveCalendar(&req)
	if err != nil {
		panic(err)
	}
	return newScheduleState(&req, cal)
}

func assignmentsFor(res *Result, employeeID string) []Assignment {
	var out []Assignment
	for _, a := range res.Assignments {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out
}

func datesFor(res *Result, employeeID string) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range assignmentsFor(res, employeeID) {
		if !seen[a.Date] {
			seen[a.Date] = true
			out = append(out, a.Date)
		}
	}
	return out
}

func violationsOfKind(res *Result, kind ViolationKind) []Violation {
	var out []Violation
	for _, v := range res.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}
