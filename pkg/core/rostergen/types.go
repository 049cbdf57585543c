package rostergen

import (
	"time"

	"github.com/fobe-ops/roster/pkg/core/model"
)

// Options are the engine switches recognized for one generation call.
type Options struct {
	// OpenWeekdays restricts which weekdays the main location may ever be
	// open, independent of season. Empty means all weekdays.
	OpenWeekdays []string

	// RerollToken seeds the deterministic fairness tiebreak. The same token
	// always yields the same schedule; a different token redistributes ties.
	RerollToken string

	// ShoulderSeason relaxes day-count caps and min-hour enforcement, blocks
	// students on weekdays, and requires a Store Manager every open day.
	// Mutually exclusive with ScheduleBeachShop.
	ShoulderSeason bool

	// ScheduleBeachShop enables the secondary location.
	ScheduleBeachShop bool
}

// Request is the immutable input snapshot for one generation call.
type Request struct {
	Period         model.Period
	Season         model.SeasonRules
	Hours          model.Hours
	Coverage       model.Coverage
	Leadership     model.LeadershipRules
	Employees      []model.Employee
	Unavailability []model.UnavailabilityEntry
	AdHocBookings  []model.AdHocBooking
	History        model.HistoricalAggregates
	Options        Options
}

// Source records how an assignment came to exist.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceAdHoc     Source = "ad_hoc"
)

// Assignment is one scheduled shift in the result.
type Assignment struct {
	Date       string
	Location   model.Location
	Start      string
	End        string
	EmployeeID string
	Role       model.Role
	Source     Source
}

// ViolationKind is the closed taxonomy of rule breaches. All are non-fatal;
// they are collected and returned, never raised.
type ViolationKind string

const (
	ViolationCoverageGap    ViolationKind = "coverage_gap"
	ViolationLeaderGap      ViolationKind = "leader_gap"
	ViolationRoleMissing    ViolationKind = "role_missing"
	ViolationSecondaryGap   ViolationKind = "secondary_location_gap"
	ViolationLeaderDaysOff  ViolationKind = "leader_consecutive_days_off"
	ViolationLeaderExpected ViolationKind = "leader_expected_days"
	ViolationMinHours       ViolationKind = "min_hours"
	ViolationMaxHours       ViolationKind = "max_hours"
	ViolationAdHocConflict  ViolationKind = "ad_hoc_conflict"
)

// Violation is one recorded rule breach.
type Violation struct {
	Date   string
	Kind   ViolationKind
	Detail string
}

// EmployeeTotals summarizes one employee's final schedule. WeekHours and
// WeekDays are indexed by zero-based week; a day worked only at the Beach
// Shop counts as half a day.
type EmployeeTotals struct {
	WeekHours      []float64
	WeekDays       []float64
	WeekendDays    int
	LocationShifts map[model.Location]int
}

// Result is the output snapshot of one generation call. Assignments are
// sorted by date, location, employee name; violations by date, kind, detail.
type Result struct {
	Assignments []Assignment
	Violations  []Violation
	Totals      map[string]*EmployeeTotals
}

// scheduleState is the accumulator threaded through one generation call. It
// is owned by that call and never shared.
type scheduleState struct {
	req *Request
	cal *calendar

	// emps is the roster sorted by employee ID for deterministic iteration.
	emps    []model.Employee
	empByID map[string]model.Employee

	// leaders is the Team Leader subset; rotationPair is true when the
	// roster has exactly two of them.
	leaders      []model.Employee
	rotationPair bool

	unavailable map[string]map[string]bool // employee ID -> date -> blackout

	assignments []Assignment
	violations  []Violation

	dayAssigned map[string]map[string]bool    // date -> employee IDs with any shift
	dayHours    map[string]map[string]float64 // date -> employee ID -> max shift span
	weekHours   []map[string]float64          // week -> employee ID -> deduped hours
	leaderDays  []map[string]int              // week -> employee ID -> Team Leader days
	workedDays  map[string]map[string]bool    // employee ID -> worked dates this run

	// historyWorked merges the history worked-day sets per employee so the
	// consecutive-day cap survives period boundaries.
	historyWorked map[string]map[string]bool

	// managerOff marks forced day-off dates per manager (the weekly
	// two-consecutive-days-off rotation).
	managerOff map[string]map[string]bool

	// weekPreferredLeader caches the rotation pair's preferred member per
	// week; nil means no preference that week.
	weekPreferredLeader []*string
	weekPrefComputed    []bool
}

func (s *scheduleState) record(a Assignment) {
	s.assignments = append(s.assignments, a)

	if s.dayAssigned[a.Date] == nil {
		s.dayAssigned[a.Date] = map[string]bool{}
	}
	s.dayAssigned[a.Date][a.EmployeeID] = true

	if s.workedDays[a.EmployeeID] == nil {
		s.workedDays[a.EmployeeID] = map[string]bool{}
	}
	s.workedDays[a.EmployeeID][a.Date] = true

	// Daily hours are the maximum single span that day, never a sum of
	// overlapping entries.
	span := windowSpanHours(a.Start, a.End)
	if s.dayHours[a.Date] == nil {
		s.dayHours[a.Date] = map[string]float64{}
	}
	prev := s.dayHours[a.Date][a.EmployeeID]
	if span > prev {
		s.dayHours[a.Date][a.EmployeeID] = span
		wk := s.cal.weekOf(a.Date)
		if wk >= 0 {
			s.weekHours[wk][a.EmployeeID] += span - prev
		}
	}

	if a.Role == model.RoleTeamLeader && a.Location == model.LocationGreystones {
		if wk := s.cal.weekOf(a.Date); wk >= 0 {
			s.leaderDays[wk][a.EmployeeID]++
		}
	}
}

func (s *scheduleState) addViolation(date string, kind ViolationKind, detail string) {
	s.violations = append(s.violations, Violation{Date: date, Kind: kind, Detail: detail})
}

// worked reports whether the employee works the given date, in this run or
// in any prior period's worked-day set.
func (s *scheduleState) worked(employeeID string, d time.Time) bool {
	key := dateKey(d)
	if s.workedDays[employeeID][key] {
		return true
	}
	return s.historyWorked[employeeID][key]
}
