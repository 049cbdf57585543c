package model

// Role is an employee's single job role
type Role string

const (
	RoleStoreManager Role = "Store Manager"
	RoleTeamLeader   Role = "Team Leader"
	RoleStoreClerk   Role = "Store Clerk"
	RoleBoatCaptain  Role = "Boat Captain"
)

// RolePrecedence is the order roles are assigned within a day.
var RolePrecedence = []Role{RoleStoreManager, RoleTeamLeader, RoleStoreClerk, RoleBoatCaptain}

func (r Role) IsValid() bool {
	switch r {
	case RoleStoreManager, RoleTeamLeader, RoleStoreClerk, RoleBoatCaptain:
		return true
	}
	return false
}

// IsFloor reports whether the role counts toward the per-day floor headcount
// target. The manager and the boat captain are staffed on top of the floor.
func (r Role) IsFloor() bool {
	return r == RoleTeamLeader || r == RoleStoreClerk
}

// Tier is an employee's priority tier, ordered A < B < C.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

func (t Tier) IsValid() bool {
	return t == TierA || t == TierB || t == TierC
}

// Rank returns the tier's position in the A < B < C ordering.
func (t Tier) Rank() int {
	switch t {
	case TierA:
		return 0
	case TierB:
		return 1
	default:
		return 2
	}
}

// Location identifies one of the three operating sites.
type Location string

const (
	LocationGreystones Location = "Greystones"
	LocationBeachShop  Location = "Beach Shop"
	LocationBoat       Location = "Boat"
)

func (l Location) IsValid() bool {
	return l == LocationGreystones || l == LocationBeachShop || l == LocationBoat
}

// DayKeys are the weekday keys used in availability maps, Monday first.
var DayKeys = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// IsDayKey reports whether s is one of the DayKeys values.
func IsDayKey(s string) bool {
	for _, k := range DayKeys {
		if k == s {
			return true
		}
	}
	return false
}

// Employee is one roster member. Immutable within a generation call.
type Employee struct {
	ID              string
	Name            string
	Role            Role
	MinHoursPerWeek float64
	MaxHoursPerWeek float64
	PriorityTier    Tier
	Student         bool
	// Availability maps a weekday key ("mon".."sun") to time windows
	// formatted "HH:MM-HH:MM".
	Availability map[string][]string
}

// Period is the scheduling horizon. StartDate is a "2006-01-02" date; the
// engine snaps it forward to the next WeekStartDay occurrence.
type Period struct {
	StartDate    string
	Weeks        int
	WeekStartDay string
	WeekEndDay   string
}

// SeasonRules holds the anchor dates partitioning the year into open/closed
// regimes. All four are "2006-01-02" dates.
type SeasonRules struct {
	VictoriaDay string
	June30      string
	LabourDay   string
	Oct31       string
}

// LocationHours is a daily operating window for one location.
type LocationHours struct {
	Start string
	End   string
}

// Hours holds the operating windows for the two staffed locations. The boat
// runs on the Greystones window.
type Hours struct {
	Greystones LocationHours
	BeachShop  LocationHours
}

// Coverage holds required headcounts.
type Coverage struct {
	GreystonesWeekdayStaff int
	GreystonesWeekendStaff int
	BeachShopStaff         int
}

// LeadershipRules configures leadership coverage minimums.
type LeadershipRules struct {
	MinTeamLeadersEveryOpenDay   int
	TeamLeadersIfManagerOff      int
	ManagerTwoConsecutiveDaysOff bool
}

// UnavailabilityEntry is an approved blackout for one employee on one date.
type UnavailabilityEntry struct {
	EmployeeID string
	Date       string
	Reason     string
}

// AdHocBooking is a caller-specified one-off shift layered on the generated
// baseline. It is validated, never generated.
type AdHocBooking struct {
	EmployeeID string
	Date       string
	Start      string
	End        string
	Location   Location
	Note       string
}

// WeekEmployee keys the historical aggregate maps: the week's start date
// ("2006-01-02") and the employee it concerns.
type WeekEmployee struct {
	WeekStart  string
	EmployeeID string
}

// HistoricalAggregates carries read-only per-employee weekly summaries from
// prior finalized schedules. They bias fairness decisions only; the engine
// never mutates them.
type HistoricalAggregates struct {
	// WeeklyHours is the total scheduled hours per employee per week.
	WeeklyHours map[WeekEmployee]float64
	// LeaderDays counts Team Leader days at the main location per week.
	LeaderDays map[WeekEmployee]int
	// WorkedDays is the set of worked dates ("2006-01-02") per week.
	WorkedDays map[WeekEmployee]map[string]bool
}

// EmptyHistory returns aggregates with all maps allocated, for callers with
// no prior schedules.
func EmptyHistory() HistoricalAggregates {
	return HistoricalAggregates{
		WeeklyHours: map[WeekEmployee]float64{},
		LeaderDays:  map[WeekEmployee]int{},
		WorkedDays:  map[WeekEmployee]map[string]bool{},
	}
}
