package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/fobe-ops/roster/pkg/core/model"
	"github.com/fobe-ops/roster/pkg/core/rostergen"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// PeriodConfig describes the scheduling window.
type PeriodConfig struct {
	StartDate    string `yaml:"startDate" validate:"required,datetime=2006-01-02"`
	Weeks        int    `yaml:"weeks" validate:"required,min=1"`
	WeekStartDay string `yaml:"weekStartDay" validate:"required,oneof=mon tue wed thu fri sat sun"`
	WeekEndDay   string `yaml:"weekEndDay" validate:"required,oneof=mon tue wed thu fri sat sun"`
}

// SeasonConfig holds the season anchor dates.
type SeasonConfig struct {
	VictoriaDay string `yaml:"victoriaDay" validate:"required,datetime=2006-01-02"`
	June30      string `yaml:"june30" validate:"required,datetime=2006-01-02"`
	LabourDay   string `yaml:"labourDay" validate:"required,datetime=2006-01-02"`
	Oct31       string `yaml:"oct31" validate:"required,datetime=2006-01-02"`
}

// WindowConfig is one location's daily operating window.
type WindowConfig struct {
	Start string `yaml:"start" validate:"required,datetime=15:04"`
	End   string `yaml:"end" validate:"required,datetime=15:04"`
}

// HoursConfig holds the operating windows.
type HoursConfig struct {
	Greystones WindowConfig `yaml:"greystones" validate:"required"`
	BeachShop  WindowConfig `yaml:"beachShop"`
}

// CoverageConfig holds required headcounts.
type CoverageConfig struct {
	GreystonesWeekdayStaff int `yaml:"greystonesWeekdayStaff" validate:"min=0"`
	GreystonesWeekendStaff int `yaml:"greystonesWeekendStaff" validate:"min=0"`
	BeachShopStaff         int `yaml:"beachShopStaff" validate:"min=0"`
}

// LeadershipConfig holds leadership coverage rules.
type LeadershipConfig struct {
	MinTeamLeadersEveryOpenDay   int  `yaml:"minTeamLeadersEveryOpenDay" validate:"min=0"`
	TeamLeadersIfManagerOff      int  `yaml:"teamLeadersIfManagerOff" validate:"min=0"`
	ManagerTwoConsecutiveDaysOff bool `yaml:"managerTwoConsecutiveDaysOff"`
}

// EmployeeConfig is one roster member.
type EmployeeConfig struct {
	ID              string              `yaml:"id" validate:"required"`
	Name            string              `yaml:"name" validate:"required"`
	Role            string              `yaml:"role" validate:"required,oneof='Store Manager' 'Team Leader' 'Store Clerk' 'Boat Captain'"`
	Tier            string              `yaml:"tier" validate:"required,oneof=A B C"`
	MinHoursPerWeek float64             `yaml:"minHoursPerWeek" validate:"min=0"`
	MaxHoursPerWeek float64             `yaml:"maxHoursPerWeek" validate:"min=0"`
	Student         bool                `yaml:"student"`
	Availability    map[string][]string `yaml:"availability"`
}

// UnavailabilityConfig is one approved blackout date.
type UnavailabilityConfig struct {
	EmployeeID string `yaml:"employeeId" validate:"required"`
	Date       string `yaml:"date" validate:"required,datetime=2006-01-02"`
	Reason     string `yaml:"reason"`
}

// RecurringUnavailabilityConfig is a repeating blackout expressed as an
// RRULE, expanded over the period when the request is converted.
type RecurringUnavailabilityConfig struct {
	EmployeeID string `yaml:"employeeId" validate:"required"`
	RRule      string `yaml:"rrule" validate:"required"`
	Reason     string `yaml:"reason"`
}

// BookingConfig is one ad-hoc booking.
type BookingConfig struct {
	EmployeeID string `yaml:"employeeId" validate:"required"`
	Date       string `yaml:"date" validate:"required"`
	Start      string `yaml:"start" validate:"required"`
	End        string `yaml:"end" validate:"required"`
	Location   string `yaml:"location" validate:"required,oneof=Greystones 'Beach Shop' Boat"`
	Note       string `yaml:"note"`
}

// OptionsConfig holds the engine switches.
type OptionsConfig struct {
	OpenWeekdays      []string `yaml:"openWeekdays" validate:"dive,oneof=mon tue wed thu fri sat sun"`
	RerollToken       string   `yaml:"rerollToken"`
	ShoulderSeason    bool     `yaml:"shoulderSeason"`
	ScheduleBeachShop bool     `yaml:"scheduleBeachShop"`
}

// ScheduleRequest is the YAML document the CLI consumes.
type ScheduleRequest struct {
	Period                  PeriodConfig                    `yaml:"period" validate:"required"`
	Season                  SeasonConfig                    `yaml:"season" validate:"required"`
	Hours                   HoursConfig                     `yaml:"hours" validate:"required"`
	Coverage                CoverageConfig                  `yaml:"coverage"`
	Leadership              LeadershipConfig                `yaml:"leadership"`
	Options                 OptionsConfig                   `yaml:"options"`
	Employees               []EmployeeConfig                `yaml:"employees" validate:"required,min=1,dive"`
	Unavailability          []UnavailabilityConfig          `yaml:"unavailability" validate:"dive"`
	RecurringUnavailability []RecurringUnavailabilityConfig `yaml:"recurringUnavailability" validate:"dive"`
	AdHocBookings           []BookingConfig                 `yaml:"adHocBookings" validate:"dive"`
}

// LoadRequest loads and validates a schedule request from a YAML file.
func LoadRequest(path string) (*ScheduleRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var req ScheduleRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}

	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidateRequest validates the request struct and checks rrule syntax.
func ValidateRequest(req *ScheduleRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("request validation failed: %w", err)
	}

	for i, rec := range req.RecurringUnavailability {
		if _, err := rrule.StrToRRule(rec.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurringUnavailability[%d]: %w", i, err)
		}
	}
	return nil
}

// ToEngineRequest converts the document into an engine request, expanding
// recurring unavailability rules into concrete dates across the period.
func (req *ScheduleRequest) ToEngineRequest() (rostergen.Request, error) {
	out := rostergen.Request{
		Period: model.Period{
			StartDate:    req.Period.StartDate,
			Weeks:        req.Period.Weeks,
			WeekStartDay: req.Period.WeekStartDay,
			WeekEndDay:   req.Period.WeekEndDay,
		},
		Season: model.SeasonRules{
			VictoriaDay: req.Season.VictoriaDay,
			June30:      req.Season.June30,
			LabourDay:   req.Season.LabourDay,
			Oct31:       req.Season.Oct31,
		},
		Hours: model.Hours{
			Greystones: model.LocationHours{Start: req.Hours.Greystones.Start, End: req.Hours.Greystones.End},
			BeachShop:  model.LocationHours{Start: req.Hours.BeachShop.Start, End: req.Hours.BeachShop.End},
		},
		Coverage: model.Coverage{
			GreystonesWeekdayStaff: req.Coverage.GreystonesWeekdayStaff,
			GreystonesWeekendStaff: req.Coverage.GreystonesWeekendStaff,
			BeachShopStaff:         req.Coverage.BeachShopStaff,
		},
		Leadership: model.LeadershipRules{
			MinTeamLeadersEveryOpenDay:   req.Leadership.MinTeamLeadersEveryOpenDay,
			TeamLeadersIfManagerOff:      req.Leadership.TeamLeadersIfManagerOff,
			ManagerTwoConsecutiveDaysOff: req.Leadership.ManagerTwoConsecutiveDaysOff,
		},
		History: model.EmptyHistory(),
		Options: rostergen.Options{
			OpenWeekdays:      req.Options.OpenWeekdays,
			RerollToken:       req.Options.RerollToken,
			ShoulderSeason:    req.Options.ShoulderSeason,
			ScheduleBeachShop: req.Options.ScheduleBeachShop,
		},
	}

	for _, e := range req.Employees {
		out.Employees = append(out.Employees, model.Employee{
			ID:              e.ID,
			Name:            e.Name,
			Role:            model.Role(e.Role),
			MinHoursPerWeek: e.MinHoursPerWeek,
			MaxHoursPerWeek: e.MaxHoursPerWeek,
			PriorityTier:    model.Tier(e.Tier),
			Student:         e.Student,
			Availability:    e.Availability,
		})
	}

	for _, u := range req.Unavailability {
		out.Unavailability = append(out.Unavailability, model.UnavailabilityEntry{
			EmployeeID: u.EmployeeID,
			Date:       u.Date,
			Reason:     u.Reason,
		})
	}

	expanded, err := expandRecurringUnavailability(req.RecurringUnavailability, req.Period)
	if err != nil {
		return rostergen.Request{}, err
	}
	out.Unavailability = append(out.Unavailability, expanded...)

	for _, b := range req.AdHocBookings {
		out.AdHocBookings = append(out.AdHocBookings, model.AdHocBooking{
			EmployeeID: b.EmployeeID,
			Date:       b.Date,
			Start:      b.Start,
			End:        b.End,
			Location:   model.Location(b.Location),
			Note:       b.Note,
		})
	}

	return out, nil
}

func expandRecurringUnavailability(rules []RecurringUnavailabilityConfig, period PeriodConfig) ([]model.UnavailabilityEntry, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	start, err := time.Parse("2006-01-02", period.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse period start date: %w", err)
	}
	// The engine may snap the start forward by up to six days, so expand
	// over one extra week to stay covered.
	end := start.AddDate(0, 0, period.Weeks*7+6)

	var out []model.UnavailabilityEntry
	for i, rec := range rules {
		rule, err := rrule.StrToRRule(rec.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in recurringUnavailability[%d]: %w", i, err)
		}
		rule.DTStart(start)

		for _, occ := range rule.Between(start, end, true) {
			out = append(out, model.UnavailabilityEntry{
				EmployeeID: rec.EmployeeID,
				Date:       occ.Format("2006-01-02"),
				Reason:     rec.Reason,
			})
		}
	}
	return out, nil
}
