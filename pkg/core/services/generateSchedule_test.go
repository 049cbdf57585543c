package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fobe-ops/roster/pkg/core/model"
	"github.com/fobe-ops/roster/pkg/core/rostergen"
	"github.com/fobe-ops/roster/pkg/db"
)

// fakeStore is an in-memory ScheduleStore capturing what was persisted.
type fakeStore struct {
	historyRows []db.ScheduleAssignment

	schedules   []db.Schedule
	assignments []db.ScheduleAssignment
	violations  []db.ScheduleViolation
}

func (f *fakeStore) GetAssignmentsBetween(ctx context.Context, fromDate, toDate string) ([]db.ScheduleAssignment, error) {
	var out []db.ScheduleAssignment
	for _, r := range f.historyRows {
		if r.Date >= fromDate && r.Date < toDate {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertSchedule(ctx context.Context, schedule *db.Schedule) error {
	f.schedules = append(f.schedules, *schedule)
	return nil
}

func (f *fakeStore) InsertAssignments(ctx context.Context, assignments []db.ScheduleAssignment) error {
	f.assignments = append(f.assignments, assignments...)
	return nil
}

func (f *fakeStore) InsertViolations(ctx context.Context, violations []db.ScheduleViolation) error {
	f.violations = append(f.violations, violations...)
	return nil
}

func (f *fakeStore) GetSchedules(ctx context.Context) ([]db.Schedule, error) {
	return f.schedules, nil
}

func fullAvailability() map[string][]string {
	av := map[string][]string{}
	for _, k := range model.DayKeys {
		av[k] = []string{"08:00-20:00"}
	}
	return av
}

func serviceRequest() rostergen.Request {
	emp := func(id, name string, role model.Role) model.Employee {
		return model.Employee{
			ID: id, Name: name, Role: role,
			MaxHoursPerWeek: 40,
			PriorityTier:    model.TierA,
			Availability:    fullAvailability(),
		}
	}
	return rostergen.Request{
		Period: model.Period{
			StartDate:    "2026-01-05",
			Weeks:        1,
			WeekStartDay: "mon",
			WeekEndDay:   "sun",
		},
		Season: model.SeasonRules{
			VictoriaDay: "2026-05-18",
			June30:      "2026-06-30",
			LabourDay:   "2026-09-07",
			Oct31:       "2026-10-31",
		},
		Hours: model.Hours{
			Greystones: model.LocationHours{Start: "09:00", End: "17:00"},
			BeachShop:  model.LocationHours{Start: "10:00", End: "18:00"},
		},
		Coverage:   model.Coverage{GreystonesWeekdayStaff: 1, GreystonesWeekendStaff: 2, BeachShopStaff: 1},
		Leadership: model.LeadershipRules{MinTeamLeadersEveryOpenDay: 1, TeamLeadersIfManagerOff: 2},
		Employees: []model.Employee{
			emp("mgr", "Morgan", model.RoleStoreManager),
			emp("lead", "Lee", model.RoleTeamLeader),
			emp("clerk", "Casey", model.RoleStoreClerk),
			emp("capt", "Charlie", model.RoleBoatCaptain),
		},
		History: model.EmptyHistory(),
		Options: rostergen.Options{OpenWeekdays: []string{"mon"}, RerollToken: "t0"},
	}
}

func TestGenerateSchedule_PersistsResult(t *testing.T) {
	store := &fakeStore{}

	res, err := GenerateSchedule(context.Background(), store, zap.NewNop(), serviceRequest(), "january", false)
	require.NoError(t, err)

	assert.True(t, res.Persisted)
	assert.NotEmpty(t, res.ScheduleID)
	require.Len(t, store.schedules, 1)
	assert.Equal(t, "january", store.schedules[0].Label)
	assert.Equal(t, "2026-01-05", store.schedules[0].PeriodStart)
	assert.Len(t, store.assignments, len(res.Result.Assignments))
	for _, row := range store.assignments {
		assert.Equal(t, res.ScheduleID, row.ScheduleID)
		assert.NotEmpty(t, row.ID)
	}
}

func TestGenerateSchedule_DryRunSkipsPersistence(t *testing.T) {
	store := &fakeStore{}

	res, err := GenerateSchedule(context.Background(), store, zap.NewNop(), serviceRequest(), "", true)
	require.NoError(t, err)

	assert.False(t, res.Persisted)
	assert.Empty(t, store.schedules)
	assert.NotEmpty(t, res.Result.Assignments)
}

func TestGenerateSchedule_NilStoreRunsInMemory(t *testing.T) {
	res, err := GenerateSchedule(context.Background(), nil, zap.NewNop(), serviceRequest(), "", false)
	require.NoError(t, err)

	assert.False(t, res.Persisted)
	assert.NotEmpty(t, res.Result.Assignments)
}

func TestGenerateSchedule_SeedsHistoryFromStore(t *testing.T) {
	// The clerk carried a heavy previous week; a rested second clerk
	// should take the Monday floor shift.
	store := &fakeStore{
		historyRows: []db.ScheduleAssignment{
			{Date: "2025-12-29", Location: "Greystones", StartTime: "09:00", EndTime: "17:00", EmployeeID: "clerk", Role: "Store Clerk"},
			{Date: "2025-12-30", Location: "Greystones", StartTime: "09:00", EndTime: "17:00", EmployeeID: "clerk", Role: "Store Clerk"},
			{Date: "2025-12-31", Location: "Greystones", StartTime: "09:00", EndTime: "17:00", EmployeeID: "clerk", Role: "Store Clerk"},
		},
	}

	req := serviceRequest()
	req.Coverage.GreystonesWeekdayStaff = 2
	req.Employees = append(req.Employees, model.Employee{
		ID: "clerk_b", Name: "Blair", Role: model.RoleStoreClerk,
		MaxHoursPerWeek: 40,
		PriorityTier:    model.TierA,
		Availability:    fullAvailability(),
	})

	res, err := GenerateSchedule(context.Background(), store, zap.NewNop(), req, "", true)
	require.NoError(t, err)

	clerkIDs := map[string]bool{}
	for _, a := range res.Result.Assignments {
		if a.Role == model.RoleStoreClerk {
			clerkIDs[a.EmployeeID] = true
		}
	}
	assert.True(t, clerkIDs["clerk_b"])
	assert.False(t, clerkIDs["clerk"])
}

func TestListSchedules(t *testing.T) {
	store := &fakeStore{schedules: []db.Schedule{{ID: "s1"}, {ID: "s2"}}}

	schedules, err := ListSchedules(context.Background(), store, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, schedules, 2)
}
