package rostergen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fobe-ops/roster/pkg/core/model"
)

func TestBackfill_TopsUpToWeeklyMinimum(t *testing.T) {
	req := baseRequest(1, "mon", "tue", "wed", "thu", "fri")
	req.Employees[2].MinHoursPerWeek = 16

	res, err := Generate(req)
	require.NoError(t, err)

	// The lead covers the floor all week, so the clerk's sixteen hours
	// arrive as make-up shifts on the quiet days.
	assert.Equal(t, []string{"2026-01-06", "2026-01-07"}, datesFor(res, "clerk"))
	assert.Equal(t, 16.0, res.Totals["clerk"].WeekHours[0])
	assert.Empty(t, violationsOfKind(res, ViolationMinHours))
}

func TestBackfill_SkipsWeeksWithBlackout(t *testing.T) {
	req := baseRequest(1, "mon", "tue", "wed", "thu", "fri")
	req.Employees[2].MinHoursPerWeek = 16
	req.Unavailability = []model.UnavailabilityEntry{
		{EmployeeID: "clerk", Date: "2026-01-09", Reason: "away"},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	// An approved absence waives both the top-up and the shortfall.
	assert.Empty(t, datesFor(res, "clerk"))
	assert.Empty(t, violationsOfKind(res, ViolationMinHours))
}

func TestBackfill_SkippedInShoulderSeason(t *testing.T) {
	req := baseRequest(1, "mon", "tue", "wed", "thu", "fri")
	req.Options.ShoulderSeason = true
	req.Employees[2].MinHoursPerWeek = 16

	res, err := Generate(req)
	require.NoError(t, err)

	assert.Empty(t, datesFor(res, "clerk"))
	assert.Empty(t, violationsOfKind(res, ViolationMinHours))
}

func TestBackfill_RespectsAvailability(t *testing.T) {
	req := baseRequest(1, "mon", "tue", "wed", "thu", "fri")
	req.Employees[2].MinHoursPerWeek = 16
	req.Employees[2].Availability = map[string][]string{
		"wed": {"08:00-20:00"},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	// Only Wednesday is workable; the remaining shortfall is reported.
	assert.Equal(t, []string{"2026-01-07"}, datesFor(res, "clerk"))
	short := violationsOfKind(res, ViolationMinHours)
	require.Len(t, short, 1)
	assert.Contains(t, short[0].Detail, "Casey scheduled 8h, minimum is 16h")
}

func TestBackfill_SecondCaptainCoversTheBoatChronologically(t *testing.T) {
	req := baseRequest(1, "mon", "tue", "wed")
	req.Employees = append(req.Employees,
		testEmployee("capt_b", "Drew", model.RoleBoatCaptain, model.TierB),
	)
	req.Employees[len(req.Employees)-1].MinHoursPerWeek = 16

	res, err := Generate(req)
	require.NoError(t, err)

	// The tier A captain keeps the daily run; the second captain's
	// minimum is met from the start of the week onward.
	shifts := assignmentsFor(res, "capt_b")
	require.Len(t, shifts, 2)
	assert.Equal(t, "2026-01-05", shifts[0].Date)
	assert.Equal(t, "2026-01-06", shifts[1].Date)
	for _, a := range shifts {
		assert.Equal(t, model.LocationBoat, a.Location)
	}
}

func TestMakeUpDays_RoleOrdering(t *testing.T) {
	s := newTestState(baseRequest(1))

	var clerkOrder []string
	for _, d := range s.makeUpDays(model.RoleStoreClerk, 0) {
		clerkOrder = append(clerkOrder, weekdayKey(d.date))
	}
	assert.Equal(t, []string{"tue", "wed", "thu", "fri", "mon", "sat", "sun"}, clerkOrder)

	var captOrder []string
	for _, d := range s.makeUpDays(model.RoleBoatCaptain, 0) {
		captOrder = append(captOrder, weekdayKey(d.date))
	}
	assert.Equal(t, []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}, captOrder)
}
