package rostergen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fobe-ops/roster/pkg/core/model"
)

func TestAdHoc_ValidBookingIsLayeredOn(t *testing.T) {
	req := baseRequest(1, "mon")
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "clerk", Date: "2026-01-05", Start: "10:00", End: "14:00", Location: model.LocationGreystones},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	shifts := assignmentsFor(res, "clerk")
	require.Len(t, shifts, 1)
	assert.Equal(t, SourceAdHoc, shifts[0].Source)
	assert.Equal(t, "10:00", shifts[0].Start)
	assert.Empty(t, violationsOfKind(res, ViolationAdHocConflict))
	assert.Equal(t, 4.0, res.Totals["clerk"].WeekHours[0])
}

func TestAdHoc_BookingNeverDisplacesBaseline(t *testing.T) {
	plainReq := baseRequest(1, "mon", "wed", "fri")
	bookedReq := baseRequest(1, "mon", "wed", "fri")
	bookedReq.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "clerk", Date: "2026-01-07", Start: "10:00", End: "14:00", Location: model.LocationGreystones},
	}

	plain, err := Generate(plainReq)
	require.NoError(t, err)
	booked, err := Generate(bookedReq)
	require.NoError(t, err)

	generatedPerDay := func(res *Result) map[string]int {
		counts := map[string]int{}
		for _, a := range res.Assignments {
			if a.Source == SourceGenerated {
				counts[a.Date]++
			}
		}
		return counts
	}

	// The booking layers on top of the generated shifts; no day loses a
	// baseline assignment because of it.
	before := generatedPerDay(plain)
	after := generatedPerDay(booked)
	for date, n := range before {
		assert.GreaterOrEqual(t, after[date], n, "baseline shrank on %s", date)
	}

	extra := assignmentsFor(booked, "clerk")
	require.Len(t, extra, 1)
	assert.Equal(t, SourceAdHoc, extra[0].Source)
	assert.Equal(t, "2026-01-07", extra[0].Date)
}

func TestAdHoc_ClosedDayIsAConflict(t *testing.T) {
	req := baseRequest(1, "mon")
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "clerk", Date: "2026-01-06", Start: "10:00", End: "14:00", Location: model.LocationGreystones},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	assert.Empty(t, assignmentsFor(res, "clerk"))
	conflicts := violationsOfKind(res, ViolationAdHocConflict)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "2026-01-06", conflicts[0].Date)
	assert.Contains(t, conflicts[0].Detail, "Greystones is closed on 2026-01-06")
	assert.Contains(t, conflicts[0].Detail, "weekday not in the open set")
}

func TestAdHoc_OutsidePeriodIsAConflict(t *testing.T) {
	req := baseRequest(1, "mon")
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "clerk", Date: "2026-02-10", Start: "10:00", End: "14:00", Location: model.LocationGreystones},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	conflicts := violationsOfKind(res, ViolationAdHocConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Detail, "outside the schedule period")
}

func TestAdHoc_UnknownEmployeeIsAConflict(t *testing.T) {
	req := baseRequest(1, "mon")
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "ghost", Date: "2026-01-05", Start: "10:00", End: "14:00", Location: model.LocationGreystones},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	conflicts := violationsOfKind(res, ViolationAdHocConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Detail, `unknown employee "ghost"`)
}

func TestAdHoc_RoleLocationMismatchIsAConflict(t *testing.T) {
	req := baseRequest(1, "mon")
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "capt", Date: "2026-01-05", Start: "10:00", End: "14:00", Location: model.LocationGreystones},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	conflicts := violationsOfKind(res, ViolationAdHocConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Detail, "cannot work at Greystones")
}

func TestAdHoc_DoubleBookingIsAConflict(t *testing.T) {
	req := baseRequest(1, "mon")
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "lead", Date: "2026-01-05", Start: "10:00", End: "14:00", Location: model.LocationGreystones},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	conflicts := violationsOfKind(res, ViolationAdHocConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Detail, "already has a shift that day")
}

func TestAdHoc_ClosedBeachShopIsAConflict(t *testing.T) {
	req := baseRequest(1, "mon")
	req.Options.ScheduleBeachShop = true
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "clerk", Date: "2026-01-05", Start: "10:00", End: "14:00", Location: model.LocationBeachShop},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	conflicts := violationsOfKind(res, ViolationAdHocConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Detail, "Beach Shop is closed on 2026-01-05")
}

func TestAdHoc_OverWeeklyMaxIsAConflict(t *testing.T) {
	req := baseRequest(1, "mon")
	req.Employees[2].MaxHoursPerWeek = 4
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "clerk", Date: "2026-01-05", Start: "09:00", End: "17:00", Location: model.LocationGreystones},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	conflicts := violationsOfKind(res, ViolationAdHocConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Detail, "would exceed weekly max hours")
}

func TestAdHoc_MalformedTimesAreAConflictNotAnError(t *testing.T) {
	req := baseRequest(1, "mon")
	req.AdHocBookings = []model.AdHocBooking{
		{EmployeeID: "clerk", Date: "2026-01-05", Start: "25:00", End: "14:00", Location: model.LocationGreystones},
		{EmployeeID: "clerk", Date: "2026-01-05", Start: "14:00", End: "10:00", Location: model.LocationGreystones},
	}

	res, err := Generate(req)
	require.NoError(t, err)

	conflicts := violationsOfKind(res, ViolationAdHocConflict)
	require.Len(t, conflicts, 2)
	assert.Empty(t, assignmentsFor(res, "clerk"))
}

func TestRoleAllowedAt(t *testing.T) {
	assert.True(t, roleAllowedAt(model.RoleBoatCaptain, model.LocationBoat))
	assert.False(t, roleAllowedAt(model.RoleBoatCaptain, model.LocationBeachShop))
	assert.True(t, roleAllowedAt(model.RoleTeamLeader, model.LocationBeachShop))
	assert.False(t, roleAllowedAt(model.RoleStoreManager, model.LocationBeachShop))
}
