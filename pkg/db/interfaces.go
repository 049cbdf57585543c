package db

import "context"

// ScheduleStore defines the persistence operations for generated schedules.
// The postgres package provides the production implementation; tests use
// in-memory fakes.
type ScheduleStore interface {
	InsertSchedule(ctx context.Context, schedule *Schedule) error
	InsertAssignments(ctx context.Context, assignments []ScheduleAssignment) error
	InsertViolations(ctx context.Context, violations []ScheduleViolation) error
	GetSchedules(ctx context.Context) ([]Schedule, error)
	GetAssignmentsBetween(ctx context.Context, fromDate, toDate string) ([]ScheduleAssignment, error)
}
