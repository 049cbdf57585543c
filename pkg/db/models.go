package db

import "time"

// Schedule is the header row for one finalized generation run.
type Schedule struct {
	ID           string
	Label        string
	PeriodStart  string
	Weeks        int
	WeekStartDay string
	RerollToken  string
	CreatedAt    time.Time
}

// ScheduleAssignment is one stored shift.
type ScheduleAssignment struct {
	ID         string
	ScheduleID string
	Date       string
	Location   string
	StartTime  string
	EndTime    string
	EmployeeID string
	Role       string
	Source     string
}

// ScheduleViolation is one stored rule breach attached to a schedule.
type ScheduleViolation struct {
	ID         string
	ScheduleID string
	Date       string
	Kind       string
	Detail     string
}
