package postgres

import (
	"context"
	"fmt"

	"github.com/fobe-ops/roster/pkg/db"
)

// InsertSchedule inserts a schedule header record.
func (d *DB) InsertSchedule(ctx context.Context, schedule *db.Schedule) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO schedule (id, label, period_start, weeks, week_start_day, reroll_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, schedule.ID, schedule.Label, schedule.PeriodStart, schedule.Weeks,
		schedule.WeekStartDay, schedule.RerollToken, schedule.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// InsertAssignments inserts assignment records in a single transaction.
func (d *DB) InsertAssignments(ctx context.Context, assignments []db.ScheduleAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO schedule_assignment
				(id, schedule_id, shift_date, location, start_time, end_time, employee_id, role, source)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, a.ID, a.ScheduleID, a.Date, a.Location, a.StartTime, a.EndTime, a.EmployeeID, a.Role, a.Source)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// InsertViolations inserts violation records in a single transaction.
func (d *DB) InsertViolations(ctx context.Context, violations []db.ScheduleViolation) error {
	if len(violations) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, v := range violations {
		_, err := tx.Exec(ctx, `
			INSERT INTO schedule_violation (id, schedule_id, violation_date, kind, detail)
			VALUES ($1, $2, $3, $4, $5)
		`, v.ID, v.ScheduleID, v.Date, v.Kind, v.Detail)
		if err != nil {
			return fmt.Errorf("failed to insert violation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSchedules retrieves all schedule headers, newest first.
func (d *DB) GetSchedules(ctx context.Context) ([]db.Schedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, label, period_start, weeks, week_start_day, reroll_token, created_at
		FROM schedule
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []db.Schedule
	for rows.Next() {
		var s db.Schedule
		if err := rows.Scan(&s.ID, &s.Label, &s.PeriodStart, &s.Weeks,
			&s.WeekStartDay, &s.RerollToken, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}
	return schedules, nil
}

// GetAssignmentsBetween retrieves assignments with shift dates in
// [fromDate, toDate), both "2006-01-02" strings.
func (d *DB) GetAssignmentsBetween(ctx context.Context, fromDate, toDate string) ([]db.ScheduleAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, schedule_id, shift_date, location, start_time, end_time, employee_id, role, source
		FROM schedule_assignment
		WHERE shift_date >= $1 AND shift_date < $2
		ORDER BY shift_date, employee_id
	`, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.ScheduleAssignment
	for rows.Next() {
		var a db.ScheduleAssignment
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.Date, &a.Location,
			&a.StartTime, &a.EndTime, &a.EmployeeID, &a.Role, &a.Source); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}
