package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fobe-ops/roster/pkg/core/model"
	"github.com/fobe-ops/roster/pkg/core/rostergen"
	"github.com/fobe-ops/roster/pkg/db"
)

// historyLookbackWeeks is how far back stored assignments are fetched to
// seed the fairness pass.
const historyLookbackWeeks = 4

// GenerateScheduleStore defines the database operations needed to generate
// and persist a schedule.
type GenerateScheduleStore interface {
	GetAssignmentsBetween(ctx context.Context, fromDate, toDate string) ([]db.ScheduleAssignment, error)
	InsertSchedule(ctx context.Context, schedule *db.Schedule) error
	InsertAssignments(ctx context.Context, assignments []db.ScheduleAssignment) error
	InsertViolations(ctx context.Context, violations []db.ScheduleViolation) error
}

// GenerateScheduleResult contains the generation outcome.
type GenerateScheduleResult struct {
	ScheduleID string
	Result     *rostergen.Result
	Persisted  bool
}

// GenerateSchedule runs the engine and persists the outcome. A nil store
// runs fully in memory; dryRun skips persistence but still seeds fairness
// from stored history when a store is present.
func GenerateSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	logger *zap.Logger,
	req rostergen.Request,
	label string,
	dryRun bool,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting schedule generation",
		zap.String("period_start", req.Period.StartDate),
		zap.Int("weeks", req.Period.Weeks),
		zap.Bool("dry_run", dryRun))

	if store != nil && historyEmpty(req.History) {
		start, err := time.Parse("2006-01-02", req.Period.StartDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse period start date: %w", err)
		}
		from := start.AddDate(0, 0, -7*historyLookbackWeeks).Format("2006-01-02")

		logger.Debug("Fetching historical assignments",
			zap.String("from", from),
			zap.String("to", req.Period.StartDate))
		rows, err := store.GetAssignmentsBetween(ctx, from, req.Period.StartDate)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch historical assignments: %w", err)
		}

		history, err := db.BuildHistoricalAggregates(rows, req.Period.StartDate)
		if err != nil {
			return nil, fmt.Errorf("failed to build historical aggregates: %w", err)
		}
		req.History = history
		logger.Debug("Historical aggregates built", zap.Int("assignment_rows", len(rows)))
	}

	result, err := rostergen.Generate(req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	logger.Info("Schedule generated",
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("violations", len(result.Violations)))

	out := &GenerateScheduleResult{Result: result}
	if store == nil || dryRun {
		logger.Info("Skipping persistence", zap.Bool("dry_run", dryRun))
		return out, nil
	}

	scheduleID := uuid.New().String()
	schedule := &db.Schedule{
		ID:           scheduleID,
		Label:        label,
		PeriodStart:  req.Period.StartDate,
		Weeks:        req.Period.Weeks,
		WeekStartDay: req.Period.WeekStartDay,
		RerollToken:  req.Options.RerollToken,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.InsertSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to persist schedule: %w", err)
	}

	assignmentRows := make([]db.ScheduleAssignment, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		assignmentRows = append(assignmentRows, db.ScheduleAssignment{
			ID:         uuid.New().String(),
			ScheduleID: scheduleID,
			Date:       a.Date,
			Location:   string(a.Location),
			StartTime:  a.Start,
			EndTime:    a.End,
			EmployeeID: a.EmployeeID,
			Role:       string(a.Role),
			Source:     string(a.Source),
		})
	}
	if err := store.InsertAssignments(ctx, assignmentRows); err != nil {
		return nil, fmt.Errorf("failed to persist assignments: %w", err)
	}

	violationRows := make([]db.ScheduleViolation, 0, len(result.Violations))
	for _, v := range result.Violations {
		violationRows = append(violationRows, db.ScheduleViolation{
			ID:         uuid.New().String(),
			ScheduleID: scheduleID,
			Date:       v.Date,
			Kind:       string(v.Kind),
			Detail:     v.Detail,
		})
	}
	if err := store.InsertViolations(ctx, violationRows); err != nil {
		return nil, fmt.Errorf("failed to persist violations: %w", err)
	}

	logger.Info("Schedule persisted",
		zap.String("schedule_id", scheduleID),
		zap.Int("assignment_rows", len(assignmentRows)),
		zap.Int("violation_rows", len(violationRows)))

	out.ScheduleID = scheduleID
	out.Persisted = true
	return out, nil
}

func historyEmpty(h model.HistoricalAggregates) bool {
	return len(h.WeeklyHours) == 0 && len(h.LeaderDays) == 0 && len(h.WorkedDays) == 0
}
