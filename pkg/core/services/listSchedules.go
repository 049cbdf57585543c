package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fobe-ops/roster/pkg/db"
)

// ListSchedulesStore defines the database operations needed to list stored
// schedules.
type ListSchedulesStore interface {
	GetSchedules(ctx context.Context) ([]db.Schedule, error)
}

// ListSchedules returns all stored schedule headers, newest first.
func ListSchedules(ctx context.Context, store ListSchedulesStore, logger *zap.Logger) ([]db.Schedule, error) {
	logger.Debug("Fetching stored schedules")
	schedules, err := store.GetSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}
	logger.Debug("Schedules fetched", zap.Int("count", len(schedules)))
	return schedules, nil
}
