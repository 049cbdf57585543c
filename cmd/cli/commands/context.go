package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/fobe-ops/roster/internal/config"
	"github.com/fobe-ops/roster/pkg/db"
)

// AppContext holds the application dependencies shared across all commands.
// Store is nil when no database URL is configured; commands that can run in
// memory degrade gracefully, the rest refuse to run.
type AppContext struct {
	Cfg    *config.AppConfig
	Store  db.ScheduleStore
	Logger *zap.Logger
	Ctx    context.Context
}
