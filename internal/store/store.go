// Package store persists the run history: one record per formatting run,
// on SQLite for workstation use or Postgres when the server is shared.
package store

import (
	"context"

	"github.com/sells-group/import-formatter/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the run history.
type Store interface {
	CreateRun(ctx context.Context, sourceFile string) (*model.RunRecord, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, stats model.Stats, errCount, warnCount int) error
	GetRun(ctx context.Context, runID string) (*model.RunRecord, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.RunRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}
