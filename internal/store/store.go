// Package store persists comparison runs so accuracy results can be compared
// across library revisions.
package store

import (
	"context"

	"github.com/sells-group/approx-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for comparison runs.
type Store interface {
	CreateRun(ctx context.Context, dataDir string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, results []model.RunResult) error
	FailRun(ctx context.Context, runID string, message string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
