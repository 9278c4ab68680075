package model

import (
	"math"
	"time"
)

// RunStatus represents the current state of a comparison run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one persisted execution of the comparison pipeline.
type Run struct {
	ID        string      `json:"id"`
	DataDir   string      `json:"data_dir"`
	Status    RunStatus   `json:"status"`
	Results   []RunResult `json:"results,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RunResult is the stored per-function outcome of a run. MaxError is nil when
// the reduction was degenerate (no finite error values).
type RunResult struct {
	Function FunctionName `json:"function"`
	Samples  int          `json:"samples"`
	MaxError *float64     `json:"max_error"`
}

// NewRunResult converts a report into its storable form, mapping a NaN
// maximum to a NULL-able nil.
func NewRunResult(report ComparisonReport) RunResult {
	res := RunResult{
		Function: report.Spec.Name,
		Samples:  len(report.Errors),
	}
	if !math.IsNaN(report.MaxError) {
		v := report.MaxError
		res.MaxError = &v
	}
	return res
}
