package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/approx-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func floatPtr(v float64) *float64 { return &v }

func TestSQLiteCreateAndGetRun(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "/data/samples")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "/data/samples", got.DataDir)
	assert.Equal(t, model.RunStatusRunning, got.Status)
	assert.Empty(t, got.Results)
}

func TestSQLiteCompleteRunPreservesResultOrder(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, ".")
	require.NoError(t, err)

	results := []model.RunResult{
		{Function: model.FuncSin, Samples: 100, MaxError: floatPtr(2.9e-5)},
		{Function: model.FuncCos, Samples: 100, MaxError: floatPtr(1.1e-5)},
		{Function: model.FuncAtan, Samples: 100, MaxError: floatPtr(3.3e-6)},
		{Function: model.FuncExp, Samples: 100, MaxError: floatPtr(7.2e-4)},
		{Function: model.FuncLog, Samples: 100, MaxError: nil}, // degenerate
	}
	require.NoError(t, st.CompleteRun(ctx, run.ID, results))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.Len(t, got.Results, 5)

	for i, want := range results {
		assert.Equal(t, want.Function, got.Results[i].Function, "position %d", i)
		assert.Equal(t, want.Samples, got.Results[i].Samples)
		if want.MaxError == nil {
			assert.Nil(t, got.Results[i].MaxError)
		} else {
			require.NotNil(t, got.Results[i].MaxError)
			assert.Equal(t, *want.MaxError, *got.Results[i].MaxError)
		}
	}
}

func TestSQLiteCompleteRunUnknownID(t *testing.T) {
	st := newTestSQLite(t)

	err := st.CompleteRun(context.Background(), "no-such-run", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteFailRun(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, ".")
	require.NoError(t, err)
	require.NoError(t, st.FailRun(ctx, run.ID, "compare: cos: load custom samples: sample source not found"))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Contains(t, got.Error, "cos")
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	st := newTestSQLite(t)

	_, err := st.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteListRunsFilterAndLimit(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	first, err := st.CreateRun(ctx, ".")
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, first.ID, nil))

	_, err = st.CreateRun(ctx, ".")
	require.NoError(t, err)

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	complete, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, first.ID, complete[0].ID)

	limited, err := st.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
