package model

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSpecsOrder(t *testing.T) {
	specs := DefaultSpecs("data")
	require.Len(t, specs, 5)

	want := []FunctionName{FuncSin, FuncCos, FuncAtan, FuncExp, FuncLog}
	for i, spec := range specs {
		assert.Equal(t, want[i], spec.Name)
	}
}

func TestDefaultSpecsPaths(t *testing.T) {
	specs := DefaultSpecs("samples")

	assert.Equal(t, filepath.Join("samples", "sin_output.txt"), specs[0].CustomSource)
	assert.Equal(t, filepath.Join("samples", "libm_sin_output.txt"), specs[0].ReferenceSource)
	assert.Equal(t, filepath.Join("samples", "log_output.txt"), specs[4].CustomSource)
	assert.Equal(t, filepath.Join("samples", "libm_log_output.txt"), specs[4].ReferenceSource)
}

func TestSampleSetLen(t *testing.T) {
	assert.Zero(t, SampleSet{}.Len())
	assert.Equal(t, 2, SampleSet{X: []float64{1, 2}, Y: []float64{3, 4}}.Len())
}

func TestNewRunResult(t *testing.T) {
	report := ComparisonReport{
		Spec:     FunctionSpec{Name: FuncExp},
		Errors:   []float64{0.5, 1.5, 0.25},
		MaxError: 1.5,
	}

	res := NewRunResult(report)
	assert.Equal(t, FuncExp, res.Function)
	assert.Equal(t, 3, res.Samples)
	require.NotNil(t, res.MaxError)
	assert.Equal(t, 1.5, *res.MaxError)
}

func TestNewRunResultNaNBecomesNil(t *testing.T) {
	report := ComparisonReport{
		Spec:     FunctionSpec{Name: FuncLog},
		Errors:   []float64{math.NaN()},
		MaxError: math.NaN(),
	}

	res := NewRunResult(report)
	assert.Nil(t, res.MaxError)
	assert.Equal(t, 1, res.Samples)
}
