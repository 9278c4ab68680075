// Package model defines the data types shared by the comparison pipeline.
package model

import "path/filepath"

// FunctionName identifies one of the math functions under validation.
type FunctionName string

const (
	FuncSin  FunctionName = "sin"
	FuncCos  FunctionName = "cos"
	FuncAtan FunctionName = "atan"
	FuncExp  FunctionName = "exp"
	FuncLog  FunctionName = "log"
)

// FunctionNames lists the functions in their fixed report order.
var FunctionNames = []FunctionName{FuncSin, FuncCos, FuncAtan, FuncExp, FuncLog}

// SourceRole distinguishes the two dataset columns of a comparison.
type SourceRole string

const (
	SourceCustom    SourceRole = "custom"
	SourceReference SourceRole = "reference"
)

// FunctionSpec names one function under test and the identifiers of its two
// sample datasets. Instances are created at configuration time and never
// mutated.
type FunctionSpec struct {
	Name            FunctionName `json:"name"`
	CustomSource    string       `json:"custom_source"`
	ReferenceSource string       `json:"reference_source"`
}

// DefaultSpecs returns the fixed five-function configuration with the
// conventional dataset file names rooted at dataDir: <name>_output.txt for
// the implementation under test and libm_<name>_output.txt for the trusted
// reference.
func DefaultSpecs(dataDir string) []FunctionSpec {
	specs := make([]FunctionSpec, 0, len(FunctionNames))
	for _, name := range FunctionNames {
		specs = append(specs, FunctionSpec{
			Name:            name,
			CustomSource:    filepath.Join(dataDir, string(name)+"_output.txt"),
			ReferenceSource: filepath.Join(dataDir, "libm_"+string(name)+"_output.txt"),
		})
	}
	return specs
}

// SampleSet is an ordered sequence of (x, y) pairs for one function from one
// source. Row order carries the input-domain progression; X and Y always have
// equal length.
type SampleSet struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Len returns the number of samples.
func (s SampleSet) Len() int { return len(s.X) }

// ComparisonReport bundles everything the renderer and the textual summary
// need for one function: its FunctionSpec, both sample sets, the pointwise absolute
// error series, and the maximum finite error. Immutable after construction.
type ComparisonReport struct {
	Spec      FunctionSpec `json:"spec"`
	Custom    SampleSet    `json:"custom"`
	Reference SampleSet    `json:"reference"`
	Errors    []float64    `json:"errors"`
	MaxError  float64      `json:"max_error"`
}
