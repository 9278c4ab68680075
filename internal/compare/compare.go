// Package compare implements the accuracy-comparison core: pointwise absolute
// error between a custom sample set and its libm reference, the finite-max
// reduction, and the pipeline that runs both over the configured functions.
package compare

import (
	"math"

	"github.com/sells-group/approx-cli/internal/model"
)

// AbsoluteError computes the pointwise absolute error series between the two
// sample sets. Alignment is purely positional: entry i is
// |reference.Y[i] - custom.Y[i]| and the series length is the shorter of the
// two inputs. NaN and Inf values propagate into the series; they are filtered
// only by the reduction step.
func AbsoluteError(custom, reference model.SampleSet) []float64 {
	n := custom.Len()
	if reference.Len() < n {
		n = reference.Len()
	}

	errs := make([]float64, n)
	for i := 0; i < n; i++ {
		errs[i] = math.Abs(reference.Y[i] - custom.Y[i])
	}
	return errs
}

// MaxFinite returns the largest finite value in errs. NaN and Inf entries are
// ignored; when no finite entry exists the maximum is undefined and NaN is
// returned.
func MaxFinite(errs []float64) float64 {
	max := math.NaN()
	for _, e := range errs {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			continue
		}
		if math.IsNaN(max) || e > max {
			max = e
		}
	}
	return max
}
