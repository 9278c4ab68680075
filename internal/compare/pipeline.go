package compare

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/approx-cli/internal/model"
)

// Renderer draws the two charts for one report. Implementations live outside
// the core so the pipeline can run without any rendering side effects.
type Renderer interface {
	FunctionCurve(report model.ComparisonReport) error
	ErrorCurve(report model.ComparisonReport) error
}

// Loader resolves a dataset identifier to a sample set.
type Loader interface {
	Load(sourceID string) (model.SampleSet, error)
}

// Pipeline runs the comparison for an ordered list of function specs.
type Pipeline struct {
	loader   Loader
	renderer Renderer  // nil disables chart output
	out      io.Writer // receives the per-function summary lines
}

// New creates a Pipeline. A nil renderer skips chart rendering.
func New(loader Loader, renderer Renderer, out io.Writer) *Pipeline {
	return &Pipeline{loader: loader, renderer: renderer, out: out}
}

// Run executes the comparison for each spec in order and returns the reports
// in that same order. It fails fast: the first load, parse, or render error
// aborts the run with an error naming the function and source, and no
// summary line is emitted for functions not yet processed.
//
// For each report one line of the form
//
//	<name> maximum error : <max with 60 fractional digits>
//
// is written to the pipeline's output.
func (p *Pipeline) Run(specs []model.FunctionSpec) ([]model.ComparisonReport, error) {
	log := zap.L()
	reports := make([]model.ComparisonReport, 0, len(specs))

	for _, spec := range specs {
		custom, err := p.loader.Load(spec.CustomSource)
		if err != nil {
			return nil, eris.Wrapf(err, "compare: %s: load %s samples", spec.Name, model.SourceCustom)
		}

		reference, err := p.loader.Load(spec.ReferenceSource)
		if err != nil {
			return nil, eris.Wrapf(err, "compare: %s: load %s samples", spec.Name, model.SourceReference)
		}

		if custom.Len() != reference.Len() {
			log.Warn("compare: sample sets differ in length, truncating positionally",
				zap.String("function", string(spec.Name)),
				zap.Int("custom_len", custom.Len()),
				zap.Int("reference_len", reference.Len()),
			)
		}

		errs := AbsoluteError(custom, reference)
		report := model.ComparisonReport{
			Spec:      spec,
			Custom:    custom,
			Reference: reference,
			Errors:    errs,
			MaxError:  MaxFinite(errs),
		}

		if p.renderer != nil {
			if err := p.renderer.FunctionCurve(report); err != nil {
				return nil, eris.Wrapf(err, "compare: %s: render function curve", spec.Name)
			}
			if err := p.renderer.ErrorCurve(report); err != nil {
				return nil, eris.Wrapf(err, "compare: %s: render error curve", spec.Name)
			}
		}

		if p.out != nil {
			if _, err := fmt.Fprintf(p.out, "%s maximum error : %.60e\n", spec.Name, report.MaxError); err != nil {
				return nil, eris.Wrapf(err, "compare: %s: write summary", spec.Name)
			}
		}

		log.Info("compare: function complete",
			zap.String("function", string(spec.Name)),
			zap.Int("samples", len(errs)),
			zap.Float64("max_error", report.MaxError),
		)

		reports = append(reports, report)
	}

	return reports, nil
}
