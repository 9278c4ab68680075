// Package render draws the function and absolute-error charts with
// gonum/plot. It implements the compare.Renderer interface.
package render

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sells-group/approx-cli/internal/model"
)

// PlotRenderer saves one PNG per chart into a directory.
type PlotRenderer struct {
	dir    string
	width  vg.Length
	height vg.Length
}

// NewPlotRenderer creates a renderer writing charts into dir.
func NewPlotRenderer(dir string) *PlotRenderer {
	return &PlotRenderer{dir: dir, width: 8 * vg.Inch, height: 6 * vg.Inch}
}

// FunctionCurve draws the sampled function under test (input vs output) to
// <dir>/<name>.png.
func (r *PlotRenderer) FunctionCurve(report model.ComparisonReport) error {
	name := string(report.Spec.Name)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("y = %s(x)", name)
	p.X.Label.Text = "x"
	p.Y.Label.Text = fmt.Sprintf("%s(x)", name)

	line, err := plotter.NewLine(xyPoints(report.Custom.X, report.Custom.Y))
	if err != nil {
		return eris.Wrapf(err, "render: %s curve", name)
	}
	p.Add(line)

	path := filepath.Join(r.dir, name+".png")
	if err := p.Save(r.width, r.height, path); err != nil {
		return eris.Wrapf(err, "render: save %s", path)
	}
	return nil
}

// ErrorCurve draws the pointwise absolute error against the reference input
// grid to <dir>/<name>_error.png.
func (r *PlotRenderer) ErrorCurve(report model.ComparisonReport) error {
	name := string(report.Spec.Name)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s(x) absolute error compared to libm", name)
	p.X.Label.Text = "x"
	p.Y.Label.Text = fmt.Sprintf("%s(x) error", name)

	// The error series is truncated to the shorter set, so clip the grid to
	// match.
	xs := report.Reference.X
	if len(xs) > len(report.Errors) {
		xs = xs[:len(report.Errors)]
	}

	line, err := plotter.NewLine(xyPoints(xs, report.Errors))
	if err != nil {
		return eris.Wrapf(err, "render: %s error curve", name)
	}
	p.Add(line)

	path := filepath.Join(r.dir, name+"_error.png")
	if err := p.Save(r.width, r.height, path); err != nil {
		return eris.Wrapf(err, "render: save %s", path)
	}
	return nil
}

// xyPoints pairs xs with ys, dropping non-finite points. NaN or Inf values
// poison the axis ranges, so they are left out of the drawn series.
func xyPoints(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}
