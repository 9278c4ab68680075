package approx

// Grid returns the sampling grid from `from` to `to` inclusive with the given
// number of steps. The grid is built by repeated addition of the step, the
// same accumulation the datasets have always used, so regenerated files line
// up positionally with existing ones.
func Grid(from, to float64, steps int) []float64 {
	step := (to - from) / float64(steps)
	xs := make([]float64, 0, steps+1)
	for x := from; x <= to; x += step {
		xs = append(xs, x)
	}
	return xs
}
