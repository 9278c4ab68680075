// Package approx implements sine, cosine, arctangent, the exponential
// function, and the natural logarithm using polynomial and rational
// approximations from Hart's "Computer Approximations" (1st edition). Each
// function reduces its input to a small interval and evaluates the
// appropriate approximation from the book's appendix there. This is the
// implementation whose accuracy the comparison pipeline validates against
// the standard library.
package approx

import "math"

const (
	pi      = 3.1415926535897932384626433832795028841971693993751058
	div2Pi  = 1.0 / (2.0 * pi)
	sqrt2   = 1.4142135623730950488016887242096980785696718753769
	log2E   = 1.4426950408889634073599246810018921374266459541529
	logE2   = 0.6931471805599453094172321214581765680755001343602
	expBias = 1023
)

// floord truncates toward negative infinity via integer conversion. Only
// valid for inputs within int64 range; every caller has already reduced its
// argument well inside that.
func floord(x float64) float64 {
	if x >= 0 {
		return float64(int64(x))
	}
	return float64(int64(x) - 1)
}

// sinStage1 evaluates polynomial SIN 2922: sin(pi/6 * x) on [0, 1],
// 16.47 digits.
func sinStage1(x float64) float64 {
	a := [...]float64{
		.52359877559829885532,
		-.2392459620393377657e-1,
		.32795319441392666e-3,
		-.214071970654441e-5,
		.815113605169e-8,
		-.2020852964e-10,
	}

	p := a[5]
	x2 := x * x
	for i := 4; i >= 0; i-- {
		p *= x2
		p += a[i]
	}
	return p * x
}

// sinStage2 computes sin(2*pi*x) on [0, 0.25] via the triple-angle identity
// sin(x) = sin(x/3) * (3 - 4*sin(x/3)^2), which brings the argument into
// sinStage1's range.
func sinStage2(x float64) float64 {
	sin6 := sinStage1(x * 4.0)
	return sin6 * (3.0 - 4.0*sin6*sin6)
}

// sinStage3 computes sin(2*pi*x) on [0, 1] by quadrant symmetry.
func sinStage3(x float64) float64 {
	switch {
	case x < 0.25:
		return sinStage2(x)
	case x < 0.5:
		return sinStage2(0.5 - x)
	case x < 0.75:
		return -sinStage2(x - 0.5)
	default:
		return -sinStage2(1.0 - x)
	}
}

// Sin returns the sine of x (in radians) for any real x, mapping the input
// into one period before the staged reduction.
func Sin(x float64) float64 {
	xDivPi := x * div2Pi
	return sinStage3(xDivPi - floord(xDivPi))
}

// Cos returns the cosine of x using cos(x) = sin(x + pi/2).
func Cos(x float64) float64 {
	shifted := x*div2Pi + 0.25
	return sinStage3(shifted - floord(shifted))
}

// atanStage1 evaluates polynomial ARCTN 4903: arctan(x) on [0, tan(pi/32)],
// 16.52 digits.
func atanStage1(x float64) float64 {
	a := [...]float64{
		.99999999999969557,
		-.3333333333318,
		.1999999997276,
		-.14285702288,
		.11108719478,
		-.8870580341e-1,
	}

	p := a[5]
	x2 := x * x
	for i := 4; i >= 0; i-- {
		p *= x2
		p += a[i]
	}
	return p * x
}

// Partition boundaries x_i = tan((2i-2)*pi/32) with precomputed 1/x_i and
// (1/x_i^2 + 1), used to shift any non-negative argument into atanStage1's
// range via arctan(x) = arctan(x_i) + arctan(t).
var (
	atanXi = [...]float64{
		0.0,
		0.0984914033571642477671304050090839155018329620361328125,
		0.3033466836073424044428747947677038609981536865234375,
		0.53451113595079158269385288804187439382076263427734375,
		0.82067879082866024287312711749109439551830291748046875,
		1.218503525587976366040265929768793284893035888671875,
		1.8708684117893887854933154812897555530071258544921875,
		3.29655820893832096629694206058047711849212646484375,
		math.Inf(1),
	}

	atanDivXi = [...]float64{
		0,
		0,
		5.02733949212584807497705696732737123966217041015625,
		2.41421356237309492343001693370752036571502685546875,
		1.496605762665489169904731170390732586383819580078125,
		1.0000000000000002220446049250313080847263336181640625,
		0.66817863791929898997778991542872972786426544189453125,
		0.414213562373095089963470627481001429259777069091796875,
		0.1989123673796580893391450217677629552781581878662109375,
	}

	atanDivXi2Plus1 = [...]float64{
		0,
		0,
		26.2741423690881816810360760428011417388916015625,
		6.8284271247461898468600338674150407314300537109375,
		3.23982880884355051165357508580200374126434326171875,
		2.000000000000000444089209850062616169452667236328125,
		1.446462692171689656817079594475217163562774658203125,
		1.1715728752538099310953612075536511838436126708984375,
		1.0395661298965801488947136022034101188182830810546875,
	}
)

// atanStage2 computes arctan(x) for x >= 0 by binary search over the eight
// precomputed partitions.
func atanStage2(x float64) float64 {
	l, r := 0, 8
	for r-l > 1 {
		m := (l + r) / 2
		if atanXi[m] <= x {
			l = m
		} else {
			r = m
		}
	}

	if r <= 1 {
		return atanStage1(x)
	}

	t := atanDivXi[r] - atanDivXi2Plus1[r]/(atanDivXi[r]+x)
	if t >= 0 {
		return float64(2*r-2)*pi/32.0 + atanStage1(t)
	}
	return float64(2*r-2)*pi/32.0 - atanStage1(-t)
}

// Atan returns the arctangent of x using arctan(x) = -arctan(-x) for
// negative inputs.
func Atan(x float64) float64 {
	if x >= 0 {
		return atanStage2(x)
	}
	return -atanStage2(-x)
}

// Atan2 returns the angle of the point (x, y) in the usual quadrant
// convention. Atan2(0, 0) is NaN.
func Atan2(y, x float64) float64 {
	if x > 0 {
		return Atan(y / x)
	}
	if x < 0 {
		if y >= 0 {
			return Atan(y/x) + pi
		}
		return Atan(y/x) - pi
	}
	if y > 0 {
		return pi / 2.0
	}
	if y < 0 {
		return -pi / 2.0
	}
	return math.NaN()
}

// exp2Stage1 evaluates rational EXPB 1067: 2^x on [-1/2, 1/2] as
// (Q(x^2) + x*P(x^2)) / (Q(x^2) - x*P(x^2)), 18.08 digits.
func exp2Stage1(x float64) float64 {
	aP := [...]float64{
		.1513906799054338915894328e4,
		.20202065651286927227886e2,
		.23093347753750233624e-1,
	}
	aQ := [...]float64{
		.4368211662727558498496814e4,
		.233184211427481623790295e3,
		1.0,
	}

	x2 := x * x

	p := aP[2]
	for i := 1; i >= 0; i-- {
		p *= x2
		p += aP[i]
	}
	p *= x

	q := aQ[2]
	for i := 1; i >= 0; i-- {
		q *= x2
		q += aQ[i]
	}

	return (q + p) / (q - p)
}

// Exp2 returns 2**x. The integer part of x is applied by constructing the
// float64 exponent field directly; the fractional part goes through
// exp2Stage1, shifted by sqrt(2) to center its range.
func Exp2(x float64) float64 {
	xInt := int(x)
	if x < 0 {
		xInt--
	}

	if xInt < -1022 {
		return 0.0
	}
	if xInt > 1023 {
		return math.Inf(1)
	}

	scale := math.Float64frombits(uint64(xInt+expBias) << 52)
	return scale * sqrt2 * exp2Stage1(x-float64(xInt)-0.5)
}

// Exp returns e**x via exp(x) = 2^(x * log2(e)).
func Exp(x float64) float64 {
	return Exp2(x * log2E)
}

// log2Stage1 evaluates rational LOG2 2524: log2(x) on [0.5, 1], 8.32 digits.
func log2Stage1(x float64) float64 {
	aP := [...]float64{
		-.205466671951e1,
		-.88626599391e1,
		.610585199015e1,
		.481147460989e1,
	}
	aQ := [...]float64{
		.353553425277,
		.454517087629e1,
		.642784209029e1,
		1.0,
	}

	p := aP[3]
	for i := 2; i >= 0; i-- {
		p *= x
		p += aP[i]
	}

	q := aQ[3]
	for i := 2; i >= 0; i-- {
		q *= x
		q += aQ[i]
	}

	return p / q
}

// Log2 returns log base 2 of x, NaN for x <= 0. The exponent field supplies
// the integer part; the mantissa, rebiased into [1, 2), goes through
// log2Stage1.
func Log2(x float64) float64 {
	if x <= 0.0 {
		return math.NaN()
	}

	bits := math.Float64bits(x)
	integerPart := int(bits>>52) - expBias

	bits |= uint64(expBias) << 52
	bits &^= uint64(expBias+1) << 52

	return float64(integerPart) + log2Stage1(math.Float64frombits(bits))
}

// Log returns the natural logarithm of x via log(x) = log2(x) * ln(2).
func Log(x float64) float64 {
	return Log2(x) * logE2
}
