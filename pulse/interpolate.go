package pulse

import (
	"errors"
	"fmt"
)

// Interpolator kinds.
const (
	InterpolatorPchip  = "pchip"
	InterpolatorLinear = "linear"
)

// ErrUnknownInterpolator reports an unsupported interpolator kind.
var ErrUnknownInterpolator = errors.New("unknown interpolator")

// sampleCurve builds a smooth curve through the knots (xs, ys) and samples
// it at n uniform points covering [xs[0], xs[len-1]]. xs must be strictly
// increasing.
func sampleCurve(kind string, xs, ys []float64, n int) ([]float64, error) {
	if len(xs) != len(ys) || len(xs) == 0 {
		return nil, fmt.Errorf("interpolation needs matching non-empty knots, got %d/%d", len(xs), len(ys))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("knot positions must be strictly increasing, got %g after %g", xs[i], xs[i-1])
		}
	}
	switch kind {
	case InterpolatorPchip, "":
		return pchipSample(xs, ys, n), nil
	case InterpolatorLinear:
		return linearSample(xs, ys, n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterpolator, kind)
	}
}

// linearSample samples a piecewise-linear curve through the knots.
func linearSample(xs, ys []float64, n int) []float64 {
	if len(xs) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = ys[0]
		}
		return out
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		x := sampleX(xs, i, n)
		seg := segment(xs, x)
		x0, x1 := xs[seg], xs[seg+1]
		t := (x - x0) / (x1 - x0)
		out[i] = ys[seg]*(1-t) + ys[seg+1]*t
	}
	return out
}

// pchipSample samples a monotone piecewise-cubic Hermite curve through the
// knots (Fritsch-Carlson slopes).
func pchipSample(xs, ys []float64, n int) []float64 {
	if len(xs) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = ys[0]
		}
		return out
	}
	slopes := pchipSlopes(xs, ys)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		x := sampleX(xs, i, n)
		seg := segment(xs, x)
		h := xs[seg+1] - xs[seg]
		t := (x - xs[seg]) / h
		t2 := t * t
		t3 := t2 * t
		h00 := 2*t3 - 3*t2 + 1
		h10 := t3 - 2*t2 + t
		h01 := -2*t3 + 3*t2
		h11 := t3 - t2
		out[i] = h00*ys[seg] + h10*h*slopes[seg] + h01*ys[seg+1] + h11*h*slopes[seg+1]
	}
	return out
}

// pchipSlopes computes knot slopes that preserve monotonicity between knots.
func pchipSlopes(xs, ys []float64) []float64 {
	m := len(xs)
	deltas := make([]float64, m-1)
	for i := range deltas {
		deltas[i] = (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
	}
	slopes := make([]float64, m)
	slopes[0] = deltas[0]
	slopes[m-1] = deltas[m-2]
	for i := 1; i < m-1; i++ {
		if deltas[i-1]*deltas[i] <= 0 {
			slopes[i] = 0
			continue
		}
		// Weighted harmonic mean of neighboring secant slopes.
		w1 := 2*(xs[i+1]-xs[i]) + (xs[i] - xs[i-1])
		w2 := (xs[i+1] - xs[i]) + 2*(xs[i]-xs[i-1])
		slopes[i] = (w1 + w2) / (w1/deltas[i-1] + w2/deltas[i])
	}
	return slopes
}

// sampleX maps sample index i of n onto the knot domain.
func sampleX(xs []float64, i, n int) float64 {
	lo, hi := xs[0], xs[len(xs)-1]
	if n == 1 {
		return lo
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}

// segment finds the knot interval containing x.
func segment(xs []float64, x float64) int {
	for i := 1; i < len(xs)-1; i++ {
		if x < xs[i] {
			return i - 1
		}
	}
	return len(xs) - 2
}
