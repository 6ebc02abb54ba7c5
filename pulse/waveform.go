package pulse

import (
	"errors"
	"fmt"
	"math"
)

// Waveform errors.
var (
	ErrSymbolicWaveform = errors.New("waveform still references unbound variables")
	ErrBadDuration      = errors.New("waveform duration must be a positive scalar")
)

// Waveform is an interpolated control signal: value points spread over a
// duration, with optional knot fractions. Duration and values may reference
// declared variables until bound.
type Waveform struct {
	Duration     Operand
	Values       Operand
	Times        []float64
	Interpolator string
	Options      map[string]float64
}

// NewWaveform builds a waveform from resolved operands. Times, when
// present, are fractions of the duration in [0, 1]; nil means uniform knot
// spacing.
func NewWaveform(duration, values Operand, times []float64, interpolator string, options map[string]float64) *Waveform {
	if interpolator == "" {
		interpolator = InterpolatorPchip
	}
	return &Waveform{
		Duration:     duration,
		Values:       values,
		Times:        times,
		Interpolator: interpolator,
		Options:      options,
	}
}

// Concrete reports whether the waveform references no unbound variables.
func (w *Waveform) Concrete() bool {
	return concrete(w.Duration) && concrete(w.Values)
}

// Bind replaces variable references with the given concrete values,
// returning a new concrete waveform. The receiver is unchanged.
func (w *Waveform) Bind(bindings map[string][]float64) (*Waveform, error) {
	dur, err := flatten(w.Duration, bindings)
	if err != nil {
		return nil, err
	}
	if len(dur) != 1 {
		return nil, fmt.Errorf("%w: got %d values", ErrBadDuration, len(dur))
	}
	values, err := flatten(w.Values, bindings)
	if err != nil {
		return nil, err
	}
	return &Waveform{
		Duration:     Const(dur[0]),
		Values:       Consts(values),
		Times:        w.Times,
		Interpolator: w.Interpolator,
		Options:      w.Options,
	}, nil
}

// Samples interpolates the waveform into one sample per nanosecond. The
// waveform must be concrete.
func (w *Waveform) Samples() ([]float64, error) {
	if !w.Concrete() {
		return nil, ErrSymbolicWaveform
	}
	dur, err := flatten(w.Duration, nil)
	if err != nil {
		return nil, err
	}
	if len(dur) != 1 || dur[0] <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadDuration, dur)
	}
	values, err := flatten(w.Values, nil)
	if err != nil {
		return nil, err
	}
	n := int(math.Round(dur[0]))
	if n < 2 {
		n = 2
	}

	xs := w.Times
	if xs == nil {
		xs = uniformKnots(len(values))
	}
	// Knot fractions scale to absolute nanoseconds.
	absolute := make([]float64, len(xs))
	for i, t := range xs {
		absolute[i] = t * dur[0]
	}
	return sampleCurve(w.Interpolator, absolute, values, n)
}

// SampleDuration returns the concrete duration in nanoseconds.
func (w *Waveform) SampleDuration() (int, error) {
	dur, err := flatten(w.Duration, nil)
	if err != nil {
		return 0, err
	}
	if len(dur) != 1 || dur[0] <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadDuration, dur)
	}
	return int(math.Round(dur[0])), nil
}

// uniformKnots spreads n knots uniformly over [0, 1].
func uniformKnots(n int) []float64 {
	if n == 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}
