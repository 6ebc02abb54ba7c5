package analog

import (
	"errors"
	"fmt"
)

// Interpolator kinds understood by the waveform builder. The default mirrors
// the hardware toolchain's smooth monotone interpolation.
const (
	InterpolatorPchip  = "pchip"
	InterpolatorLinear = "linear"
)

// DefaultDuration is the waveform duration, in nanoseconds, used when a
// specification omits one.
const DefaultDuration = 1000

// ErrTimesMismatch reports a times array whose length does not match the
// value points it annotates.
var ErrTimesMismatch = errors.New("times must carry exactly one entry per value point")

// ErrTimesRange reports a knot time outside the [0, 1] fraction range.
var ErrTimesRange = errors.New("times must be fractions of the total duration in [0, 1]")

// ErrTimesOrder reports knot times that are not strictly increasing.
var ErrTimesOrder = errors.New("times must be strictly increasing")

// ErrNoValues reports an empty value array.
var ErrNoValues = errors.New("at least one value point is required")

// InterpolatePoints specifies a waveform as a set of control points to be
// interpolated over a total duration. Values and duration may be symbolic;
// times, when present, are fractions of the duration in [0, 1], one per
// value point.
type InterpolatePoints struct {
	values       Array
	duration     Value
	times        []float64
	interpolator string
	options      map[string]float64
}

func (*InterpolatePoints) isPhase() {}

// PointsOption configures an InterpolatePoints specification.
type PointsOption func(*InterpolatePoints)

// WithDuration sets the total duration in nanoseconds, concrete or symbolic.
func WithDuration(d Value) PointsOption {
	return func(p *InterpolatePoints) { p.duration = d }
}

// WithTimes pins each value point to a fraction of the total duration.
func WithTimes(times []float64) PointsOption {
	return func(p *InterpolatePoints) { p.times = times }
}

// WithInterpolator selects the interpolation kind.
func WithInterpolator(kind string) PointsOption {
	return func(p *InterpolatePoints) { p.interpolator = kind }
}

// WithInterpolatorOptions forwards extra options to the interpolation
// routine.
func WithInterpolatorOptions(opts map[string]float64) PointsOption {
	return func(p *InterpolatePoints) { p.options = opts }
}

// NewInterpolatePoints builds a waveform specification from its control
// points. Duration defaults to DefaultDuration and the interpolator to
// pchip when not supplied.
func NewInterpolatePoints(values Array, opts ...PointsOption) (*InterpolatePoints, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	p := &InterpolatePoints{
		values:       values,
		duration:     Number(DefaultDuration),
		interpolator: InterpolatorPchip,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.times != nil {
		if len(p.times) != len(p.values) {
			return nil, fmt.Errorf("%w: %d times for %d values",
				ErrTimesMismatch, len(p.times), len(p.values))
		}
		for i, t := range p.times {
			if t < 0 || t > 1 {
				return nil, fmt.Errorf("%w: got %g", ErrTimesRange, t)
			}
			if i > 0 && t <= p.times[i-1] {
				return nil, fmt.Errorf("%w: got %g after %g", ErrTimesOrder, t, p.times[i-1])
			}
		}
	}
	return p, nil
}

// Values returns the control points.
func (p *InterpolatePoints) Values() Array { return p.values }

// Duration returns the total duration, concrete or symbolic.
func (p *InterpolatePoints) Duration() Value { return p.duration }

// Times returns the knot fractions, or nil for uniform spacing.
func (p *InterpolatePoints) Times() []float64 { return p.times }

// Interpolator returns the interpolation kind.
func (p *InterpolatePoints) Interpolator() string { return p.interpolator }

// InterpolatorOptions returns extra options for the interpolation routine.
func (p *InterpolatePoints) InterpolatorOptions() map[string]float64 { return p.options }

// Len returns the number of control points.
func (p *InterpolatePoints) Len() int { return len(p.values) }

// Parameters returns the distinct parameter names referenced by the values
// and the duration.
func (p *InterpolatePoints) Parameters() []string {
	names := ParameterNames(p.values)
	for _, n := range ParameterNames(p.duration) {
		if !contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}
