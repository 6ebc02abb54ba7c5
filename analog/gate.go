package analog

import (
	"errors"
	"fmt"
)

// Phase is the phase term of an analog pulse: a concrete scalar (Number), a
// symbolic parameter (Param), or an InterpolatePoints specification for
// phase-modulated pulses. The set of implementations is closed.
type Phase interface {
	isPhase()
}

// Gate construction errors.
var (
	ErrDurationMismatch   = errors.New("amplitude and detuning must have the same duration")
	ErrValueCountMismatch = errors.New("amplitude and detuning must have the same number of value points")
	ErrMissingWaveform    = errors.New("amplitude and detuning waveforms are required")
	ErrInvalidPhase       = errors.New("phase must be a number, a parameter or interpolate points")
	ErrGateAlgebra        = errors.New("analog gates have no controlled or powered form")
)

// HamiltonianGate is an analog gate: a single program step defined by
// amplitude and detuning waveforms, a phase, and the qubit coordinates it
// acts on. Construction validates the waveform pair; the gate is immutable
// afterwards.
type HamiltonianGate struct {
	amplitude *InterpolatePoints
	detuning  *InterpolatePoints
	phase     Phase
	register  *Register
	grid      GridKind
}

// GateOption configures HamiltonianGate construction.
type GateOption func(*gateConfig)

type gateConfig struct {
	grid            GridKind
	transform       bool
	valueCountCheck bool
}

// WithGridTransform selects the lattice transform kind used when coordinate
// transformation is enabled. Defaults to triangular.
func WithGridTransform(grid GridKind) GateOption {
	return func(c *gateConfig) { c.grid = grid }
}

// WithTransform enables transforming the supplied coordinates into atom
// coordinates on the chosen lattice.
func WithTransform(enabled bool) GateOption {
	return func(c *gateConfig) { c.transform = enabled }
}

// WithValueCountCheck controls whether amplitude and detuning must carry the
// same number of value points. The check is on by default; disabling it
// still requires equal durations.
func WithValueCountCheck(enabled bool) GateOption {
	return func(c *gateConfig) { c.valueCountCheck = enabled }
}

// NewHamiltonianGate builds an analog gate from its waveforms, phase and
// qubit coordinates. Amplitude and detuning must share the same duration;
// value-count equality is checked unless disabled via WithValueCountCheck.
func NewHamiltonianGate(amplitude, detuning *InterpolatePoints, phase Phase, coords [][2]float64, opts ...GateOption) (*HamiltonianGate, error) {
	cfg := gateConfig{grid: GridTriangular, valueCountCheck: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if amplitude == nil || detuning == nil {
		return nil, ErrMissingWaveform
	}
	if phase == nil {
		return nil, ErrInvalidPhase
	}
	if err := checkDurations(amplitude, detuning); err != nil {
		return nil, err
	}
	if cfg.valueCountCheck && amplitude.Len() != detuning.Len() {
		return nil, fmt.Errorf("%w: amplitude has %d, detuning has %d",
			ErrValueCountMismatch, amplitude.Len(), detuning.Len())
	}

	if cfg.transform {
		t, err := NewRegisterTransform(cfg.grid, 1, coords, 0)
		if err != nil {
			return nil, err
		}
		coords = t.Coords()
	}
	register, err := NewRegister(coords)
	if err != nil {
		return nil, err
	}

	return &HamiltonianGate{
		amplitude: amplitude,
		detuning:  detuning,
		phase:     phase,
		register:  register,
		grid:      cfg.grid,
	}, nil
}

// checkDurations fails when both durations are concrete and differ, or when
// both are symbolic with different names. A concrete/symbolic pair cannot be
// compared until build time and passes here.
func checkDurations(amplitude, detuning *InterpolatePoints) error {
	switch a := amplitude.Duration().(type) {
	case Number:
		if d, ok := detuning.Duration().(Number); ok && a != d {
			return fmt.Errorf("%w: amplitude duration %g, detuning duration %g",
				ErrDurationMismatch, float64(a), float64(d))
		}
	case Param:
		if d, ok := detuning.Duration().(Param); ok && a.Name != d.Name {
			return fmt.Errorf("%w: amplitude duration %s, detuning duration %s",
				ErrDurationMismatch, a.Name, d.Name)
		}
	}
	return nil
}

// Amplitude returns the amplitude waveform specification.
func (g *HamiltonianGate) Amplitude() *InterpolatePoints { return g.amplitude }

// Detuning returns the detuning waveform specification.
func (g *HamiltonianGate) Detuning() *InterpolatePoints { return g.detuning }

// Phase returns the phase term.
func (g *HamiltonianGate) Phase() Phase { return g.phase }

// AnalogRegister returns the register built from the gate's coordinates.
func (g *HamiltonianGate) AnalogRegister() *Register { return g.register }

// NumQubits returns the number of qubits the gate acts on.
func (g *HamiltonianGate) NumQubits() int { return g.register.NumQubits() }

// Duration returns the gate duration, concrete or symbolic.
func (g *HamiltonianGate) Duration() Value { return g.amplitude.Duration() }

// Parameters returns the distinct parameter names referenced by the gate's
// waveforms and phase.
func (g *HamiltonianGate) Parameters() []string {
	names := g.amplitude.Parameters()
	for _, n := range g.detuning.Parameters() {
		if !contains(names, n) {
			names = append(names, n)
		}
	}
	switch phase := g.phase.(type) {
	case Param:
		if !contains(names, phase.Name) {
			names = append(names, phase.Name)
		}
	case *InterpolatePoints:
		for _, n := range phase.Parameters() {
			if !contains(names, n) {
				names = append(names, n)
			}
		}
	}
	return names
}

// Control always fails: an analog gate cannot be controlled.
func (g *HamiltonianGate) Control(numCtrlQubits int) error {
	return fmt.Errorf("%w: control requested with %d qubits", ErrGateAlgebra, numCtrlQubits)
}

// Power always fails: an analog gate cannot be raised to a power.
func (g *HamiltonianGate) Power(exponent float64) error {
	return fmt.Errorf("%w: power requested with exponent %g", ErrGateAlgebra, exponent)
}
