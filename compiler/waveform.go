package compiler

import (
	"fmt"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/pulse"
)

// BuildWaveform resolves an InterpolatePoints specification against the
// sequence and constructs the interpolated waveform.
func BuildWaveform(seq *pulse.Sequence, spec *analog.InterpolatePoints) (*pulse.Waveform, error) {
	duration, err := ResolveValue(seq, spec.Duration())
	if err != nil {
		return nil, fmt.Errorf("duration: %w", err)
	}
	values, err := ResolveValue(seq, spec.Values())
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	return pulse.NewWaveform(duration, values, spec.Times(), spec.Interpolator(), spec.InterpolatorOptions()), nil
}

// BuildPulse builds the physical pulse for one instruction. The duration
// invariant is checked before any waveform is built, so a mismatch mutates
// nothing. A scalar phase bypasses modulation entirely; any non-scalar
// phase goes through the phase-modulation path regardless of whether its
// values are symbolic.
func BuildPulse(seq *pulse.Sequence, in analog.Instruction) (*pulse.Pulse, error) {
	if err := checkDuration(in.Amplitude(), in.Detuning()); err != nil {
		return nil, err
	}

	amplitude, err := BuildWaveform(seq, in.Amplitude())
	if err != nil {
		return nil, fmt.Errorf("amplitude: %w", err)
	}
	detuning, err := BuildWaveform(seq, in.Detuning())
	if err != nil {
		return nil, fmt.Errorf("detuning: %w", err)
	}

	switch phase := in.Phase().(type) {
	case analog.Number:
		return pulse.NewPulse(amplitude, detuning, pulse.Const(phase)), nil

	case analog.Param:
		op, err := ResolveValue(seq, phase)
		if err != nil {
			return nil, fmt.Errorf("phase: %w", err)
		}
		return pulse.NewPulse(amplitude, detuning, op), nil

	case *analog.InterpolatePoints:
		phaseWf, err := BuildWaveform(seq, phase)
		if err != nil {
			return nil, fmt.Errorf("phase: %w", err)
		}
		return pulse.NewPhaseModulatedPulse(amplitude, detuning, phaseWf), nil

	default:
		return nil, fmt.Errorf("%w: phase %T", analog.ErrInvalidPhase, in.Phase())
	}
}

// checkDuration enforces the amplitude/detuning duration invariant when
// both durations are concrete.
func checkDuration(amplitude, detuning *analog.InterpolatePoints) error {
	a, aok := amplitude.Duration().(analog.Number)
	d, dok := detuning.Duration().(analog.Number)
	if aok && dok && a != d {
		return fmt.Errorf("%w: amplitude duration %g, detuning duration %g",
			analog.ErrDurationMismatch, float64(a), float64(d))
	}
	return nil
}
