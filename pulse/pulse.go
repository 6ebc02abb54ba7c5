package pulse

// Pulse combines an amplitude waveform, a detuning waveform and a phase
// into one physical control step. A scalar-phase pulse carries the phase as
// an operand; a phase-modulated pulse carries the phase waveform instead,
// and its effective detuning and phase offset are derived at build time.
type Pulse struct {
	Amplitude *Waveform
	Detuning  *Waveform
	Phase     Operand

	// PhaseMod is non-nil for phase-modulated pulses. The modulation adds a
	// corrective detuning of -dφ/dt and replaces the scalar phase with the
	// modulation's offset φ(0).
	PhaseMod *Waveform
}

// NewPulse builds a scalar-phase pulse.
func NewPulse(amplitude, detuning *Waveform, phase Operand) *Pulse {
	return &Pulse{Amplitude: amplitude, Detuning: detuning, Phase: phase}
}

// NewPhaseModulatedPulse builds a pulse whose phase follows its own
// waveform.
func NewPhaseModulatedPulse(amplitude, detuning, phase *Waveform) *Pulse {
	return &Pulse{Amplitude: amplitude, Detuning: detuning, PhaseMod: phase}
}

// PhaseModulated reports whether the pulse carries a phase waveform.
func (p *Pulse) PhaseModulated() bool { return p.PhaseMod != nil }

// ConcretePulse is a fully bound pulse sampled at one value per nanosecond.
// Amplitude and Detuning have Duration entries each.
type ConcretePulse struct {
	Duration  int
	Amplitude []float64
	Detuning  []float64
	Phase     float64
}

// resolve binds the pulse's waveforms and applies phase modulation.
func (p *Pulse) resolve(bindings map[string][]float64) (*ConcretePulse, error) {
	amp, err := p.Amplitude.Bind(bindings)
	if err != nil {
		return nil, err
	}
	det, err := p.Detuning.Bind(bindings)
	if err != nil {
		return nil, err
	}
	ampSamples, err := amp.Samples()
	if err != nil {
		return nil, err
	}
	detSamples, err := det.Samples()
	if err != nil {
		return nil, err
	}
	duration, err := amp.SampleDuration()
	if err != nil {
		return nil, err
	}

	out := &ConcretePulse{
		Duration:  duration,
		Amplitude: ampSamples,
		Detuning:  detSamples,
	}

	switch {
	case p.PhaseMod != nil:
		phase, err := p.PhaseMod.Bind(bindings)
		if err != nil {
			return nil, err
		}
		phaseSamples, err := phase.Samples()
		if err != nil {
			return nil, err
		}
		applyPhaseModulation(out, phaseSamples)
	default:
		ph, err := flatten(p.Phase, bindings)
		if err != nil {
			return nil, err
		}
		if len(ph) > 0 {
			out.Phase = ph[0]
		}
	}
	return out, nil
}

// applyPhaseModulation folds a sampled phase waveform into the pulse: the
// detuning gains -dφ/dt and the scalar phase becomes the offset φ(0).
func applyPhaseModulation(p *ConcretePulse, phase []float64) {
	n := len(p.Detuning)
	for i := 0; i < n && i < len(phase); i++ {
		p.Detuning[i] -= derivativeAt(phase, i)
	}
	if len(phase) > 0 {
		p.Phase = phase[0]
	}
}

// derivativeAt estimates dφ/dt at sample i with central differences, one
// sample per nanosecond.
func derivativeAt(phase []float64, i int) float64 {
	switch {
	case len(phase) < 2:
		return 0
	case i == 0:
		return phase[1] - phase[0]
	case i >= len(phase)-1:
		return phase[len(phase)-1] - phase[len(phase)-2]
	default:
		return (phase[i+1] - phase[i-1]) / 2
	}
}
