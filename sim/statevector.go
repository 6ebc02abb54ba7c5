package sim

import (
	"context"
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"github.com/qiskit-community/qiskit-pasqal-provider/pulse"
)

// DefaultShots is the sample count used when the caller requests none.
const DefaultShots = 1000

// ErrEmptySequence reports a sequence with no pulses to run.
var ErrEmptySequence = errors.New("sequence contains no pulses")

// StateVectorEmulator propagates the final state of a compiled sequence.
type StateVectorEmulator struct {
	seq *pulse.CompiledSequence
}

// NewStateVectorEmulator creates an emulator for one compiled sequence.
func NewStateVectorEmulator(seq *pulse.CompiledSequence) *StateVectorEmulator {
	return &StateVectorEmulator{seq: seq}
}

// Run propagates the sequence and returns the final state, ready for
// sampling.
func (e *StateVectorEmulator) Run(ctx context.Context) (*StateVectorResult, error) {
	if len(e.seq.Pulses) == 0 {
		return nil, ErrEmptySequence
	}

	// The drive is global, so every qubit evolves identically.
	g, ex := complex(1, 0), complex(0, 0)
	for _, p := range e.seq.Pulses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, ex = propagate(g, ex, p)
	}

	pExcited := real(ex)*real(ex) + imag(ex)*imag(ex)
	n := e.seq.QubitCount()
	probs := make([]float64, n)
	for i := range probs {
		probs[i] = pExcited
	}
	return &StateVectorResult{excited: probs}, nil
}

// propagate integrates the two-level Schrödinger equation over one pulse
// with a 1ns step, drive Ω(t)e^{iφ} and detuning δ(t).
func propagate(g, ex complex128, p *pulse.ConcretePulse) (complex128, complex128) {
	phase := cmplx.Exp(complex(0, p.Phase))
	steps := p.Duration
	for t := 0; t < steps; t++ {
		omega := complex(sampleAt(p.Amplitude, t)/2, 0) * phase
		delta := sampleAt(p.Detuning, t)

		// dg/dt = -i conj(Ω/2) e, de/dt = -i (Ω/2) g + i δ e
		dg := complex(0, -1) * cmplx.Conj(omega) * ex
		de := complex(0, -1)*omega*g + complex(0, delta)*ex

		// Midpoint step, dt = 1e-3 (amplitudes in rad/µs, time in ns).
		const dt = 1e-3
		gm := g + dg*complex(dt/2, 0)
		em := ex + de*complex(dt/2, 0)
		dgm := complex(0, -1) * cmplx.Conj(omega) * em
		dem := complex(0, -1)*omega*gm + complex(0, delta)*em
		g += dgm * complex(dt, 0)
		ex += dem * complex(dt, 0)
	}

	// Renormalize against integration drift.
	norm := math.Sqrt(real(g)*real(g) + imag(g)*imag(g) + real(ex)*real(ex) + imag(ex)*imag(ex))
	if norm > 0 {
		g /= complex(norm, 0)
		ex /= complex(norm, 0)
	}
	return g, ex
}

func sampleAt(samples []float64, t int) float64 {
	if len(samples) == 0 {
		return 0
	}
	if t >= len(samples) {
		return samples[len(samples)-1]
	}
	return samples[t]
}

// StateVectorResult is the final product state of a run.
type StateVectorResult struct {
	excited []float64
}

// QubitCount returns the number of qubits in the final state.
func (r *StateVectorResult) QubitCount() int { return len(r.excited) }

// SampleFinalState samples the final state into a counts histogram of
// exactly shots observations. Sampling is deterministic: expected counts
// are rounded with largest-remainder allocation, so repeated sampling of
// the same state yields the same histogram. Bitstrings with zero counts are
// omitted.
func (r *StateVectorResult) SampleFinalState(shots int) map[string]int {
	if shots <= 0 {
		shots = DefaultShots
	}
	n := len(r.excited)
	size := 1 << n

	type entry struct {
		bits  string
		base  int
		remul float64
	}
	entries := make([]entry, 0, size)
	allocated := 0
	for b := 0; b < size; b++ {
		p := 1.0
		bits := make([]byte, n)
		for q := 0; q < n; q++ {
			if b&(1<<q) != 0 {
				p *= r.excited[q]
				bits[n-1-q] = '1'
			} else {
				p *= 1 - r.excited[q]
				bits[n-1-q] = '0'
			}
		}
		expected := p * float64(shots)
		base := int(math.Floor(expected))
		allocated += base
		entries = append(entries, entry{bits: string(bits), base: base, remul: expected - float64(base)})
	}

	// Hand the leftover shots to the largest remainders, ties broken by
	// bitstring order for determinism.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].remul != entries[j].remul {
			return entries[i].remul > entries[j].remul
		}
		return entries[i].bits < entries[j].bits
	})
	counts := make(map[string]int)
	leftover := shots - allocated
	for i := range entries {
		c := entries[i].base
		if i < leftover {
			c++
		}
		if c > 0 {
			counts[entries[i].bits] = c
		}
	}
	return counts
}
