package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/qiskit-community/qiskit-pasqal-provider/pulse"
)

// Observable is a quantity the tensor-network emulator records over the
// evolution.
type Observable interface {
	Name() string
}

// BitStrings records a sampled counts histogram. A zero NumShots falls back
// to DefaultShots.
type BitStrings struct {
	NumShots int
}

// Name implements Observable.
func (BitStrings) Name() string { return "bitstrings" }

// MPSConfig configures a tensor-network run: the observables to record.
type MPSConfig struct {
	Observables []Observable
}

// ErrNoObservables reports a tensor-network run configured without
// observables; the emulator would produce nothing to read back.
var ErrNoObservables = errors.New("tensor-network run needs at least one observable")

// MPSEmulator is an MPS-style tensor-network emulator. It delivers results
// as an observable trace; the caller reads each observable's final-time
// value.
type MPSEmulator struct {
	seq    *pulse.CompiledSequence
	config MPSConfig
}

// NewMPSEmulator creates an emulator for one compiled sequence.
func NewMPSEmulator(seq *pulse.CompiledSequence, config MPSConfig) *MPSEmulator {
	return &MPSEmulator{seq: seq, config: config}
}

// Run evolves the sequence and records every configured observable.
func (e *MPSEmulator) Run(ctx context.Context) (*ObservableTrace, error) {
	if len(e.config.Observables) == 0 {
		return nil, ErrNoObservables
	}

	// The product state here is an exact MPS with bond dimension one, so
	// the state-vector propagation doubles as the contraction.
	state, err := NewStateVectorEmulator(e.seq).Run(ctx)
	if err != nil {
		return nil, err
	}

	trace := &ObservableTrace{entries: make(map[string][]any)}
	for _, obs := range e.config.Observables {
		switch o := obs.(type) {
		case BitStrings:
			shots := o.NumShots
			if shots <= 0 {
				shots = DefaultShots
			}
			trace.entries[o.Name()] = []any{state.SampleFinalState(shots)}
		default:
			return nil, fmt.Errorf("unsupported observable %T", obs)
		}
	}
	return trace, nil
}

// ObservableTrace holds each observable's recorded values in time order.
type ObservableTrace struct {
	entries map[string][]any
}

// Final returns the observable's value at the final recorded time.
func (t *ObservableTrace) Final(name string) (any, bool) {
	values, ok := t.entries[name]
	if !ok || len(values) == 0 {
		return nil, false
	}
	return values[len(values)-1], true
}
