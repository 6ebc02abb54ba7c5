package sim

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
	"github.com/qiskit-community/qiskit-pasqal-provider/pulse"
)

func compiledSequence(t *testing.T, numQubits int, amp, det []float64) *pulse.CompiledSequence {
	t.Helper()
	coords := make([][2]float64, numQubits)
	for i := range coords {
		coords[i] = [2]float64{float64(i) * 6, 0}
	}
	register, err := analog.NewRegister(coords)
	require.NoError(t, err)

	seq := pulse.NewSequence(register, device.Analog())
	require.NoError(t, seq.DeclareChannel("global"))
	p := pulse.NewPulse(
		pulse.NewWaveform(pulse.Const(1000), pulse.Consts(amp), nil, "", nil),
		pulse.NewWaveform(pulse.Const(1000), pulse.Consts(det), nil, "", nil),
		pulse.Const(0),
	)
	require.NoError(t, seq.Add(p, "global"))
	compiled, err := seq.Build(nil)
	require.NoError(t, err)
	return compiled
}

func TestStateVectorEmulator_EmptySequence(t *testing.T) {
	register, err := analog.NewRegister([][2]float64{{0, 0}})
	require.NoError(t, err)
	seq := pulse.NewSequence(register, device.Analog())
	compiled, err := seq.Build(nil)
	require.NoError(t, err)

	_, err = NewStateVectorEmulator(compiled).Run(context.Background())
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestStateVectorEmulator_CountsConservation(t *testing.T) {
	compiled := compiledSequence(t, 4, []float64{1, 1, 1}, []float64{0, 0.5, 1})

	result, err := NewStateVectorEmulator(compiled).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, result.QubitCount())

	counts := result.SampleFinalState(1000)
	total := 0
	for bits, c := range counts {
		assert.Len(t, bits, 4)
		assert.Positive(t, c)
		total += c
	}
	assert.Equal(t, 1000, total)
}

func TestStateVectorEmulator_DefaultShots(t *testing.T) {
	compiled := compiledSequence(t, 2, []float64{1, 1}, []float64{0, 0})

	result, err := NewStateVectorEmulator(compiled).Run(context.Background())
	require.NoError(t, err)

	counts := result.SampleFinalState(0)
	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, DefaultShots, total)
}

func TestStateVectorEmulator_Deterministic(t *testing.T) {
	compiled := compiledSequence(t, 3, []float64{0.8, 1.2, 0.8}, []float64{0, 0, 0})

	result, err := NewStateVectorEmulator(compiled).Run(context.Background())
	require.NoError(t, err)

	first := result.SampleFinalState(500)
	second := result.SampleFinalState(500)
	assert.Empty(t, cmp.Diff(first, second))
}

func TestStateVectorEmulator_NoDriveStaysGround(t *testing.T) {
	compiled := compiledSequence(t, 2, []float64{0, 0}, []float64{0, 0})

	result, err := NewStateVectorEmulator(compiled).Run(context.Background())
	require.NoError(t, err)

	counts := result.SampleFinalState(100)
	assert.Equal(t, map[string]int{"00": 100}, counts)
}

func TestStateVectorEmulator_ContextCancelled(t *testing.T) {
	compiled := compiledSequence(t, 1, []float64{1, 1}, []float64{0, 0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStateVectorEmulator(compiled).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMPSEmulator(t *testing.T) {
	compiled := compiledSequence(t, 2, []float64{1, 1}, []float64{0, 0})

	t.Run("no observables", func(t *testing.T) {
		_, err := NewMPSEmulator(compiled, MPSConfig{}).Run(context.Background())
		assert.ErrorIs(t, err, ErrNoObservables)
	})

	t.Run("bitstrings trace", func(t *testing.T) {
		emu := NewMPSEmulator(compiled, MPSConfig{
			Observables: []Observable{BitStrings{NumShots: 200}},
		})
		trace, err := emu.Run(context.Background())
		require.NoError(t, err)

		value, ok := trace.Final("bitstrings")
		require.True(t, ok)
		counts, ok := value.(map[string]int)
		require.True(t, ok)
		total := 0
		for _, c := range counts {
			total += c
		}
		assert.Equal(t, 200, total)
	})

	t.Run("missing observable", func(t *testing.T) {
		emu := NewMPSEmulator(compiled, MPSConfig{
			Observables: []Observable{BitStrings{}},
		})
		trace, err := emu.Run(context.Background())
		require.NoError(t, err)
		_, ok := trace.Final("energy")
		assert.False(t, ok)
	})
}
