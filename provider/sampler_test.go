package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/backend"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
)

var squareCoords = [][2]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

func qutipSampler(t *testing.T) *Sampler {
	t.Helper()
	prov := NewProvider()
	be, err := prov.GetBackend(context.Background(), "qutip", nil)
	require.NoError(t, err)
	return NewSampler(be)
}

func TestSamplerRun_DefaultShots(t *testing.T) {
	amp, err := analog.NewInterpolatePoints(analog.Numbers(1, 1, 1))
	require.NoError(t, err)
	det, err := analog.NewInterpolatePoints(analog.Numbers(0, 0.5, 1))
	require.NoError(t, err)
	gate, err := analog.NewHamiltonianGate(amp, det, analog.Number(0), squareCoords)
	require.NoError(t, err)
	program := analog.NewProgram().Append(gate)

	job, err := qutipSampler(t).Run(context.Background(), []Pub{NewPub(program)}, 0)
	require.NoError(t, err)
	require.True(t, job.Done())

	result := job.Result()
	require.NotNil(t, result)
	assert.Equal(t, 1000, result.Shots())
	for bits := range result.Counts {
		assert.Len(t, bits, 4)
	}
	assert.Equal(t, "qutip", result.BackendName)
	assert.Equal(t, job.ID(), result.JobID)
}

func TestSamplerRun_PhaseModulated(t *testing.T) {
	amp, err := analog.NewInterpolatePoints(analog.Numbers(1, 1, 1))
	require.NoError(t, err)
	det, err := analog.NewInterpolatePoints(analog.Numbers(0, 0.5, 1))
	require.NoError(t, err)
	phase, err := analog.NewInterpolatePoints(analog.Numbers(0, 0))
	require.NoError(t, err)
	gate, err := analog.NewHamiltonianGate(amp, det, phase, squareCoords)
	require.NoError(t, err)
	program := analog.NewProgram().Append(gate)

	job, err := qutipSampler(t).Run(context.Background(), []Pub{NewPub(program)}, 500)
	require.NoError(t, err)
	require.True(t, job.Done())
	assert.Equal(t, 500, job.Result().Shots())
}

func TestSamplerRun_ParametricProgram(t *testing.T) {
	amp, err := analog.NewInterpolatePoints(analog.Params("omega", 3))
	require.NoError(t, err)
	det, err := analog.NewInterpolatePoints(analog.Numbers(0, 0, 0))
	require.NoError(t, err)
	gate, err := analog.NewHamiltonianGate(amp, det, analog.Param{Name: "phi"}, squareCoords)
	require.NoError(t, err)
	program := analog.NewProgram().Append(gate)

	pub := NewPub(program)
	pub.Values = map[string]any{
		"omega": []float64{1, 1.5, 1},
		"phi":   0.5,
	}

	job, err := qutipSampler(t).Run(context.Background(), []Pub{pub}, 100)
	require.NoError(t, err)
	assert.True(t, job.Done())
	assert.Equal(t, 100, job.Result().Shots())
}

// recordingBackend captures the run options the sampler hands down.
type recordingBackend struct {
	opts backend.RunOptions
}

func (b *recordingBackend) Name() string           { return "recorder" }
func (b *recordingBackend) Target() *device.Target { return nil }

func (b *recordingBackend) Run(_ context.Context, _ *analog.Program, opts backend.RunOptions) (*backend.Job, error) {
	b.opts = opts
	return nil, errors.New("recorded")
}

func TestSamplerRun_ForwardsWait(t *testing.T) {
	rec := &recordingBackend{}
	sampler := NewSampler(rec)
	pubs := []Pub{NewPub(analog.NewProgram())}

	_, err := sampler.Run(context.Background(), pubs, 10)
	require.EqualError(t, err, "recorded")
	assert.True(t, rec.opts.Wait)
	assert.Equal(t, 10, rec.opts.Shots)

	_, err = sampler.Run(context.Background(), pubs, 10, WithoutWait())
	require.EqualError(t, err, "recorded")
	assert.False(t, rec.opts.Wait)
}

func TestSamplerRun_InvalidPubs(t *testing.T) {
	sampler := qutipSampler(t)

	t.Run("no pubs", func(t *testing.T) {
		_, err := sampler.Run(context.Background(), nil, 100)
		assert.ErrorIs(t, err, ErrInvalidPub)
	})
	t.Run("missing program", func(t *testing.T) {
		_, err := sampler.Run(context.Background(), []Pub{{}}, 100)
		assert.ErrorIs(t, err, ErrInvalidPub)
	})
	t.Run("unsupported value type", func(t *testing.T) {
		pub := Pub{Program: analog.NewProgram(), Values: map[string]any{"x": "not a number"}}
		_, err := sampler.Run(context.Background(), []Pub{pub}, 100)
		assert.ErrorIs(t, err, ErrInvalidPub)
	})
}

func TestToFloats(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []float64
	}{
		{"float64", 1.5, []float64{1.5}},
		{"float32", float32(2), []float64{2}},
		{"int", 3, []float64{3}},
		{"float slice", []float64{1, 2}, []float64{1, 2}},
		{"int slice", []int{1, 2}, []float64{1, 2}},
		{"any slice", []any{1.0, 2}, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toFloats(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := toFloats("nope")
	assert.Error(t, err)
	_, err = toFloats([]any{"nope"})
	assert.Error(t, err)
}

func TestProvider_ForwardsPollConfig(t *testing.T) {
	prov := NewProvider(WithPollConfig(backend.PollConfig{MaxPolls: 7}))
	be, err := prov.GetBackend(context.Background(), "emu-mps", nil)
	require.NoError(t, err)
	assert.Equal(t, "emu-mps", be.Name())
}
