package analog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCoords = [][2]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

func points(t *testing.T, values Array, opts ...PointsOption) *InterpolatePoints {
	t.Helper()
	p, err := NewInterpolatePoints(values, opts...)
	require.NoError(t, err)
	return p
}

func TestNewHamiltonianGate(t *testing.T) {
	amp := points(t, Numbers(1, 1, 1))
	det := points(t, Numbers(0, 0.5, 1))

	gate, err := NewHamiltonianGate(amp, det, Number(0), testCoords)
	require.NoError(t, err)
	assert.Equal(t, 4, gate.NumQubits())
	assert.Equal(t, Number(DefaultDuration), gate.Duration())
	assert.Empty(t, gate.Parameters())
}

func TestNewHamiltonianGate_MissingWaveform(t *testing.T) {
	amp := points(t, Numbers(1))

	_, err := NewHamiltonianGate(nil, amp, Number(0), testCoords)
	assert.ErrorIs(t, err, ErrMissingWaveform)

	_, err = NewHamiltonianGate(amp, nil, Number(0), testCoords)
	assert.ErrorIs(t, err, ErrMissingWaveform)
}

func TestNewHamiltonianGate_NilPhase(t *testing.T) {
	amp := points(t, Numbers(1))
	det := points(t, Numbers(0))

	_, err := NewHamiltonianGate(amp, det, nil, testCoords)
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestNewHamiltonianGate_DurationMismatch(t *testing.T) {
	amp := points(t, Numbers(1, 1), WithDuration(Number(1000)))
	det := points(t, Numbers(0, 0), WithDuration(Number(900)))

	_, err := NewHamiltonianGate(amp, det, Number(0), testCoords)
	assert.ErrorIs(t, err, ErrDurationMismatch)
}

func TestNewHamiltonianGate_SymbolicDurations(t *testing.T) {
	t.Run("same parameter passes", func(t *testing.T) {
		amp := points(t, Numbers(1), WithDuration(Param{Name: "T"}))
		det := points(t, Numbers(0), WithDuration(Param{Name: "T"}))
		_, err := NewHamiltonianGate(amp, det, Number(0), testCoords)
		assert.NoError(t, err)
	})
	t.Run("different parameters fail", func(t *testing.T) {
		amp := points(t, Numbers(1), WithDuration(Param{Name: "T1"}))
		det := points(t, Numbers(0), WithDuration(Param{Name: "T2"}))
		_, err := NewHamiltonianGate(amp, det, Number(0), testCoords)
		assert.ErrorIs(t, err, ErrDurationMismatch)
	})
	t.Run("mixed concrete and symbolic passes", func(t *testing.T) {
		amp := points(t, Numbers(1), WithDuration(Param{Name: "T"}))
		det := points(t, Numbers(0), WithDuration(Number(800)))
		_, err := NewHamiltonianGate(amp, det, Number(0), testCoords)
		assert.NoError(t, err)
	})
}

func TestNewHamiltonianGate_ValueCountCheck(t *testing.T) {
	amp := points(t, Numbers(1, 1, 1))
	det := points(t, Numbers(0, 1))

	_, err := NewHamiltonianGate(amp, det, Number(0), testCoords)
	assert.ErrorIs(t, err, ErrValueCountMismatch)

	_, err = NewHamiltonianGate(amp, det, Number(0), testCoords, WithValueCountCheck(false))
	assert.NoError(t, err)
}

func TestNewHamiltonianGate_Transform(t *testing.T) {
	amp := points(t, Numbers(1))
	det := points(t, Numbers(0))

	gate, err := NewHamiltonianGate(amp, det, Number(0), [][2]float64{{0, 0}, {1, 0}},
		WithTransform(true), WithGridTransform(GridSquare))
	require.NoError(t, err)

	coords := gate.AnalogRegister().Coordinates()
	require.Len(t, coords, 2)
	assert.Equal(t, [2]float64{0, 0}, coords[0])
	assert.Equal(t, [2]float64{5, 0}, coords[1])
}

func TestHamiltonianGate_Parameters(t *testing.T) {
	amp := points(t, Array{Param{Name: "omega"}, Param{Name: "omega"}},
		WithDuration(Param{Name: "T"}))
	det := points(t, Numbers(0, 1))

	gate, err := NewHamiltonianGate(amp, det, Param{Name: "phi"}, testCoords)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"omega", "T", "phi"}, gate.Parameters())
}

func TestHamiltonianGate_NoAlgebra(t *testing.T) {
	amp := points(t, Numbers(1))
	det := points(t, Numbers(0))
	gate, err := NewHamiltonianGate(amp, det, Number(0), testCoords)
	require.NoError(t, err)

	assert.ErrorIs(t, gate.Control(2), ErrGateAlgebra)
	assert.ErrorIs(t, gate.Power(2), ErrGateAlgebra)
}
