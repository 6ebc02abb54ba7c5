package analog

import (
	"errors"
	"fmt"
)

// GridKind selects the lattice transform applied to user coordinates.
type GridKind string

// Supported grid kinds.
const (
	GridLinear     GridKind = "linear"
	GridTriangular GridKind = "triangular"
	GridSquare     GridKind = "square"
)

// scaleFactor corrects the integer grid coordinates supplied by callers to
// physically meaningful trap distances.
const scaleFactor = 5

// triangularLattice is the triangular lattice basis.
var triangularLattice = [2][2]float64{
	{1, 0},
	{0.5, 0.8660254037844386},
}

// Transform errors.
var (
	ErrInvalidGrid          = errors.New("grid_transform should be 'linear', 'triangular', or 'square'")
	ErrLinearNotImplemented = errors.New("linear grid transform is not implemented")
	ErrNoCoordinates        = errors.New("must provide coords or a qubit count")
)

// RegisterTransform scales and maps integer grid coordinates onto a lattice
// of the chosen kind.
type RegisterTransform struct {
	grid  GridKind
	scale float64
	raw   [][2]float64
	out   [][2]float64
}

// NewRegisterTransform builds a transform for the given grid kind and scale.
// An empty grid kind defaults to triangular. When coords is nil, numQubits
// qubits are laid out on a centered line.
func NewRegisterTransform(grid GridKind, scale float64, coords [][2]float64, numQubits int) (*RegisterTransform, error) {
	if grid == "" {
		grid = GridTriangular
	}
	if scale == 0 {
		scale = 1
	}
	if coords == nil {
		if numQubits <= 0 {
			return nil, ErrNoCoordinates
		}
		coords = lineCoords(numQubits)
	}
	t := &RegisterTransform{grid: grid, scale: scale, raw: coords}

	switch grid {
	case GridTriangular:
		t.out = t.triangularCoords()
	case GridSquare:
		t.out = t.squareCoords()
	case GridLinear:
		return nil, ErrLinearNotImplemented
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidGrid, grid)
	}
	return t, nil
}

// lineCoords lays n qubits on a line centered on the origin.
func lineCoords(n int) [][2]float64 {
	shift := n / 2
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{float64(i - shift), 0}
	}
	return out
}

// Coords returns the transformed coordinates.
func (t *RegisterTransform) Coords() [][2]float64 { return t.out }

// RawCoords returns the original, untransformed coordinates.
func (t *RegisterTransform) RawCoords() [][2]float64 { return t.raw }

func (t *RegisterTransform) triangularCoords() [][2]float64 {
	out := make([][2]float64, len(t.raw))
	for i, c := range t.raw {
		x := c[0] * t.scale * scaleFactor
		y := c[1] * t.scale * scaleFactor
		out[i] = [2]float64{
			x*triangularLattice[0][0] + y*triangularLattice[1][0],
			x*triangularLattice[0][1] + y*triangularLattice[1][1],
		}
	}
	return out
}

func (t *RegisterTransform) squareCoords() [][2]float64 {
	out := make([][2]float64, len(t.raw))
	for i, c := range t.raw {
		out[i] = [2]float64{c[0] * t.scale * scaleFactor, c[1] * t.scale * scaleFactor}
	}
	return out
}
