package analog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyRegister reports a register with no qubits.
var ErrEmptyRegister = errors.New("register must contain at least one qubit")

// Register maps qubit ids to (x, y) coordinates. It is immutable after
// creation; ids are assigned in coordinate order with a "q" prefix.
type Register struct {
	ids    []string
	coords map[string][2]float64
}

// NewRegister creates a register from qubit coordinates. Ids are q0..qN-1
// in the given order.
func NewRegister(coords [][2]float64) (*Register, error) {
	if len(coords) == 0 {
		return nil, ErrEmptyRegister
	}
	r := &Register{
		ids:    make([]string, len(coords)),
		coords: make(map[string][2]float64, len(coords)),
	}
	for i, c := range coords {
		id := fmt.Sprintf("q%d", i)
		r.ids[i] = id
		r.coords[id] = c
	}
	return r, nil
}

// NumQubits returns the qubit count.
func (r *Register) NumQubits() int { return len(r.ids) }

// IDs returns the qubit ids in declaration order.
func (r *Register) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Coordinates returns the qubit coordinates in declaration order.
func (r *Register) Coordinates() [][2]float64 {
	out := make([][2]float64, len(r.ids))
	for i, id := range r.ids {
		out[i] = r.coords[id]
	}
	return out
}

// Coordinate returns the coordinate of the given qubit id.
func (r *Register) Coordinate(id string) ([2]float64, bool) {
	c, ok := r.coords[id]
	return c, ok
}

// Equal reports whether two registers describe the same coordinate set,
// regardless of qubit ordering.
func (r *Register) Equal(other *Register) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.ids) != len(other.ids) {
		return false
	}
	a, b := r.Coordinates(), other.Coordinates()
	sortCoords(a)
	sortCoords(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortCoords(cs [][2]float64) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i][0] != cs[j][0] {
			return cs[i][0] < cs[j][0]
		}
		return cs[i][1] < cs[j][1]
	})
}
