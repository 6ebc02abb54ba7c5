package pulse

import (
	"errors"
	"fmt"
)

// Operand is a resolved waveform parameter: a concrete scalar, a concrete
// array, a reference to a declared variable, or a list of operands. The set
// of implementations is closed.
type Operand interface {
	isOperand()
}

// Const is a concrete scalar operand.
type Const float64

func (Const) isOperand() {}

// Consts is a concrete array operand.
type Consts []float64

func (Consts) isOperand() {}

// List is an ordered collection of operands, used when a resolved value
// mixes concrete entries and variable references.
type List []Operand

func (List) isOperand() {}

// Variable is a declared symbolic placeholder on a Sequence. Its value is
// bound only at build time; Size is the number of scalars it stands for.
type Variable struct {
	Name string
	Size int
}

func (*Variable) isOperand() {}

// Binding errors.
var (
	ErrUnboundVariable = errors.New("variable has no bound value")
	ErrBindingSize     = errors.New("bound value size does not match the declared variable")
)

// flatten expands an operand into concrete scalars using the given
// bindings. nil operands contribute nothing.
func flatten(op Operand, bindings map[string][]float64) ([]float64, error) {
	switch v := op.(type) {
	case nil:
		return nil, nil
	case Const:
		return []float64{float64(v)}, nil
	case Consts:
		return v, nil
	case *Variable:
		bound, ok := bindings[v.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, v.Name)
		}
		if len(bound) != v.Size {
			return nil, fmt.Errorf("%w: %s declared with size %d, bound to %d values",
				ErrBindingSize, v.Name, v.Size, len(bound))
		}
		return bound, nil
	case List:
		var out []float64
		for _, elem := range v {
			xs, err := flatten(elem, bindings)
			if err != nil {
				return nil, err
			}
			out = append(out, xs...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected operand %T", op)
	}
}

// concrete reports whether the operand references no variables.
func concrete(op Operand) bool {
	switch v := op.(type) {
	case nil, Const, Consts:
		return true
	case *Variable:
		return false
	case List:
		for _, elem := range v {
			if !concrete(elem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
