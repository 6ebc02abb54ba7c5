package compiler

import (
	"fmt"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/pulse"
)

// ResolveValue resolves a waveform parameter against the sequence's symbol
// table: concrete numbers pass through, named parameters declare (or reuse)
// a variable, homogeneous parameter arrays declare one vector variable, and
// heterogeneous arrays resolve recursively. Resolution is idempotent per
// sequence: the same parameter name always maps to the same declared
// variable. A nil value resolves to nil, signaling "not provided".
func ResolveValue(seq *pulse.Sequence, value analog.Value) (pulse.Operand, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil

	case analog.Number:
		return pulse.Const(v), nil

	case analog.Param:
		// Single parameters are scalar-sized. Declaration is
		// declare-or-reuse, so repeated occurrences share one variable.
		return seq.DeclareVariable(v.Name, 1)

	case analog.ParamExpr:
		return nil, fmt.Errorf("%w: parameter expression %q is not supported", ErrUnsupportedValue, v.Expr)

	case analog.Array:
		return resolveArray(seq, v)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}

// resolveArray handles the two array shapes: a homogeneous run of one
// parameter becomes a vector variable of that length; anything else
// resolves element-wise, dropping nils and unwrapping a lone survivor.
func resolveArray(seq *pulse.Sequence, values analog.Array) (pulse.Operand, error) {
	if name, ok := homogeneousParamName(values); ok {
		return seq.DeclareVariable(name, len(values))
	}

	resolved := make(pulse.List, 0, len(values))
	allConst := true
	for _, elem := range values {
		op, err := ResolveValue(seq, elem)
		if err != nil {
			return nil, err
		}
		if op == nil {
			continue
		}
		if _, isConst := op.(pulse.Const); !isConst {
			allConst = false
		}
		resolved = append(resolved, op)
	}

	if len(resolved) == 1 {
		return resolved[0], nil
	}
	if allConst {
		out := make(pulse.Consts, len(resolved))
		for i, op := range resolved {
			out[i] = float64(op.(pulse.Const))
		}
		return out, nil
	}
	return resolved, nil
}

// homogeneousParamName reports the single parameter name a non-empty array
// consists of, if any.
func homogeneousParamName(values analog.Array) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	first, ok := values[0].(analog.Param)
	if !ok {
		return "", false
	}
	for _, elem := range values[1:] {
		p, ok := elem.(analog.Param)
		if !ok || p.Name != first.Name {
			return "", false
		}
	}
	return first.Name, true
}
