package analog

// Value is a scalar waveform parameter: either a concrete number, a named
// symbolic parameter bound at build time, a composite parameter expression,
// or an array of the former. The set of implementations is closed; consumers
// switch over it exhaustively.
type Value interface {
	isValue()
}

// Number is a concrete numeric value.
type Number float64

func (Number) isValue() {}
func (Number) isPhase() {}

// Param is a named symbolic parameter. All occurrences of the same name
// within one program refer to the same declared variable.
type Param struct {
	Name string
}

func (Param) isValue() {}
func (Param) isPhase() {}

// ParamExpr is a composite expression over one or more parameters. The
// provider does not support resolving these; carrying the source text around
// lets errors point at the offending expression.
type ParamExpr struct {
	Expr   string
	Params []string
}

func (ParamExpr) isValue() {}

// Array is an ordered collection of values, possibly mixing numbers and
// parameters.
type Array []Value

func (Array) isValue() {}

// Numbers builds an Array of concrete values.
func Numbers(xs ...float64) Array {
	out := make(Array, len(xs))
	for i, x := range xs {
		out[i] = Number(x)
	}
	return out
}

// Params builds an Array of n occurrences of the named parameter. Used for
// vector-valued symbolic waveforms.
func Params(name string, n int) Array {
	out := make(Array, n)
	for i := range out {
		out[i] = Param{Name: name}
	}
	return out
}

// ParameterNames returns the distinct parameter names referenced by v, in
// first-appearance order.
func ParameterNames(v Value) []string {
	var names []string
	seen := map[string]bool{}
	var walk func(Value)
	walk = func(v Value) {
		switch val := v.(type) {
		case Param:
			if !seen[val.Name] {
				seen[val.Name] = true
				names = append(names, val.Name)
			}
		case ParamExpr:
			for _, n := range val.Params {
				if !seen[n] {
					seen[n] = true
					names = append(names, n)
				}
			}
		case Array:
			for _, elem := range val {
				walk(elem)
			}
		}
	}
	if v != nil {
		walk(v)
	}
	return names
}
