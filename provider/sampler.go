package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/backend"
)

// ErrInvalidPub reports a pub the sampler cannot coerce into a program.
var ErrInvalidPub = errors.New("pub must carry a program, optionally with parameter values")

// Pub is a sampler input: a program plus optional parameter bindings keyed
// by parameter name. Values may be numbers, or slices for vector
// parameters.
type Pub struct {
	Program *analog.Program
	Values  map[string]any
}

// NewPub wraps a bare program.
func NewPub(program *analog.Program) Pub {
	return Pub{Program: program}
}

// Sampler runs programs on one backend and collects sampled counts.
type Sampler struct {
	backend backend.Backend
}

// NewSampler creates a sampler bound to a backend.
func NewSampler(b backend.Backend) *Sampler {
	return &Sampler{backend: b}
}

// Backend returns the bound backend.
func (s *Sampler) Backend() backend.Backend { return s.backend }

// RunOption adjusts a single submission.
type RunOption func(*runSettings)

type runSettings struct {
	wait bool
}

// WithoutWait submits without blocking on remote completion. The returned
// job stays in RUNNING state and the caller drives it with Poll or Wait.
// Local backends run synchronously either way.
func WithoutWait() RunOption {
	return func(s *runSettings) { s.wait = false }
}

// Run coerces the pubs and submits them to the backend, blocking until the
// job reaches a terminal state unless WithoutWait is given. The current
// hardware generation executes one program per submission, so exactly the
// first pub runs. Shots of zero means the backend's default, where the
// backend has one.
func (s *Sampler) Run(ctx context.Context, pubs []Pub, shots int, opts ...RunOption) (*backend.Job, error) {
	settings := runSettings{wait: true}
	for _, opt := range opts {
		opt(&settings)
	}
	program, values, err := coercePubs(pubs)
	if err != nil {
		return nil, err
	}
	return s.backend.Run(ctx, program, backend.RunOptions{
		Shots:  shots,
		Values: values,
		Wait:   settings.wait,
	})
}

// coercePubs validates the pub list and converts parameter bindings into
// the backend's value shape.
func coercePubs(pubs []Pub) (*analog.Program, map[string][]float64, error) {
	if len(pubs) == 0 {
		return nil, nil, fmt.Errorf("%w: no pubs given", ErrInvalidPub)
	}
	pub := pubs[0]
	if pub.Program == nil {
		return nil, nil, fmt.Errorf("%w: missing program", ErrInvalidPub)
	}
	if pub.Values == nil {
		return pub.Program, nil, nil
	}

	values := make(map[string][]float64, len(pub.Values))
	for name, raw := range pub.Values {
		converted, err := toFloats(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: parameter %q: %v", ErrInvalidPub, name, err)
		}
		values[name] = converted
	}
	return pub.Program, values, nil
}

// toFloats accepts the binding shapes callers reasonably produce.
func toFloats(raw any) ([]float64, error) {
	switch v := raw.(type) {
	case float64:
		return []float64{v}, nil
	case float32:
		return []float64{float64(v)}, nil
	case int:
		return []float64{float64(v)}, nil
	case []float64:
		return v, nil
	case []int:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []any:
		out := make([]float64, len(v))
		for i, x := range v {
			xs, err := toFloats(x)
			if err != nil || len(xs) != 1 {
				return nil, fmt.Errorf("element %d is %T", i, x)
			}
			out[i] = xs[0]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}
