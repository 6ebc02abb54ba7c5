package pulse

import (
	"errors"
	"fmt"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
)

// Sequence errors.
var (
	ErrChannelDeclared = errors.New("channel already declared")
	ErrUnknownChannel  = errors.New("channel not declared on this sequence")
	ErrVariableSize    = errors.New("variable already declared with a different size")
)

// Sequence is the build context of one compilation: it owns the register
// and device it is bound to, the declared channels, the symbol table of
// declared variables, and the ordered pulse list. It is owned exclusively
// by the compilation that created it.
type Sequence struct {
	register  *analog.Register
	device    *device.Device
	channels  map[string]bool
	variables map[string]*Variable
	pulses    []*Pulse
}

// NewSequence creates an empty sequence bound to a register and device.
func NewSequence(register *analog.Register, dev *device.Device) *Sequence {
	return &Sequence{
		register:  register,
		device:    dev,
		channels:  make(map[string]bool),
		variables: make(map[string]*Variable),
	}
}

// Register returns the bound register.
func (s *Sequence) Register() *analog.Register { return s.register }

// Device returns the bound device.
func (s *Sequence) Device() *device.Device { return s.device }

// DeclareChannel declares a named channel. Declaring the same channel twice
// is an error.
func (s *Sequence) DeclareChannel(name string) error {
	if s.channels[name] {
		return fmt.Errorf("%w: %s", ErrChannelDeclared, name)
	}
	s.channels[name] = true
	return nil
}

// DeclareVariable declares a symbolic variable, or returns the existing one
// when the name is already declared. Redeclaring with a different size is
// an error. Idempotence here is what lets several instructions share one
// parameter and still build one coherent sequence.
func (s *Sequence) DeclareVariable(name string, size int) (*Variable, error) {
	if v, ok := s.variables[name]; ok {
		if v.Size != size {
			return nil, fmt.Errorf("%w: %s declared with size %d, requested %d",
				ErrVariableSize, name, v.Size, size)
		}
		return v, nil
	}
	v := &Variable{Name: name, Size: size}
	s.variables[name] = v
	return v, nil
}

// DeclaredVariable returns the variable declared under name, if any.
func (s *Sequence) DeclaredVariable(name string) (*Variable, bool) {
	v, ok := s.variables[name]
	return v, ok
}

// DeclaredVariables returns the symbol table. The returned map is shared;
// callers must not mutate it.
func (s *Sequence) DeclaredVariables() map[string]*Variable { return s.variables }

// Add appends a pulse to a declared channel. Pulses keep insertion order;
// there is no reordering or merging.
func (s *Sequence) Add(p *Pulse, channel string) error {
	if !s.channels[channel] {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
	s.pulses = append(s.pulses, p)
	return nil
}

// Pulses returns the appended pulses in order.
func (s *Sequence) Pulses() []*Pulse {
	out := make([]*Pulse, len(s.pulses))
	copy(out, s.pulses)
	return out
}

// Build binds every declared variable and resolves all pulses into a
// concrete, executable sequence. Scalar bindings may be passed as
// single-element slices.
func (s *Sequence) Build(bindings map[string][]float64) (*CompiledSequence, error) {
	for name := range s.variables {
		if _, ok := bindings[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, name)
		}
	}

	out := &CompiledSequence{
		Register: s.register,
		Device:   s.device,
	}
	for i, p := range s.pulses {
		cp, err := p.resolve(bindings)
		if err != nil {
			return nil, fmt.Errorf("pulse %d: %w", i, err)
		}
		out.Pulses = append(out.Pulses, cp)
	}
	return out, nil
}

// CompiledSequence is a fully bound, time-ordered pulse list ready for
// execution.
type CompiledSequence struct {
	Register *analog.Register
	Device   *device.Device
	Pulses   []*ConcretePulse
}

// QubitCount returns the number of qubits the sequence acts on.
func (c *CompiledSequence) QubitCount() int { return c.Register.NumQubits() }
