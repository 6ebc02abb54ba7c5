package compiler

import "errors"

// Compilation errors. All are caller mistakes detected before any execution
// side effect.
var (
	// ErrUnsupportedValue reports a value kind the resolver cannot handle,
	// including composite parameter expressions. Only concrete numbers and
	// single named parameters are supported; this is a scope limit.
	ErrUnsupportedValue = errors.New("unsupported value kind")

	// ErrNotAnalogInstruction reports a program operation without the
	// amplitude/detuning/phase capability set.
	ErrNotAnalogInstruction = errors.New("operation has no waveform properties and cannot be used for analog computing")

	// ErrNoAnalogInstruction reports a program with no analog instruction to
	// extract a register from.
	ErrNoAnalogInstruction = errors.New("program contains no analog instruction")

	// ErrMultipleRegisters reports a program using more than one distinct
	// coordinate set. The current hardware generation supports a single
	// register per program.
	ErrMultipleRegisters = errors.New("only a single analog register per program is supported")
)
