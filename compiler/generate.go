package compiler

import (
	"fmt"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
	"github.com/qiskit-community/qiskit-pasqal-provider/pulse"
)

// GlobalChannel is the single channel every pulse is appended to.
const GlobalChannel = "rydberg_global"

// GenerateSequence compiles a program into a sequence bound to the given
// register and device. Each operation must be an analog instruction; one
// pulse is built per instruction and appended in program order.
func GenerateSequence(register *analog.Register, dev *device.Device, program *analog.Program) (*pulse.Sequence, error) {
	seq := pulse.NewSequence(register, dev)
	if err := seq.DeclareChannel(GlobalChannel); err != nil {
		return nil, err
	}

	for i, op := range program.Operations() {
		in, ok := op.(analog.Instruction)
		if !ok {
			return nil, fmt.Errorf("%w: operation %d is %T", ErrNotAnalogInstruction, i, op)
		}
		p, err := BuildPulse(seq, in)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		if err := seq.Add(p, GlobalChannel); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// RegisterFromProgram extracts the single register embedded in the
// program's instructions. Exactly one distinct coordinate set must be
// found; a program mixing registers, or containing no analog instruction,
// fails.
func RegisterFromProgram(program *analog.Program) (*analog.Register, error) {
	var found *analog.Register
	for i, op := range program.Operations() {
		in, ok := op.(analog.Instruction)
		if !ok {
			return nil, fmt.Errorf("%w: operation %d is %T", ErrNotAnalogInstruction, i, op)
		}
		reg := in.AnalogRegister()
		switch {
		case found == nil:
			found = reg
		case !found.Equal(reg):
			return nil, ErrMultipleRegisters
		}
	}
	if found == nil {
		return nil, ErrNoAnalogInstruction
	}
	return found, nil
}
