package analog

// Instruction is the capability set an analog program step must expose:
// amplitude, detuning and phase waveform accessors plus the register it acts
// on. Program operations are checked against this interface once, at
// compilation time.
type Instruction interface {
	Amplitude() *InterpolatePoints
	Detuning() *InterpolatePoints
	Phase() Phase
	AnalogRegister() *Register
}

// Operation is any program step. Only operations implementing Instruction
// can be compiled; the loose type exists so programs can be validated rather
// than silently filtered.
type Operation any

// Program is an ordered list of operations. Order is significant: it
// determines physical execution order of the compiled pulses.
type Program struct {
	ops []Operation
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{}
}

// Append adds an operation to the end of the program and returns the program
// for chaining.
func (p *Program) Append(op Operation) *Program {
	p.ops = append(p.ops, op)
	return p
}

// Operations returns the program's operations in order.
func (p *Program) Operations() []Operation {
	out := make([]Operation, len(p.ops))
	copy(out, p.ops)
	return out
}

// Len returns the number of operations.
func (p *Program) Len() int { return len(p.ops) }
