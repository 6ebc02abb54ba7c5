// Package analog defines the circuit-side model of an analog quantum
// program: parameter values (concrete or symbolic), interpolated waveform
// specifications, the Hamiltonian gate, qubit registers and the grid
// transforms applied to user coordinates.
//
// Types in this package are immutable once constructed. They carry no
// device- or backend-specific state; the compiler package turns them into a
// device-bound pulse sequence.
package analog
