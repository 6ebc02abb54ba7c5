// Package pulse holds the sequence-side model of a compiled analog program:
// operands (concrete numbers or references to declared variables),
// interpolated waveforms, physical pulses, and the Sequence build context
// that owns the symbol table and the ordered pulse list.
//
// A Sequence is mutated incrementally by exactly one compilation and must
// not be shared across concurrent compilations; concurrency is achieved by
// giving each compilation its own Sequence.
package pulse
