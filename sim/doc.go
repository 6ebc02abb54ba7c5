// Package sim provides the local execution engines consumed by the local
// backends: a state-vector emulator and an MPS-style tensor-network
// emulator. Both run a compiled sequence and hand back raw results for the
// backend layer to normalize.
//
// The engines model each qubit as an independently driven two-level system
// under the sequence's global amplitude and detuning. That is enough to
// make local backends runnable end to end; interaction physics is out of
// scope.
package sim
