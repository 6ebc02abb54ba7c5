// Package backend dispatches compiled analog programs to execution
// backends and normalizes their results. A closed set of backend tags maps
// to constructors for the local state-vector emulator, the local
// tensor-network emulator, the remote cloud emulators and the QPU. Every
// backend exposes the same Run contract and yields a Job whose lifecycle is
// INITIALIZING -> RUNNING -> {DONE, ERROR, CANCELLED}; results converge on
// one counts-histogram shape regardless of executor.
package backend
