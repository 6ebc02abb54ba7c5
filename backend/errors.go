package backend

import "errors"

// Dispatch and execution errors.
var (
	// ErrUnsupportedBackend reports a backend tag outside the closed set.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrMissingRemoteConfig reports a remote backend requested without
	// remote credentials.
	ErrMissingRemoteConfig = errors.New("remote backends require a remote configuration")

	// ErrPlatformUnsupported reports a backend unavailable on the host OS.
	ErrPlatformUnsupported = errors.New("backend is not supported on this platform")

	// ErrShotsRequired reports a remote submission without a shot count.
	ErrShotsRequired = errors.New("remote backends require an explicit shot count")

	// ErrNotCancellable reports a cancel request on a job that cannot be
	// cancelled: local jobs, jobs without an open batch, or jobs already in
	// a terminal state.
	ErrNotCancellable = errors.New("job cannot be cancelled")

	// ErrUnknownBatchStatus reports a remote status value outside the known
	// set. Failing here is deliberate: an unknown status must never pass as
	// success.
	ErrUnknownBatchStatus = errors.New("unknown remote batch status")

	// ErrRemoteExecutionFailed reports a remote run that reached a failure
	// state or exhausted its polling budget.
	ErrRemoteExecutionFailed = errors.New("remote execution failed")

	// Named terminal-batch failures, wrapped into ErrRemoteExecutionFailed
	// where a generic failure is reported.
	ErrBatchCancelled = errors.New("remote batch was cancelled")
	ErrBatchTimedOut  = errors.New("remote batch timed out")
	ErrBatchFailed    = errors.New("remote batch failed")

	// ErrMissingEngineConfig reports a tensor-network result arriving
	// without the engine configuration stashed at submission time.
	ErrMissingEngineConfig = errors.New("tensor-network result needs the engine config from submission metadata")
)
