package backend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
)

// Status is a job's lifecycle state.
type Status int

// Job lifecycle. INITIALIZING and RUNNING are transient; the rest are
// terminal and final.
const (
	StatusInitializing Status = iota
	StatusRunning
	StatusDone
	StatusError
	StatusCancelled
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "INITIALIZING"
	case StatusRunning:
		return "RUNNING"
	case StatusDone:
		return "DONE"
	case StatusError:
		return "ERROR"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusCancelled
}

// Job tracks one sequence execution from submission to a terminal state. A
// job maps to exactly one execution and is not reusable. Status and Result
// are non-blocking accessors; use Submit with wait, or Wait, to obtain a
// populated result.
type Job struct {
	id          string
	backendName string
	status      Status
	result      *Result
	metadata    map[string]any

	// run is the synchronous work of a local job.
	run func(ctx context.Context) (*Result, error)

	// remote is set for jobs backed by a cloud batch.
	remote *remoteHandle

	cancelled atomic.Bool
}

// remoteHandle is a job's view of its cloud batch.
type remoteHandle struct {
	session cloud.Session
	poll    PollConfig
	// create submits the batch on first Submit.
	create func(ctx context.Context) (*cloud.Batch, error)
	// jobPolled selects the cloud-job-handle polling style (QPU) over
	// batch-status polling.
	jobPolled bool
	batchID   string
}

// newLocalJob creates a job whose submission runs the executor in-process.
func newLocalJob(backendName string, metadata map[string]any, run func(ctx context.Context) (*Result, error)) *Job {
	return &Job{
		id:          uuid.NewString(),
		backendName: backendName,
		status:      StatusInitializing,
		metadata:    metadata,
		run:         run,
	}
}

// newRemoteJob creates a job whose submission opens a cloud batch.
func newRemoteJob(backendName string, metadata map[string]any, session cloud.Session, poll PollConfig, jobPolled bool, create func(ctx context.Context) (*cloud.Batch, error)) *Job {
	return &Job{
		id:          uuid.NewString(),
		backendName: backendName,
		status:      StatusInitializing,
		metadata:    metadata,
		remote: &remoteHandle{
			session:   session,
			poll:      poll.withDefaults(),
			create:    create,
			jobPolled: jobPolled,
		},
	}
}

// ID returns the job id.
func (j *Job) ID() string { return j.id }

// BackendName returns the owning backend's tag.
func (j *Job) BackendName() string { return j.backendName }

// Status returns the current lifecycle state without blocking.
func (j *Job) Status() Status { return j.status }

// Result returns the normalized result, or nil before the job reaches
// DONE. It never blocks.
func (j *Job) Result() *Result { return j.result }

// Metadata returns the job's metadata map.
func (j *Job) Metadata() map[string]any { return j.metadata }

// Done reports whether the job completed successfully.
func (j *Job) Done() bool { return j.status == StatusDone }

// Running reports whether the job is actively running.
func (j *Job) Running() bool { return j.status == StatusRunning }

// Cancelled reports whether the job was cancelled.
func (j *Job) Cancelled() bool { return j.status == StatusCancelled }

// InFinalState reports whether the job reached a terminal state.
func (j *Job) InFinalState() bool { return j.status.Terminal() }

// Submit moves the job to RUNNING and hands it to its executor. Local jobs
// block until the executor returns. Remote jobs open the batch, then block
// for a terminal status when wait is set, or return immediately in RUNNING
// state for later polling.
func (j *Job) Submit(ctx context.Context, wait bool) error {
	j.status = StatusRunning

	if j.remote == nil {
		result, err := j.run(ctx)
		if err != nil {
			j.fail(err)
			return err
		}
		j.finish(result)
		return nil
	}

	batch, err := j.remote.create(ctx)
	if err != nil {
		j.fail(err)
		return err
	}
	j.remote.batchID = batch.ID
	j.metadata["batch_id"] = batch.ID

	if !wait {
		return nil
	}
	return j.Wait(ctx)
}

// Wait blocks until the remote batch reaches a terminal status and maps it
// onto the job's terminal state: DONE stays DONE, CANCELED becomes
// CANCELLED, and everything else, timed-out and error statuses included,
// falls through to ERROR.
func (j *Job) Wait(ctx context.Context) error {
	if j.status.Terminal() {
		return nil
	}
	if j.remote == nil || j.remote.batchID == "" {
		return fmt.Errorf("job %s has no open batch to wait on", j.id)
	}

	var (
		result *Result
		err    error
	)
	if j.remote.jobPolled {
		result, err = j.waitCloudJob(ctx)
	} else {
		result, err = j.waitBatch(ctx)
	}
	if err != nil {
		if errors.Is(err, ErrBatchCancelled) {
			j.status = StatusCancelled
			j.metadata["error"] = err.Error()
			return err
		}
		j.fail(err)
		return err
	}
	j.finish(result)
	return nil
}

// Poll refreshes the batch once. It returns true when the job reached a
// terminal state.
func (j *Job) Poll(ctx context.Context) (bool, error) {
	if j.status.Terminal() {
		return true, nil
	}
	if j.remote == nil || j.remote.batchID == "" {
		return false, fmt.Errorf("job %s has no open batch to poll", j.id)
	}

	batch, err := j.remote.session.GetBatch(ctx, j.remote.batchID)
	if err != nil {
		return false, err
	}
	if !batch.Status.Terminal() {
		return false, nil
	}

	result, err := j.normalizeTerminalBatch(batch)
	if err != nil {
		if errors.Is(err, ErrBatchCancelled) {
			j.status = StatusCancelled
			j.metadata["error"] = err.Error()
			return true, err
		}
		j.fail(err)
		return true, err
	}
	j.finish(result)
	return true, nil
}

// Cancel requests cancellation on the remote session. Only remote jobs with
// an open batch and no terminal state can be cancelled; everything else
// reports ErrNotCancellable. The poll loops observe the cancellation flag
// between iterations and stop.
func (j *Job) Cancel(ctx context.Context) error {
	if j.remote == nil || j.remote.batchID == "" || j.status.Terminal() {
		return fmt.Errorf("%w: job %s in state %s", ErrNotCancellable, j.id, j.status)
	}
	if _, err := j.remote.session.CancelBatch(ctx, j.remote.batchID); err != nil {
		return fmt.Errorf("cancel batch %s: %w", j.remote.batchID, err)
	}
	j.cancelled.Store(true)
	j.status = StatusCancelled
	return nil
}

// fail moves the job to ERROR, preserving the failure reason in metadata
// for diagnostics.
func (j *Job) fail(err error) {
	j.status = StatusError
	j.metadata["error"] = err.Error()
}

// finish stamps the result with the job's identity and moves to DONE.
func (j *Job) finish(result *Result) {
	result.BackendName = j.backendName
	result.JobID = j.id
	if result.Metadata == nil {
		result.Metadata = make(map[string]any)
	}
	result.Metadata["backend_name"] = j.backendName
	result.Metadata["job_id"] = j.id
	result.Metadata["shots"] = result.Shots()
	j.result = result
	j.status = StatusDone
}
