package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
	"github.com/qiskit-community/qiskit-pasqal-provider/internal/ctxlog"
	"github.com/qiskit-community/qiskit-pasqal-provider/sim"
)

// metadata key for the tensor-network engine config stashed at submission.
const metaEngineConfig = "engine_config"

// normalizeStateVector samples a state-vector result into the uniform
// counts shape. A zero shot request uses the emulator's default; the
// realized count is stamped into metadata by the job on completion.
func normalizeStateVector(raw *sim.StateVectorResult, shots int) *Result {
	if shots <= 0 {
		shots = sim.DefaultShots
	}
	return &Result{
		Counts:   raw.SampleFinalState(shots),
		Metadata: map[string]any{"source": "statevector"},
	}
}

// normalizeTrace reads the bitstrings observable's final-time value from a
// tensor-network trace. The engine config must have been stashed in the
// job's metadata at submission time.
func normalizeTrace(raw *sim.ObservableTrace, metadata map[string]any) (*Result, error) {
	cfg, ok := metadata[metaEngineConfig].(sim.MPSConfig)
	if !ok {
		return nil, ErrMissingEngineConfig
	}

	for _, obs := range cfg.Observables {
		bs, ok := obs.(sim.BitStrings)
		if !ok {
			continue
		}
		final, ok := raw.Final(bs.Name())
		if !ok {
			return nil, fmt.Errorf("%w: observable %q missing from trace", ErrMissingEngineConfig, bs.Name())
		}
		counts, ok := final.(map[string]int)
		if !ok {
			return nil, fmt.Errorf("observable %q final value is %T, not counts", bs.Name(), final)
		}
		return &Result{
			Counts:   counts,
			Metadata: map[string]any{"source": "tensor-network"},
		}, nil
	}
	return nil, fmt.Errorf("%w: no bitstrings observable configured", ErrMissingEngineConfig)
}

// waitBatch polls the batch status until it terminates. PENDING and RUNNING
// keep polling; PAUSED resumes polling without resetting the budget;
// CANCELED, TIMED_OUT and ERROR fail with their named errors; an
// unrecognized status fails rather than passing as success. The job's
// cancellation flag is observed between iterations.
func (j *Job) waitBatch(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	poll := j.remote.poll

	for i := 0; i < poll.MaxPolls; i++ {
		if j.cancelled.Load() {
			return nil, ErrBatchCancelled
		}

		batch, err := j.remote.session.GetBatch(ctx, j.remote.batchID)
		if err != nil {
			return nil, err
		}
		logger.Debug("Polled batch.", slog.String("batch_id", batch.ID), slog.String("status", string(batch.Status)), slog.Int("poll", i))

		switch batch.Status {
		case cloud.StatusPending, cloud.StatusRunning, cloud.StatusPaused:
			if err := sleepContext(ctx, poll.Interval); err != nil {
				return nil, err
			}
		default:
			return j.normalizeTerminalBatch(batch)
		}
	}
	return nil, fmt.Errorf("%w: batch %s still open after %d polls",
		ErrRemoteExecutionFailed, j.remote.batchID, poll.MaxPolls)
}

// normalizeTerminalBatch converts a terminal batch into a result or the
// corresponding named failure.
func (j *Job) normalizeTerminalBatch(batch *cloud.Batch) (*Result, error) {
	switch batch.Status {
	case cloud.StatusDone:
		if len(batch.Jobs) == 0 {
			return nil, fmt.Errorf("%w: batch %s finished with no jobs", ErrRemoteExecutionFailed, batch.ID)
		}
		return &Result{
			Counts:   batch.Jobs[0].Counts,
			Metadata: map[string]any{"source": "remote", "batch_status": string(batch.Status)},
		}, nil
	case cloud.StatusCanceled:
		return nil, fmt.Errorf("%w: batch %s", ErrBatchCancelled, batch.ID)
	case cloud.StatusTimedOut:
		return nil, fmt.Errorf("%w: batch %s", ErrBatchTimedOut, batch.ID)
	case cloud.StatusError:
		return nil, fmt.Errorf("%w: batch %s: %v", ErrBatchFailed, batch.ID, batchErrors(batch))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBatchStatus, batch.Status)
	}
}

// waitCloudJob polls the batch's most recent job until it is DONE, the
// cloud-job-handle style used by the QPU path. A job already DONE yields
// its counts without sleeping.
func (j *Job) waitCloudJob(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	poll := j.remote.poll

	for i := 0; i < poll.MaxPolls; i++ {
		if j.cancelled.Load() {
			return nil, ErrBatchCancelled
		}

		batch, err := j.remote.session.GetBatch(ctx, j.remote.batchID)
		if err != nil {
			return nil, err
		}
		if len(batch.Jobs) == 0 {
			return nil, fmt.Errorf("%w: batch %s has no jobs", ErrRemoteExecutionFailed, batch.ID)
		}
		latest := batch.Jobs[len(batch.Jobs)-1]
		logger.Debug("Refreshed cloud job.", slog.String("job_id", latest.ID), slog.String("status", string(latest.Status)), slog.Int("poll", i))

		switch latest.Status {
		case cloud.StatusDone:
			return &Result{
				Counts:   latest.Counts,
				Metadata: map[string]any{"source": "qpu", "cloud_job_id": latest.ID},
			}, nil
		case cloud.StatusTimedOut, cloud.StatusError, cloud.StatusCanceled:
			return nil, fmt.Errorf("%w: cloud job %s finished as %s: %v",
				ErrRemoteExecutionFailed, latest.ID, latest.Status, latest.Errors)
		}

		if err := sleepContext(ctx, poll.JobInterval); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: cloud job polling exhausted after %d polls",
		ErrRemoteExecutionFailed, poll.MaxPolls)
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// batchErrors collects the error strings of a batch's jobs.
func batchErrors(batch *cloud.Batch) []string {
	var out []string
	for _, job := range batch.Jobs {
		out = append(out, job.Errors...)
	}
	return out
}
