package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
	"github.com/qiskit-community/qiskit-pasqal-provider/compiler"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
	"github.com/qiskit-community/qiskit-pasqal-provider/internal/ctxlog"
)

// qpuBackend submits sequences to the hardware QPU. Registered under both
// the "fresnel" and "qpu" tags.
type qpuBackend struct {
	session cloud.Session
	target  *device.Target
	poll    PollConfig
}

func newQPUBackend(ctx context.Context, opts Options) (Backend, error) {
	if opts.Remote == nil && opts.Session == nil {
		return nil, fmt.Errorf("%w: backend %s", ErrMissingRemoteConfig, TagQPU)
	}
	sess, err := session(opts)
	if err != nil {
		return nil, err
	}

	target := opts.Target
	if target == nil {
		target, err = fetchFresnelTarget(ctx, sess)
		if err != nil {
			return nil, err
		}
	}
	return &qpuBackend{session: sess, target: target, poll: opts.Poll}, nil
}

// Name implements Backend.
func (b *qpuBackend) Name() string { return TagQPU }

// Target implements Backend.
func (b *qpuBackend) Target() *device.Target { return b.target }

// Run implements Backend. The register always goes through automatic
// layout derivation and device validation before submission; an
// incompatible register aborts with no partial remote state. Results are
// polled job-handle style.
func (b *qpuBackend) Run(ctx context.Context, program *analog.Program, opts RunOptions) (*Job, error) {
	if opts.Shots <= 0 {
		return nil, fmt.Errorf("%w: backend %s", ErrShotsRequired, TagQPU)
	}

	register, err := compiler.RegisterFromProgram(program)
	if err != nil {
		return nil, err
	}
	if _, err := device.AutomaticLayout(b.target.Device(), register); err != nil {
		return nil, err
	}
	if err := b.target.Device().ValidateRegister(register); err != nil {
		return nil, err
	}

	req, metadata, err := buildBatchRequest(b.target, register, program, opts)
	if err != nil {
		return nil, err
	}
	req.DeviceType = device.DeviceFresnel

	job := newRemoteJob(TagQPU, metadata, b.session, b.poll, true,
		func(ctx context.Context) (*cloud.Batch, error) {
			return b.session.CreateBatch(ctx, req)
		})

	ctxlog.FromContext(ctx).Debug("Submitting QPU job.", slog.String("job_id", job.ID()), slog.Bool("wait", opts.Wait))
	if err := job.Submit(ctx, opts.Wait); err != nil {
		return job, err
	}
	return job, nil
}
