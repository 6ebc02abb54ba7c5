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

// remoteEmulatorBackend submits sequences to one of the cloud emulators.
type remoteEmulatorBackend struct {
	name     string
	emulator string
	session  cloud.Session
	target   *device.Target
	poll     PollConfig
}

// remoteEmulatorConstructor closes a constructor over the emulator kind.
func remoteEmulatorConstructor(name, emulator string) constructor {
	return func(ctx context.Context, opts Options) (Backend, error) {
		if opts.Remote == nil && opts.Session == nil {
			return nil, fmt.Errorf("%w: backend %s", ErrMissingRemoteConfig, name)
		}
		sess, err := session(opts)
		if err != nil {
			return nil, err
		}

		target := opts.Target
		if emulator == cloud.EmulatorFresnel {
			// The fresnel emulator mirrors the QPU, so its device specs come
			// from the service.
			if target == nil {
				target, err = fetchFresnelTarget(ctx, sess)
				if err != nil {
					return nil, err
				}
			}
		} else if target == nil {
			target, err = device.NewTarget(device.Analog(), nil)
			if err != nil {
				return nil, err
			}
		}

		return &remoteEmulatorBackend{
			name:     name,
			emulator: emulator,
			session:  sess,
			target:   target,
			poll:     opts.Poll,
		}, nil
	}
}

// Name implements Backend.
func (b *remoteEmulatorBackend) Name() string { return b.name }

// Target implements Backend.
func (b *remoteEmulatorBackend) Target() *device.Target { return b.target }

// Run implements Backend. The fresnel emulator derives an automatic layout
// and validates the register before anything is submitted; validation
// failure aborts with no partial remote state.
func (b *remoteEmulatorBackend) Run(ctx context.Context, program *analog.Program, opts RunOptions) (*Job, error) {
	if opts.Shots <= 0 {
		return nil, fmt.Errorf("%w: backend %s", ErrShotsRequired, b.name)
	}

	register, err := compiler.RegisterFromProgram(program)
	if err != nil {
		return nil, err
	}
	if b.emulator == cloud.EmulatorFresnel {
		if _, err := device.AutomaticLayout(b.target.Device(), register); err != nil {
			return nil, err
		}
		if err := b.target.Device().ValidateRegister(register); err != nil {
			return nil, err
		}
	}

	req, metadata, err := buildBatchRequest(b.target, register, program, opts)
	if err != nil {
		return nil, err
	}
	req.Emulator = b.emulator
	metadata["emulator"] = b.emulator

	job := newRemoteJob(b.name, metadata, b.session, b.poll, false,
		func(ctx context.Context) (*cloud.Batch, error) {
			return b.session.CreateBatch(ctx, req)
		})

	ctxlog.FromContext(ctx).Debug("Submitting remote job.", slog.String("backend", b.name), slog.String("job_id", job.ID()), slog.Bool("wait", opts.Wait))
	if err := job.Submit(ctx, opts.Wait); err != nil {
		return job, err
	}
	return job, nil
}

// buildBatchRequest compiles the program into a serialized sequence plus
// the submission payload shared by all remote paths.
func buildBatchRequest(target *device.Target, register *analog.Register, program *analog.Program, opts RunOptions) (cloud.CreateBatchRequest, map[string]any, error) {
	seq, err := compiler.GenerateSequence(register, target.Device(), program)
	if err != nil {
		return cloud.CreateBatchRequest{}, nil, err
	}
	serialized, err := seq.Serialize()
	if err != nil {
		return cloud.CreateBatchRequest{}, nil, err
	}

	variables := make(map[string]any, len(opts.Values))
	for name, vals := range opts.Values {
		if len(vals) == 1 {
			variables[name] = vals[0]
		} else {
			variables[name] = vals
		}
	}

	req := cloud.CreateBatchRequest{
		SerializedSequence: string(serialized),
		Jobs:               []cloud.CreateJob{{Runs: opts.Shots, Variables: variables}},
	}
	metadata := map[string]any{
		"device": target.Device().Name,
		"shots":  opts.Shots,
	}
	return req, metadata, nil
}

// fetchFresnelTarget builds a target from the service's current QPU specs.
func fetchFresnelTarget(ctx context.Context, sess cloud.Session) (*device.Target, error) {
	specs, err := sess.FetchAvailableDevices(ctx)
	if err != nil {
		return nil, err
	}
	spec, ok := specs["FRESNEL"]
	if !ok {
		return nil, fmt.Errorf("%w: service lists no FRESNEL device", device.ErrUnknownDevice)
	}
	return device.NewTarget(device.FromSpec(spec), nil)
}
