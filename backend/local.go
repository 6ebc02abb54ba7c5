package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/compiler"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
	"github.com/qiskit-community/qiskit-pasqal-provider/internal/ctxlog"
	"github.com/qiskit-community/qiskit-pasqal-provider/pulse"
	"github.com/qiskit-community/qiskit-pasqal-provider/sim"
)

// qutipBackend runs sequences on the in-process state-vector emulator.
type qutipBackend struct {
	target *device.Target
}

func newQutipBackend(_ context.Context, opts Options) (Backend, error) {
	target, err := defaultTarget(opts.Target)
	if err != nil {
		return nil, err
	}
	return &qutipBackend{target: target}, nil
}

// Name implements Backend.
func (b *qutipBackend) Name() string { return TagQutip }

// Target implements Backend.
func (b *qutipBackend) Target() *device.Target { return b.target }

// Run implements Backend. The job runs synchronously: it is already in a
// terminal state when returned.
func (b *qutipBackend) Run(ctx context.Context, program *analog.Program, opts RunOptions) (*Job, error) {
	compiled, err := compileLocal(b.target, program, opts.Values)
	if err != nil {
		return nil, err
	}

	engine := sim.NewStateVectorEmulator(compiled)
	job := newLocalJob(TagQutip, map[string]any{"device": b.target.Device().Name},
		func(ctx context.Context) (*Result, error) {
			raw, err := engine.Run(ctx)
			if err != nil {
				return nil, err
			}
			return normalizeStateVector(raw, opts.Shots), nil
		})

	ctxlog.FromContext(ctx).Debug("Submitting local job.", slog.String("backend", TagQutip), slog.String("job_id", job.ID()))
	if err := job.Submit(ctx, true); err != nil {
		return job, err
	}
	return job, nil
}

// emuMPSBackend runs sequences on the in-process tensor-network emulator.
type emuMPSBackend struct {
	target *device.Target
}

func newEmuMPSBackend(_ context.Context, opts Options) (Backend, error) {
	if hostOS == "windows" {
		return nil, fmt.Errorf("%w: %s on %s", ErrPlatformUnsupported, TagEmuMPS, hostOS)
	}
	target, err := defaultTarget(opts.Target)
	if err != nil {
		return nil, err
	}
	return &emuMPSBackend{target: target}, nil
}

// Name implements Backend.
func (b *emuMPSBackend) Name() string { return TagEmuMPS }

// Target implements Backend.
func (b *emuMPSBackend) Target() *device.Target { return b.target }

// Run implements Backend. The engine config is stashed in the job metadata
// at submission time; result normalization reads it back.
func (b *emuMPSBackend) Run(ctx context.Context, program *analog.Program, opts RunOptions) (*Job, error) {
	compiled, err := compileLocal(b.target, program, opts.Values)
	if err != nil {
		return nil, err
	}

	config := sim.MPSConfig{Observables: []sim.Observable{sim.BitStrings{NumShots: opts.Shots}}}
	engine := sim.NewMPSEmulator(compiled, config)
	metadata := map[string]any{
		"device":         b.target.Device().Name,
		metaEngineConfig: config,
	}
	job := newLocalJob(TagEmuMPS, metadata, func(ctx context.Context) (*Result, error) {
		raw, err := engine.Run(ctx)
		if err != nil {
			return nil, err
		}
		return normalizeTrace(raw, metadata)
	})

	ctxlog.FromContext(ctx).Debug("Submitting local job.", slog.String("backend", TagEmuMPS), slog.String("job_id", job.ID()))
	if err := job.Submit(ctx, true); err != nil {
		return job, err
	}
	return job, nil
}

// compileLocal extracts the register, generates the sequence and binds it
// for in-process execution.
func compileLocal(target *device.Target, program *analog.Program, values map[string][]float64) (*pulse.CompiledSequence, error) {
	register, err := compiler.RegisterFromProgram(program)
	if err != nil {
		return nil, err
	}
	seq, err := compiler.GenerateSequence(register, target.Device(), program)
	if err != nil {
		return nil, err
	}
	return seq.Build(values)
}

// defaultTarget falls back to the analog device with its pre-calibrated
// layout.
func defaultTarget(target *device.Target) (*device.Target, error) {
	if target != nil {
		return target, nil
	}
	return device.NewTarget(device.Analog(), nil)
}
