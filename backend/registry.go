package backend

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
)

// Backend tags. The set is closed: new backends are added by registry
// entry, not by callers.
const (
	TagQutip            = "qutip"
	TagEmuMPS           = "emu-mps"
	TagRemoteEmuFree    = "remote-emu-free"
	TagRemoteEmuMPS     = "remote-emu-mps"
	TagRemoteEmuFresnel = "remote-emu-fresnel"
	TagFresnel          = "fresnel"
	TagQPU              = "qpu"
)

// constructor builds a concrete backend from dispatch options.
type constructor func(ctx context.Context, opts Options) (Backend, error)

// registry maps each tag to its constructor. "fresnel" and "qpu" are the
// same machine under two names.
var registry = map[string]constructor{
	TagQutip:            newQutipBackend,
	TagEmuMPS:           newEmuMPSBackend,
	TagRemoteEmuFree:    remoteEmulatorConstructor(TagRemoteEmuFree, cloud.EmulatorFree),
	TagRemoteEmuMPS:     remoteEmulatorConstructor(TagRemoteEmuMPS, cloud.EmulatorMPS),
	TagRemoteEmuFresnel: remoteEmulatorConstructor(TagRemoteEmuFresnel, cloud.EmulatorFresnel),
	TagFresnel:          newQPUBackend,
	TagQPU:              newQPUBackend,
}

// hostOS is indirected for platform-constraint tests.
var hostOS = runtime.GOOS

// New constructs the backend registered under tag. Remote tags require
// remote credentials in the options; unknown tags fail without constructing
// anything.
func New(ctx context.Context, tag string, opts Options) (Backend, error) {
	build, ok := registry[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnsupportedBackend, tag, Tags())
	}
	return build(ctx, opts)
}

// Tags returns the closed set of backend tags, sorted.
func Tags() []string {
	out := make([]string, 0, len(registry))
	for tag := range registry {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// session returns the configured session override or builds an HTTP client
// from the remote credentials.
func session(opts Options) (cloud.Session, error) {
	if opts.Session != nil {
		return opts.Session, nil
	}
	if opts.Remote == nil {
		return nil, ErrMissingRemoteConfig
	}
	return cloud.NewClient(*opts.Remote), nil
}
