// Package provider is the public entry point: a Provider hands out
// backends by tag, and a Sampler runs programs on one backend through the
// uniform job/result interface.
package provider

import (
	"context"

	"github.com/qiskit-community/qiskit-pasqal-provider/backend"
	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
)

// Provider hands out execution backends. Remote credentials, when present,
// are forwarded to every remote backend it constructs.
type Provider struct {
	remote *cloud.RemoteConfig
	poll   backend.PollConfig
}

// Option configures a Provider.
type Option func(*Provider)

// WithRemoteConfig attaches remote credentials for remote backends.
func WithRemoteConfig(cfg *cloud.RemoteConfig) Option {
	return func(p *Provider) { p.remote = cfg }
}

// WithPollConfig bounds the remote polling loops of constructed backends.
func WithPollConfig(poll backend.PollConfig) Option {
	return func(p *Provider) { p.poll = poll }
}

// NewProvider creates a provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetBackend constructs the backend registered under the given tag,
// resolving the target device and layout. A nil target selects the
// backend's default.
func (p *Provider) GetBackend(ctx context.Context, tag string, target *device.Target) (backend.Backend, error) {
	return backend.New(ctx, tag, backend.Options{
		Target: target,
		Remote: p.remote,
		Poll:   p.poll,
	})
}
