package backend

import (
	"context"
	"time"

	"github.com/qiskit-community/qiskit-pasqal-provider/analog"
	"github.com/qiskit-community/qiskit-pasqal-provider/cloud"
	"github.com/qiskit-community/qiskit-pasqal-provider/device"
)

// Backend is a named executor binding. Run compiles the program, submits
// it, and returns the resulting job. Local backends return a job already in
// a terminal state; remote backends honor RunOptions.Wait.
type Backend interface {
	Name() string
	Target() *device.Target
	Run(ctx context.Context, program *analog.Program, opts RunOptions) (*Job, error)
}

// RunOptions are the per-submission parameters.
type RunOptions struct {
	// Shots is the requested sample count. Zero means the executor's
	// default for local backends; remote backends require an explicit
	// value.
	Shots int

	// Values binds declared variable names to concrete values. Scalars are
	// single-element slices.
	Values map[string][]float64

	// Wait blocks a remote submission until the batch reaches a terminal
	// status. When false the job returns in RUNNING state and the caller
	// polls. Local backends always run synchronously.
	Wait bool
}

// PollConfig bounds the remote polling loops.
type PollConfig struct {
	// Interval between batch status polls. Defaults to 10s.
	Interval time.Duration

	// JobInterval between cloud job refreshes on the QPU path. Defaults to
	// 15s.
	JobInterval time.Duration

	// MaxPolls caps the number of poll iterations. Zero means the default
	// budget; polling is never unbounded.
	MaxPolls int
}

// Polling defaults: a batch poll every 10 seconds, a cloud job refresh
// every 15, and a budget of 360 polls (an hour at the default interval).
const (
	DefaultPollInterval    = 10 * time.Second
	DefaultJobPollInterval = 15 * time.Second
	DefaultMaxPolls        = 360
)

// withDefaults fills unset poll parameters.
func (p PollConfig) withDefaults() PollConfig {
	if p.Interval <= 0 {
		p.Interval = DefaultPollInterval
	}
	if p.JobInterval <= 0 {
		p.JobInterval = DefaultJobPollInterval
	}
	if p.MaxPolls <= 0 {
		p.MaxPolls = DefaultMaxPolls
	}
	return p
}

// Options configure backend construction.
type Options struct {
	// Target selects the device and layout. Nil falls back to the
	// backend's default target.
	Target *device.Target

	// Remote carries the credentials for remote backends.
	Remote *cloud.RemoteConfig

	// Session overrides the remote session, primarily for tests. When nil,
	// a client is built from Remote.
	Session cloud.Session

	// Poll bounds the remote polling loops.
	Poll PollConfig
}

// Result is the uniform result container every execution path converges
// on: a counts histogram plus metadata. Counts keys are fixed-width binary
// strings of qubit-count length; values sum to the realized shot count.
type Result struct {
	BackendName string
	JobID       string
	Counts      map[string]int
	Metadata    map[string]any
}

// Shots returns the realized shot count.
func (r *Result) Shots() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}
