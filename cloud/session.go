package cloud

import (
	"context"

	"github.com/qiskit-community/qiskit-pasqal-provider/device"
)

// Session is the narrow interface the backends consume to talk to the
// remote service. The HTTP client implements it; tests substitute fakes.
type Session interface {
	// CreateBatch submits a new batch and returns its initial state.
	CreateBatch(ctx context.Context, req CreateBatchRequest) (*Batch, error)

	// GetBatch refreshes a batch's status and jobs.
	GetBatch(ctx context.Context, id string) (*Batch, error)

	// CancelBatch requests cancellation of an open batch.
	CancelBatch(ctx context.Context, id string) (*Batch, error)

	// FetchAvailableDevices returns the current device specs keyed by the
	// service's device names (e.g. "FRESNEL").
	FetchAvailableDevices(ctx context.Context) (map[string]device.Spec, error)
}
