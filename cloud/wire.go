package cloud

// Emulator kinds accepted by the batch endpoint.
const (
	EmulatorFree    = "EMU_FREE"
	EmulatorMPS     = "EMU_MPS"
	EmulatorFresnel = "EMU_FRESNEL"
)

// Batch is a cloud-side unit of one or more submitted executions.
type Batch struct {
	ID         string      `json:"id"`
	Status     BatchStatus `json:"status"`
	DeviceType string      `json:"device_type,omitempty"`
	Emulator   string      `json:"emulator,omitempty"`
	Jobs       []Job       `json:"jobs,omitempty"`
	CreatedAt  string      `json:"created_at,omitempty"`
}

// Job is one execution within a batch. Jobs is ordered by creation, so the
// last entry is the most recent.
type Job struct {
	ID        string         `json:"id"`
	Status    BatchStatus    `json:"status"`
	Runs      int            `json:"runs"`
	Variables map[string]any `json:"variables,omitempty"`
	Counts    map[string]int `json:"counts,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
}

// CreateJob describes one execution to submit: its shot count and variable
// bindings.
type CreateJob struct {
	Runs      int            `json:"runs"`
	Variables map[string]any `json:"variables,omitempty"`
}

// CreateBatchRequest is the submission payload for a new batch.
type CreateBatchRequest struct {
	SerializedSequence string      `json:"serialized_sequence"`
	Jobs               []CreateJob `json:"jobs"`
	Emulator           string      `json:"emulator,omitempty"`
	DeviceType         string      `json:"device_type,omitempty"`
	ProjectID          string      `json:"project_id,omitempty"`
	Webhook            string      `json:"webhook,omitempty"`
}
