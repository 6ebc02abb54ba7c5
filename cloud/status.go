package cloud

// BatchStatus is the remote side's lifecycle state for a batch or job.
type BatchStatus string

// Remote statuses. PAUSED is not terminal: a paused batch resumes and must
// keep being polled.
const (
	StatusPending  BatchStatus = "PENDING"
	StatusRunning  BatchStatus = "RUNNING"
	StatusPaused   BatchStatus = "PAUSED"
	StatusDone     BatchStatus = "DONE"
	StatusCanceled BatchStatus = "CANCELED"
	StatusTimedOut BatchStatus = "TIMED_OUT"
	StatusError    BatchStatus = "ERROR"
)

// Terminal reports whether the status is final.
func (s BatchStatus) Terminal() bool {
	switch s {
	case StatusDone, StatusCanceled, StatusTimedOut, StatusError:
		return true
	default:
		return false
	}
}
