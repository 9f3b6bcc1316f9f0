package model

// StatusKind is the classification of a progress or creation response code
type StatusKind string

const (
	// StatusCreated means the job finished and the server answered with the alternate 201 code
	StatusCreated StatusKind = "Created"

	// StatusCompleted means the job finished successfully
	StatusCompleted StatusKind = "Completed"

	// StatusProcessing means the job is running; Progress may carry a fraction
	StatusProcessing StatusKind = "StillProcessing"

	// StatusAcknowledged means the job is known but has not started yet
	StatusAcknowledged StatusKind = "Acknowledged"

	// StatusNotFoundYet means the progress store does not know the job yet
	StatusNotFoundYet StatusKind = "NotFoundYet"

	// StatusUnsupported means the job ended in an unsupported or invalid state
	StatusUnsupported StatusKind = "Unsupported"

	// StatusClientError means the server rejected the request with a 4xx code
	StatusClientError StatusKind = "ClientError"

	// StatusServerError means a 5xx, an unclassified code or no response at all
	StatusServerError StatusKind = "ServerError"
)

// String returns the string representation of StatusKind
func (k StatusKind) String() string {
	return string(k)
}

// IsTerminal returns true if no further polling follows this status
func (k StatusKind) IsTerminal() bool {
	switch k {
	case StatusProcessing, StatusAcknowledged, StatusNotFoundYet:
		return false
	default:
		return true
	}
}

// IsFailure returns true if the status ends a session with an error.
// Unsupported is a valid terminal outcome and is not a failure.
func (k StatusKind) IsFailure() bool {
	return k == StatusClientError || k == StatusServerError
}

// JobStatus is a response classified into a StatusKind. It is derived fresh
// on every poll and never cached across polls.
type JobStatus struct {
	Kind          StatusKind
	Code          int     // HTTP status code, 0 if no response arrived
	Progress      float64 // 0.0 to 1.0, only meaningful if ProgressKnown
	ProgressKnown bool
	Message       string // server supplied text for ClientError
}
