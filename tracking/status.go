package tracking

import "fmt"

// Status is a job's position in the processing pipeline. The set is
// closed: an unrecognized value from the service is a decode error, not
// a silent fallback.
type Status string

const (
	// StatusQueued means the job is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusPreprocessing means audio normalization and VAD are running.
	StatusPreprocessing Status = "preprocessing"
	// StatusDiarization means speaker segmentation is running.
	StatusDiarization Status = "diarization"
	// StatusClassification means speaker classification is running.
	StatusClassification Status = "classification"
	// StatusCompleted means results are ready. Terminal.
	StatusCompleted Status = "completed"
	// StatusFailed means processing failed. Terminal.
	StatusFailed Status = "failed"
)

// ParseStatus validates a status value reported by the service.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	switch status {
	case StatusQueued, StatusPreprocessing, StatusDiarization,
		StatusClassification, StatusCompleted, StatusFailed:
		return status, nil
	}
	return "", fmt.Errorf("tracking: unknown job status %q", s)
}

// IsTerminal reports whether no further transition can occur.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed:
		return true
	case StatusQueued, StatusPreprocessing, StatusDiarization, StatusClassification:
		return false
	}
	return false
}

// Label returns a human-readable description of the status.
func (s Status) Label() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusPreprocessing:
		return "Preprocessing"
	case StatusDiarization:
		return "Diarization"
	case StatusClassification:
		return "Classification"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	}
	return string(s)
}
