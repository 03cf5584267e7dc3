package tracking

// Job is the service's view of one processing job. The client never
// writes it; it is refreshed on every poll.
type Job struct {
	// JobID is the server-assigned job identifier.
	JobID string `json:"job_id"`
	// Status is the job's pipeline stage.
	Status Status `json:"status"`
	// Progress is the completion percentage (0-100), non-decreasing
	// while the job is non-terminal.
	Progress int `json:"progress"`
	// CurrentStage is a free-text label for the running stage.
	CurrentStage string `json:"current_stage"`
	// EstimatedTimeRemaining is in seconds; nil when unknown.
	EstimatedTimeRemaining *float64 `json:"estimated_time_remaining,omitempty"`
	// ErrorMessage is present only when Status is failed.
	ErrorMessage string `json:"error_message,omitempty"`

	// Result fields, populated once the job completes.

	// Duration is the length of the processed audio in seconds.
	Duration float64 `json:"duration,omitempty"`
	// DERScore is the diarization error rate as a percentage.
	DERScore float64 `json:"der_score,omitempty"`
	// ProcessingTime is the wall-clock processing time in seconds.
	ProcessingTime float64 `json:"processing_time,omitempty"`
	// Speakers holds the per-speaker results.
	Speakers []Speaker `json:"speakers,omitempty"`
}

// Speaker is the result for a single identified speaker.
type Speaker struct {
	// SpeakerID is the speaker label (e.g. "SPEAKER_01").
	SpeakerID string `json:"speaker_id"`
	// TotalDuration is the speaker's total talk time in seconds.
	TotalDuration float64 `json:"total_duration"`
	// Segments are the speaker's time ranges, ordered by start time.
	Segments []Segment `json:"segments"`
}

// Segment is a single attributed time range, start <= end, in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
