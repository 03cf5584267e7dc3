// Package tracking follows a diarization job through the service's
// processing pipeline.
//
// A job moves forward through queued, preprocessing, diarization and
// classification before reaching one of the terminal states completed
// or failed. The Tracker polls the status endpoint on a fixed interval,
// reports each observation through hooks, and stops exactly when a
// terminal status is observed or the caller's context is cancelled.
//
// Each poll carries a monotonically increasing sequence number; a
// response that arrives after a newer poll has been issued is discarded,
// so a slow response can never overwrite a fresher observation.
package tracking
