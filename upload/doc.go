// Package upload validates an audio file and submits it to the
// diarization service.
//
// Validation is fully local: unsupported container types and oversized
// files are rejected before any network request is issued. Submission
// is a single attempt with no retry; the caller decides what to do with
// a failure.
package upload
