// Package training submits labeled audio for model training and tracks
// training jobs. Training jobs share the job lifecycle of diarization
// jobs, so tracking.Tracker works on them unchanged through this
// package's status client.
package training
