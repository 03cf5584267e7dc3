package download

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/echoforge/echoforge-go/transport"
)

// OriginalSpeakerID is the reserved identifier the service uses to
// serve the original upload through the per-speaker endpoint.
const OriginalSpeakerID = "original"

// MetadataFilename is the name the metadata artifact is saved under.
const MetadataFilename = "metadata.json"

// Manager downloads result artifacts for completed jobs.
type Manager struct {
	http  *transport.Client
	saver Saver
	log   zerolog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for download logging.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager creates a download manager on top of the shared transport.
func NewManager(http *transport.Client, saver Saver, opts ...Option) *Manager {
	m := &Manager{http: http, saver: saver, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SpeakerAudio downloads one speaker's isolated audio and saves it as
// "{speakerID}.wav".
func (m *Manager) SpeakerAudio(ctx context.Context, jobID, speakerID string) error {
	resp, err := m.http.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/download/" + jobID + "/" + speakerID,
	})
	if err != nil {
		return fmt.Errorf("download: speaker %s: %w", speakerID, err)
	}

	filename := speakerID + ".wav"
	if err := m.saver.Save(filename, resp.Body); err != nil {
		return fmt.Errorf("download: save %s: %w", filename, err)
	}
	m.log.Info().Str("job_id", jobID).Str("file", filename).Msg("artifact saved")
	return nil
}

// OriginalAudio downloads the originally uploaded audio. The service
// serves it through the speaker endpoint under a reserved identifier.
func (m *Manager) OriginalAudio(ctx context.Context, jobID string) error {
	return m.SpeakerAudio(ctx, jobID, OriginalSpeakerID)
}

// Metadata downloads the job's JSON result document and saves it with
// stable two-space indentation as "metadata.json".
func (m *Manager) Metadata(ctx context.Context, jobID string) error {
	resp, err := m.http.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/download/" + jobID + "/" + MetadataFilename,
	})
	if err != nil {
		return fmt.Errorf("download: metadata: %w", err)
	}

	var doc any
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return fmt.Errorf("download: decode metadata: %w", err)
	}
	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("download: encode metadata: %w", err)
	}

	if err := m.saver.Save(MetadataFilename, pretty); err != nil {
		return fmt.Errorf("download: save %s: %w", MetadataFilename, err)
	}
	m.log.Info().Str("job_id", jobID).Str("file", MetadataFilename).Msg("artifact saved")
	return nil
}

// All downloads every artifact for the job: each speaker's audio, the
// original audio, and the metadata document. Downloads run
// independently; failures are joined and do not stop the rest.
func (m *Manager) All(ctx context.Context, jobID string, speakerIDs []string) error {
	var errs []error
	for _, id := range speakerIDs {
		if err := m.SpeakerAudio(ctx, jobID, id); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.OriginalAudio(ctx, jobID); err != nil {
		errs = append(errs, err)
	}
	if err := m.Metadata(ctx, jobID); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
