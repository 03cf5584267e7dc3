package upload

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/echoforge/echoforge-go/transport"
)

// Options are the user-selected job options submitted with the file.
type Options struct {
	// NumSpeakers is the expected number of speakers, 1-5.
	NumSpeakers int `json:"num_speakers" validate:"min=1,max=5"`
	// VADEnabled toggles voice activity detection preprocessing.
	VADEnabled bool `json:"vad_enabled"`
	// HighAccuracy trades processing time for accuracy.
	HighAccuracy bool `json:"high_accuracy"`
}

// DefaultOptions returns the default job options.
func DefaultOptions() Options {
	return Options{NumSpeakers: 2, VADEnabled: true}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// optionsValidator returns the shared struct validator.
func optionsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the options against their allowed ranges.
func (o Options) Validate() error {
	if err := optionsValidator().Struct(o); err != nil {
		return fmt.Errorf("upload: num_speakers must be between 1 and 5")
	}
	return nil
}

// Uploader submits validated audio files to the diarization service.
type Uploader struct {
	http *transport.Client
	log  zerolog.Logger
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithLogger sets the logger used for submission logging.
func WithLogger(log zerolog.Logger) Option {
	return func(u *Uploader) { u.log = log }
}

// NewUploader creates an uploader on top of the shared transport.
func NewUploader(http *transport.Client, opts ...Option) *Uploader {
	u := &Uploader{http: http, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Submit validates the file and options, then issues a single multipart
// submission. On success it returns the server-assigned job identifier.
// Validation failures never reach the network.
func (u *Uploader) Submit(ctx context.Context, file *File, opts Options) (string, error) {
	if err := file.Validate(); err != nil {
		return "", err
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	body := &transport.MultipartBody{
		Fields: map[string]string{
			"num_speakers":  strconv.Itoa(opts.NumSpeakers),
			"vad_enabled":   strconv.FormatBool(opts.VADEnabled),
			"high_accuracy": strconv.FormatBool(opts.HighAccuracy),
		},
		Files: []transport.FileField{{
			FieldName:   "audio_file",
			FileName:    file.Name,
			ContentType: file.ContentType,
			Reader:      file.Reader,
		}},
	}

	resp, err := u.http.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/upload",
		Body:   body,
	})
	if err != nil {
		if msg := transport.APIMessage(err); msg != "" {
			return "", fmt.Errorf("upload: %s: %w", msg, err)
		}
		return "", fmt.Errorf("upload: submission failed: %w", err)
	}

	var result struct {
		JobID string `json:"job_id"`
	}
	if err := resp.JSON(&result); err != nil {
		return "", err
	}
	if result.JobID == "" {
		return "", fmt.Errorf("upload: service returned no job id")
	}

	u.log.Info().
		Str("job_id", result.JobID).
		Str("file", file.Name).
		Int("num_speakers", opts.NumSpeakers).
		Msg("job submitted")
	return result.JobID, nil
}
