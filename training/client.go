package training

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/echoforge/echoforge-go/tracking"
	"github.com/echoforge/echoforge-go/transport"
	"github.com/echoforge/echoforge-go/upload"
)

// StartRequest configures a training run over previously uploaded data.
type StartRequest struct {
	// Label selects the uploaded dataset to train on.
	Label string `json:"label"`
	// Epochs is the number of training epochs; 0 lets the service decide.
	Epochs int `json:"epochs,omitempty"`
}

// Client performs training operations against the service.
type Client struct {
	http *transport.Client
	log  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for training logging.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a training client on top of the shared transport.
func NewClient(http *transport.Client, opts ...Option) *Client {
	c := &Client{http: http, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UploadData submits a labeled audio sample as training data. The file
// is validated with the same rules as diarization uploads.
func (c *Client) UploadData(ctx context.Context, file *upload.File, label string) error {
	if err := file.Validate(); err != nil {
		return err
	}
	if label == "" {
		return fmt.Errorf("training: label is required")
	}

	body := &transport.MultipartBody{
		Fields: map[string]string{"label": label},
		Files: []transport.FileField{{
			FieldName:   "audio_file",
			FileName:    file.Name,
			ContentType: file.ContentType,
			Reader:      file.Reader,
		}},
	}

	_, err := c.http.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/train/upload",
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("training: upload data: %w", err)
	}
	c.log.Info().Str("label", label).Str("file", file.Name).Msg("training data uploaded")
	return nil
}

// Start begins a training run and returns the training job identifier.
func (c *Client) Start(ctx context.Context, req StartRequest) (string, error) {
	if req.Label == "" {
		return "", fmt.Errorf("training: label is required")
	}

	resp, err := c.http.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/train/start",
		Body:   req,
	})
	if err != nil {
		return "", fmt.Errorf("training: start: %w", err)
	}

	var result struct {
		JobID string `json:"job_id"`
	}
	if err := resp.JSON(&result); err != nil {
		return "", err
	}
	if result.JobID == "" {
		return "", fmt.Errorf("training: service returned no job id")
	}

	c.log.Info().Str("job_id", result.JobID).Str("label", req.Label).Msg("training started")
	return result.JobID, nil
}

// JobStatus fetches a training job's state. Satisfies tracking.Fetcher,
// so a tracking.Tracker can follow training jobs too.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*tracking.Job, error) {
	resp, err := c.http.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/train/status/" + jobID,
	})
	if err != nil {
		return nil, err
	}

	var job tracking.Job
	if err := resp.JSON(&job); err != nil {
		return nil, err
	}
	if _, err := tracking.ParseStatus(string(job.Status)); err != nil {
		return nil, err
	}
	return &job, nil
}
