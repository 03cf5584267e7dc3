package tracking

import (
	"context"
	"net/http"

	"github.com/echoforge/echoforge-go/transport"
)

// Fetcher retrieves the current state of a job. Implemented by *Client;
// the Tracker accepts the interface so tests can script status sequences.
type Fetcher interface {
	JobStatus(ctx context.Context, jobID string) (*Job, error)
}

// Client reads job status from the service.
type Client struct {
	http *transport.Client
}

// NewClient creates a status client on top of the shared transport.
func NewClient(http *transport.Client) *Client {
	return &Client{http: http}
}

// JobStatus fetches the job's current state. An unrecognized status
// value in the response is an error.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*Job, error) {
	resp, err := c.http.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/status/" + jobID,
	})
	if err != nil {
		return nil, err
	}

	var job Job
	if err := resp.JSON(&job); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(job.Status)); err != nil {
		return nil, err
	}
	return &job, nil
}
