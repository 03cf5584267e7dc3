package training

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/echoforge/echoforge-go/session"
	"github.com/echoforge/echoforge-go/tracking"
	"github.com/echoforge/echoforge-go/transport"
	"github.com/echoforge/echoforge-go/upload"
)

func newTestTraining(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := session.New(session.NewMemoryStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client, err := transport.New(transport.Config{BaseURL: srv.URL}, sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewClient(client)
}

func TestUploadData(t *testing.T) {
	client := newTestTraining(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/train/upload" {
			t.Errorf("expected POST /train/upload, got %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("label"); got != "alice" {
			t.Errorf("expected label=alice, got %q", got)
		}
		w.WriteHeader(200)
	})

	file := &upload.File{
		Name:        "sample.wav",
		ContentType: "audio/wav",
		Size:        4,
		Reader:      strings.NewReader("RIFF"),
	}
	if err := client.UploadData(context.Background(), file, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUploadData_RequiresLabel(t *testing.T) {
	client := newTestTraining(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for missing label")
	})

	file := &upload.File{
		Name:        "sample.wav",
		ContentType: "audio/wav",
		Size:        4,
		Reader:      strings.NewReader("RIFF"),
	}
	if err := client.UploadData(context.Background(), file, ""); err == nil {
		t.Fatal("expected error for missing label")
	}
}

func TestStart(t *testing.T) {
	client := newTestTraining(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/train/start" {
			t.Errorf("expected /train/start, got %s", r.URL.Path)
		}
		var req StartRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Label != "alice" || req.Epochs != 5 {
			t.Errorf("unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"job_id": "train-1"})
	})

	jobID, err := client.Start(context.Background(), StartRequest{Label: "alice", Epochs: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobID != "train-1" {
		t.Errorf("expected train-1, got %q", jobID)
	}
}

func TestJobStatus_TracksLikeDiarizationJobs(t *testing.T) {
	client := newTestTraining(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/train/status/train-1" {
			t.Errorf("expected /train/status/train-1, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"job_id": "train-1", "status": "completed", "progress": 100,
		})
	})

	// The training client satisfies tracking.Fetcher.
	var fetcher tracking.Fetcher = client
	job, err := fetcher.JobStatus(context.Background(), "train-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != tracking.StatusCompleted {
		t.Errorf("unexpected status %s", job.Status)
	}
}
