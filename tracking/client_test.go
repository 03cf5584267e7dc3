package tracking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/echoforge/echoforge-go/session"
	"github.com/echoforge/echoforge-go/transport"
)

func newStatusServer(t *testing.T, handler http.HandlerFunc) *Client {
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

func TestClient_JobStatus(t *testing.T) {
	client := newStatusServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status/job-42" {
			t.Errorf("expected /status/job-42, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"job_id":        "job-42",
			"status":        "diarization",
			"progress":      45,
			"current_stage": "Segmenting speakers",
			"speakers": []map[string]any{{
				"speaker_id":     "SPEAKER_01",
				"total_duration": 12.5,
				"segments":       []map[string]float64{{"start": 0, "end": 4.2}},
			}},
		})
	})

	job, err := client.JobStatus(context.Background(), "job-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != StatusDiarization || job.Progress != 45 {
		t.Errorf("unexpected job: %+v", job)
	}
	if len(job.Speakers) != 1 || job.Speakers[0].SpeakerID != "SPEAKER_01" {
		t.Errorf("unexpected speakers: %+v", job.Speakers)
	}
	if len(job.Speakers[0].Segments) != 1 || job.Speakers[0].Segments[0].End != 4.2 {
		t.Errorf("unexpected segments: %+v", job.Speakers[0].Segments)
	}
}

func TestClient_JobStatus_UnknownStatusRejected(t *testing.T) {
	client := newStatusServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"job_id": "x", "status": "melting"})
	})

	if _, err := client.JobStatus(context.Background(), "x"); err == nil {
		t.Fatal("expected error for unrecognized status")
	}
}

func TestClient_JobStatus_NotFound(t *testing.T) {
	client := newStatusServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Job not found"})
	})

	_, err := client.JobStatus(context.Background(), "gone")
	if !transport.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
