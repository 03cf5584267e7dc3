package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/echoforge/echoforge-go/session"
	"github.com/echoforge/echoforge-go/transport"
)

// memorySaver captures saves for inspection.
type memorySaver struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newMemorySaver() *memorySaver {
	return &memorySaver{saved: make(map[string][]byte)}
}

func (s *memorySaver) Save(filename string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[filename] = data
	return nil
}

func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *memorySaver) {
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
	saver := newMemorySaver()
	return NewManager(client, saver), saver
}

func TestManager_SpeakerAudio(t *testing.T) {
	manager, saver := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/job-1/SPEAKER_01" {
			t.Errorf("expected /download/job-1/SPEAKER_01, got %s", r.URL.Path)
		}
		w.Write([]byte("RIFF-audio-bytes"))
	})

	if err := manager.SpeakerAudio(context.Background(), "job-1", "SPEAKER_01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(saver.saved["SPEAKER_01.wav"]); got != "RIFF-audio-bytes" {
		t.Errorf("expected audio saved as SPEAKER_01.wav, got %q", got)
	}
}

func TestManager_OriginalAudio(t *testing.T) {
	manager, saver := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/job-1/original" {
			t.Errorf("expected reserved original id, got %s", r.URL.Path)
		}
		w.Write([]byte("original-bytes"))
	})

	if err := manager.OriginalAudio(context.Background(), "job-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := saver.saved["original.wav"]; !ok {
		t.Error("expected save as original.wav")
	}
}

func TestManager_Metadata_StableIndentation(t *testing.T) {
	manager, saver := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/job-1/metadata.json" {
			t.Errorf("expected metadata path, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"job_id":"job-1","speakers":[{"speaker_id":"SPEAKER_01"}]}`))
	})

	if err := manager.Metadata(context.Background(), "job-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"job_id\": \"job-1\",\n  \"speakers\": [\n    {\n      \"speaker_id\": \"SPEAKER_01\"\n    }\n  ]\n}"
	if got := string(saver.saved["metadata.json"]); got != want {
		t.Errorf("unexpected metadata formatting:\n%s", got)
	}
}

func TestManager_All_FailureDoesNotStopOthers(t *testing.T) {
	manager, saver := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/download/job-1/SPEAKER_01" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Path == "/download/job-1/metadata.json" {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte("bytes"))
	})

	err := manager.All(context.Background(), "job-1", []string{"SPEAKER_01", "SPEAKER_02"})
	if err == nil {
		t.Fatal("expected joined error for the failed artifact")
	}
	if _, ok := saver.saved["SPEAKER_02.wav"]; !ok {
		t.Error("expected SPEAKER_02 to be saved despite SPEAKER_01 failing")
	}
	if _, ok := saver.saved["original.wav"]; !ok {
		t.Error("expected original audio to be saved despite failure")
	}
	if _, ok := saver.saved["metadata.json"]; !ok {
		t.Error("expected metadata to be saved despite failure")
	}
}

func TestDirSaver(t *testing.T) {
	dir := t.TempDir()
	saver := DirSaver{Dir: dir + "/artifacts"}
	if err := saver.Save("metadata.json", []byte("{}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
