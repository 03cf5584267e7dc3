package tracking

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"queued", "preprocessing", "diarization", "classification", "completed", "failed"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q): unexpected error: %v", s, err)
		}
	}
	if _, err := ParseStatus("exploded"); err == nil {
		t.Error("expected error for unknown status")
	}
	if _, err := ParseStatus(""); err == nil {
		t.Error("expected error for empty status")
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusQueued:         false,
		StatusPreprocessing:  false,
		StatusDiarization:    false,
		StatusClassification: false,
		StatusCompleted:      true,
		StatusFailed:         true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}
