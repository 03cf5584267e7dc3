package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "echoforge", "token"))

	if token, err := store.Load(); err != nil || token != "" {
		t.Fatalf("expected empty load from fresh store, got %q, %v", token, err)
	}
	if err := store.Save("abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token, _ := store.Load(); token != "abc123" {
		t.Errorf("expected abc123, got %q", token)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token, _ := store.Load(); token != "" {
		t.Errorf("expected empty after clear, got %q", token)
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestSession_LoadsPersistedToken(t *testing.T) {
	store := NewMemoryStore()
	store.Save("persisted")

	sess, err := New(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token() != "persisted" {
		t.Errorf("expected persisted token, got %q", sess.Token())
	}
	if !sess.Authenticated() {
		t.Error("expected Authenticated")
	}
}

func TestSession_SetAndClear(t *testing.T) {
	store := NewMemoryStore()
	sess, err := New(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.Authenticated() {
		t.Error("fresh session must not be authenticated")
	}
	if err := sess.SetToken("tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored, _ := store.Load(); stored != "tok" {
		t.Errorf("expected token persisted to store, got %q", stored)
	}
	if err := sess.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token() != "" {
		t.Error("expected token cleared")
	}
	if stored, _ := store.Load(); stored != "" {
		t.Errorf("expected store cleared, got %q", stored)
	}
}

func TestSession_ExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess, _ := New(NewMemoryStore())
	sess.SetToken(signed)

	got, ok := sess.ExpiresAt()
	if !ok {
		t.Fatal("expected expiry to be readable")
	}
	if !got.Equal(exp) {
		t.Errorf("expected %v, got %v", exp, got)
	}
}

func TestSession_ExpiresAt_NotAJWT(t *testing.T) {
	sess, _ := New(NewMemoryStore())
	sess.SetToken("opaque-token")
	if _, ok := sess.ExpiresAt(); ok {
		t.Error("expected no expiry for an opaque token")
	}
}
