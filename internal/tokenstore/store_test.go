package tokenstore

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisStore(redis.Addr(), "", "token")

	if _, ok, err := s.Load(); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}
	if err := s.Save("abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, ok, err := s.Load()
	if err != nil || !ok || token != "abc" {
		t.Fatalf("load after save: token=%q ok=%v err=%v", token, ok, err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Load(); ok {
		t.Fatalf("expected empty store after clear")
	}
	// Clearing an already-empty store is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "token")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if _, ok, err := s.Load(); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}
	if err := s.Save("abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, ok, err := s.Load()
	if err != nil || !ok || token != "abc" {
		t.Fatalf("load after save: token=%q ok=%v err=%v", token, ok, err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Load(); ok {
		t.Fatalf("expected empty store after clear")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore("   "); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	if _, ok, _ := s.Load(); ok {
		t.Fatalf("expected empty store")
	}
	if err := s.Save("abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if token, ok, _ := s.Load(); !ok || token != "abc" {
		t.Fatalf("load after save: %q ok=%v", token, ok)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Load(); ok {
		t.Fatalf("expected empty store after clear")
	}
}
