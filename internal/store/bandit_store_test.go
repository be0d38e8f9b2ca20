package store

import (
	"context"
	"testing"

	"github.com/lokahilabs/rlvr-gym/internal/bandit"
)

func TestFileBanditStoreRoundTrips(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileBanditStore(dir)
	if err != nil {
		t.Fatalf("NewFileBanditStore: %v", err)
	}

	b := bandit.New([]string{"a", "b"}, 0.2, 0.5)
	b.Pick()
	if err := b.Update("a", 0.8); err != nil {
		t.Fatalf("Update: %v", err)
	}

	ctx := context.Background()
	if err := s.Save(ctx, "haw", b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load(ctx, "haw")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected loaded bandit, got nil")
	}
	if loaded.Values["a"] != b.Values["a"] {
		t.Errorf("expected value %v, got %v", b.Values["a"], loaded.Values["a"])
	}
}

func TestFileBanditStoreMissingKeyReturnsNilNotError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileBanditStore(dir)
	if err != nil {
		t.Fatalf("NewFileBanditStore: %v", err)
	}

	loaded, err := s.Load(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("expected no error for missing key, got %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil bandit for missing key, got %+v", loaded)
	}
}
