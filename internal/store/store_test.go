package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/valpere/listran/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "listran.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetSegment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSegment(ctx, "First item", "en", "de", "Erster Punkt", "bullet", 0, "google"); err != nil {
		t.Fatalf("SaveSegment: %v", err)
	}

	got, found, err := s.GetSegment(ctx, "First item", "en", "de")
	if err != nil {
		t.Fatalf("GetSegment: %v", err)
	}
	if !found {
		t.Fatal("expected a hit")
	}
	if got != "Erster Punkt" {
		t.Errorf("got %q, want %q", got, "Erster Punkt")
	}
}

func TestGetSegment_Miss(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.GetSegment(context.Background(), "never saved", "en", "de")
	if err != nil {
		t.Fatalf("GetSegment: %v", err)
	}
	if found {
		t.Error("expected a miss")
	}
}

func TestGetSegment_LanguagePairIsPartOfKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSegment(ctx, "item", "en", "de", "Punkt", "numbered", 1, "google"); err != nil {
		t.Fatalf("SaveSegment: %v", err)
	}

	if _, found, _ := s.GetSegment(ctx, "item", "en", "fr"); found {
		t.Error("different target language must miss")
	}
}

func TestSaveSegment_NormalizesKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// NFD "é" (e + combining acute) must hit the NFC-saved row.
	if err := s.SaveSegment(ctx, "café", "fr", "en", "coffee", "none", 0, "google"); err != nil {
		t.Fatalf("SaveSegment: %v", err)
	}
	_, found, err := s.GetSegment(ctx, "cafe\u0301", "fr", "en")
	if err != nil {
		t.Fatalf("GetSegment: %v", err)
	}
	if !found {
		t.Error("NFD spelling should hit the NFC entry")
	}
}

func TestSaveSegment_UpsertsOnSameKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSegment(ctx, "item", "en", "de", "alt", "bullet", 0, "google"); err != nil {
		t.Fatalf("SaveSegment: %v", err)
	}
	if err := s.SaveSegment(ctx, "item", "en", "de", "neu", "bullet", 0, "ollama"); err != nil {
		t.Fatalf("SaveSegment (second): %v", err)
	}

	got, found, err := s.GetSegment(ctx, "item", "en", "de")
	if err != nil || !found {
		t.Fatalf("GetSegment: found=%v err=%v", found, err)
	}
	if got != "neu" {
		t.Errorf("got %q, want replacement %q", got, "neu")
	}

	entries, err := s.ListMemory(ctx)
	if err != nil {
		t.Fatalf("ListMemory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after upsert, got %d", len(entries))
	}
}

func TestUsageCountBumpsOnGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSegment(ctx, "item", "en", "de", "Punkt", "none", 0, "google"); err != nil {
		t.Fatalf("SaveSegment: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, _, err := s.GetSegment(ctx, "item", "en", "de"); err != nil {
			t.Fatalf("GetSegment: %v", err)
		}
	}

	entries, err := s.ListMemory(ctx)
	if err != nil {
		t.Fatalf("ListMemory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].UsageCount != 4 {
		t.Errorf("usage count = %d, want 4 (1 initial + 3 gets)", entries[0].UsageCount)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveSegment(ctx, "a", "en", "de", "x", "bullet", 0, "google")
	s.SaveSegment(ctx, "b", "en", "de", "y", "numbered", 1, "google")
	s.SaveSegment(ctx, "c", "en", "de", "z", "none", 0, "google")

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", st.TotalEntries)
	}
	if st.ListEntries != 2 {
		t.Errorf("ListEntries = %d, want 2", st.ListEntries)
	}
	if st.PlainEntries != 1 {
		t.Errorf("PlainEntries = %d, want 1", st.PlainEntries)
	}
	if st.TotalUsage != 3 {
		t.Errorf("TotalUsage = %d, want 3", st.TotalUsage)
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SaveSegment(ctx, "a", "en", "de", "x", "none", 0, "google")
	s.SaveSegment(ctx, "b", "en", "de", "y", "none", 0, "google")

	entries, err := s.ListMemory(ctx)
	if err != nil || len(entries) != 2 {
		t.Fatalf("ListMemory: %v (len %d)", err, len(entries))
	}

	if err := s.DeleteMemory(ctx, entries[0].ID); err != nil {
		t.Fatalf("DeleteMemory: %v", err)
	}
	if err := s.DeleteMemory(ctx, "no-such-id"); err == nil {
		t.Error("deleting a missing ID should error")
	}

	n, err := s.ClearMemory(ctx)
	if err != nil {
		t.Fatalf("ClearMemory: %v", err)
	}
	if n != 1 {
		t.Errorf("cleared %d entries, want 1", n)
	}
}
