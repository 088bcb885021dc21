package history

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"vcscout/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), testLogger())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	runs := []domain.ResearchRun{
		{FirmName: "Sequoia Capital", Tool: "research_vc_firm", QueryCount: 3, ResultCount: 7, URLCount: 5},
		{FirmName: "NEA", Tool: "get_vc_urls", QueryCount: 3, ResultCount: 2, URLCount: 2, Degraded: true},
	}
	for _, run := range runs {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(got))
	}
	// Most recent first.
	if got[0].FirmName != "NEA" {
		t.Fatalf("expected NEA first, got %q", got[0].FirmName)
	}
	if !got[0].Degraded {
		t.Fatal("expected degraded flag to round-trip")
	}
	if got[1].ResultCount != 7 {
		t.Fatalf("expected resultCount 7, got %d", got[1].ResultCount)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}
}

func TestRecent_Limit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, domain.ResearchRun{FirmName: "GV", Tool: "get_vc_urls"}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(got))
	}
}

func TestRecent_Empty(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no runs, got %d", len(got))
	}
}

func TestNopStore(t *testing.T) {
	var store domain.ResearchStore = NopStore{}
	if err := store.Record(context.Background(), domain.ResearchRun{}); err != nil {
		t.Fatalf("nop record: %v", err)
	}
	runs, err := store.Recent(context.Background(), 5)
	if err != nil || runs != nil {
		t.Fatalf("nop recent: %v %v", runs, err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nop close: %v", err)
	}
}
