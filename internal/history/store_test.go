package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRecordAndReadRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	run := Run{
		ID:                "run-1",
		StartedAt:         started,
		FinishedAt:        started.Add(42 * time.Second),
		InputDir:          "/photos",
		OutputDir:         "/photos/webp_output",
		Total:             3,
		Converted:         2,
		MetadataPreserved: 1,
	}
	files := []FileOutcome{
		{Source: "/photos/a.jpg", Output: "/photos/webp_output/a.webp", Converted: true, MetadataPreserved: true},
		{Source: "/photos/b.png", Output: "/photos/webp_output/b.webp", Converted: true},
		{Source: "/photos/c.heic", Failure: "encode", Detail: "cwebp exit status 1"},
	}

	if err := store.RecordRun(ctx, run, files); err != nil {
		t.Fatalf("record run: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != "run-1" || got.Total != 3 || got.Converted != 2 || got.MetadataPreserved != 1 {
		t.Fatalf("unexpected run row: %#v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("expected started_at %v, got %v", started, got.StartedAt)
	}

	outcomes, err := store.RunFiles(ctx, "run-1")
	if err != nil {
		t.Fatalf("run files: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected three outcomes, got %d", len(outcomes))
	}
	if !outcomes[0].MetadataPreserved || outcomes[1].MetadataPreserved {
		t.Fatalf("unexpected metadata flags: %#v", outcomes)
	}
	if outcomes[2].Failure != "encode" {
		t.Fatalf("expected encode failure recorded, got %#v", outcomes[2])
	}
}

func TestRecentRunsOrdering(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"older", "newer"} {
		run := Run{
			ID:         id,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}
		if err := store.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	runs, err := store.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "newer" {
		t.Fatalf("expected newest run first, got %#v", runs)
	}
}

func TestNilStoreRecordIsNoop(t *testing.T) {
	var store *Store
	if err := store.RecordRun(context.Background(), Run{ID: "x"}, nil); err != nil {
		t.Fatalf("nil store must be a no-op, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("nil store close: %v", err)
	}
}
