package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestOpen_EmptyDSN(t *testing.T) {
	if _, _, err := Open(context.Background(), "  "); err == nil {
		t.Fatalf("expected an error for empty DSN")
	}
}

/*
TestRecordAndRecent round-trips two runs through an on-disk store and checks
newest-first ordering plus field fidelity (schema errors survive the join/split).
*/
func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "statcheck.db")

	store, closeFn, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	first := Run{
		StartedAt:   time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Duration:    1500 * time.Millisecond,
		PassCount:   4,
		FailCount:   1,
		SchemaValid: false,
		SchemaErrs:  []string{"Column 'age' should be integer type", "Column 'playerType' is missing"},
		Fingerprint: "00000000deadbeef",
	}
	if _, err := store.Record(ctx, first); err != nil {
		t.Fatalf("Record: %v", err)
	}
	second := Run{
		StartedAt:   time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		PassCount:   5,
		SchemaValid: true,
		Fingerprint: "00000000deadbeef",
	}
	if _, err := store.Record(ctx, second); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].PassCount != 5 || runs[1].PassCount != 4 {
		t.Fatalf("runs not newest-first: %+v", runs)
	}
	got := runs[1]
	if got.FailCount != 1 || got.SchemaValid || len(got.SchemaErrs) != 2 {
		t.Fatalf("first run did not round-trip: %+v", got)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Fatalf("duration = %v", got.Duration)
	}
	if !got.StartedAt.Equal(first.StartedAt) {
		t.Fatalf("started_at = %v, want %v", got.StartedAt, first.StartedAt)
	}
}
