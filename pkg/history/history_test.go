package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/planline/planline/pkg/errors"
	"github.com/planline/planline/pkg/layout"
)

func sampleRun(created time.Time) *Run {
	run := NewRun()
	run.CreatedAt = created
	run.DictHash = "abc123"
	run.Roots = []string{"sat"}
	run.Sequence = []string{"sat", "cat", "mat"}
	run.Links = []layout.Link{
		{From: "sat", To: "cat", Type: "S"},
		{From: "sat", To: "mat", Type: "O"},
	}
	run.Planar = true
	run.Steps = 4
	return run
}

// storeTest exercises the Store contract against any backend.
func storeTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := sampleRun(base)
	second := sampleRun(base.Add(time.Minute))
	second.Crossings = 2
	second.Planar = false

	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DictHash != "abc123" || len(got.Links) != 2 || !got.Planar {
		t.Errorf("Get returned wrong run: %+v", got)
	}
	if got.Links[0].From != "sat" || got.Links[0].Type != "S" {
		t.Errorf("link not preserved: %+v", got.Links[0])
	}

	// Newest first.
	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != second.ID {
		t.Errorf("List[0] = %s, want newest %s", runs[0].ID, second.ID)
	}

	// Limit applies.
	runs, err = s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != second.ID {
		t.Errorf("List(1) = %v", runs)
	}

	// Re-saving replaces instead of duplicating.
	first.Crossings = 5
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runs, _ := s.List(ctx, 0); len(runs) != 2 {
		t.Errorf("re-save duplicated the run: %d records", len(runs))
	}
	if got, _ := s.Get(ctx, first.ID); got.Crossings != 5 {
		t.Errorf("re-save did not replace: crossings = %d", got.Crossings)
	}

	// Unknown ID yields the run-not-found code.
	_, err = s.Get(ctx, uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeRunNotFound {
		t.Errorf("code = %s, want %s", code, errors.ErrCodeRunNotFound)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeTest(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	storeTest(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	run := sampleRun(time.Now().UTC())
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.DictHash != run.DictHash {
		t.Errorf("run not durable: %+v", got)
	}
}

func TestRunLayout(t *testing.T) {
	run := sampleRun(time.Now().UTC())
	l := run.Layout()
	if len(l.Sequence) != 3 || len(l.Links) != 2 {
		t.Errorf("Layout = %+v", l)
	}
	if rep := l.Report(); !rep.Planar {
		t.Error("sample run layout should be planar")
	}
}
