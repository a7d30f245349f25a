package annotations

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

func testStroke(x float64) types.Stroke {
	return types.Stroke{
		Samples: []types.StrokeSample{{X: x, Y: 10, Pressure: 0.5}, {X: x + 20, Y: 12, Pressure: 0.5}},
		Color:   "#000000",
		Size:    4,
	}
}

func newTestStore(t *testing.T, persist Persistence) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), logger.NewNop(), persist, "session-1")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStore_SetAndGetAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryPersistence())

	strokes := []types.Stroke{testStroke(0)}
	if err := s.SetPageStrokes(ctx, "ex1", 0, strokes); err != nil {
		t.Fatalf("SetPageStrokes: %v", err)
	}

	// Mutating the caller's slice after the fact must not leak in.
	strokes[0].Samples[0].X = 999

	got := s.GetAnnotations("ex1")
	if got[0][0].Samples[0].X != 0 {
		t.Fatalf("store shares memory with the caller's stroke slice")
	}

	// Mutating the returned copy must not leak back.
	got[0][0].Samples[0].X = 555
	again := s.GetAnnotations("ex1")
	if again[0][0].Samples[0].X != 0 {
		t.Fatalf("store shares memory with a returned snapshot")
	}
}

func TestStore_UndoRestoresPreviousState(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryPersistence())

	first := []types.Stroke{testStroke(0)}
	second := []types.Stroke{testStroke(0), testStroke(40)}
	s.SetPageStrokes(ctx, "ex1", 0, first)
	s.SetPageStrokes(ctx, "ex1", 0, second)

	restored, err := s.UndoLastStroke(ctx, "ex1", 0)
	if err != nil {
		t.Fatalf("UndoLastStroke: %v", err)
	}
	if diff := cmp.Diff(first, restored); diff != "" {
		t.Fatalf("undo mismatch (-want +got):\n%s", diff)
	}

	restored, err = s.UndoLastStroke(ctx, "ex1", 0)
	if err != nil {
		t.Fatalf("UndoLastStroke: %v", err)
	}
	if len(restored) != 0 {
		t.Fatalf("expected empty page after undoing everything, got %d strokes", len(restored))
	}
}

func TestStore_UndoOnEmptyStackIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryPersistence())

	s.SetPageStrokes(ctx, "ex1", 0, []types.Stroke{testStroke(0)})
	s.UndoLastStroke(ctx, "ex1", 0)

	// Stack exhausted; further undos leave the page unchanged.
	got, err := s.UndoLastStroke(ctx, "ex1", 0)
	if err != nil {
		t.Fatalf("UndoLastStroke: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected unchanged empty page, got %d strokes", len(got))
	}
}

func TestStore_RedoReappliesUndoneState(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryPersistence())

	strokes := []types.Stroke{testStroke(0)}
	s.SetPageStrokes(ctx, "ex1", 2, strokes)
	s.UndoLastStroke(ctx, "ex1", 2)

	if got := s.LastUndonePage("ex1"); got != 2 {
		t.Fatalf("LastUndonePage = %d, want 2", got)
	}

	applied, ok, err := s.RedoLastStroke(ctx, "ex1", 2)
	if err != nil {
		t.Fatalf("RedoLastStroke: %v", err)
	}
	if !ok {
		t.Fatalf("expected a redo to apply")
	}
	if diff := cmp.Diff(strokes, applied); diff != "" {
		t.Fatalf("redo mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_RedoEmptyStackReportsNotOK(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryPersistence())

	if _, ok, err := s.RedoLastStroke(ctx, "ex1", 0); ok || err != nil {
		t.Fatalf("expected ok=false on unknown exercise, got ok=%v err=%v", ok, err)
	}

	s.SetPageStrokes(ctx, "ex1", 0, []types.Stroke{testStroke(0)})
	if _, ok, _ := s.RedoLastStroke(ctx, "ex1", 0); ok {
		t.Fatalf("expected nothing to redo without a preceding undo")
	}
}

func TestStore_NewCommitClearsRedo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryPersistence())

	s.SetPageStrokes(ctx, "ex1", 0, []types.Stroke{testStroke(0)})
	s.UndoLastStroke(ctx, "ex1", 0)
	s.SetPageStrokes(ctx, "ex1", 0, []types.Stroke{testStroke(80)})

	if _, ok, _ := s.RedoLastStroke(ctx, "ex1", 0); ok {
		t.Fatalf("expected redo stack cleared by the new commit")
	}
	if got := s.LastUndonePage("ex1"); got != -1 {
		t.Fatalf("LastUndonePage = %d, want -1 after a new commit", got)
	}
}

func TestStore_HistoryIsPerPage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryPersistence())

	s.SetPageStrokes(ctx, "ex1", 0, []types.Stroke{testStroke(0)})
	s.SetPageStrokes(ctx, "ex1", 1, []types.Stroke{testStroke(40)})

	// Undoing page 1 must not touch page 0.
	s.UndoLastStroke(ctx, "ex1", 1)
	got := s.GetAnnotations("ex1")
	if len(got[0]) != 1 {
		t.Fatalf("page 0 lost its stroke to an undo on page 1")
	}
	if len(got[1]) != 0 {
		t.Fatalf("page 1 should be empty after its undo, has %d strokes", len(got[1]))
	}
}

func TestStore_PersistedStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	persist := NewMemoryPersistence()
	s := newTestStore(t, persist)
	s.SetPageStrokes(ctx, "ex1", 0, []types.Stroke{testStroke(0)})

	reloaded := newTestStore(t, persist)
	got := reloaded.GetAnnotations("ex1")
	if len(got[0]) != 1 {
		t.Fatalf("expected annotations to survive a reload, got %d strokes", len(got[0]))
	}

	// History does not survive: it is deliberately in-memory only.
	if _, ok, _ := reloaded.RedoLastStroke(ctx, "ex1", 0); ok {
		t.Fatalf("expected no redo history after reload")
	}
	restored, err := reloaded.UndoLastStroke(ctx, "ex1", 0)
	if err != nil {
		t.Fatalf("UndoLastStroke: %v", err)
	}
	if len(restored) != 1 {
		t.Fatalf("expected undo after reload to be a no-op, got %d strokes", len(restored))
	}
}

func TestStore_CorruptSnapshotIsDropped(t *testing.T) {
	ctx := context.Background()
	persist := NewMemoryPersistence()
	if err := persist.Save(ctx, StorageKey("session-1"), []byte("{not json")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s := newTestStore(t, persist)
	if s.HasAnyAnnotations() {
		t.Fatalf("expected empty store after discarding corrupt snapshot")
	}
}

func TestStore_ClearStorageWipesEverything(t *testing.T) {
	ctx := context.Background()
	persist := NewMemoryPersistence()
	s := newTestStore(t, persist)
	s.SetPageStrokes(ctx, "ex1", 0, []types.Stroke{testStroke(0)})

	if err := s.ClearStorage(ctx); err != nil {
		t.Fatalf("ClearStorage: %v", err)
	}
	if s.HasAnyAnnotations() {
		t.Fatalf("expected no annotations after wipe")
	}
	reloaded := newTestStore(t, persist)
	if reloaded.HasAnyAnnotations() {
		t.Fatalf("expected persisted state wiped too")
	}
}

func TestStore_ClearAnnotationsIsPerExercise(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemoryPersistence())
	s.SetPageStrokes(ctx, "ex1", 0, []types.Stroke{testStroke(0)})
	s.SetPageStrokes(ctx, "ex2", 0, []types.Stroke{testStroke(40)})

	if err := s.ClearAnnotations(ctx, "ex1"); err != nil {
		t.Fatalf("ClearAnnotations: %v", err)
	}
	if s.HasAnnotations("ex1") {
		t.Fatalf("ex1 should be empty")
	}
	if !s.HasAnnotations("ex2") {
		t.Fatalf("ex2 should be untouched")
	}
}
