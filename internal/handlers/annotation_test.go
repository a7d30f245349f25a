package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/annotations"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

const testSessionID = "sess-1"

func newAnnotationHandler(t *testing.T) (*AnnotationHandler, *annotations.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mgr := annotations.NewManager(logger.NewNop(), annotations.NewMemoryPersistence())
	store, err := mgr.ForSession(context.Background(), testSessionID)
	if err != nil {
		t.Fatalf("ForSession: %v", err)
	}
	return NewAnnotationHandler(mgr, logger.NewNop()), store
}

func postRedo(t *testing.T, ah *AnnotationHandler, body any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/sessions/"+testSessionID+"/annotations/redo", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: testSessionID}}
	ah.Redo(c)
	if w.Code != http.StatusOK {
		t.Fatalf("redo returned %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp
}

func testStroke() []types.Stroke {
	return []types.Stroke{{
		Samples: []types.StrokeSample{
			{X: 10, Y: 10, Pressure: 0.5},
			{X: 40, Y: 30, Pressure: 0.5},
		},
		Color: "#000000",
		Size:  4,
	}}
}

func TestAnnotationHandler_RedoFollowsLastUndo(t *testing.T) {
	ah, store := newAnnotationHandler(t)
	ctx := context.Background()

	if err := store.SetPageStrokes(ctx, "ex-a", 3, testStroke()); err != nil {
		t.Fatalf("SetPageStrokes: %v", err)
	}
	if _, err := store.UndoLastStroke(ctx, "ex-a", 3); err != nil {
		t.Fatalf("UndoLastStroke: %v", err)
	}

	resp := postRedo(t, ah, gin.H{"exercise": "ex-a"})
	if resp["redone"] != true {
		t.Fatalf("expected redo via the last-undone pointer, got %v", resp)
	}
	if resp["page"] != float64(3) {
		t.Fatalf("expected page 3 redone, got %v", resp["page"])
	}
}

// When the last-undone pointer is gone (a new stroke reset it), redo
// without an explicit page still finds the undone page by scanning the
// exercise's known pages.
func TestAnnotationHandler_RedoScansWhenPointerIsStale(t *testing.T) {
	ah, store := newAnnotationHandler(t)
	ctx := context.Background()

	// Undo on page 2 leaves a redo stack there; drawing on page 5
	// afterwards resets the pointer without touching that stack.
	if err := store.SetPageStrokes(ctx, "ex-a", 2, testStroke()); err != nil {
		t.Fatalf("SetPageStrokes: %v", err)
	}
	if _, err := store.UndoLastStroke(ctx, "ex-a", 2); err != nil {
		t.Fatalf("UndoLastStroke: %v", err)
	}
	if err := store.SetPageStrokes(ctx, "ex-a", 5, testStroke()); err != nil {
		t.Fatalf("SetPageStrokes: %v", err)
	}
	if store.LastUndonePage("ex-a") != -1 {
		t.Fatalf("expected the pointer reset by the new stroke")
	}

	resp := postRedo(t, ah, gin.H{"exercise": "ex-a"})
	if resp["redone"] != true || resp["page"] != float64(2) {
		t.Fatalf("expected the scan to redo page 2, got %v", resp)
	}

	// With every redo stack drained, redo reports redone=false.
	resp = postRedo(t, ah, gin.H{"exercise": "ex-a"})
	if resp["redone"] != false {
		t.Fatalf("expected nothing left to redo, got %v", resp)
	}
}

func TestAnnotationHandler_RedoHonorsExplicitPage(t *testing.T) {
	ah, store := newAnnotationHandler(t)
	ctx := context.Background()

	for _, page := range []int{1, 4} {
		if err := store.SetPageStrokes(ctx, "ex-a", page, testStroke()); err != nil {
			t.Fatalf("SetPageStrokes: %v", err)
		}
		if _, err := store.UndoLastStroke(ctx, "ex-a", page); err != nil {
			t.Fatalf("UndoLastStroke: %v", err)
		}
	}

	// An explicit page wins over the pointer, and an empty redo stack on
	// that page is not papered over by scanning another.
	resp := postRedo(t, ah, gin.H{"exercise": "ex-a", "page": 1})
	if resp["redone"] != true || resp["page"] != float64(1) {
		t.Fatalf("expected page 1 redone, got %v", resp)
	}
	resp = postRedo(t, ah, gin.H{"exercise": "ex-a", "page": 1})
	if resp["redone"] != false {
		t.Fatalf("expected redone=false for a drained explicit page, got %v", resp)
	}
}
