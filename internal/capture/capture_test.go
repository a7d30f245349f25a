package capture

import (
	"testing"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

func testStrokes() []types.Stroke {
	return []types.Stroke{
		{Samples: []types.StrokeSample{{X: 0, Y: 0}, {X: 100, Y: 0}}, Color: "#000000", Size: 4},
		{Samples: []types.StrokeSample{{X: 0, Y: 50}, {X: 100, Y: 50}}, Color: "#ff0000", Size: 4},
	}
}

func TestMachine_NoModePassesEventsThrough(t *testing.T) {
	m := NewMachine("#000000", 4)
	if m.Intercepts() {
		t.Fatalf("expected no interception with no active tool")
	}
	if res := m.PointerDown(10, 10, 0.5, nil); res.Action != ActionNone {
		t.Fatalf("expected no action, got %d", res.Action)
	}
	if res := m.PointerUp(); res.Action != ActionNone {
		t.Fatalf("expected no action on up, got %d", res.Action)
	}
}

func TestMachine_PenCommitsStroke(t *testing.T) {
	m := NewMachine("#2244ff", 6)
	m.SetMode(ModePen)
	if !m.Intercepts() {
		t.Fatalf("expected pen mode to intercept events")
	}

	m.PointerDown(10, 10, 0.4, nil)
	if m.State() != StateCapturing {
		t.Fatalf("expected capturing state, got %d", m.State())
	}
	m.PointerMove(20, 12, 0.5, nil)
	m.PointerMove(30, 15, 0.6, nil)
	if len(m.LiveSamples()) != 3 {
		t.Fatalf("expected 3 live samples, got %d", len(m.LiveSamples()))
	}

	res := m.PointerUp()
	if res.Action != ActionCommit {
		t.Fatalf("expected a committed stroke, got action %d", res.Action)
	}
	if len(res.Stroke.Samples) != 3 {
		t.Fatalf("expected 3 samples in committed stroke, got %d", len(res.Stroke.Samples))
	}
	if res.Stroke.Color != "#2244ff" || res.Stroke.Size != 6 {
		t.Fatalf("committed stroke lost pen settings: %q / %f", res.Stroke.Color, res.Stroke.Size)
	}
	if m.State() != StateIdle || m.LiveSamples() != nil {
		t.Fatalf("machine did not reset after commit")
	}
}

func TestMachine_SingleTapIsDiscarded(t *testing.T) {
	m := NewMachine("#000000", 4)
	m.SetMode(ModePen)
	m.PointerDown(10, 10, 0.5, nil)
	res := m.PointerUp()
	if res.Action != ActionNone {
		t.Fatalf("expected single tap to be discarded, got action %d", res.Action)
	}
}

func TestMachine_PointerLeaveFinalizesPenStroke(t *testing.T) {
	m := NewMachine("#000000", 4)
	m.SetMode(ModePen)
	m.PointerDown(10, 10, 0.5, nil)
	m.PointerMove(40, 10, 0.5, nil)
	res := m.PointerLeave()
	if res.Action != ActionCommit {
		t.Fatalf("expected leave to commit the in-flight stroke, got action %d", res.Action)
	}
}

func TestMachine_EraserHoverAndErase(t *testing.T) {
	m := NewMachine("#000000", 4)
	m.SetMode(ModeEraser)
	strokes := testStrokes()

	m.PointerMove(50, 51, 0, strokes)
	if m.Hovered() != 1 {
		t.Fatalf("expected hover over stroke 1, got %d", m.Hovered())
	}
	if m.State() != StateHovering {
		t.Fatalf("expected hovering state, got %d", m.State())
	}

	res := m.PointerDown(50, 51, 0, strokes)
	if res.Action != ActionErase || res.Index != 1 {
		t.Fatalf("expected erase of stroke 1, got action %d index %d", res.Action, res.Index)
	}

	m.PointerMove(50, 200, 0, strokes)
	if m.Hovered() != -1 || m.State() != StateIdle {
		t.Fatalf("expected hover cleared away from ink")
	}
}

func TestMachine_EraserMissErasesNothing(t *testing.T) {
	m := NewMachine("#000000", 4)
	m.SetMode(ModeEraser)
	res := m.PointerDown(50, 200, 0, testStrokes())
	if res.Action != ActionNone {
		t.Fatalf("expected no erase on miss, got action %d", res.Action)
	}
}

func TestMachine_SetModeCancelsCapture(t *testing.T) {
	m := NewMachine("#000000", 4)
	m.SetMode(ModePen)
	m.PointerDown(10, 10, 0.5, nil)
	m.PointerMove(20, 10, 0.5, nil)

	m.SetMode(ModeEraser)
	if m.State() != StateIdle || m.LiveSamples() != nil {
		t.Fatalf("expected tool switch to discard the in-flight capture")
	}
	if res := m.PointerUp(); res.Action != ActionNone {
		t.Fatalf("expected nothing to commit after tool switch, got action %d", res.Action)
	}
}

func TestMachine_VisibilityIndependentOfMode(t *testing.T) {
	m := NewMachine("#000000", 4)
	m.SetMode(ModePen)
	m.SetVisible(false)
	if m.Visible() {
		t.Fatalf("expected ink hidden")
	}
	if !m.Intercepts() {
		t.Fatalf("hiding ink must not disable the active tool")
	}
	m.SetVisible(true)
	if !m.Visible() {
		t.Fatalf("expected ink visible again")
	}
}

func TestHitTest_TopMostWins(t *testing.T) {
	overlapping := []types.Stroke{
		{Samples: []types.StrokeSample{{X: 0, Y: 0}, {X: 100, Y: 0}}, Size: 4},
		{Samples: []types.StrokeSample{{X: 0, Y: 2}, {X: 100, Y: 2}}, Size: 4},
	}
	if idx := HitTest(overlapping, 50, 1); idx != 1 {
		t.Fatalf("expected the later stroke to win the hit test, got %d", idx)
	}
}

func TestHitTest_SlopExtendsReach(t *testing.T) {
	strokes := []types.Stroke{
		{Samples: []types.StrokeSample{{X: 0, Y: 0}, {X: 100, Y: 0}}, Size: 4},
	}
	// Inside size/2 + HitSlop of the spine.
	if idx := HitTest(strokes, 50, 9); idx != 0 {
		t.Fatalf("expected hit within the slop region, got %d", idx)
	}
	// Outside it.
	if idx := HitTest(strokes, 50, 11); idx != -1 {
		t.Fatalf("expected miss outside the slop region, got %d", idx)
	}
}
