package ink

import (
	"math"
	"testing"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

func TestSmoothPath_EmptyOutline(t *testing.T) {
	if got := SmoothPath(nil); got != nil {
		t.Fatalf("expected empty path, got %d segments", len(got))
	}
	if got := SmoothPath([]Point{{X: 1, Y: 1}}); got != nil {
		t.Fatalf("expected empty path for a single point, got %d segments", len(got))
	}
}

func TestSmoothPath_Structure(t *testing.T) {
	outline := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	path := SmoothPath(outline)
	if len(path) != len(outline)+1 {
		t.Fatalf("expected %d segments, got %d", len(outline)+1, len(path))
	}
	if path[0].Op != OpMove {
		t.Fatalf("expected path to start with a move")
	}
	if path[len(path)-1].Op != OpClose {
		t.Fatalf("expected path to end with a close")
	}
	for i := 1; i < len(path)-1; i++ {
		if path[i].Op != OpQuad {
			t.Fatalf("segment %d: expected a quadratic, got op %d", i, path[i].Op)
		}
	}
	// Each quadratic ends at the midpoint between its control point and
	// the next outline point.
	mid := outline[1].lerp(outline[2], 0.5)
	if path[1].Ctrl != outline[1] || path[1].End != mid {
		t.Fatalf("unexpected first quadratic: ctrl=%v end=%v", path[1].Ctrl, path[1].End)
	}
}

func TestStrokePath_MinimalStrokeIsEmpty(t *testing.T) {
	s := types.Stroke{
		Samples: []types.StrokeSample{{X: 5, Y: 5}},
		Color:   "#ff0000",
		Size:    8,
	}
	if got := StrokePath(s); len(got) != 0 {
		t.Fatalf("expected no path for one-sample stroke, got %d segments", len(got))
	}
}

func TestLivePath_DrawableWhileCapturing(t *testing.T) {
	samples := []types.StrokeSample{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 40, Y: 5}}
	path := LivePath(samples, 8)
	if len(path) == 0 {
		t.Fatalf("expected a live path for an in-progress stroke")
	}
	if path[0].Op != OpMove || path[len(path)-1].Op != OpClose {
		t.Fatalf("live path is not a closed drawable path")
	}
}

func TestQuadToCubic_EndpointDerivatives(t *testing.T) {
	p0 := Point{0, 0}
	c := Point{3, 6}
	p2 := Point{6, 0}
	c1, c2 := QuadToCubic(p0, c, p2)

	wantC1 := Point{2, 4}
	wantC2 := Point{4, 4}
	if math.Abs(c1.X-wantC1.X) > 1e-9 || math.Abs(c1.Y-wantC1.Y) > 1e-9 {
		t.Fatalf("c1 = %v, want %v", c1, wantC1)
	}
	if math.Abs(c2.X-wantC2.X) > 1e-9 || math.Abs(c2.Y-wantC2.Y) > 1e-9 {
		t.Fatalf("c2 = %v, want %v", c2, wantC2)
	}
}
