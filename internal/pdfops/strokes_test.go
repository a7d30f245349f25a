package pdfops

import (
	"strings"
	"testing"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/coords"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

func inkStroke(color string) types.Stroke {
	return types.Stroke{
		Samples: []types.StrokeSample{
			{X: 30, Y: 40, Pressure: 0.5},
			{X: 90, Y: 60, Pressure: 0.5},
			{X: 150, Y: 50, Pressure: 0.5},
		},
		Color: color,
		Size:  6,
	}
}

func TestStrokeContent_EmitsFilledBezierPath(t *testing.T) {
	space := coords.PageSpace{WidthPts: 612, HeightPts: 792}
	ops := string(StrokeContent([]types.Stroke{inkStroke("#ff0000")}, space))

	for _, want := range []string{" m\n", " c\n", "h\n", "f\n"} {
		if !strings.Contains(ops, want) {
			t.Fatalf("content missing %q operator:\n%s", want, ops)
		}
	}
	if !strings.Contains(ops, "1.000 0.000 0.000 rg") {
		t.Fatalf("content missing fill color:\n%s", ops)
	}
}

func TestStrokeContent_PreservesStrokeOrder(t *testing.T) {
	space := coords.PageSpace{WidthPts: 612, HeightPts: 792}
	ops := string(StrokeContent([]types.Stroke{inkStroke("#ff0000"), inkStroke("#0000ff")}, space))

	red := strings.Index(ops, "1.000 0.000 0.000 rg")
	blue := strings.Index(ops, "0.000 0.000 1.000 rg")
	if red < 0 || blue < 0 || red > blue {
		t.Fatalf("expected red fill before blue fill (red=%d blue=%d)", red, blue)
	}
}

func TestStrokeContent_SkipsUndrawableStrokes(t *testing.T) {
	space := coords.PageSpace{WidthPts: 612, HeightPts: 792}
	dot := types.Stroke{
		Samples: []types.StrokeSample{{X: 10, Y: 10}},
		Color:   "#000000",
		Size:    6,
	}
	if ops := StrokeContent([]types.Stroke{dot}, space); len(ops) != 0 {
		t.Fatalf("expected no output for a one-sample stroke, got %q", ops)
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b float64
	}{
		{"#ff0000", 1, 0, 0},
		{"#00ff00", 0, 1, 0},
		{"0000ff", 0, 0, 1},
		{"#ffffff", 1, 1, 1},
		{"not-a-color", 0, 0, 0},
		{"", 0, 0, 0},
	}
	for _, c := range cases {
		r, g, b := ParseHexColor(c.in)
		if r != c.r || g != c.g || b != c.b {
			t.Fatalf("ParseHexColor(%q) = (%f, %f, %f), want (%f, %f, %f)", c.in, r, g, b, c.r, c.g, c.b)
		}
	}
}
