package pdfops

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/coords"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/ink"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// StrokeContent emits path-fill operators rendering the strokes as true
// vector content in PDF user space. Stroke order is preserved, so
// z-order matches the on-screen overlay.
func StrokeContent(strokes []types.Stroke, space coords.PageSpace) []byte {
	var buf bytes.Buffer
	for _, stroke := range strokes {
		path := ink.StrokePath(stroke)
		if len(path) == 0 {
			continue
		}

		r, g, b := ParseHexColor(stroke.Color)
		fmt.Fprintf(&buf, "%.3f %.3f %.3f rg\n", r, g, b)

		var cur ink.Point
		for _, seg := range path {
			switch seg.Op {
			case ink.OpMove:
				x, y := space.ToPDF(seg.End.X, seg.End.Y)
				fmt.Fprintf(&buf, "%.2f %.2f m\n", x, y)
				cur = seg.End
			case ink.OpQuad:
				c1, c2 := ink.QuadToCubic(cur, seg.Ctrl, seg.End)
				c1x, c1y := space.ToPDF(c1.X, c1.Y)
				c2x, c2y := space.ToPDF(c2.X, c2.Y)
				ex, ey := space.ToPDF(seg.End.X, seg.End.Y)
				fmt.Fprintf(&buf, "%.2f %.2f %.2f %.2f %.2f %.2f c\n", c1x, c1y, c2x, c2y, ex, ey)
				cur = seg.End
			case ink.OpClose:
				buf.WriteString("h\n")
			}
		}
		buf.WriteString("f\n")
	}
	return buf.Bytes()
}

// ParseHexColor parses "#rrggbb" (or "rrggbb") into components in
// [0,1]. Unparseable values fall back to black.
func ParseHexColor(s string) (r, g, b float64) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	r = float64(v>>16&0xff) / 255
	g = float64(v>>8&0xff) / 255
	b = float64(v&0xff) / 255
	return r, g, b
}
