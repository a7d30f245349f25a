package ink

import "github.com/kenny1934/tutoring-management-system-sub003/internal/types"

// Op is a path segment operation.
type Op uint8

const (
	OpMove Op = iota
	OpQuad
	OpClose
)

// Segment is one path command. Ctrl and End are meaningful for OpQuad;
// End alone for OpMove.
type Segment struct {
	Op   Op
	Ctrl Point
	End  Point
}

// Path is a drawable closed path. Consumers lower it to their own
// command set: the raster renderer draws the quadratics directly, the
// PDF content builder converts them to cubics.
type Path []Segment

// SmoothPath converts an outline polygon to a smooth closed path: move
// to the first point, then for each point a quadratic curve through it
// to the midpoint between it and its successor, then close. This hides
// the polygon facets. Outlines with fewer than two points produce an
// empty path.
func SmoothPath(outline []Point) Path {
	if len(outline) < 2 {
		return nil
	}
	path := make(Path, 0, len(outline)+2)
	path = append(path, Segment{Op: OpMove, End: outline[0]})
	for i := 1; i < len(outline); i++ {
		p := outline[i]
		next := outline[(i+1)%len(outline)]
		mid := p.lerp(next, 0.5)
		path = append(path, Segment{Op: OpQuad, Ctrl: p, End: mid})
	}
	path = append(path, Segment{Op: OpClose})
	return path
}

// StrokePath is the committed-stroke path: outline with end tapering,
// smoothed.
func StrokePath(s types.Stroke) Path {
	return SmoothPath(Outline(s.Samples, s.Size, true))
}

// LivePath is the in-progress path rendered while the pointer is still
// down: no end taper, so the growing line keeps its width at the tip.
func LivePath(samples []types.StrokeSample, size float64) Path {
	return SmoothPath(Outline(samples, size, false))
}

// QuadToCubic lifts a quadratic segment (from p0, control c, to p2) to
// the equivalent cubic control points.
func QuadToCubic(p0, c, p2 Point) (c1, c2 Point) {
	c1 = p0.add(c.sub(p0).mul(2.0 / 3.0))
	c2 = p2.add(c.sub(p2).mul(2.0 / 3.0))
	return c1, c2
}
