// Package ink turns raw pointer samples into smooth filled stroke
// outlines with pressure-sensitive thickness.
package ink

import (
	"math"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// Shaping parameters, tuned for natural pen feel. Fixed rather than
// user-configurable so that live rendering, previews and PDF export all
// produce the same silhouette.
const (
	Thinning   = 0.5
	Smoothing  = 0.5
	Streamline = 0.5

	// SimulatedPressure seeds the velocity-based pressure model used
	// when the input device reports no true pressure.
	SimulatedPressure = 0.5

	rateOfPressureChange = 0.275
	minRadius            = 0.25
	capSegments          = 8
)

// Point is a 2D point in page-local coordinates.
type Point struct {
	X float64
	Y float64
}

func (p Point) add(q Point) Point      { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point      { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) mul(k float64) Point    { return Point{p.X * k, p.Y * k} }
func (p Point) dist(q Point) float64   { return math.Hypot(p.X-q.X, p.Y-q.Y) }
func (p Point) perpendicular() Point   { return Point{p.Y, -p.X} }
func (p Point) lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

func (p Point) normalize() Point {
	l := math.Hypot(p.X, p.Y)
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

func (p Point) rotate(center Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{center.X + dx*cos - dy*sin, center.Y + dx*sin + dy*cos}
}

type strokePoint struct {
	point         Point
	pressure      float64
	vector        Point // unit direction from the previous point
	distance      float64
	runningLength float64
}

// buildPoints applies the streamline interpolation to the raw samples
// and computes per-point geometry. Pressure values of zero are replaced
// by a velocity-driven simulation.
func buildPoints(samples []types.StrokeSample, size float64) []strokePoint {
	if len(samples) == 0 {
		return nil
	}

	t := 0.15 + (1-Streamline)*0.85

	pts := make([]strokePoint, 0, len(samples))
	first := strokePoint{
		point:    Point{samples[0].X, samples[0].Y},
		pressure: samples[0].Pressure,
	}
	pts = append(pts, first)

	prev := first
	for _, s := range samples[1:] {
		raw := Point{s.X, s.Y}
		p := prev.point.lerp(raw, t)
		if p == prev.point {
			continue
		}
		d := p.dist(prev.point)
		sp := strokePoint{
			point:         p,
			pressure:      prev.pressure + (s.Pressure-prev.pressure)*t,
			vector:        p.sub(prev.point).normalize(),
			distance:      d,
			runningLength: prev.runningLength + d,
		}
		pts = append(pts, sp)
		prev = sp
	}
	if len(pts) > 1 {
		pts[0].vector = pts[1].vector
	}

	// Simulate pressure from velocity where the device reported none.
	simPressure := SimulatedPressure
	for i := range pts {
		if pts[i].pressure > 0 {
			continue
		}
		sp := math.Min(1, pts[i].distance/size)
		rp := math.Min(1, 1-sp)
		simPressure = math.Min(1, simPressure+(rp-simPressure)*(sp*rateOfPressureChange))
		pts[i].pressure = simPressure
	}
	return pts
}

// strokeRadius is the half-thickness at one point: size scaled by the
// thinning response to pressure. With pressure 0.5 the radius is
// exactly size/2.
func strokeRadius(size, pressure float64) float64 {
	r := size * (0.5 - Thinning*(0.5-pressure))
	if r < minRadius {
		return minRadius
	}
	return r
}

// Outline computes the filled silhouette polygon for a sequence of
// samples. finished controls end tapering: a live, still-growing stroke
// keeps its full radius at the tail so it does not visually shrink to a
// point while being drawn. Fewer than two samples yield no outline.
func Outline(samples []types.StrokeSample, size float64, finished bool) []Point {
	if len(samples) < 2 || size <= 0 {
		return nil
	}
	pts := buildPoints(samples, size)
	if len(pts) < 2 {
		return nil
	}

	totalLength := pts[len(pts)-1].runningLength
	taperDist := size * 2

	var left, right []Point
	var prevL, prevR Point
	for i, sp := range pts {
		r := strokeRadius(size, sp.pressure)
		if finished && taperDist > 0 {
			remaining := totalLength - sp.runningLength
			if remaining < taperDist {
				t := remaining / taperDist
				r = math.Max(minRadius, r*(0.3+0.7*t))
			}
		}

		offset := sp.vector.perpendicular().mul(r)
		l := sp.point.add(offset)
		rt := sp.point.sub(offset)

		// Drop points that moved less than the smoothing distance;
		// keeps the polygon free of self-intersecting micro-segments.
		minDist := r * Smoothing
		if i == 0 || i == len(pts)-1 || l.dist(prevL) > minDist {
			left = append(left, l)
			prevL = l
		}
		if i == 0 || i == len(pts)-1 || rt.dist(prevR) > minDist {
			right = append(right, rt)
			prevR = rt
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return nil
	}

	startCap := capPoints(pts[0].point, right[0], math.Pi)
	var endCap []Point
	if finished {
		endCap = capPoints(pts[len(pts)-1].point, left[len(left)-1], math.Pi)
	}

	outline := make([]Point, 0, len(left)+len(right)+len(startCap)+len(endCap))
	outline = append(outline, left...)
	outline = append(outline, endCap...)
	for i := len(right) - 1; i >= 0; i-- {
		outline = append(outline, right[i])
	}
	outline = append(outline, startCap...)
	return outline
}

// capPoints traces a round cap by rotating from one edge point around
// the stroke tip.
func capPoints(center, from Point, angle float64) []Point {
	out := make([]Point, 0, capSegments)
	for i := 1; i < capSegments; i++ {
		out = append(out, from.rotate(center, angle*float64(i)/capSegments))
	}
	return out
}
