// Package capture models the annotation layer's pointer interaction as
// an explicit state machine with pure transitions, independent of any
// UI toolkit's event model.
package capture

import (
	"math"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// Mode is the active editing tool.
type Mode uint8

const (
	ModeNone Mode = iota
	ModePen
	ModeEraser
)

// State is the machine's interaction state.
type State uint8

const (
	StateIdle State = iota
	StateCapturing
	StateHovering
)

// Action tells the caller what a pointer transition decided.
type Action uint8

const (
	ActionNone Action = iota
	// ActionCommit carries a finished stroke to append to the page.
	ActionCommit
	// ActionErase carries the index of the stroke to remove.
	ActionErase
)

// Result is the outcome of one pointer transition.
type Result struct {
	Action Action
	Stroke types.Stroke
	Index  int
}

// HitSlop widens the eraser hit-test region beyond the visible ink, in
// page-local units, so thin strokes are easy to target.
const HitSlop = 8.0

// Machine is one page's interaction state. All methods are pure
// transitions on the machine; callers feed pointer events in page-local
// coordinates (see coords.PageSpace.FromDisplay).
type Machine struct {
	mode    Mode
	state   State
	visible bool

	color string
	size  float64

	samples []types.StrokeSample
	hovered int
}

func NewMachine(color string, size float64) *Machine {
	return &Machine{visible: true, color: color, size: size, hovered: -1}
}

func (m *Machine) Mode() Mode   { return m.mode }
func (m *Machine) State() State { return m.state }

// Intercepts reports whether the layer should consume pointer events at
// all. With no active mode everything passes through to the page
// underneath, including scroll and zoom gestures.
func (m *Machine) Intercepts() bool { return m.mode != ModeNone }

// SetMode switches tools. Any in-flight capture or hover is discarded;
// modes are mutually exclusive.
func (m *Machine) SetMode(mode Mode) {
	m.mode = mode
	m.state = StateIdle
	m.samples = nil
	m.hovered = -1
}

// SetVisible toggles ink visibility. Independent of the edit mode:
// hiding ink does not lose it or stop an active tool.
func (m *Machine) SetVisible(v bool) { m.visible = v }
func (m *Machine) Visible() bool     { return m.visible }

func (m *Machine) SetPen(color string, size float64) {
	m.color = color
	m.size = size
}

// Hovered is the index of the stroke under the eraser, or -1.
func (m *Machine) Hovered() int { return m.hovered }

// LiveSamples is the in-progress point sequence, for live rendering via
// ink.LivePath.
func (m *Machine) LiveSamples() []types.StrokeSample { return m.samples }

// PointerDown begins a capture (pen) or erases the hovered stroke
// (eraser). strokes is the page's current stroke list, needed for
// eraser hit-testing.
func (m *Machine) PointerDown(x, y, pressure float64, strokes []types.Stroke) Result {
	switch m.mode {
	case ModePen:
		m.state = StateCapturing
		m.samples = []types.StrokeSample{{X: x, Y: y, Pressure: pressure}}
	case ModeEraser:
		if idx := HitTest(strokes, x, y); idx >= 0 {
			m.state = StateIdle
			m.hovered = -1
			return Result{Action: ActionErase, Index: idx}
		}
	}
	return Result{Action: ActionNone}
}

// PointerMove appends a sample (pen) or updates the hover target
// (eraser).
func (m *Machine) PointerMove(x, y, pressure float64, strokes []types.Stroke) Result {
	switch m.mode {
	case ModePen:
		if m.state == StateCapturing {
			m.samples = append(m.samples, types.StrokeSample{X: x, Y: y, Pressure: pressure})
		}
	case ModeEraser:
		m.hovered = HitTest(strokes, x, y)
		if m.hovered >= 0 {
			m.state = StateHovering
		} else {
			m.state = StateIdle
		}
	}
	return Result{Action: ActionNone}
}

// PointerUp finalizes a capture. A gesture with at least two samples
// commits a stroke; anything shorter is discarded silently.
func (m *Machine) PointerUp() Result {
	if m.mode != ModePen || m.state != StateCapturing {
		return Result{Action: ActionNone}
	}
	samples := m.samples
	m.samples = nil
	m.state = StateIdle
	if len(samples) < 2 {
		return Result{Action: ActionNone}
	}
	return Result{
		Action: ActionCommit,
		Stroke: types.Stroke{Samples: samples, Color: m.color, Size: m.size},
	}
}

// PointerLeave behaves like PointerUp for the pen (the stroke is
// finalized, not lost) and clears the eraser hover.
func (m *Machine) PointerLeave() Result {
	if m.mode == ModeEraser {
		m.hovered = -1
		m.state = StateIdle
		return Result{Action: ActionNone}
	}
	return m.PointerUp()
}

// HitTest returns the index of the top-most stroke whose widened hit
// region contains (x, y), or -1. Later strokes are on top, so the scan
// runs back to front.
func HitTest(strokes []types.Stroke, x, y float64) int {
	for i := len(strokes) - 1; i >= 0; i-- {
		if strokeHit(strokes[i], x, y) {
			return i
		}
	}
	return -1
}

func strokeHit(s types.Stroke, x, y float64) bool {
	limit := s.Size/2 + HitSlop
	if len(s.Samples) == 1 {
		return math.Hypot(s.Samples[0].X-x, s.Samples[0].Y-y) <= limit
	}
	for i := 1; i < len(s.Samples); i++ {
		a, b := s.Samples[i-1], s.Samples[i]
		if segmentDistance(a.X, a.Y, b.X, b.Y, x, y) <= limit {
			return true
		}
	}
	return false
}

// segmentDistance is the distance from (px, py) to the segment ab.
func segmentDistance(ax, ay, bx, by, px, py float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
