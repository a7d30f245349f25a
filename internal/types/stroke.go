package types

// StrokeSample is one raw pointer input sample in page-local coordinates
// at the base render resolution. Pressure is in [0,1]; devices without
// true pressure report 0 and get a simulated value downstream.
type StrokeSample struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
}

// Stroke is one committed freehand ink mark. Strokes are immutable once
// committed; a stroke exists only if it was finished with at least two
// samples.
type Stroke struct {
	Samples []StrokeSample `json:"samples"`
	Color   string         `json:"color"`
	Size    float64        `json:"size"`
}

// Clone returns a deep copy. Stores hand out clones so callers cannot
// mutate committed strokes in place.
func (s Stroke) Clone() Stroke {
	out := s
	out.Samples = append([]StrokeSample(nil), s.Samples...)
	return out
}

// CloneStrokes deep-copies a stroke list, mapping nil to nil.
func CloneStrokes(strokes []Stroke) []Stroke {
	if strokes == nil {
		return nil
	}
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = s.Clone()
	}
	return out
}

// PageAnnotations maps a zero-based page index (within the displayed
// page subset) to the strokes on that page. Slice order is z-order:
// later strokes render on top.
type PageAnnotations map[int][]Stroke

// Clone deep-copies the mapping.
func (p PageAnnotations) Clone() PageAnnotations {
	out := make(PageAnnotations, len(p))
	for page, strokes := range p {
		out[page] = CloneStrokes(strokes)
	}
	return out
}

// HasInk reports whether any page carries at least one stroke.
func (p PageAnnotations) HasInk() bool {
	for _, strokes := range p {
		if len(strokes) > 0 {
			return true
		}
	}
	return false
}
