package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StampInfo is the free-text overlay burned onto extracted pages. The
// same shape is used by the print pathway, so on-screen and printed
// output match.
type StampInfo struct {
	Location    string    `json:"location"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	SessionDate time.Time `json:"session_date"`
	SessionTime string    `json:"session_time"`
}

// IsZero reports whether every stamp field is empty.
func (s *StampInfo) IsZero() bool {
	if s == nil {
		return true
	}
	return strings.TrimSpace(s.Location) == "" &&
		strings.TrimSpace(s.StudentID) == "" &&
		strings.TrimSpace(s.StudentName) == "" &&
		s.SessionDate.IsZero() &&
		strings.TrimSpace(s.SessionTime) == ""
}

// Lines returns the stamp rows in the order they are drawn.
func (s *StampInfo) Lines() []string {
	if s == nil {
		return nil
	}
	var out []string
	if v := strings.TrimSpace(s.Location); v != "" {
		out = append(out, v)
	}
	id := strings.TrimSpace(s.StudentID)
	name := strings.TrimSpace(s.StudentName)
	switch {
	case id != "" && name != "":
		out = append(out, id+" "+name)
	case id != "":
		out = append(out, id)
	case name != "":
		out = append(out, name)
	}
	var when []string
	if !s.SessionDate.IsZero() {
		when = append(when, s.SessionDate.Format("2006-01-02"))
	}
	if v := strings.TrimSpace(s.SessionTime); v != "" {
		when = append(when, v)
	}
	if len(when) > 0 {
		out = append(out, strings.Join(when, " "))
	}
	return out
}

// RenderedPage is one rasterized page image. Width and Height are in
// page-local display units (page points at the base render scale), not
// device pixels. The handle refers to encoded image bytes owned by the
// render pipeline's handle registry; it is only valid until released.
// Failed marks a slot whose page could not be rasterized; such slots
// keep their index so annotations stay aligned, but carry no image.
type RenderedPage struct {
	Handle uuid.UUID `json:"-"`
	URL    string    `json:"url"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Failed bool      `json:"failed,omitempty"`
}
