// Package coords is the single source of truth for coordinate
// conversions between display space, page-local annotation space and
// PDF user space. The render pipeline, the capture layer and the
// exporter all convert through here so a stroke sits at the same spot
// on screen, in previews and in exported files.
package coords

// BaseScale is the fixed base render scale: page-local units are PDF
// points multiplied by BaseScale. Device pixel ratio is applied on top
// of this when rasterizing.
const BaseScale = 1.5

// DPI returns the rasterization resolution for a device pixel ratio.
// PDF user space is 72 DPI; the base scale and the display's pixel
// density are layered on top.
func DPI(deviceScale float64) float64 {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	return 72 * BaseScale * deviceScale
}

// PageSpace describes one PDF page's geometry, taken from its MediaBox.
type PageSpace struct {
	OriginX   float64 // MediaBox lower-left x, points
	OriginY   float64 // MediaBox lower-left y, points
	WidthPts  float64
	HeightPts float64
}

// DisplayWidth is the page width in page-local units.
func (p PageSpace) DisplayWidth() float64 { return p.WidthPts * BaseScale }

// DisplayHeight is the page height in page-local units.
func (p PageSpace) DisplayHeight() float64 { return p.HeightPts * BaseScale }

// ToPDF maps a page-local point (top-left origin, y down) to PDF user
// space (MediaBox origin, y up).
func (p PageSpace) ToPDF(x, y float64) (float64, float64) {
	return p.OriginX + x/BaseScale, p.OriginY + p.HeightPts - y/BaseScale
}

// FromPDF maps a PDF user-space point to page-local coordinates.
func (p PageSpace) FromPDF(x, y float64) (float64, float64) {
	return (x - p.OriginX) * BaseScale, (p.HeightPts - (y - p.OriginY)) * BaseScale
}

// FromDisplay maps a pointer position on a page element of the given
// on-screen width to page-local coordinates. The element is assumed to
// preserve the page aspect ratio.
func (p PageSpace) FromDisplay(x, y, elementWidth float64) (float64, float64) {
	if elementWidth <= 0 {
		return x, y
	}
	k := p.DisplayWidth() / elementWidth
	return x * k, y * k
}

// ToDisplay maps a page-local point onto a page element of the given
// on-screen width.
func (p PageSpace) ToDisplay(x, y, elementWidth float64) (float64, float64) {
	if elementWidth <= 0 {
		return x, y
	}
	k := elementWidth / p.DisplayWidth()
	return x * k, y * k
}
