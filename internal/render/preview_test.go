package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/coords"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

func whitePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return img
}

func TestNewPreviewer_LabelFontFromEnv(t *testing.T) {
	t.Setenv("STAMP_FONT", "/fonts/label.ttf")
	p := NewPreviewer(logger.NewNop())
	if p.fontPath != "/fonts/label.ttf" {
		t.Fatalf("fontPath = %q", p.fontPath)
	}
}

func TestPreviewer_ComposeDrawsInk(t *testing.T) {
	p := NewPreviewer(logger.NewNop())

	// Page-local space sized so page image pixels map 1:1.
	space := coords.PageSpace{WidthPts: 300 / coords.BaseScale, HeightPts: 400 / coords.BaseScale}
	strokes := []types.Stroke{
		{
			Samples: []types.StrokeSample{
				{X: 50, Y: 200, Pressure: 0.5},
				{X: 150, Y: 200, Pressure: 0.5},
				{X: 250, Y: 200, Pressure: 0.5},
			},
			Color: "#ff0000",
			Size:  10,
		},
	}

	out, err := p.Compose(whitePNG(t, 300, 400), strokes, space, "")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	img := decodePNG(t, out)

	// The middle of the stroke must be red now.
	r, g, b, _ := img.At(150, 200).RGBA()
	if r < 0xc000 || g > 0x4000 || b > 0x4000 {
		t.Fatalf("expected red ink at the stroke spine, got rgba(%d, %d, %d)", r>>8, g>>8, b>>8)
	}
	// A corner far from the ink stays white.
	r, g, b, _ = img.At(5, 5).RGBA()
	if r < 0xf000 || g < 0xf000 || b < 0xf000 {
		t.Fatalf("expected untouched background, got rgba(%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestPreviewer_ComposeWithoutInkKeepsThePage(t *testing.T) {
	p := NewPreviewer(logger.NewNop())
	space := coords.PageSpace{WidthPts: 100, HeightPts: 100}
	out, err := p.Compose(whitePNG(t, 100, 100), nil, space, "")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	img := decodePNG(t, out)
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Fatalf("unexpected composite size %v", img.Bounds())
	}
}

func TestPreviewer_ThumbnailRespectsAspect(t *testing.T) {
	p := NewPreviewer(logger.NewNop())

	out, err := p.Thumbnail(whitePNG(t, 400, 300), 100)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	img := decodePNG(t, out)
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 75 {
		t.Fatalf("expected 100x75 thumbnail, got %v", img.Bounds())
	}

	// Already-small images keep their size.
	out, err = p.Thumbnail(whitePNG(t, 50, 40), 100)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	img = decodePNG(t, out)
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 40 {
		t.Fatalf("expected unchanged 50x40 image, got %v", img.Bounds())
	}
}
