package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/coords"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/ink"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/utils"
)

const (
	previewLabelSize   = 14.0
	previewLabelMargin = 10.0
)

// Previewer flattens ink onto rendered page images for preview
// thumbnails, without touching the underlying PDF.
type Previewer struct {
	log      *logger.Logger
	fontPath string
}

func NewPreviewer(log *logger.Logger) *Previewer {
	log = log.With("service", "Previewer")
	return &Previewer{
		log:      log,
		fontPath: utils.GetEnv("STAMP_FONT", "", log),
	}
}

// Compose draws strokes over a page image. The strokes are in
// page-local coordinates; space gives the page's dimensions so the ink
// can be scaled to the image's actual pixel size. A non-empty label is
// drawn in the top-left corner when a font is configured.
func (p *Previewer) Compose(pageImage []byte, strokes []types.Stroke, space coords.PageSpace, label string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(pageImage))
	if err != nil {
		return nil, fmt.Errorf("failed to decode page image: %w", err)
	}
	dc := gg.NewContextForImage(img)

	scale := 1.0
	if w := space.DisplayWidth(); w > 0 {
		scale = float64(img.Bounds().Dx()) / w
	}

	for _, stroke := range strokes {
		path := ink.StrokePath(stroke)
		if len(path) == 0 {
			continue
		}
		dc.SetHexColor(stroke.Color)
		for _, seg := range path {
			switch seg.Op {
			case ink.OpMove:
				dc.MoveTo(seg.End.X*scale, seg.End.Y*scale)
			case ink.OpQuad:
				dc.QuadraticTo(seg.Ctrl.X*scale, seg.Ctrl.Y*scale, seg.End.X*scale, seg.End.Y*scale)
			case ink.OpClose:
				dc.ClosePath()
			}
		}
		dc.Fill()
	}

	if label != "" && p.fontPath != "" {
		face, err := loadFontFace(p.fontPath, previewLabelSize*scale)
		if err != nil {
			p.log.Warn("preview label font unavailable", "path", p.fontPath, "error", err)
		} else {
			dc.SetFontFace(face)
			dc.SetRGB(0.2, 0.2, 0.2)
			dc.DrawString(label, previewLabelMargin*scale, (previewLabelMargin+previewLabelSize)*scale)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail downscales an image so its longest side is maxDim pixels.
// Images already within bounds are returned re-encoded at full size.
func (p *Previewer) Thumbnail(data []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxDim || h > maxDim {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFontFace(path string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}
