package sink

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// baselineAnchor places the baseline below the anchor by this fraction of
// the line height so mixed-case text sits visually centred in its box.
const baselineAnchor = 0.35

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
	boxes      bool
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the canvas colour (default white). An empty string
// leaves the canvas transparent.
func WithPNGBackground(hex string) PNGOption {
	return func(r *pngRenderer) { r.background = hex }
}

// WithPNGBoxes outlines every word box.
func WithPNGBoxes() PNGOption { return func(r *pngRenderer) { r.boxes = true } }

// RenderPNG rasterizes the layout with the embedded font. Unlike SVG output
// it needs no external converter.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("png scale must be positive, got %v", r.scale)
	}

	s := r.scale
	dc := gg.NewContext(int(float64(l.Width)*s+0.5), int(float64(l.Height)*s+0.5))
	if r.background != "" {
		dc.SetHexColor(r.background)
		dc.Clear()
	}

	// Glyphs are rasterized at the output size; drawing through a scaled
	// matrix would resample small bitmaps.
	faces := make(map[float64]font.Face)
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()

	for _, w := range l.Words {
		size := w.FontSize * s
		face, ok := faces[size]
		if !ok {
			var err error
			if face, err = fonts.Face(size); err != nil {
				return nil, fmt.Errorf("load font: %w", err)
			}
			faces[size] = face
		}

		cx, cy := w.CenterX()*s, w.CenterY()*s
		color := w.Color
		if color == "" {
			color = "#000000"
		}

		dc.Push()
		dc.SetFontFace(face)
		dc.SetHexColor(color)
		if w.Rotation != 0 {
			dc.RotateAbout(gg.Radians(float64(w.Rotation)), cx, cy)
		}
		dc.DrawStringAnchored(w.Text, cx, cy, 0.5, baselineAnchor)
		dc.Pop()

		if r.boxes {
			dc.SetHexColor("#999999")
			dc.SetLineWidth(1)
			dc.DrawRectangle(w.Box.X*s, w.Box.Y*s, w.Box.W*s, w.Box.H*s)
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
