package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	embedFont  bool
	boxes      bool
	fontFamily string
}

// WithBackground fills the canvas with a CSS colour before drawing words.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithEmbeddedFont embeds the measuring font as a base64 @font-face so the
// drawn text matches the computed boxes in any viewer.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithBoxes outlines every word box, which helps when tuning margins.
func WithBoxes() SVGOption { return func(r *svgRenderer) { r.boxes = true } }

// WithFontFamily overrides the CSS font-family of the text.
func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) { r.fontFamily = family }
}

// RenderSVG draws each word centred in its box, rotated about that centre.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: fonts.FallbackFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.embedFont {
		fmt.Fprintf(&buf, "  <defs><style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style></defs>\n",
			fonts.FontFamily, fonts.GoRegularTTFBase64())
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	fmt.Fprintf(&buf, `  <g font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n", escapeXML(r.fontFamily))
	for _, w := range l.Words {
		renderWord(&buf, w)
		if r.boxes {
			fmt.Fprintf(&buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#999" stroke-width="0.5"/>`+"\n",
				w.Box.X, w.Box.Y, w.Box.W, w.Box.H)
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderWord(buf *bytes.Buffer, w layout.PlacedWord) {
	cx, cy := w.CenterX(), w.CenterY()
	fill := w.Color
	if fill == "" {
		fill = "#000000"
	}
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.2f" fill="%s"`, cx, cy, w.FontSize, escapeXML(fill))
	if w.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%d %.2f %.2f)"`, w.Rotation, cx, cy)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(w.Text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
