// Package fonts provides the font used to measure and draw word clouds.
//
// The Go Regular typeface ships with golang.org/x/image, so it is compiled
// into the binary without extra files. The same outlines back text
// measurement in the layout, glyph drawing in the PNG sink and the
// embedded @font-face of the SVG sink, keeping all three consistent.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fonts with similar metrics for SVG viewers that
// ignore embedded fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// GoRegularTTF returns the TrueType font data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoRegularTTFBase64 returns the TrueType data as a base64 string, suitable
// for a data: URL. The result is cached after first computation.
func GoRegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

var (
	parsed     *opentype.Font
	parsedErr  error
	parsedOnce sync.Once
)

func goRegular() (*opentype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parsedErr = opentype.Parse(goregular.TTF)
		if parsedErr != nil {
			parsedErr = fmt.Errorf("parse go regular: %w", parsedErr)
		}
	})
	return parsed, parsedErr
}

// Face returns a new face of the embedded font at size pixels (72 DPI).
// Faces are not safe for concurrent use; create one per goroutine.
func Face(size float64) (font.Face, error) {
	f, err := goRegular()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
