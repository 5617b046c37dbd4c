package words

import (
	"math"
	"unicode/utf8"
)

const (
	// DefaultGamma compresses the dominance of the top word.
	DefaultGamma = 0.6

	// FloorFontSize is the absolute smallest size a word is ever drawn at.
	FloorFontSize = 8.0

	maxFontCap     = 70.0
	minFontCap     = 10.0
	maxFontDivisor = 5.0
	minFontDivisor = 6.0
)

// Rotation values in degrees.
const (
	Horizontal = 0
	Vertical   = 90
)

// SizedWord is a word with its target font size and preferred rotation.
type SizedWord struct {
	Text     string
	Count    int
	FontSize float64
	Rotation int
}

// Range is a font-size interval in pixels.
type Range struct {
	Min, Max float64
}

// Scale returns the range multiplied by s, with both ends kept at or above
// FloorFontSize and Max kept at or above Min.
func (r Range) Scale(s float64) Range {
	lo := max(FloorFontSize, r.Min*s)
	hi := max(lo, r.Max*s)
	return Range{Min: lo, Max: hi}
}

// FontRange derives the font-size range for a canvas and word count.
// Larger word lists get smaller caps so the packing stays tractable.
func FontRange(width, height, n int) Range {
	minDim := float64(min(width, height))
	hi := min(maxFontCap, minDim/maxFontDivisor) * countFactor(n)
	lo := min(hi, max(minFontCap, hi/minFontDivisor))
	return Range{Min: lo, Max: hi}
}

func countFactor(n int) float64 {
	switch {
	case n > 150:
		return 0.6
	case n > 100:
		return 0.7
	case n > 50:
		return 0.85
	default:
		return 1
	}
}

// Weight maps count into [0, 1] relative to [lo, hi], compressed by gamma.
// A degenerate interval (lo == hi) yields 1.
func Weight(count, lo, hi int, gamma float64) float64 {
	if hi <= lo {
		return 1
	}
	w := float64(count-lo) / float64(hi-lo)
	w = max(0, min(1, w))
	return math.Pow(w, gamma)
}

// Map assigns a font size and rotation to every word. Sizes are monotonic
// in count: a higher count never yields a smaller size.
func Map(ws []WordWeight, r Range, gamma float64) []SizedWord {
	if len(ws) == 0 {
		return nil
	}
	if gamma <= 0 {
		gamma = DefaultGamma
	}
	lo, hi := Counts(ws)
	out := make([]SizedWord, len(ws))
	for i, w := range ws {
		out[i] = SizedWord{
			Text:     w.Text,
			Count:    w.Count,
			FontSize: r.Min + (r.Max-r.Min)*Weight(w.Count, lo, hi, gamma),
			Rotation: RotationFor(w.Text),
		}
	}
	return out
}

// RotationFor returns Vertical when the code point of the first rune is a
// multiple of four, and Horizontal otherwise.
func RotationFor(text string) int {
	r, _ := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError || r%4 != 0 {
		return Horizontal
	}
	return Vertical
}

// Alternate returns the other rotation.
func Alternate(rotation int) int {
	if rotation == Vertical {
		return Horizontal
	}
	return Vertical
}
