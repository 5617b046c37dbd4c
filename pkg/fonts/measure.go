package fonts

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
)

const (
	// referenceSize is the pixel size text is measured at. Advances scale
	// linearly with size when hinting is off.
	referenceSize = 100.0

	approxCharWidth  = 0.55
	approxLineHeight = 1.2
)

// Metrics measures text with the embedded font. It is safe for concurrent
// use and memoizes widths per string.
type Metrics struct {
	mu     sync.Mutex
	face   font.Face
	height float64 // ascent+descent at referenceSize
	widths map[string]float64
}

// NewMetrics returns a measurer backed by the Go Regular outlines.
func NewMetrics() (*Metrics, error) {
	face, err := Face(referenceSize)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	return &Metrics{
		face:   face,
		height: float64(m.Ascent+m.Descent) / 64,
		widths: make(map[string]float64),
	}, nil
}

// Measure returns the advance width and line height of text at size pixels.
func (m *Metrics) Measure(text string, size float64) (w, h float64) {
	scale := size / referenceSize

	m.mu.Lock()
	ref, ok := m.widths[text]
	if !ok {
		ref = float64(font.MeasureString(m.face, text)) / 64
		m.widths[text] = ref
	}
	m.mu.Unlock()

	return ref * scale, m.height * scale
}

// Ascent returns the distance from the top of the line box to the baseline
// as a fraction of the font size.
func (m *Metrics) Ascent() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.face.Metrics().Ascent) / 64 / referenceSize
}

// Approx estimates text extents from the rune count alone. It needs no font
// data and is used when the embedded font cannot be loaded.
type Approx struct{}

// Measure returns an estimated width and height of text at size pixels.
func (Approx) Measure(text string, size float64) (w, h float64) {
	return float64(utf8.RuneCountInString(text)) * approxCharWidth * size, approxLineHeight * size
}

// Measurer reports the extents of text rendered at a pixel size.
type Measurer interface {
	Measure(text string, size float64) (w, h float64)
}

var (
	defaultMeasurer     Measurer
	defaultMeasurerOnce sync.Once
)

// DefaultMeasurer returns a shared [Metrics], or [Approx] if the font fails
// to parse.
func DefaultMeasurer() Measurer {
	defaultMeasurerOnce.Do(func() {
		if m, err := NewMetrics(); err == nil {
			defaultMeasurer = m
		} else {
			defaultMeasurer = Approx{}
		}
	})
	return defaultMeasurer
}
