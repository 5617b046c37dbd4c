package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/core/cloud/grid"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/palette"
	"github.com/matzehuels/wordcloud/pkg/core/words"
	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// Retry and shrink factors of the placement loop.
const (
	// DefaultMinScale is the smallest global scale an attempt may run at.
	DefaultMinScale = 0.25

	// ScaleStep multiplies the global scale between attempts.
	ScaleStep = 0.8

	// ShrinkStep multiplies a single word's font size when it does not fit.
	ShrinkStep = 0.85

	// FloorRatio bounds per-word shrinking relative to the attempt's
	// minimum font size.
	FloorRatio = 0.7
)

// AngleMode selects how spiral start angles are chosen.
type AngleMode string

const (
	// AnglesFixed derives start angles from the word's position in the
	// placement order. Output depends only on the input.
	AnglesFixed AngleMode = "fixed"

	// AnglesRandom draws start angles from a generator seeded with
	// [Options.Seed], giving visual variety that is still reproducible for
	// a given seed.
	AnglesRandom AngleMode = "random"
)

// ParseAngleMode parses a case-insensitive angle mode; "" selects AnglesFixed.
func ParseAngleMode(s string) (AngleMode, error) {
	switch m := AngleMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return AnglesFixed, nil
	case AnglesFixed, AnglesRandom:
		return m, nil
	default:
		return "", fmt.Errorf("unknown angle mode %q (valid: fixed, random)", s)
	}
}

// RotationMode selects which orientations words may take.
type RotationMode string

const (
	// RotationMixed places words horizontally or vertically, preferring the
	// orientation given by [words.RotationFor].
	RotationMixed RotationMode = "mixed"

	// RotationHorizontal keeps every word horizontal.
	RotationHorizontal RotationMode = "horizontal"
)

// ParseRotationMode parses a case-insensitive rotation mode; "" selects
// RotationMixed.
func ParseRotationMode(s string) (RotationMode, error) {
	switch m := RotationMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return RotationMixed, nil
	case RotationMixed, RotationHorizontal:
		return m, nil
	default:
		return "", fmt.Errorf("unknown rotation mode %q (valid: mixed, horizontal)", s)
	}
}

// Measurer reports the width and height of text drawn at a pixel size.
// Implementations must be safe for concurrent use.
type Measurer interface {
	Measure(text string, size float64) (w, h float64)
}

// Options configures [Build]. Zero values select defaults.
type Options struct {
	// Width and Height are the canvas size in pixels. Both must be positive.
	Width, Height int

	// Shape is the silhouette words are packed into. Default: rectangle.
	Shape mask.Shape

	// Margin is the minimum gap between two words. Nil means 2; use
	// [Margin] to request an explicit value, including 0.
	Margin *float64

	// CellSize is the collision grid cell size. Default: 25.
	CellSize float64

	// Gamma compresses the weight curve. Default: 0.6.
	Gamma float64

	// MinFontSize and MaxFontSize override the range derived from the
	// canvas size and word count.
	MinFontSize, MaxFontSize float64

	// MinScale is the smallest global scale tried. Default: 0.25.
	MinScale float64

	// Measurer sizes word boxes. Default: Go Regular metrics.
	Measurer Measurer

	// Colors assigns a colour by input rank. Default: the default palette.
	Colors func(index, total int) string

	// Angles picks spiral start angles. Default: AnglesFixed.
	Angles AngleMode

	// Seed feeds AnglesRandom. Zero picks a seed from the clock; the seed
	// actually used is reported in [Layout.Seed].
	Seed uint64

	// Rotation restricts word orientation. Default: RotationMixed.
	Rotation RotationMode

	// Logger receives per-attempt progress. Default: discard.
	Logger *log.Logger
}

// Margin returns a pointer to px for [Options.Margin].
func Margin(px float64) *float64 {
	return &px
}

func (o Options) withDefaults() Options {
	if o.Shape == "" {
		o.Shape = mask.DefaultShape
	}
	if o.Margin == nil {
		o.Margin = Margin(grid.DefaultMargin)
	}
	if o.CellSize == 0 {
		o.CellSize = grid.DefaultCellSize
	}
	if o.Gamma == 0 {
		o.Gamma = words.DefaultGamma
	}
	if o.MinScale <= 0 || o.MinScale > 1 {
		o.MinScale = DefaultMinScale
	}
	if o.Measurer == nil {
		o.Measurer = fonts.DefaultMeasurer()
	}
	if o.Colors == nil {
		o.Colors = palette.Cycle(palette.Categorical...)
	}
	if o.Angles == "" {
		o.Angles = AnglesFixed
	}
	if o.Rotation == "" {
		o.Rotation = RotationMixed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// fontRange returns the attempt-independent font range for n words.
func (o Options) fontRange(n int) words.Range {
	r := words.FontRange(o.Width, o.Height, n)
	if o.MaxFontSize > 0 {
		r.Max = o.MaxFontSize
	}
	if o.MinFontSize > 0 {
		r.Min = o.MinFontSize
	}
	r.Min = min(r.Min, r.Max)
	return r
}
