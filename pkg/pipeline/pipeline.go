// Package pipeline provides the word-cloud pipeline shared by the CLI and
// the HTTP server.
//
// This package implements the complete words → layout → render pipeline.
// Centralizing it keeps defaults, validation, and caching identical for
// every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Prepare: count free text if given, then merge duplicates and keep the
//     MaxWords most frequent words
//  2. Layout: place the words inside the chosen silhouette
//  3. Render: generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Words:   ws,
//	    Shape:   "circle",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	ws, err := pipeline.PrepareWords(opts)
//	l, err := runner.GenerateLayout(ctx, ws, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/grid"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/palette"
	"github.com/matzehuels/wordcloud/pkg/core/words"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600

	// DefaultMaxWords is the number of most frequent words kept.
	DefaultMaxWords = words.DefaultMaxWords
)

// DefaultShape is the default silhouette.
const DefaultShape = string(mask.DefaultShape)

// DefaultPalette is the default colour scheme.
const DefaultPalette = palette.DefaultScheme

// DefaultAngles is the default spiral start-angle mode.
const DefaultAngles = string(layout.AnglesFixed)

// DefaultMargin is the default gap between words in pixels.
const DefaultMargin = grid.DefaultMargin

// DefaultRotation is the default rotation policy.
const DefaultRotation = string(layout.RotationMixed)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the word-cloud pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Words and Text are mutually exclusive; Text is
	// tokenized and counted.
	Words       []words.WordWeight `json:"words,omitempty"`
	Text        string             `json:"text,omitempty"`
	MinLength   int                `json:"min_length,omitempty"`
	KeepNumbers bool               `json:"keep_numbers,omitempty"`

	// Normalization options
	MaxWords      int  `json:"max_words,omitempty"`
	CaseSensitive bool `json:"case_sensitive,omitempty"`

	// Layout options
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	Shape       string  `json:"shape,omitempty"`
	Palette     string  `json:"palette,omitempty"`
	Angles      string  `json:"angles,omitempty"`
	Rotation    string  `json:"rotation,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
	Margin      *float64 `json:"margin,omitempty"`
	MinFontSize float64 `json:"min_font_size,omitempty"`
	MaxFontSize float64 `json:"max_font_size,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"`
	EmbedFont  bool     `json:"embed_font,omitempty"`
	ShowBoxes  bool     `json:"show_boxes,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG pixel density

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Measurer layout.Measurer `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Words is the normalized word list that was laid out.
	Words []words.WordWeight

	// WordsHash is the content hash of Words.
	WordsHash string

	// Layout is the placed cloud.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WordCount   int
	PlacedCount int
	Attempts    int
	Scale       float64
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateShape checks that a shape name is known.
func ValidateShape(shape string) error {
	if _, err := mask.ParseShape(shape); err != nil {
		return errs.New(errs.ErrCodeInvalidShape, "%v", err)
	}
	return nil
}

// ValidatePalette checks that a palette name is known.
func ValidatePalette(name string) error {
	if _, err := palette.Parse(name); err != nil {
		return errs.New(errs.ErrCodeInvalidPalette, "%v", err)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForInput(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// ValidateForInput checks the word input.
func (o *Options) ValidateForInput() error {
	if len(o.Words) > 0 && o.Text != "" {
		return errs.New(errs.ErrCodeInvalidInput, "words and text are mutually exclusive")
	}
	for _, w := range o.Words {
		if err := errs.ValidateWord(w.Text, w.Count); err != nil {
			return err
		}
	}
	if o.MaxWords < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_words must not be negative")
	}
	if o.MaxWords == 0 {
		o.MaxWords = DefaultMaxWords
	}
	if err := errs.ValidateWordCount(o.MaxWords); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.MaxWords == 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Shape == "" {
		o.Shape = DefaultShape
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Angles == "" {
		o.Angles = DefaultAngles
	}
	if o.Rotation == "" {
		o.Rotation = DefaultRotation
	}
	if o.Margin == nil {
		o.Margin = layout.Margin(DefaultMargin)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errs.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateShape(o.Shape); err != nil {
		return err
	}
	if err := ValidatePalette(o.Palette); err != nil {
		return err
	}
	if _, err := layout.ParseAngleMode(o.Angles); err != nil {
		return errs.New(errs.ErrCodeInvalidInput, "%v", err)
	}
	if _, err := layout.ParseRotationMode(o.Rotation); err != nil {
		return errs.New(errs.ErrCodeInvalidInput, "%v", err)
	}
	if o.Margin != nil && *o.Margin < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "margin must not be negative")
	}
	if o.MinFontSize < 0 || o.MaxFontSize < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "font sizes must not be negative")
	}
	if o.MinFontSize > 0 && o.MaxFontSize > 0 && o.MinFontSize > o.MaxFontSize {
		return errs.New(errs.ErrCodeInvalidInput, "min_font_size %.1f exceeds max_font_size %.1f", o.MinFontSize, o.MaxFontSize)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = 2
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errs.ValidateColor(o.Background); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > 8 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be in (0, 8], got %g", o.Scale)
	}
	if o.Palette != "" {
		return ValidatePalette(o.Palette)
	}
	return nil
}

// Deterministic reports whether the same inputs always give the same
// layout. Random angles without a seed use the clock, so their layouts are
// never cached.
func (o *Options) Deterministic() bool {
	return !(o.Angles == string(layout.AnglesRandom) && o.Seed == 0)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		Shape:         o.Shape,
		Angles:        o.Angles,
		Rotation:      o.Rotation,
		Seed:          o.Seed,
		Palette:       o.Palette,
		MaxWords:      o.MaxWords,
		CaseSensitive: o.CaseSensitive,
		Margin:        o.margin(),
		MinFontSize:   o.MinFontSize,
		MaxFontSize:   o.MaxFontSize,
	}
}

// margin returns the requested word gap, or DefaultMargin when unset.
func (o *Options) margin() float64 {
	if o.Margin == nil {
		return DefaultMargin
	}
	return *o.Margin
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		ShowBoxes:  o.ShowBoxes,
	}
	switch format {
	case FormatSVG:
		k.EmbedFont = o.EmbedFont
	case FormatPNG:
		k.Scale = o.Scale
	}
	return k
}
