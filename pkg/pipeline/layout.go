package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/palette"
	"github.com/matzehuels/wordcloud/pkg/core/words"
)

// =============================================================================
// Word Preparation
// =============================================================================

// PrepareWords turns the input options into the normalized list that is
// laid out: Text is counted when given, then duplicates are merged and the
// MaxWords most frequent words are kept.
func PrepareWords(opts Options) ([]words.WordWeight, error) {
	if err := opts.ValidateForInput(); err != nil {
		return nil, err
	}
	norm := words.NormalizeOptions{
		CaseSensitive: opts.CaseSensitive,
		MaxWords:      opts.MaxWords,
	}
	ws := opts.Words
	if opts.Text != "" {
		ws = words.Count(opts.Text, words.CountOptions{
			NormalizeOptions: norm,
			MinLength:        opts.MinLength,
			KeepNumbers:      opts.KeepNumbers,
		})
	}
	return words.Normalize(ws, norm), nil
}

// HashWords returns the content hash of a word list, used as the layout
// cache key input.
func HashWords(ws []words.WordWeight) string {
	data, err := json.Marshal(ws)
	if err != nil {
		// WordWeight has only string and int fields.
		panic(err)
	}
	return cache.Hash(data)
}

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout places an already normalized word list.
func GenerateLayout(ctx context.Context, ws []words.WordWeight, opts Options) (layout.Layout, error) {
	lopts, err := opts.layoutOptions()
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Build(ctx, ws, lopts)
}

// layoutOptions converts validated pipeline options into layout options.
func (o *Options) layoutOptions() (layout.Options, error) {
	shape, err := mask.ParseShape(o.Shape)
	if err != nil {
		return layout.Options{}, err
	}
	colors, err := palette.Parse(o.Palette)
	if err != nil {
		return layout.Options{}, err
	}
	angles, err := layout.ParseAngleMode(o.Angles)
	if err != nil {
		return layout.Options{}, err
	}
	rotation, err := layout.ParseRotationMode(o.Rotation)
	if err != nil {
		return layout.Options{}, fmt.Errorf("rotation: %w", err)
	}
	return layout.Options{
		Width:       o.Width,
		Height:      o.Height,
		Shape:       shape,
		Margin:      o.Margin,
		MinFontSize: o.MinFontSize,
		MaxFontSize: o.MaxFontSize,
		Measurer:    o.Measurer,
		Colors:      colors,
		Angles:      angles,
		Seed:        o.Seed,
		Rotation:    rotation,
		Logger:      o.Logger,
	}, nil
}
