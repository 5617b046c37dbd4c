package pipeline

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/sink"
)

// Render generates output artifacts in the requested formats.
func Render(l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, buildPNGOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONPalette(opts.Palette))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Background != "" && opts.Background != "none" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	if opts.ShowBoxes {
		svgOpts = append(svgOpts, sink.WithBoxes())
	}
	return svgOpts
}

func buildPNGOptions(opts Options) []sink.PNGOption {
	var pngOpts []sink.PNGOption
	if opts.Scale > 0 {
		pngOpts = append(pngOpts, sink.WithScale(opts.Scale))
	}
	switch opts.Background {
	case "":
	case "none":
		pngOpts = append(pngOpts, sink.WithPNGBackground(""))
	default:
		pngOpts = append(pngOpts, sink.WithPNGBackground(opts.Background))
	}
	if opts.ShowBoxes {
		pngOpts = append(pngOpts, sink.WithPNGBoxes())
	}
	return pngOpts
}

// applyLayoutMetadata fills render options from a serialized layout so a
// re-rendered layout keeps its recorded palette.
func applyLayoutMetadata(opts Options, c cloud.Layout) Options {
	if opts.Palette == "" && c.Palette != "" {
		opts.Palette = c.Palette
	}
	return opts
}

// RenderFromLayoutData renders output from serialized layout JSON.
func RenderFromLayoutData(data []byte, opts Options) (map[string][]byte, error) {
	parsed, err := cloud.UnmarshalLayout(data)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(parsed, opts)
}

// RenderFromLayout renders output from a serialized cloud.Layout.
func RenderFromLayout(c cloud.Layout, opts Options) (map[string][]byte, error) {
	l, err := layout.Parse(c)
	if err != nil {
		return nil, fmt.Errorf("convert layout: %w", err)
	}
	return Render(l, applyLayoutMetadata(opts, c))
}
