// Package sink provides output format renderers for word cloud layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format:
//
//   - SVG: text elements, optionally with the font embedded
//   - PNG: raster image drawn with fogleman/gg
//   - JSON: the serializable [cloud.Layout]
//
// Every sink draws a word centred on its box, (x+w/2, y+h/2), rotated by
// the word's rotation about that centre. Sinks never move words; the
// layout guarantees boxes are in bounds and do not overlap.
//
// # SVG Output
//
//	svg := sink.RenderSVG(l,
//	    sink.WithBackground("#fdf6e3"),
//	    sink.WithEmbeddedFont(),
//	)
//
// # PNG Output
//
// PNG output uses the same embedded font as the layout measurer, so glyphs
// fill the boxes the layout reserved:
//
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//
// # JSON Output
//
//	data, err := sink.RenderJSON(l, sink.WithJSONPalette("ocean"))
//
// [layout.Layout]: github.com/matzehuels/wordcloud/pkg/core/cloud/layout.Layout
// [cloud.Layout]: github.com/matzehuels/wordcloud/pkg/cloud.Layout
package sink
