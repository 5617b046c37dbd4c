package sink

import (
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	palette string
}

// WithJSONPalette records the palette name in the output for documentation
// or round-trip rendering.
func WithJSONPalette(name string) JSONOption {
	return func(r *jsonRenderer) { r.palette = name }
}

// RenderJSON exports the layout as a pretty-printed [cloud.Layout]
// document. The output can be read back with [cloud.UnmarshalLayout] and
// rendered again identically.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := l.Export()
	out.Palette = r.palette
	return cloud.MarshalLayout(out)
}
