package layout

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
)

func TestExportParseRoundTrip(t *testing.T) {
	l, err := Build(context.Background(), sampleWords(15), Options{
		Width:  300,
		Height: 200,
		Shape:  mask.Diamond,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	exported := l.Export()
	if exported.Shape != "diamond" || len(exported.Words) != len(l.Words) {
		t.Fatalf("Export() = shape %q, %d words", exported.Shape, len(exported.Words))
	}
	w := exported.Words[0]
	if w.CenterX() != l.Words[0].CenterX() || w.CenterY() != l.Words[0].CenterY() {
		t.Error("exported anchor differs")
	}

	parsed, err := Parse(exported)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(parsed, l) {
		t.Errorf("round trip changed the layout:\n got %+v\nwant %+v", parsed, l)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   cloud.Layout
	}{
		{"bad shape", cloud.Layout{Width: 10, Height: 10, Shape: "blob"}},
		{"bad rotation", cloud.Layout{
			Width: 10, Height: 10, Shape: "circle",
			Words: []cloud.Word{{Text: "x", Rotation: 45}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.in); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}
