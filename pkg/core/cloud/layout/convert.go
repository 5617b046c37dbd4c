package layout

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/grid"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
	"github.com/matzehuels/wordcloud/pkg/core/words"
)

// Export converts the layout to the serialization format.
//
// Use this when the layout leaves the process: JSON files, API responses
// and caches.
func (l Layout) Export() cloud.Layout {
	out := cloud.Layout{
		Width:    l.Width,
		Height:   l.Height,
		Shape:    l.Shape.String(),
		Scale:    l.Scale,
		Margin:   l.Margin,
		Angles:   string(l.Angles),
		Rotation: string(l.Rotation),
		Seed:     l.Seed,
		Words:    make([]cloud.Word, len(l.Words)),
		Summary: cloud.Summary{
			TotalWords:  l.Summary.TotalWords,
			PlacedCount: l.Summary.PlacedCount,
			Attempts:    l.Summary.Attempts,
			Dropped:     l.Summary.Dropped,
		},
	}
	for i, w := range l.Words {
		out.Words[i] = cloud.Word{
			Text:       w.Text,
			Count:      w.Count,
			Rank:       w.Rank,
			FontSize:   w.FontSize,
			TargetSize: w.TargetSize,
			Rotation:   w.Rotation,
			X:          w.Box.X,
			Y:          w.Box.Y,
			Width:      w.Box.W,
			Height:     w.Box.H,
			Color:      w.Color,
		}
	}
	return out
}

// Parse converts a serialized layout back to the internal representation.
// It rejects unknown shapes and rotations other than 0 and 90.
func Parse(c cloud.Layout) (Layout, error) {
	shape, err := mask.ParseShape(c.Shape)
	if err != nil {
		return Layout{}, err
	}
	l := Layout{
		Width:    c.Width,
		Height:   c.Height,
		Shape:    shape,
		Margin:   c.Margin,
		Scale:    c.Scale,
		Angles:   AngleMode(c.Angles),
		Rotation: RotationMode(c.Rotation),
		Seed:     c.Seed,
		Words:    make([]PlacedWord, len(c.Words)),
		Summary: Summary{
			TotalWords:  c.Summary.TotalWords,
			PlacedCount: c.Summary.PlacedCount,
			Attempts:    c.Summary.Attempts,
			Dropped:     c.Summary.Dropped,
		},
	}
	for i, w := range c.Words {
		if w.Rotation != words.Horizontal && w.Rotation != words.Vertical {
			return Layout{}, fmt.Errorf("word %q: unsupported rotation %d", w.Text, w.Rotation)
		}
		l.Words[i] = PlacedWord{
			Text:       w.Text,
			Count:      w.Count,
			Rank:       w.Rank,
			TargetSize: w.TargetSize,
			FontSize:   w.FontSize,
			Rotation:   w.Rotation,
			Box:        grid.Box{X: w.X, Y: w.Y, W: w.Width, H: w.Height},
			Color:      w.Color,
		}
	}
	return l, nil
}
