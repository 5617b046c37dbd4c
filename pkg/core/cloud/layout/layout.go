package layout

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/matzehuels/wordcloud/pkg/core/cloud/grid"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/spiral"
	"github.com/matzehuels/wordcloud/pkg/core/words"
)

// PlacedWord is a word that found a slot on the canvas.
type PlacedWord struct {
	Text  string
	Count int

	// Rank is the word's index in the input list; colours follow it.
	Rank int

	// TargetSize is the size the word was mapped to in the accepted
	// attempt. FontSize is the size it was placed at, after shrinking.
	TargetSize float64
	FontSize   float64
	Rotation   int

	// Box is the word's extent with the rotation applied.
	Box   grid.Box
	Color string
}

// CenterX returns the horizontal draw anchor of the word.
func (w PlacedWord) CenterX() float64 { return w.Box.CenterX() }

// CenterY returns the vertical draw anchor of the word.
func (w PlacedWord) CenterY() float64 { return w.Box.CenterY() }

// Summary reports how complete a layout is.
type Summary struct {
	TotalWords  int
	PlacedCount int

	// Attempts is the number of global scales tried.
	Attempts int

	// Dropped lists words that did not fit even at the floor size.
	Dropped []string
}

// Complete reports whether every word was placed.
func (s Summary) Complete() bool { return s.PlacedCount == s.TotalWords }

// Layout is the result of [Build]: positioned words ready for a sink.
type Layout struct {
	Width, Height int
	Shape         mask.Shape
	Margin        float64

	// Scale is the global factor of the accepted attempt, in
	// [Options.MinScale, 1].
	Scale float64

	Angles   AngleMode
	Rotation RotationMode
	Seed     uint64

	// Words are in placement order, largest first.
	Words   []PlacedWord
	Summary Summary
}

// Build packs ws into the silhouette described by opts.
//
// Words are placed greedily from largest to smallest, each by an outward
// spiral search. A word that does not fit is shrunk step by step; if some
// words still fail, the whole layout is retried at a smaller global scale.
// When no scale places every word, the attempt that placed the most is
// returned. Partial placement is reported in [Layout.Summary], not as an
// error.
//
// Build panics if the canvas is not positive or the shape is unknown. The
// only error it returns is ctx's, checked before each word is placed.
func Build(ctx context.Context, ws []words.WordWeight, opts Options) (Layout, error) {
	opts = opts.withDefaults()
	m := mask.New(opts.Width, opts.Height, opts.Shape)

	seed := opts.Seed
	if opts.Angles == AnglesRandom && seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	result := Layout{
		Width:    opts.Width,
		Height:   opts.Height,
		Shape:    opts.Shape,
		Margin:   *opts.Margin,
		Scale:    1,
		Angles:   opts.Angles,
		Rotation: opts.Rotation,
		Seed:     seed,
		Summary:  Summary{TotalWords: len(ws)},
	}
	if len(ws) == 0 {
		opts.Logger.Debug("nothing to place")
		return result, nil
	}

	b := builder{
		opts:  opts,
		mask:  m,
		words: ws,
		base:  opts.fontRange(len(ws)),
		seed:  seed,
	}

	var best attempt
	scale := 1.0
	for n := 1; ; n++ {
		a, err := b.attempt(ctx, scale)
		if err != nil {
			return Layout{}, err
		}
		opts.Logger.Debug("layout attempt",
			"attempt", n,
			"scale", scale,
			"placed", len(a.placed),
			"total", len(ws))

		// Scales only decrease, so ties keep the larger scale.
		if n == 1 || len(a.placed) > len(best.placed) {
			best = a
		}
		result.Summary.Attempts = n

		if len(a.placed) == len(ws) {
			break
		}
		if scale*ScaleStep < opts.MinScale {
			opts.Logger.Warn("could not place every word",
				"placed", len(best.placed),
				"total", len(ws),
				"scale", best.scale)
			break
		}
		scale *= ScaleStep
	}

	result.Scale = best.scale
	result.Words = best.placed
	result.Summary.PlacedCount = len(best.placed)
	result.Summary.Dropped = best.dropped
	return result, nil
}

type builder struct {
	opts  Options
	mask  *mask.Mask
	words []words.WordWeight
	base  words.Range
	seed  uint64
}

type attempt struct {
	scale   float64
	placed  []PlacedWord
	dropped []string
}

// attempt runs one greedy pass at a global scale. Every attempt starts from
// a fresh grid and angle source so its outcome depends only on scale.
func (b *builder) attempt(ctx context.Context, scale float64) (attempt, error) {
	r := b.base.Scale(scale)
	floor := max(words.FloorFontSize, r.Min*FloorRatio)
	sized := words.Map(b.words, r, b.opts.Gamma)

	order := make([]int, len(sized))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		return cmp.Compare(sized[j].FontSize, sized[i].FontSize)
	})

	g := grid.New(b.opts.Width, b.opts.Height, b.opts.CellSize, *b.opts.Margin)
	angles := b.angles()

	a := attempt{scale: scale, placed: make([]PlacedWord, 0, len(sized))}
	for k, i := range order {
		if err := ctx.Err(); err != nil {
			return attempt{}, err
		}
		w := sized[i]
		pw, ok := b.place(g, w, floor, angles.Angle(k))
		if !ok {
			a.dropped = append(a.dropped, w.Text)
			continue
		}
		pw.Rank = i
		pw.Color = b.opts.Colors(i, len(sized))
		g.Insert(pw.Box)
		a.placed = append(a.placed, pw)
	}
	return a, nil
}

// place tries the preferred then the alternate rotation at the target size,
// shrinking until floor. The floor size itself is tried exactly once.
func (b *builder) place(g *grid.Grid, w words.SizedWord, floor, angle float64) (PlacedWord, bool) {
	rotations := []int{w.Rotation, words.Alternate(w.Rotation)}
	if b.opts.Rotation == RotationHorizontal {
		rotations = []int{words.Horizontal}
	}

	size := w.FontSize
	for {
		for _, rot := range rotations {
			bw, bh := b.opts.Measurer.Measure(w.Text, size)
			if rot == words.Vertical {
				bw, bh = bh, bw
			}
			if x, y, ok := spiral.Search(bw, bh, b.mask, g, angle); ok {
				return PlacedWord{
					Text:       w.Text,
					Count:      w.Count,
					TargetSize: w.FontSize,
					FontSize:   size,
					Rotation:   rot,
					Box:        grid.Box{X: float64(x), Y: float64(y), W: bw, H: bh},
				}, true
			}
		}
		if size <= floor {
			return PlacedWord{}, false
		}
		size = max(floor, size*ShrinkStep)
	}
}

func (b *builder) angles() spiral.Angles {
	if b.opts.Angles == AnglesRandom {
		return spiral.NewSeeded(b.seed)
	}
	return spiral.Fixed{}
}
