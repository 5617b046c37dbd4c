// Package spiral finds a free slot for one word box by walking an
// Archimedean spiral outward from the centre of a shape mask.
package spiral

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/wordcloud/pkg/core/cloud/grid"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
)

const (
	minStep     = 4.0
	goldenAngle = math.Pi * (3 - 2.2360679774997896964) // π(3-√5)
)

// Search scans candidate positions for a w x h box along an outward spiral
// starting at the mask centre and heading in direction startAngle (radians).
// It returns the top-left corner of the first position whose corners lie
// inside m and which does not collide with g.
//
// Search does not modify m or g; the caller inserts the accepted box.
func Search(w, h float64, m *mask.Mask, g *grid.Grid, startAngle float64) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}

	step := max(minStep, min(w, h)/3)
	maxRadius := float64(max(m.Width, m.Height))
	angle := startAngle

	for radius := 0.0; radius < maxRadius; {
		x = int(math.Round(m.CenterX + radius*math.Cos(angle) - w/2))
		y = int(math.Round(m.CenterY + radius*math.Sin(angle) - h/2))

		if m.IsRectInside(float64(x), float64(y), w, h) &&
			!g.Collides(grid.Box{X: float64(x), Y: float64(y), W: w, H: h}) {
			return x, y, true
		}

		angle += step / max(radius, step)
		radius += step / (2 * math.Pi)
	}
	return 0, 0, false
}

// =============================================================================
// Start angles
// =============================================================================

// Angles yields the spiral start angle for the i-th word of an attempt.
type Angles interface {
	Angle(i int) float64
}

// Fixed spreads start angles by the golden angle so consecutive words leave
// the centre in well separated directions. It is stateless and reproducible.
type Fixed struct{}

// Angle returns i times the golden angle, wrapped to [0, 2π).
func (Fixed) Angle(i int) float64 {
	return math.Mod(float64(i)*goldenAngle, 2*math.Pi)
}

// Seeded draws uniformly random start angles from a PCG generator. Two
// instances created with the same seed yield the same sequence.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a random angle source seeded with seed.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Angle ignores i and returns the next random angle in [0, 2π).
func (s *Seeded) Angle(int) float64 {
	return s.rng.Float64() * 2 * math.Pi
}
