// Package grid provides a uniform bucket index over placed word boxes.
//
// The canvas is divided into square cells. A box is registered in every cell
// it overlaps, so a collision query only needs to inspect the handful of
// cells under the candidate instead of every placed word.
package grid

import "math"

// Defaults used by the layout.
const (
	DefaultCellSize = 25.0
	DefaultMargin   = 2.0
)

// Box is an axis-aligned rectangle in canvas pixels. Rotation is already
// applied: a vertical word has its width and height swapped.
type Box struct {
	X, Y, W, H float64
}

// Right returns the right edge of the box.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the bottom edge of the box.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal centre of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical centre of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Inflate grows the box by d on every side.
func (b Box) Inflate(d float64) Box {
	return Box{X: b.X - d, Y: b.Y - d, W: b.W + 2*d, H: b.H + 2*d}
}

// Overlaps reports whether b and o come closer than margin to each other.
// Boxes exactly margin apart do not overlap.
func (b Box) Overlaps(o Box, margin float64) bool {
	return b.X < o.Right()+margin &&
		o.X < b.Right()+margin &&
		b.Y < o.Bottom()+margin &&
		o.Y < b.Bottom()+margin
}

// Grid indexes boxes by the cells they cover. It is not safe for
// concurrent use.
type Grid struct {
	CellSize float64
	Margin   float64

	cols, rows int
	buckets    [][]Box
	n          int
}

// New creates an empty grid over a width x height canvas. Non-positive
// cellSize falls back to DefaultCellSize; negative margin is treated as 0.
func New(width, height int, cellSize, margin float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	cols := max(1, int(math.Ceil(float64(width)/cellSize)))
	rows := max(1, int(math.Ceil(float64(height)/cellSize)))
	return &Grid{
		CellSize: cellSize,
		Margin:   max(0, margin),
		cols:     cols,
		rows:     rows,
		buckets:  make([][]Box, cols*rows),
	}
}

// Insert registers b in every cell it overlaps.
func (g *Grid) Insert(b Box) {
	c0, r0, c1, r1 := g.cellRange(b)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			i := r*g.cols + c
			g.buckets[i] = append(g.buckets[i], b)
		}
	}
	g.n++
}

// Collides reports whether b, inflated by the grid margin, intersects any
// inserted box.
func (g *Grid) Collides(b Box) bool {
	c0, r0, c1, r1 := g.cellRange(b.Inflate(g.Margin))
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			for _, o := range g.buckets[r*g.cols+c] {
				if b.Overlaps(o, g.Margin) {
					return true
				}
			}
		}
	}
	return false
}

// Clear removes every box while keeping allocated buckets.
func (g *Grid) Clear() {
	for i := range g.buckets {
		g.buckets[i] = g.buckets[i][:0]
	}
	g.n = 0
}

// Len returns the number of inserted boxes.
func (g *Grid) Len() int { return g.n }

// cellRange returns the inclusive cell span covered by b, clamped to the grid.
func (g *Grid) cellRange(b Box) (c0, r0, c1, r1 int) {
	c0 = g.clampCol(int(math.Floor(b.X / g.CellSize)))
	r0 = g.clampRow(int(math.Floor(b.Y / g.CellSize)))
	c1 = g.clampCol(int(math.Floor(b.Right() / g.CellSize)))
	r1 = g.clampRow(int(math.Floor(b.Bottom() / g.CellSize)))
	return c0, r0, c1, r1
}

func (g *Grid) clampCol(c int) int { return max(0, min(g.cols-1, c)) }
func (g *Grid) clampRow(r int) int { return max(0, min(g.rows-1, r)) }
