package mask

import (
	"fmt"
	"math"
	"math/bits"
)

// Mask is a read-only occupancy bitmap of a shape over a canvas.
// A pixel (px, py) is inside when the shape covers its centre.
type Mask struct {
	Width, Height    int
	CenterX, CenterY float64
	Shape            Shape

	bits []uint64
}

// New rasterizes shape over a width x height canvas.
//
// New panics if either dimension is not positive or the shape is unknown;
// both are programming errors, and callers validate user input first.
func New(width, height int, shape Shape) *Mask {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("mask: canvas must be positive, got %dx%d", width, height))
	}
	g := geometryFor(shape, width, height)

	m := &Mask{
		Width:   width,
		Height:  height,
		CenterX: float64(width) / 2,
		CenterY: float64(height) / 2,
		Shape:   shape,
		bits:    make([]uint64, (width*height+63)/64),
	}
	for py := range height {
		g.spans(float64(py)+0.5, func(x0, x1 float64) {
			m.fillSpan(py, x0, x1)
		})
	}
	return m
}

// fillSpan marks every pixel on row py whose centre lies in [x0, x1].
func (m *Mask) fillSpan(py int, x0, x1 float64) {
	first := max(0, int(math.Ceil(x0-0.5)))
	last := min(m.Width-1, int(math.Floor(x1-0.5)))
	for px := first; px <= last; px++ {
		i := py*m.Width + px
		m.bits[i>>6] |= 1 << (i & 63)
	}
}

// IsInside reports whether pixel (x, y) is covered by the shape.
// Pixels outside the canvas are never inside.
func (m *Mask) IsInside(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	i := y*m.Width + x
	return m.bits[i>>6]&(1<<(i&63)) != 0
}

// IsRectInside reports whether the four corner pixels of the rectangle at
// (x, y) with size w x h are inside the shape. Only corners are tested, so a
// rectangle may bleed slightly past a concave boundary.
func (m *Mask) IsRectInside(x, y, w, h float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	left := int(math.Floor(x))
	top := int(math.Floor(y))
	right := int(math.Ceil(x+w)) - 1
	bottom := int(math.Ceil(y+h)) - 1
	return m.IsInside(left, top) &&
		m.IsInside(right, top) &&
		m.IsInside(left, bottom) &&
		m.IsInside(right, bottom)
}

// Coverage returns the fraction of canvas pixels inside the shape.
func (m *Mask) Coverage() float64 {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return float64(n) / float64(m.Width*m.Height)
}
