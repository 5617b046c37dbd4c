package mask

import (
	"fmt"
	"math"
	"slices"
)

const (
	starPoints      = 5
	starInnerRatio  = 0.45
	bezierSegments  = 32
	heartNotchDepth = 0.5
)

// geometry reports the horizontal intervals of a filled shape that lie on a
// horizontal line. Intervals are closed and may extend past the canvas.
type geometry interface {
	spans(y float64, emit func(x0, x1 float64))
}

type point struct{ X, Y float64 }

func (p point) lerp(q point, t float64) point {
	return point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// geometryFor builds the filled outline of shape on a width x height canvas.
// Every shape except Rectangle is fitted into the centred square whose side
// is the smaller canvas dimension.
func geometryFor(shape Shape, width, height int) geometry {
	w, h := float64(width), float64(height)
	cx, cy := w/2, h/2
	r := min(w, h) / 2

	switch shape {
	case Rectangle:
		return rect{x0: 0, y0: 0, x1: w, y1: h}
	case Square:
		return rect{x0: cx - r, y0: cy - r, x1: cx + r, y1: cy + r}
	case Circle:
		return circle{cx: cx, cy: cy, r: r}
	case Triangle:
		return polygon{
			{cx, cy - r},
			{cx + r, cy + r},
			{cx - r, cy + r},
		}
	case Diamond:
		return polygon{
			{cx, cy - r},
			{cx + r, cy},
			{cx, cy + r},
			{cx - r, cy},
		}
	case Star:
		return starPolygon(cx, cy, r, r*starInnerRatio)
	case Heart:
		return heartPolygon(cx, cy, r)
	default:
		panic(fmt.Sprintf("mask: unknown shape %q", shape))
	}
}

type rect struct{ x0, y0, x1, y1 float64 }

func (g rect) spans(y float64, emit func(x0, x1 float64)) {
	if y >= g.y0 && y <= g.y1 {
		emit(g.x0, g.x1)
	}
}

type circle struct{ cx, cy, r float64 }

func (g circle) spans(y float64, emit func(x0, x1 float64)) {
	dy := y - g.cy
	if math.Abs(dy) > g.r {
		return
	}
	half := math.Sqrt(g.r*g.r - dy*dy)
	emit(g.cx-half, g.cx+half)
}

// polygon is a closed outline filled with the even-odd rule.
type polygon []point

func (g polygon) spans(y float64, emit func(x0, x1 float64)) {
	var xs []float64
	for i := range g {
		p0, p1 := g[i], g[(i+1)%len(g)]
		if (p0.Y <= y) == (p1.Y <= y) {
			continue
		}
		t := (y - p0.Y) / (p1.Y - p0.Y)
		xs = append(xs, p0.X+t*(p1.X-p0.X))
	}
	slices.Sort(xs)
	for i := 0; i+1 < len(xs); i += 2 {
		emit(xs[i], xs[i+1])
	}
}

// starPolygon returns a 10-point star pointing up.
func starPolygon(cx, cy, outer, inner float64) polygon {
	pts := make(polygon, 0, 2*starPoints)
	for i := range 2 * starPoints {
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/starPoints
		pts = append(pts, point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)})
	}
	return pts
}

// heartPolygon flattens two lobes, each made of two cubic Bézier curves,
// into a polygon. Unit coordinates span [-1, 1] and are scaled by r.
func heartPolygon(cx, cy, r float64) polygon {
	notch := point{0, -heartNotchDepth}
	tip := point{0, 0.95}
	left := point{-1, -0.35}
	right := point{1, -0.35}

	curves := [][4]point{
		{notch, {-0.1, -0.95}, {-1, -0.95}, left},
		{left, {-1, 0.15}, {-0.45, 0.45}, tip},
		{tip, {0.45, 0.45}, {1, 0.15}, right},
		{right, {1, -0.95}, {0.1, -0.95}, notch},
	}

	pts := make(polygon, 0, len(curves)*bezierSegments)
	for _, c := range curves {
		for i := range bezierSegments {
			p := cubic(c, float64(i)/bezierSegments)
			pts = append(pts, point{cx + p.X*r, cy + p.Y*r})
		}
	}
	return pts
}

// cubic evaluates a cubic Bézier curve at t using de Casteljau's algorithm.
func cubic(c [4]point, t float64) point {
	a, b, d := c[0].lerp(c[1], t), c[1].lerp(c[2], t), c[2].lerp(c[3], t)
	e, f := a.lerp(b, t), b.lerp(d, t)
	return e.lerp(f, t)
}
