package grid

import "testing"

func TestBoxOverlaps(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name   string
		b      Box
		margin float64
		want   bool
	}{
		{"intersecting", Box{X: 5, Y: 5, W: 10, H: 10}, 0, true},
		{"touching without margin", Box{X: 10, Y: 0, W: 5, H: 5}, 0, false},
		{"exactly margin apart", Box{X: 12, Y: 0, W: 5, H: 5}, 2, false},
		{"inside margin", Box{X: 11, Y: 0, W: 5, H: 5}, 2, true},
		{"far below", Box{X: 0, Y: 30, W: 5, H: 5}, 2, false},
		{"contained", Box{X: 2, Y: 2, W: 1, H: 1}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b, tt.margin); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a, tt.margin); got != tt.want {
				t.Errorf("Overlaps() is not symmetric: %v", got)
			}
		})
	}
}

func TestGridCollides(t *testing.T) {
	g := New(200, 100, 25, 2)
	placed := Box{X: 40, Y: 40, W: 60, H: 20}
	g.Insert(placed)

	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"same box", placed, true},
		{"overlapping across cells", Box{X: 90, Y: 50, W: 40, H: 10}, true},
		{"within margin on the left", Box{X: 20, Y: 40, W: 19, H: 10}, true},
		{"clear on the left", Box{X: 10, Y: 40, W: 28, H: 10}, false},
		{"clear below", Box{X: 40, Y: 62, W: 60, H: 10}, false},
		{"far away", Box{X: 150, Y: 5, W: 10, H: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Collides(tt.b); got != tt.want {
				t.Errorf("Collides(%+v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestGridBoxSpanningManyCells(t *testing.T) {
	g := New(100, 100, 10, 0)
	g.Insert(Box{X: 5, Y: 5, W: 90, H: 3})

	// A small box in a far cell of the long box must still collide.
	if !g.Collides(Box{X: 85, Y: 6, W: 2, H: 1}) {
		t.Error("box in a far cell of a wide box should collide")
	}
}

func TestGridOutOfCanvas(t *testing.T) {
	g := New(50, 50, 25, 0)
	g.Insert(Box{X: -10, Y: -10, W: 20, H: 20})
	if !g.Collides(Box{X: 0, Y: 0, W: 5, H: 5}) {
		t.Error("boxes clamped to the edge cells should still be found")
	}
}

func TestGridClear(t *testing.T) {
	g := New(100, 100, 0, -1)
	if g.CellSize != DefaultCellSize || g.Margin != 0 {
		t.Errorf("defaults = (%v, %v), want (%v, 0)", g.CellSize, g.Margin, DefaultCellSize)
	}
	b := Box{X: 10, Y: 10, W: 10, H: 10}
	g.Insert(b)
	g.Clear()
	if g.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", g.Len())
	}
	if g.Collides(b) {
		t.Error("Collides() after Clear should be false")
	}
}
