package mask

import (
	"fmt"
	"strings"
)

// Shape identifies a silhouette the cloud is packed into.
type Shape string

// Supported shapes.
const (
	Rectangle Shape = "rectangle"
	Square    Shape = "square"
	Circle    Shape = "circle"
	Triangle  Shape = "triangle"
	Diamond   Shape = "diamond"
	Star      Shape = "star"
	Heart     Shape = "heart"
)

// DefaultShape is used when no shape is specified.
const DefaultShape = Rectangle

// Shapes lists every supported shape in display order.
var Shapes = []Shape{Rectangle, Square, Circle, Triangle, Diamond, Star, Heart}

// Valid reports whether s is a supported shape.
func (s Shape) Valid() bool {
	for _, v := range Shapes {
		if s == v {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (s Shape) String() string { return string(s) }

// ParseShape converts a user-supplied name to a Shape. Matching is
// case-insensitive; the empty string yields DefaultShape.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultShape, nil
	}
	s := Shape(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown shape %q (must be one of: %s)", name, ShapeNames())
	}
	return s, nil
}

// ShapeNames returns the supported shape names joined by ", ".
func ShapeNames() string {
	names := make([]string, len(Shapes))
	for i, s := range Shapes {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
