package cloud

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Word Cloud Serialization Format
// =============================================================================

// Layout is the serialization format of a computed word cloud.
//
// It carries everything a sink needs to draw the cloud (canvas size, word
// boxes, rotations, colours) plus the options that produced it, so a saved
// layout can be re-rendered identically or replayed with the same seed.
//
// The internal representation used during placement lives in
// pkg/core/cloud/layout; use its Export and Parse functions to convert.
type Layout struct {
	Width  int    `json:"width" bson:"width"`
	Height int    `json:"height" bson:"height"`
	Shape  string `json:"shape" bson:"shape"`

	// Placement parameters
	Scale    float64 `json:"scale" bson:"scale"`
	Margin   float64 `json:"margin,omitempty" bson:"margin,omitempty"`
	Angles   string  `json:"angles,omitempty" bson:"angles,omitempty"`
	Rotation string  `json:"rotation,omitempty" bson:"rotation,omitempty"`
	Seed     uint64  `json:"seed,omitempty" bson:"seed,omitempty"`
	Palette  string  `json:"palette,omitempty" bson:"palette,omitempty"`

	Words   []Word  `json:"words" bson:"words"`
	Summary Summary `json:"summary" bson:"summary"`
}

// =============================================================================
// Word - Positioned Word
// =============================================================================

// Word is a placed word. (X, Y) is the top-left corner of its box with the
// rotation already applied; sinks draw the text centred in the box.
type Word struct {
	Text       string  `json:"text" bson:"text"`
	Count      int     `json:"count" bson:"count"`
	Rank       int     `json:"rank" bson:"rank"`
	FontSize   float64 `json:"font_size" bson:"font_size"`
	TargetSize float64 `json:"target_size,omitempty" bson:"target_size,omitempty"`
	Rotation   int     `json:"rotation" bson:"rotation"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
	Color      string  `json:"color,omitempty" bson:"color,omitempty"`
}

// CenterX returns the horizontal draw anchor.
func (w Word) CenterX() float64 { return w.X + w.Width/2 }

// CenterY returns the vertical draw anchor.
func (w Word) CenterY() float64 { return w.Y + w.Height/2 }

// IsVertical reports whether the word is drawn rotated by 90 degrees.
func (w Word) IsVertical() bool { return w.Rotation == 90 }

// Summary reports how many input words made it into the layout.
type Summary struct {
	TotalWords  int      `json:"total_words" bson:"total_words"`
	PlacedCount int      `json:"placed_count" bson:"placed_count"`
	Attempts    int      `json:"attempts,omitempty" bson:"attempts,omitempty"`
	Dropped     []string `json:"dropped,omitempty" bson:"dropped,omitempty"`
}

// Complete reports whether every word was placed.
func (s Summary) Complete() bool { return s.PlacedCount == s.TotalWords }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that the
// canvas is usable.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout canvas must be positive, got %dx%d", l.Width, l.Height)
	}
	if l.Scale == 0 {
		l.Scale = 1
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
