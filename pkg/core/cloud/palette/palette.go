// Package palette assigns colours to words by their rank in the input list.
//
// A [Scheme] is a pure function of (index, total), so the same word list
// always produces the same colours regardless of where words end up on the
// canvas.
package palette

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Assigner returns a CSS hex colour for the word at index out of total.
type Assigner func(index, total int) string

// DefaultScheme is used when no scheme is named.
const DefaultScheme = "default"

// Categorical is a cycled qualitative palette with similar perceived weight.
var Categorical = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

var schemes = map[string]Assigner{
	"default": Cycle(Categorical...),
	"rainbow": Rainbow(0.55, 0.55),
	"ocean":   Gradient("#0b3d91", "#1fb5a8"),
	"sunset":  Gradient("#6a1b9a", "#f5a623"),
	"mono":    Mono("#333333"),
}

// Names returns the registered scheme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Parse looks up a scheme by case-insensitive name. The empty name selects
// [DefaultScheme].
func Parse(name string) (Assigner, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = DefaultScheme
	}
	a, ok := schemes[n]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return a, nil
}

// Cycle repeats the given colours in order.
func Cycle(hexes ...string) Assigner {
	return func(index, _ int) string {
		if len(hexes) == 0 {
			return "#000000"
		}
		return hexes[index%len(hexes)]
	}
}

// Mono assigns the same colour to every word.
func Mono(hex string) Assigner {
	return func(int, int) string { return hex }
}

// Rainbow sweeps the HCL hue circle once across the word list at constant
// chroma and luminance, so no hue dominates perceptually.
func Rainbow(chroma, luminance float64) Assigner {
	return func(index, total int) string {
		h := 360 * float64(index) / float64(max(1, total))
		return colorful.Hcl(h, chroma, luminance).Clamped().Hex()
	}
}

// Gradient blends from one colour to another in HCL space, with the first
// word taking from and the last word taking to.
func Gradient(from, to string) Assigner {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		panic(fmt.Sprintf("palette: invalid gradient %q -> %q", from, to))
	}
	return func(index, total int) string {
		t := 0.0
		if total > 1 {
			t = float64(index) / float64(total-1)
		}
		return a.BlendHcl(b, t).Clamped().Hex()
	}
}
