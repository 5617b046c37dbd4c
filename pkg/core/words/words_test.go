package words

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	input := []WordWeight{
		{Text: "Go", Count: 3},
		{Text: "go", Count: 5},
		{Text: "Rust", Count: 2},
		{Text: "  ", Count: 4},
		{Text: "zero", Count: 0},
	}

	tests := []struct {
		name string
		opts NormalizeOptions
		want []WordWeight
	}{
		{
			name: "case insensitive merges spellings",
			opts: NormalizeOptions{},
			want: []WordWeight{{"go", 8}, {"Rust", 2}},
		},
		{
			name: "case sensitive keeps spellings",
			opts: NormalizeOptions{CaseSensitive: true},
			want: []WordWeight{{"go", 5}, {"Go", 3}, {"Rust", 2}},
		},
		{
			name: "max words caps result",
			opts: NormalizeOptions{MaxWords: 1},
			want: []WordWeight{{"go", 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(input, tt.opts)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Normalize()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeTiesKeepInputOrder(t *testing.T) {
	got := Normalize([]WordWeight{{"beta", 1}, {"alpha", 1}, {"gamma", 1}}, NormalizeOptions{})
	want := []string{"beta", "alpha", "gamma"}
	for i, w := range got {
		if w.Text != want[i] {
			t.Errorf("Normalize()[%d] = %q, want %q", i, w.Text, want[i])
		}
	}
}

func TestNormalizeDefaultCap(t *testing.T) {
	var ws []WordWeight
	for i := 0; i < DefaultMaxWords+50; i++ {
		ws = append(ws, WordWeight{Text: string(rune('a'+i%26)) + string(rune('A'+i/26)), Count: i + 1})
	}
	got := Normalize(ws, NormalizeOptions{CaseSensitive: true})
	if len(got) != DefaultMaxWords {
		t.Fatalf("len = %d, want %d", len(got), DefaultMaxWords)
	}
	if got[0].Count != DefaultMaxWords+50 {
		t.Errorf("first count = %d, want highest count", got[0].Count)
	}
}

func TestCount(t *testing.T) {
	got := Count("The cat sat on the mat. The cat!", CountOptions{})
	want := []WordWeight{{"cat", 2}, {"sat", 1}, {"mat", 1}}
	if len(got) != len(want) {
		t.Fatalf("Count() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Count()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCountOptions(t *testing.T) {
	text := "it's 2024 and go-lang rocks, 2024 again"

	got := Count(text, CountOptions{StopWords: []string{}, MinLength: 2})
	seen := map[string]int{}
	for _, w := range got {
		seen[w.Text] = w.Count
	}
	if seen["it's"] != 1 || seen["go-lang"] != 1 {
		t.Errorf("apostrophes and hyphens should stay inside tokens: %v", got)
	}
	if _, ok := seen["2024"]; ok {
		t.Error("numbers should be dropped by default")
	}

	got = Count(text, CountOptions{StopWords: []string{}, KeepNumbers: true})
	if got[0].Text != "2024" || got[0].Count != 2 {
		t.Errorf("KeepNumbers: first = %v, want 2024 x2", got[0])
	}
}

func TestFontRange(t *testing.T) {
	tests := []struct {
		name          string
		w, h, n       int
		wantMin, want float64
	}{
		{"large canvas capped at 70", 800, 600, 10, 70.0 / 6, 70},
		{"small canvas by dimension", 100, 400, 10, 10, 20},
		{"many words shrink", 800, 600, 200, 10, 42},
		{"tiny canvas min clamped to max", 40, 40, 5, 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FontRange(tt.w, tt.h, tt.n)
			if math.Abs(r.Max-tt.want) > 1e-9 {
				t.Errorf("Max = %v, want %v", r.Max, tt.want)
			}
			if math.Abs(r.Min-tt.wantMin) > 1e-9 {
				t.Errorf("Min = %v, want %v", r.Min, tt.wantMin)
			}
		})
	}
}

func TestRangeScale(t *testing.T) {
	r := Range{Min: 10, Max: 60}.Scale(0.5)
	if r.Min != 8 || r.Max != 30 {
		t.Errorf("Scale(0.5) = %+v, want {8 30}", r)
	}
	r = Range{Min: 10, Max: 12}.Scale(0.25)
	if r.Min != FloorFontSize || r.Max != FloorFontSize {
		t.Errorf("Scale(0.25) = %+v, want both at floor", r)
	}
}

func TestWeight(t *testing.T) {
	if got := Weight(5, 1, 5, DefaultGamma); got != 1 {
		t.Errorf("Weight(max) = %v, want 1", got)
	}
	if got := Weight(1, 1, 5, DefaultGamma); got != 0 {
		t.Errorf("Weight(min) = %v, want 0", got)
	}
	if got := Weight(3, 3, 3, DefaultGamma); got != 1 {
		t.Errorf("Weight(degenerate) = %v, want 1", got)
	}
	// Gamma below one lifts mid-range words.
	if got := Weight(3, 1, 5, DefaultGamma); got <= 0.5 {
		t.Errorf("Weight(mid) = %v, want > 0.5", got)
	}
}

func TestMapMonotonic(t *testing.T) {
	ws := []WordWeight{{"a", 100}, {"b", 40}, {"c", 40}, {"d", 7}, {"e", 1}}
	sized := Map(ws, Range{Min: 10, Max: 70}, DefaultGamma)

	if sized[0].FontSize != 70 {
		t.Errorf("top word size = %v, want 70", sized[0].FontSize)
	}
	if sized[len(sized)-1].FontSize != 10 {
		t.Errorf("bottom word size = %v, want 10", sized[len(sized)-1].FontSize)
	}
	for i := range sized {
		for j := range sized {
			if ws[i].Count > ws[j].Count && sized[i].FontSize < sized[j].FontSize {
				t.Errorf("count %d got %v < count %d got %v",
					ws[i].Count, sized[i].FontSize, ws[j].Count, sized[j].FontSize)
			}
		}
	}
}

func TestMapEmpty(t *testing.T) {
	if got := Map(nil, Range{Min: 10, Max: 20}, DefaultGamma); got != nil {
		t.Errorf("Map(nil) = %v, want nil", got)
	}
}

func TestRotationFor(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"apple", Horizontal}, // 'a' = 97
		{"dog", Vertical},     // 'd' = 100
		{"TEST", Vertical},    // 'T' = 84
		{"", Horizontal},
	}
	for _, tt := range tests {
		if got := RotationFor(tt.text); got != tt.want {
			t.Errorf("RotationFor(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
	if Alternate(Vertical) != Horizontal || Alternate(Horizontal) != Vertical {
		t.Error("Alternate should swap rotations")
	}
}
