package fonts

import (
	"encoding/base64"
	"math"
	"sync"
	"testing"
)

func TestGoRegularTTFBase64(t *testing.T) {
	got := GoRegularTTFBase64()
	raw, err := base64.StdEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw) != len(GoRegularTTF()) {
		t.Errorf("decoded length = %d, want %d", len(raw), len(GoRegularTTF()))
	}
	if GoRegularTTFBase64() != got {
		t.Error("base64 should be stable across calls")
	}
}

func TestMetricsScaleLinearly(t *testing.T) {
	m, err := NewMetrics()
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	w10, h10 := m.Measure("cloud", 10)
	w40, h40 := m.Measure("cloud", 40)
	if w10 <= 0 || h10 <= 0 {
		t.Fatalf("Measure = (%v, %v), want positive", w10, h10)
	}
	if math.Abs(w40-4*w10) > 1e-9 || math.Abs(h40-4*h10) > 1e-9 {
		t.Errorf("extents do not scale linearly: (%v, %v) vs (%v, %v)", w10, h10, w40, h40)
	}
	if wide, _ := m.Measure("WWWW", 10); wide <= w10*0.8 {
		t.Errorf("WWWW width %v should be close to or above cloud width %v", wide, w10)
	}
	if a := m.Ascent(); a <= 0 || a >= 1.5 {
		t.Errorf("Ascent() = %v, want in (0, 1.5)", a)
	}
}

func TestMetricsLongerTextIsWider(t *testing.T) {
	m, err := NewMetrics()
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	short, _ := m.Measure("go", 20)
	long, _ := m.Measure("gopher", 20)
	if long <= short {
		t.Errorf("gopher (%v) should be wider than go (%v)", long, short)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := DefaultMeasurer()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				m.Measure("word", float64(8+i+j))
			}
		}()
	}
	wg.Wait()
}

func TestApprox(t *testing.T) {
	w, h := Approx{}.Measure("héllo", 20)
	if math.Abs(w-5*0.55*20) > 1e-9 {
		t.Errorf("width = %v, want %v", w, 5*0.55*20)
	}
	if math.Abs(h-24) > 1e-9 {
		t.Errorf("height = %v, want 24", h)
	}
}

func TestFace(t *testing.T) {
	f, err := Face(24)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer f.Close()
	if f.Metrics().Height <= 0 {
		t.Error("face height should be positive")
	}
}
