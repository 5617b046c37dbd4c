package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/words"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func sampleOptions() Options {
	return Options{
		Words: []words.WordWeight{
			{Text: "gopher", Count: 12},
			{Text: "channel", Count: 7},
			{Text: "goroutine", Count: 5},
			{Text: "interface", Count: 4},
			{Text: "slice", Count: 2},
			{Text: "map", Count: 1},
		},
		Width:   400,
		Height:  300,
		Formats: []string{FormatSVG, FormatJSON},
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), sampleOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.WordCount != 6 || res.Stats.PlacedCount != 6 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.WordsHash == "" {
		t.Error("WordsHash should be set")
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte(">gopher</text>")) {
		t.Error("SVG should contain the top word")
	}

	l, err := cloud.UnmarshalLayout(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("JSON artifact: %v", err)
	}
	if l.Width != 400 || l.Palette != DefaultPalette || len(l.Words) != 6 {
		t.Errorf("JSON layout = %dx%d palette %q, %d words", l.Width, l.Height, l.Palette, len(l.Words))
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	first, err := r.Execute(ctx, sampleOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	if mc.sets != 3 {
		t.Errorf("cache sets = %d, want 3 (layout + 2 artifacts)", mc.sets)
	}

	second, err := r.Execute(ctx, sampleOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs")
	}

	opts := sampleOptions()
	opts.Shape = "circle"
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("different shape should miss the layout cache")
	}

	opts = sampleOptions()
	opts.Refresh = true
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the layout cache")
	}
}

func TestRunnerSkipsClockSeededLayouts(t *testing.T) {
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	opts := sampleOptions()
	opts.Angles = "random"
	opts.Formats = []string{FormatJSON}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Layout.Seed == 0 {
		t.Error("a clock seed should be recorded")
	}
	for k := range mc.data {
		if strings.HasPrefix(k, "layout:") {
			t.Error("clock-seeded layouts must not be cached")
		}
	}
}

func TestRunnerExecuteText(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{
		Text:    "Gophers build tools. Gophers build services. Tools help gophers.",
		Width:   300,
		Height:  200,
		Formats: []string{FormatPNG},
		Scale:   1,
	}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Words[0].Text != "Gophers" && res.Words[0].Text != "gophers" {
		t.Errorf("top word = %q", res.Words[0].Text)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("PNG artifact missing signature")
	}
}

func TestRunnerExecuteEmpty(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.WordCount != 0 || len(res.Layout.Words) != 0 || res.Layout.Scale != 1 {
		t.Errorf("empty result = %+v", res.Stats)
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("empty input should still render an SVG")
	}
}

func TestRunnerExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := sampleOptions()
	opts.Shape = "pentagon"
	_, err := r.Execute(context.Background(), opts)
	if !errs.Is(err, errs.ErrCodeInvalidShape) {
		t.Errorf("Execute() error = %v, want INVALID_SHAPE", err)
	}
}

func TestRunnerExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(ctx, sampleOptions()); err == nil {
		t.Error("Execute() should fail on a canceled context")
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := sampleOptions()
	opts.Palette = "ocean"
	opts.Formats = []string{FormatJSON}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	out, err := RenderFromLayoutData(res.Artifacts[FormatJSON], Options{Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatalf("RenderFromLayoutData: %v", err)
	}
	if !bytes.Contains(out[FormatSVG], []byte(">gopher</text>")) {
		t.Error("re-rendered SVG missing words")
	}
	l, err := cloud.UnmarshalLayout(out[FormatJSON])
	if err != nil {
		t.Fatal(err)
	}
	if l.Palette != "ocean" {
		t.Errorf("palette = %q, want the recorded ocean", l.Palette)
	}

	if _, err := RenderFromLayoutData([]byte("{"), Options{}); err == nil {
		t.Error("malformed layout should fail")
	}
}
