package sink_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/sink"
	"github.com/matzehuels/wordcloud/pkg/core/words"
)

func ExampleRenderSVG() {
	ws := []words.WordWeight{{Text: "hello", Count: 3}, {Text: "world", Count: 1}}
	l, _ := layout.Build(context.Background(), ws, layout.Options{Width: 400, Height: 300})

	svg := string(sink.RenderSVG(l, sink.WithBackground("white")))

	fmt.Println("SVG starts with:", svg[:4])
	fmt.Println("Text elements:", strings.Count(svg, "<text "))
	// Output:
	// SVG starts with: <svg
	// Text elements: 2
}
