// Package pkg provides the core libraries for wordcloud.
//
// # Overview
//
// wordcloud turns weighted words into a packed, shaped cloud. The pkg
// directory is organized into these areas:
//
//  1. [core] - Domain logic (word weighting, shape masks, placement, sinks)
//  2. [cloud] - Serialization types for layouts
//  3. [io] - Word-list import and export, remote sources
//  4. [pipeline] - Orchestration (words → layout → render) with caching
//  5. [cache] - File, Redis and MongoDB cache backends
//
// # Architecture
//
// The typical data flow:
//
//	text, word list or URL
//	         ↓
//	    [io] and [core/words] (count, merge, cap)
//	         ↓
//	    [core/cloud/layout] (mask + spiral search + collision grid)
//	         ↓
//	    [core/cloud/sink] (SVG, PNG, JSON)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
//	    "github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
//	    "github.com/matzehuels/wordcloud/pkg/core/cloud/sink"
//	    "github.com/matzehuels/wordcloud/pkg/core/words"
//	)
//
//	ws := words.Count(text, words.CountOptions{})
//	l, _ := layout.Build(context.Background(), ws, layout.Options{
//	    Width: 800, Height: 600, Shape: mask.Heart,
//	})
//	svg := sink.RenderSVG(l)
//
// Most callers should use [pipeline.Runner], which validates options,
// applies defaults and caches layouts and renders.
//
// # Supporting Packages
//
//   - [buildinfo] - Version information set at build time
//   - [errors] - Coded errors and input validation
//   - [fonts] - Embedded Go font and text metrics
//   - [observability] - Hooks for metrics and tracing
//
// [core]: github.com/matzehuels/wordcloud/pkg/core
// [cloud]: github.com/matzehuels/wordcloud/pkg/cloud
// [io]: github.com/matzehuels/wordcloud/pkg/io
// [pipeline]: github.com/matzehuels/wordcloud/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/wordcloud/pkg/pipeline.Runner
// [cache]: github.com/matzehuels/wordcloud/pkg/cache
// [core/words]: github.com/matzehuels/wordcloud/pkg/core/words
// [core/cloud/layout]: github.com/matzehuels/wordcloud/pkg/core/cloud/layout
// [core/cloud/sink]: github.com/matzehuels/wordcloud/pkg/core/cloud/sink
// [buildinfo]: github.com/matzehuels/wordcloud/pkg/buildinfo
// [errors]: github.com/matzehuels/wordcloud/pkg/errors
// [fonts]: github.com/matzehuels/wordcloud/pkg/fonts
// [observability]: github.com/matzehuels/wordcloud/pkg/observability
package pkg
