// Package layout packs weighted words into a shaped canvas.
//
// # Algorithm
//
// [Build] runs a sequence of greedy attempts, each at a global scale
// starting from 1:
//
//  1. Map word counts to font sizes within the attempt's scaled range.
//  2. Sort words by descending size (stable on input order).
//  3. For each word, search an outward spiral for a slot inside the
//     [mask.Mask] that does not collide in the [grid.Grid], trying the
//     preferred rotation and then the alternate one. A word that does not
//     fit is shrunk by [ShrinkStep] down to a floor and retried.
//  4. If every word was placed, stop.
//  5. Otherwise multiply the scale by [ScaleStep] and start over, until the
//     next scale would drop below [Options.MinScale].
//
// When no attempt places every word, the one that placed the most is
// returned; ties go to the larger scale.
//
// # Reproducibility
//
// With [AnglesFixed] (the default) the layout is a pure function of the
// input and options. [AnglesRandom] trades this for variety, but the seed
// used is stored in [Layout.Seed] so any layout can be replayed.
//
// # Conversion
//
// [Layout.Export] converts to the serializable [cloud.Layout] used for
// caching, JSON files and the HTTP API; [Parse] converts back.
//
// [mask.Mask]: github.com/matzehuels/wordcloud/pkg/core/cloud/mask.Mask
// [grid.Grid]: github.com/matzehuels/wordcloud/pkg/core/cloud/grid.Grid
// [cloud.Layout]: github.com/matzehuels/wordcloud/pkg/cloud.Layout
package layout
