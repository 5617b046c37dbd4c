// Package words turns raw (word, count) pairs into sized words for layout.
//
// It is the first stage of the word-cloud pipeline and has no knowledge of
// shapes or canvases beyond the dimensions used to derive a font-size range.
//
// # Weights
//
// Counts are normalized into [0, 1] relative to the smallest and largest
// count in the list, then compressed by a gamma curve so a single dominant
// word does not dwarf everything else:
//
//	weight = ((count - minCount) / (maxCount - minCount)) ^ gamma
//	size   = minSize + (maxSize - minSize) * weight
//
// When every count is equal, every word gets weight 1.
//
// # Rotation
//
// [RotationFor] assigns 0 or 90 degrees from the first rune of a word. It
// is a pure function, so the same input list always yields the same mix of
// horizontal and vertical words.
//
// # Input Preparation
//
// [Normalize] deduplicates and caps a list, and [Count] tokenizes free text
// into a normalized list. Both are conveniences for callers; the mapper
// itself assumes its input is already clean.
package words
