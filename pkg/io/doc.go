// Package io reads and writes word lists.
//
// # Overview
//
// A word list is an ordered sequence of [words.WordWeight]. This package
// decodes one from the formats people actually keep word counts in:
//
//   - JSON: [{"text": "go", "count": 3}] or {"go": 3}
//   - YAML: a sequence of {text, count} or a mapping word: count
//   - TOML: [[words]] tables and/or a [counts] table
//   - CSV: text,count rows (count defaults to 1, header optional)
//   - Plain text: tokenized and counted with [words.Count]
//
// Mapping forms keep their document order, so ties in the final cloud
// follow the file.
//
// # Import
//
// Use [ImportFile] to read from a path (the format is detected from the
// extension when not given) or [Read] for any io.Reader:
//
//	ws, err := io.ImportFile("talk.txt", "", words.CountOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Structured inputs are validated: every entry needs non-empty text and a
// count of at least 1. Errors name the offending entry.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the canonical JSON array form, which
// is handy for saving the counts of a text file for later editing.
//
// # Remote sources
//
// A [Fetcher] downloads word lists or text over http(s), retrying transient
// failures and caching documents by URL in any cache.Cache. HTML pages are
// reduced to their visible text with [StripHTML].
//
// Readers do not normalize. Callers merge duplicates and cap the list with
// [words.Normalize].
//
// [words.WordWeight]: github.com/matzehuels/wordcloud/pkg/core/words.WordWeight
// [words.Count]: github.com/matzehuels/wordcloud/pkg/core/words.Count
// [words.Normalize]: github.com/matzehuels/wordcloud/pkg/core/words.Normalize
package io
