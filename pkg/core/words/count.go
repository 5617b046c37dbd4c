package words

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// DefaultMinLength is the shortest token [Count] keeps.
const DefaultMinLength = 3

// CountOptions controls tokenization in [Count].
type CountOptions struct {
	NormalizeOptions

	// MinLength drops tokens with fewer runes. Zero means DefaultMinLength.
	MinLength int
	// StopWords are skipped, compared case-insensitively. Nil means
	// DefaultStopWords; use an empty slice to keep everything.
	StopWords []string
	// KeepNumbers keeps tokens made only of digits.
	KeepNumbers bool
}

// DefaultStopWords is a short English stop list.
var DefaultStopWords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as",
	"at", "be", "because", "been", "but", "by", "can", "could", "did", "do",
	"does", "for", "from", "had", "has", "have", "he", "her", "his", "how",
	"if", "in", "into", "is", "it", "its", "just", "more", "most", "no",
	"not", "of", "on", "one", "only", "or", "other", "our", "out", "over",
	"she", "so", "some", "such", "than", "that", "the", "their", "them",
	"then", "there", "these", "they", "this", "those", "to", "too", "up",
	"very", "was", "we", "were", "what", "when", "where", "which", "while",
	"who", "why", "will", "with", "would", "you", "your",
}

// Count tokenizes text into words and returns their normalized counts.
// Tokens are runs of letters, digits, apostrophes and hyphens, trimmed of
// leading and trailing punctuation.
func Count(text string, opts CountOptions) []WordWeight {
	minLen := opts.MinLength
	if minLen <= 0 {
		minLen = DefaultMinLength
	}
	stop := opts.StopWords
	if stop == nil {
		stop = DefaultStopWords
	}

	fold := cases.Fold()
	skip := make(map[string]struct{}, len(stop))
	for _, s := range stop {
		skip[fold.String(s)] = struct{}{}
	}

	var ws []WordWeight
	for _, tok := range tokenize(text) {
		if utf8.RuneCountInString(tok) < minLen {
			continue
		}
		if !opts.KeepNumbers && isNumber(tok) {
			continue
		}
		if _, ok := skip[fold.String(tok)]; ok {
			continue
		}
		ws = append(ws, WordWeight{Text: tok, Count: 1})
	}
	return Normalize(ws, opts.NormalizeOptions)
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’' || r == '-')
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'’-")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
