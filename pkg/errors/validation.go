package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits applied by the validators.
const (
	MaxWordLength   = 64
	MaxCanvasSide   = 10000
	MaxWordsPerList = 5000
)

// ValidateWord validates a single word before it reaches the layout.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only words
//   - No control characters
//   - Maximum length of MaxWordLength runes
//   - Count must be at least 1
func ValidateWord(text string, count int) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidWords, "word cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > MaxWordLength {
		return New(ErrCodeInvalidWords, "word %q too long (%d runes, max %d)", truncate(text, 16), n, MaxWordLength)
	}

	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidWords, "word is not valid UTF-8")
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWords, "word %q contains control characters", truncate(text, 16))
		}
	}

	if count < 1 {
		return New(ErrCodeInvalidWords, "word %q: count must be at least 1, got %d", text, count)
	}

	return nil
}

// ValidateWordCount rejects lists longer than MaxWordsPerList.
func ValidateWordCount(n int) error {
	if n > MaxWordsPerList {
		return New(ErrCodeInvalidWords, "too many words (%d, max %d)", n, MaxWordsPerList)
	}
	return nil
}

// ValidateCanvas validates canvas dimensions in pixels.
func ValidateCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasSide || height > MaxCanvasSide {
		return New(ErrCodeInvalidCanvas, "canvas too large (%dx%d, max %d per side)", width, height, MaxCanvasSide)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a CSS hex color. The empty string and "none"
// are accepted and mean "no fill".
func ValidateColor(color string) error {
	if color == "" || color == "none" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color %q (expected #rgb or #rrggbb)", color)
	}
	return nil
}

// ValidatePath validates a relative file path for safety.
//
// The validation rules:
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
