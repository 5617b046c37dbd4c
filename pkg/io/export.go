package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wordcloud/pkg/core/words"
)

// WriteJSON encodes a word list as an indented JSON array of
// {"text", "count"} objects. The output can be re-imported with [ReadJSON].
func WriteJSON(ws []words.WordWeight, w io.Writer) error {
	if ws == nil {
		ws = []words.WordWeight{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ws); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a word list to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(ws []words.WordWeight, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(ws, f)
}
