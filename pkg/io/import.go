package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordcloud/pkg/core/words"
)

// Format identifies a word-list encoding.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatCSV, FormatText}

// ParseFormat parses a case-insensitive format name. "yml" and "txt" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "csv":
		return FormatCSV, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown input format %q (valid: json, yaml, toml, csv, text)", s)
	}
}

// DetectFormat guesses the format from a file extension. Unknown extensions
// are read as plain text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".csv":
		return FormatCSV
	default:
		return FormatText
	}
}

// Read decodes a word list from r. Structured formats carry counts
// directly; FormatText is tokenized and counted with countOpts.
//
// The result is not normalized: duplicates and order are as in the input.
// Read does not close r.
func Read(r io.Reader, format Format, countOpts words.CountOptions) ([]words.WordWeight, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatCSV:
		return ReadCSV(r)
	case FormatText:
		return ReadText(r, countOpts)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// ImportFile reads a word list from path. An empty format is detected from
// the file extension.
func ImportFile(path string, format Format, countOpts words.CountOptions) ([]words.WordWeight, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ws, err := Read(f, format, countOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}

// =============================================================================
// JSON
// =============================================================================

// ReadJSON decodes either an array of {"text", "count"} objects or an
// object mapping words to counts:
//
//	[{"text": "go", "count": 3}, {"text": "rust", "count": 1}]
//	{"go": 3, "rust": 1}
//
// Object keys keep their document order.
func ReadJSON(r io.Reader) ([]words.WordWeight, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var ws []words.WordWeight
		if err := json.Unmarshal(trimmed, &ws); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return validate(ws)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("decode: expected an array or object")
	}
	var ws []words.WordWeight
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		key, _ := tok.(string)
		var count int
		if err := dec.Decode(&count); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}
		ws = append(ws, words.WordWeight{Text: key, Count: count})
	}
	return validate(ws)
}

// =============================================================================
// YAML
// =============================================================================

// ReadYAML decodes either a sequence of {text, count} mappings or a mapping
// from words to counts. Mapping keys keep their document order.
func ReadYAML(r io.Reader) ([]words.WordWeight, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		var ws []words.WordWeight
		if err := root.Decode(&ws); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return validate(ws)
	case yaml.MappingNode:
		ws := make([]words.WordWeight, 0, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, val := root.Content[i], root.Content[i+1]
			var count int
			if err := val.Decode(&count); err != nil {
				return nil, fmt.Errorf("decode %q (line %d): %w", key.Value, val.Line, err)
			}
			ws = append(ws, words.WordWeight{Text: key.Value, Count: count})
		}
		return validate(ws)
	default:
		return nil, fmt.Errorf("decode: expected a sequence or mapping")
	}
}

// =============================================================================
// TOML
// =============================================================================

type tomlDoc struct {
	Words  []words.WordWeight `toml:"words"`
	Counts map[string]int     `toml:"counts"`
}

// ReadTOML decodes an array of [[words]] tables and/or a [counts] table:
//
//	[[words]]
//	text = "go"
//	count = 3
//
//	[counts]
//	rust = 1
//
// Entries of [counts] keep their document order after the [[words]] list.
func ReadTOML(r io.Reader) ([]words.WordWeight, error) {
	var doc tomlDoc
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode: unknown key %q", undecoded[0].String())
	}

	ws := doc.Words
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "counts" {
			ws = append(ws, words.WordWeight{Text: key[1], Count: doc.Counts[key[1]]})
		}
	}
	return validate(ws)
}

// =============================================================================
// CSV
// =============================================================================

// ReadCSV decodes "text,count" rows. A missing count means 1, and a first
// row whose count column is not a number is treated as a header.
func ReadCSV(r io.Reader) ([]words.WordWeight, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var ws []words.WordWeight
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}

		w := words.WordWeight{Text: strings.TrimSpace(rec[0]), Count: 1}
		if len(rec) > 1 && strings.TrimSpace(rec[1]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(rec[1]))
			if err != nil {
				if line == 1 {
					continue
				}
				return nil, fmt.Errorf("row %d: invalid count %q", line, rec[1])
			}
			w.Count = n
		}
		ws = append(ws, w)
	}
	return validate(ws)
}

// =============================================================================
// Plain text
// =============================================================================

// ReadText tokenizes free text and counts word occurrences.
func ReadText(r io.Reader, opts words.CountOptions) ([]words.WordWeight, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return words.Count(string(data), opts), nil
}

// validate rejects entries that cannot be weighted.
func validate(ws []words.WordWeight) ([]words.WordWeight, error) {
	for i, w := range ws {
		if strings.TrimSpace(w.Text) == "" {
			return nil, fmt.Errorf("entry %d: empty text", i+1)
		}
		if w.Count < 1 {
			return nil, fmt.Errorf("entry %d (%q): count must be at least 1, got %d", i+1, w.Text, w.Count)
		}
	}
	return ws, nil
}
