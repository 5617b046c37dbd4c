package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/core/words"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	wio "github.com/matzehuels/wordcloud/pkg/io"
)

// stdinName is the input argument that reads from standard input.
const stdinName = "-"

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == stdinName {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// readWords loads a word list from path ("-" for stdin). An empty format is
// detected from the extension; stdin defaults to plain text.
func readWords(path, format string, countOpts words.CountOptions) ([]words.WordWeight, error) {
	var f wio.Format
	if format != "" {
		parsed, err := wio.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		f = parsed
	}

	if path == stdinName {
		if f == "" {
			f = wio.FormatText
		}
		ws, err := wio.Read(os.Stdin, f, countOpts)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return ws, nil
	}
	return wio.ImportFile(path, f, countOpts)
}

// loadInput fills opts from path, which may be a file, "-" for stdin, or
// an http(s) URL. Plain text is passed through as opts.Text so the pipeline
// counts it with the options' tokenizer settings; structured lists are
// decoded into opts.Words. Fetched documents are cached in cc.
func loadInput(ctx context.Context, path, format string, opts *pipeline.Options, cc cache.Cache) error {
	var f wio.Format
	if format != "" {
		parsed, err := wio.ParseFormat(format)
		if err != nil {
			return err
		}
		f = parsed
	}

	if wio.IsURL(path) {
		doc, err := wio.NewFetcher(cc).Fetch(ctx, path, opts.Refresh)
		if err != nil {
			return err
		}
		if f == "" {
			f = doc.Format()
		}
		if f == wio.FormatText {
			opts.Text = doc.Text()
			return nil
		}
		ws, err := wio.Read(bytes.NewReader(doc.Body), f, words.CountOptions{})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		opts.Words = ws
		return nil
	}

	if f == "" {
		f = wio.FormatText
		if path != stdinName {
			f = wio.DetectFormat(path)
		}
	}
	if f != wio.FormatText {
		ws, err := readWords(path, string(f), words.CountOptions{})
		if err != nil {
			return err
		}
		opts.Words = ws
		return nil
	}

	var data []byte
	var err error
	if path == stdinName {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	opts.Text = string(data)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .json), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinName || input == "" {
			return appName
		}
		if wio.IsURL(input) {
			return urlBase(input)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	switch strings.ToLower(ext) {
	case ".svg", ".png", ".json":
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// urlBase names local output after the last path segment of a URL.
func urlBase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return appName
	}
	name := path.Base(u.Path)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		return appName
	}
	return name
}

// artifactWriteParams holds what writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	placed    int
	total     int
}

// writeArtifacts writes each format to disk. A single format goes to output
// verbatim when given; several formats share the base path.
func writeArtifacts(p artifactWriteParams) error {
	var paths []string
	for _, format := range p.formats {
		path := basePath(p.output, p.input) + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}

		out, err := openOutput(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if _, err := out.Write(p.artifacts[format]); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	// Writing to stdout keeps the terminal free of status lines.
	if len(paths) == 1 && paths[0] == stdinName {
		return nil
	}

	printSuccess("Word cloud complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.placed, p.total, p.cacheHit)
	return nil
}
