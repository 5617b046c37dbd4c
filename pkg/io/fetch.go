package io

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cache"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
)

// =============================================================================
// Remote Sources
// =============================================================================

const (
	// SourceTTL is how long fetched documents stay cached.
	SourceTTL = 24 * time.Hour

	// MaxSourceBytes caps the size of a fetched document.
	MaxSourceBytes = 8 << 20

	fetchTimeout = 30 * time.Second
)

// Document is a fetched remote source.
type Document struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Format picks the decoder for the document: the URL extension when it is a
// known word-list type, else the content type, else plain text.
func (d Document) Format() Format {
	if u, err := url.Parse(d.URL); err == nil {
		if f := DetectFormat(u.Path); f != FormatText {
			return f
		}
	}
	mediaType, _, _ := mime.ParseMediaType(d.ContentType)
	switch mediaType {
	case "application/json":
		return FormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML
	case "application/toml":
		return FormatTOML
	case "text/csv":
		return FormatCSV
	}
	return FormatText
}

// IsHTML reports whether the document is an HTML page.
func (d Document) IsHTML() bool {
	mediaType, _, _ := mime.ParseMediaType(d.ContentType)
	if mediaType == "text/html" || mediaType == "application/xhtml+xml" {
		return true
	}
	if u, err := url.Parse(d.URL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		return ext == ".html" || ext == ".htm"
	}
	return false
}

// Text returns the document as plain text. HTML markup, scripts and styles
// are removed and entities decoded.
func (d Document) Text() string {
	if !d.IsHTML() {
		return string(d.Body)
	}
	return StripHTML(string(d.Body))
}

var (
	htmlHiddenRe  = regexp.MustCompile(`(?is)<(script|style|noscript|template)\b.*?</(script|style|noscript|template)\s*>`)
	htmlCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlTagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
)

// StripHTML reduces an HTML page to its visible text.
func StripHTML(s string) string {
	s = htmlCommentRe.ReplaceAllString(s, " ")
	s = htmlHiddenRe.ReplaceAllString(s, " ")
	s = htmlTagRe.ReplaceAllString(s, " ")
	return html.UnescapeString(s)
}

// Fetcher downloads remote word sources. Transient failures are retried
// with backoff and documents are cached by URL.
type Fetcher struct {
	http    *http.Client
	cache   cache.Cache
	headers map[string]string
}

// NewFetcher creates a Fetcher backed by c. Pass nil to disable caching.
func NewFetcher(c cache.Cache) *Fetcher {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Fetcher{
		http:  &http.Client{Timeout: fetchTimeout},
		cache: c,
		headers: map[string]string{
			"User-Agent": buildinfo.ServerHeader(),
			"Accept":     "text/plain, text/html, application/json, text/csv, application/yaml;q=0.9, */*;q=0.5",
		},
	}
}

// sourceKey is the cache key for a document URL.
func sourceKey(rawURL string) string {
	return "source:" + cache.Hash([]byte(rawURL))
}

// Fetch downloads rawURL, serving it from the cache unless refresh is set.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, refresh bool) (Document, error) {
	if !IsURL(rawURL) {
		return Document{}, errs.New(errs.ErrCodeInvalidInput, "not an http(s) URL: %q", rawURL)
	}

	key := sourceKey(rawURL)
	if !refresh {
		if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
			var doc Document
			if json.Unmarshal(data, &doc) == nil {
				return doc, nil
			}
		}
	}

	var doc Document
	err := cache.RetryWithBackoff(ctx, func() error {
		d, err := f.get(ctx, rawURL)
		if err != nil {
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		return Document{}, err
	}

	if data, err := json.Marshal(doc); err == nil {
		_ = f.cache.Set(ctx, key, data, SourceTTL)
	}
	return doc, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Document{}, ctx.Err()
		}
		return Document{}, cache.Retryable(fmt.Errorf("fetch %s: %w", rawURL, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(rawURL, resp.StatusCode); err != nil {
		return Document{}, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxSourceBytes+1))
	if err != nil {
		return Document{}, cache.Retryable(fmt.Errorf("read %s: %w", rawURL, err))
	}
	if len(body) > MaxSourceBytes {
		return Document{}, errs.New(errs.ErrCodeInvalidInput, "%s is larger than %d bytes", rawURL, MaxSourceBytes)
	}
	return Document{
		URL:         rawURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func checkStatus(rawURL string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return errs.New(errs.ErrCodeNotFound, "%s: status %d", rawURL, code)
	case code == http.StatusTooManyRequests || code >= 500:
		return cache.Retryable(fmt.Errorf("%s: status %d", rawURL, code))
	default:
		return fmt.Errorf("%s: status %d", rawURL, code)
	}
}
