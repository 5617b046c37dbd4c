package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
)

const wordsBody = `{
  "words": [
    {"text": "go", "count": 40},
    {"text": "gopher", "count": 25},
    {"text": "channel", "count": 12},
    {"text": "interface", "count": 8},
    {"text": "slice", "count": 5}
  ],
  "width": 400,
  "height": 300
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	s := New(Config{Cache: fc})
	t.Cleanup(func() { s.Close() })
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}
	if !strings.HasPrefix(rec.Header().Get("Server"), "wordcloud/") {
		t.Errorf("Server = %q", rec.Header().Get("Server"))
	}
	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		sent   string
		echoed bool
	}{
		{"client id kept", "abc-123", true},
		{"spaces replaced", "abc 123", false},
		{"too long replaced", strings.Repeat("x", maxRequestIDLen+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set(RequestIDHeader, tt.sent)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if (got == tt.sent) != tt.echoed {
				t.Errorf("request id = %q, sent %q, echoed want %v", got, tt.sent, tt.echoed)
			}
			if got == "" {
				t.Error("empty request id")
			}
		})
	}
}

func TestShapes(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/v1/shapes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var body shapesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Shapes) != 7 {
		t.Errorf("got %d shapes, want 7", len(body.Shapes))
	}
	for _, sh := range body.Shapes {
		if sh.Coverage <= 0 || sh.Coverage > 1 {
			t.Errorf("%s coverage = %g, want (0, 1]", sh.Name, sh.Coverage)
		}
		if sh.Name == "rectangle" && sh.Coverage < 0.99 {
			t.Errorf("rectangle coverage = %g, want ~1", sh.Coverage)
		}
	}
	if len(body.Palettes) == 0 {
		t.Error("no palettes listed")
	}

	rec = do(t, s, http.MethodGet, "/v1/shapes?width=-5", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative width status = %d, want 400", rec.Code)
	}
}

func TestLayoutCaches(t *testing.T) {
	s := newTestServer(t)

	first := do(t, s, http.MethodPost, "/v1/layout", wordsBody)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", first.Code, first.Body)
	}
	if got := first.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}

	var l cloud.Layout
	if err := json.Unmarshal(first.Body.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if l.Width != 400 || l.Height != 300 {
		t.Errorf("canvas = %dx%d, want 400x300", l.Width, l.Height)
	}
	if l.Summary.TotalWords != 5 {
		t.Errorf("total = %d, want 5", l.Summary.TotalWords)
	}
	if l.Summary.PlacedCount == 0 {
		t.Error("no words placed")
	}
	if first.Header().Get("X-Words-Total") != "5" {
		t.Errorf("X-Words-Total = %q", first.Header().Get("X-Words-Total"))
	}

	second := do(t, s, http.MethodPost, "/v1/layout", wordsBody)
	if got := second.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached layout differs from computed layout")
	}
}

func TestRenderFormats(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target      string
		contentType string
		check       func([]byte) bool
	}{
		{"/v1/render", "image/svg+xml", func(b []byte) bool { return bytes.Contains(b, []byte("<svg")) }},
		{"/v1/render?format=png", "image/png", func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG")) }},
		{"/v1/render?format=JSON", "application/json", func(b []byte) bool { return json.Valid(b) }},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, wordsBody)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !tt.check(rec.Body.Bytes()) {
				t.Errorf("unexpected body: %.80q", rec.Body.String())
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	s := newTestServer(t)
	body := `{"text": "the gopher met another gopher near the channel", "shape": "circle", "width": 300, "height": 300}`

	rec := do(t, s, http.MethodPost, "/v1/render", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if rec.Header().Get("X-Words-Placed") == "0" {
		t.Error("no words placed from text")
	}
}

func TestVisualize(t *testing.T) {
	s := newTestServer(t)

	lrec := do(t, s, http.MethodPost, "/v1/layout", wordsBody)
	if lrec.Code != http.StatusOK {
		t.Fatalf("layout status = %d: %s", lrec.Code, lrec.Body)
	}
	body := fmt.Sprintf(`{"layout": %s, "format": "svg", "background": "#ffffff"}`, lrec.Body.String())

	rec := do(t, s, http.MethodPost, "/v1/visualize", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `fill="#ffffff"`) {
		t.Error("background not applied")
	}

	rec = do(t, s, http.MethodPost, "/v1/visualize", `{"layout": {"width": 10, "height": 10, "shape": "blob"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad layout status = %d, want 400", rec.Code)
	}
}

func TestErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   errs.Code
	}{
		{"invalid shape", http.MethodPost, "/v1/layout", `{"words":[{"text":"a","count":1}],"shape":"blob"}`, 400, errs.ErrCodeInvalidShape},
		{"invalid canvas", http.MethodPost, "/v1/layout", `{"words":[{"text":"a","count":1}],"width":-1}`, 400, errs.ErrCodeInvalidCanvas},
		{"invalid word", http.MethodPost, "/v1/render", `{"words":[{"text":"","count":1}]}`, 400, errs.ErrCodeInvalidWords},
		{"invalid format", http.MethodPost, "/v1/render?format=gif", wordsBody, 400, errs.ErrCodeInvalidFormat},
		{"words and text", http.MethodPost, "/v1/render", `{"words":[{"text":"a","count":1}],"text":"b"}`, 400, errs.ErrCodeInvalidInput},
		{"unknown field", http.MethodPost, "/v1/layout", `{"wordz":[]}`, 400, errs.ErrCodeInvalidInput},
		{"trailing value", http.MethodPost, "/v1/layout", `{} {}`, 400, errs.ErrCodeInvalidInput},
		{"not found", http.MethodGet, "/v1/nope", "", 404, errs.ErrCodeNotFound},
		{"wrong method", http.MethodGet, "/v1/layout", "", 405, errs.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			body := decodeError(t, rec)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
			if body.RequestID == "" {
				t.Error("error body lacks request_id")
			}
		})
	}
}

func TestUnsupportedContentType(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(wordsBody))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", rec.Code)
	}
}

func TestBodyTooLarge(t *testing.T) {
	fc := cache.NewNullCache()
	s := New(Config{Cache: fc, MaxBodyBytes: 64})
	defer s.Close()

	rec := do(t, s, http.MethodPost, "/v1/layout", wordsBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeError(t, rec); !strings.Contains(body.Message, "exceeds") {
		t.Errorf("message = %q", body.Message)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   errs.Code
	}{
		{errs.New(errs.ErrCodeInvalidPalette, "x"), 400, errs.ErrCodeInvalidPalette},
		{fmt.Errorf("layout: %w", context.DeadlineExceeded), 504, errs.ErrCodeTimeout},
		{context.Canceled, 499, errs.ErrCodeCanceled},
		{errors.New("boom"), 500, errs.ErrCodeInternal},
	}
	for _, tt := range tests {
		status, code := statusFor(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("statusFor(%v) = %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s := New(Config{})
	writeError(rec, req, s.logger, errors.New("secret dsn mongodb://user:pw@host"))

	body := decodeError(t, rec)
	if strings.Contains(body.Message, "secret") {
		t.Errorf("internal message leaked: %q", body.Message)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.ListenAndServe(ctx); err != nil {
		t.Errorf("ListenAndServe after cancel = %v", err)
	}
}
