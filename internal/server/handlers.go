package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/mask"
	"github.com/matzehuels/wordcloud/pkg/core/cloud/palette"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

// =============================================================================
// Meta
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

type shapeInfo struct {
	Name     string  `json:"name"`
	Coverage float64 `json:"coverage"`
}

type shapesResponse struct {
	Shapes   []shapeInfo `json:"shapes"`
	Palettes []string    `json:"palettes"`
	Formats  []string    `json:"formats"`
}

func (s *Server) handleShapes(w http.ResponseWriter, r *http.Request) {
	width, height := pipeline.DefaultWidth, pipeline.DefaultHeight
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, s.logger, errs.New(errs.ErrCodeInvalidCanvas, "width: %q is not an integer", v))
			return
		}
		width = n
	}
	if v := r.URL.Query().Get("height"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, s.logger, errs.New(errs.ErrCodeInvalidCanvas, "height: %q is not an integer", v))
			return
		}
		height = n
	}
	if err := errs.ValidateCanvas(width, height); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	resp := shapesResponse{
		Palettes: palette.Names(),
		Formats:  []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON},
	}
	for _, shape := range mask.Shapes {
		resp.Shapes = append(resp.Shapes, shapeInfo{
			Name:     string(shape),
			Coverage: mask.New(width, height, shape).Coverage(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Pipeline
// =============================================================================

// handleLayout places the request's words and returns the layout JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := opts.ValidateForLayout(); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	ws, err := pipeline.PrepareWords(opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	l, hit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), ws, opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	exported := l.Export()
	exported.Palette = opts.Palette
	setLayoutHeaders(w, l, hit)
	writeJSON(w, http.StatusOK, exported)
}

// handleRender runs the whole pipeline and returns one artifact. The
// format comes from ?format=, else the first of the body's formats.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	format, err := pickFormat(r, opts.Formats)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	setLayoutHeaders(w, result.Layout, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	writeArtifact(w, format, result.Artifacts[format])
}

// visualizeRequest renders a layout produced earlier by /v1/layout.
type visualizeRequest struct {
	Layout cloud.Layout `json:"layout"`

	Format     string  `json:"format,omitempty"`
	Background string  `json:"background,omitempty"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
	ShowBoxes  bool    `json:"show_boxes,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// handleVisualize renders a posted layout without placing words again.
func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	var req visualizeRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	var formats []string
	if req.Format != "" {
		formats = []string{req.Format}
	}
	format, err := pickFormat(r, formats)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	l, err := layout.Parse(req.Layout)
	if err != nil {
		writeError(w, r, s.logger, errs.New(errs.ErrCodeInvalidInput, "layout: %v", err))
		return
	}
	opts := pipeline.Options{
		Formats:    []string{format},
		Palette:    req.Layout.Palette,
		Background: req.Background,
		EmbedFont:  req.EmbedFont,
		ShowBoxes:  req.ShowBoxes,
		Scale:      req.Scale,
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	setLayoutHeaders(w, l, hit)
	writeArtifact(w, format, artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

// decodeOptions reads pipeline options from the body. Runtime-only fields
// cannot be set by clients.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		return pipeline.Options{}, err
	}
	opts.Logger = s.logger
	opts.Measurer = nil
	return opts, nil
}

// decode reads one JSON value, rejecting unknown fields and oversized
// bodies.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return errs.New(errs.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return errs.New(errs.ErrCodeInvalidInput, "request body is empty")
		}
		return errs.New(errs.ErrCodeInvalidInput, "decode request: %v", err)
	}
	if dec.More() {
		return errs.New(errs.ErrCodeInvalidInput, "request body holds more than one JSON value")
	}
	return nil
}

// pickFormat resolves the single output format of a request.
func pickFormat(r *http.Request, formats []string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" && len(formats) > 0 {
		format = strings.ToLower(strings.TrimSpace(formats[0]))
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

func setLayoutHeaders(w http.ResponseWriter, l layout.Layout, hit bool) {
	h := w.Header()
	h.Set("X-Words-Placed", strconv.Itoa(l.Summary.PlacedCount))
	h.Set("X-Words-Total", strconv.Itoa(l.Summary.TotalWords))
	if hit {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
