package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/wordcloud/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code      errs.Code `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

func errNotFound(path string) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s", path)
}

func errMethodNotAllowed(method string) error {
	return errs.New(errs.ErrCodeUnsupported, "method %s not allowed", method)
}

// statusFor maps an error to its HTTP status and code.
func statusFor(err error) (int, errs.Code) {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest, errs.GetCode(err)
	case errs.Is(err, errs.ErrCodeNotFound):
		return http.StatusNotFound, errs.ErrCodeNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusMethodNotAllowed, errs.ErrCodeUnsupported
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errs.ErrCodeTimeout
	case errors.Is(err, context.Canceled):
		// nginx's "client closed request"
		return 499, errs.ErrCodeCanceled
	}
	return http.StatusInternalServerError, errs.ErrCodeInternal
}

// writeError writes err as a JSON error body. Internal errors are logged
// and their details withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status, code := statusFor(err)
	id := RequestIDFromContext(r.Context())

	msg := errs.UserMessage(err)
	switch code {
	case errs.ErrCodeInternal:
		logger.Error("request failed", "err", err, "request_id", id)
		msg = "internal error"
	case errs.ErrCodeTimeout:
		msg = "request timed out"
	case errs.ErrCodeCanceled:
		msg = "request canceled"
	}

	writeJSON(w, status, errorBody{Code: code, Message: msg, RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
