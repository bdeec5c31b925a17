package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// errorBody is the JSON shape of every error response:
// {"error":{"code":"...","message":"..."}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping pairs a domain sentinel with its HTTP status and error code.
// Order matters: the first sentinel found in the chain wins.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrFilter, http.StatusUnprocessableEntity, "filter_error"},
	{domain.ErrLowSampleSize, http.StatusUnprocessableEntity, "low_sample_size"},
	{domain.ErrConnection, http.StatusServiceUnavailable, "store_unavailable"},
	{domain.ErrQuery, http.StatusInternalServerError, "query_error"},
}

// classify returns the HTTP status and response body for err.
// Connection and unknown errors get a fixed message so hosts, credentials
// and stack context never reach the client.
func classify(err error) (int, errorBody) {
	for _, m := range errorMapping {
		if !errors.Is(err, m.sentinel) {
			continue
		}
		msg := m.sentinel.Error()
		if m.sentinel != domain.ErrConnection {
			msg = fromSentinel(err, m.sentinel)
		}
		return m.status, errorBody{Error: errorDetail{Code: m.code, Message: msg}}
	}
	return http.StatusInternalServerError, errorBody{Error: errorDetail{Code: "internal_error", Message: "internal server error"}}
}

// fromSentinel extracts the human-readable part of a wrapped sentinel error,
// dropping the "pkg.Type.Method: " prefixes added on the way up.
// e.g. "service.DashboardService.Render: filter error: Year min 2020 is greater than max 2015"
// → "filter error: Year min 2020 is greater than max 2015"
func fromSentinel(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return sentinel.Error()
}

// writeError maps err to a JSON error response. Server-side failures are
// logged with the full error chain.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already sent; nothing useful to do on failure.
	json.NewEncoder(w).Encode(v)
}
