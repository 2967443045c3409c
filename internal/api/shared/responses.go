package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// APIError is a single entry in the uniform error body. Rule and Field are
// populated for validation failures only.
type APIError struct {
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the uniform error body:
// {"errors":[{"message":..., "rule":..., "field":...}]}.
type ErrorResponse struct {
	Errors []APIError `json:"errors"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes the uniform error body carrying a single message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Errors: []APIError{{Message: message}},
	})
}

// RespondWithValidationErrors writes a 422 with per-field detail.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, errs []APIError) {
	if len(errs) == 0 {
		errs = []APIError{{Message: "Validation failure"}}
	}

	slog.Debug("sending validation error response",
		"count", len(errs),
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{Errors: errs})
}

// RespondWithErrorAndLog writes the uniform error body and logs the
// underlying error. The raw error is never serialized to the client.
// 5xx responses log at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", attrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Errors: []APIError{{Message: userMessage}},
	})
}
