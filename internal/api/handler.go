// Package api provides the HTTP handlers of the sqlsplit REST API.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/service"
)

// maxBodyBytes bounds a single-script request body.
const maxBodyBytes = 2 * domain.MaxSQLBytes

// Handler serves the /v1 API.
type Handler struct {
	decompose *service.DecomposeService
	query     *service.QueryService
	history   *service.HistoryService
	logger    *slog.Logger
}

// NewHandler creates a Handler. history may be nil when no history store is
// configured; the history routes then answer 503.
func NewHandler(
	decompose *service.DecomposeService,
	query *service.QueryService,
	history *service.HistoryService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		decompose: decompose,
		query:     query,
		history:   history,
		logger:    logger.With("component", "api"),
	}
}

// Health reports liveness and which optional backends are enabled.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"query_enabled":   h.query.Enabled(),
		"history_enabled": h.history != nil,
		"default_dialect": h.decompose.DefaultDialect().String(),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	body := errorBodyFromError(err)
	if body.Code == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", domain.RequestIDFromContext(r.Context()),
			"error", err)
	}
	writeJSON(w, body.Code, body)
}

// decodeJSON reads a JSON request body into v. Unknown fields, trailing data
// and oversized bodies are validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ErrValidation("request body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return domain.ErrValidation("request body is empty")
		}
		return domain.ErrValidation("invalid JSON body: %v", err)
	}
	if dec.More() {
		return domain.ErrValidation("invalid JSON body: unexpected data after object")
	}
	return nil
}
