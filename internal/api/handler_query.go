package api

import (
	"net/http"

	"sqlsplit/internal/domain"
)

// Query handles POST /v1/query.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req domain.QueryRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.query.Run(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
