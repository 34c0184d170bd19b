package api

import (
	"net/http"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/service"
)

// batchRequest is the body of POST /v1/decompose/batch.
type batchRequest struct {
	Scripts []domain.DecomposeRequest `json:"scripts"`
}

// batchItem is one entry of a batch response. Exactly one field is set.
type batchItem struct {
	Result *service.DecomposeResult `json:"result,omitempty"`
	Error  *errorBody               `json:"error,omitempty"`
}

// Decompose handles POST /v1/decompose.
func (h *Handler) Decompose(w http.ResponseWriter, r *http.Request) {
	var req domain.DecomposeRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.decompose.Decompose(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DecomposeBatch handles POST /v1/decompose/batch. The response is 200 even
// when individual scripts fail; each failure is reported in its own item.
func (h *Handler) DecomposeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(w, r, service.MaxBatchSize*maxBodyBytes, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := h.decompose.DecomposeBatch(r.Context(), req.Scripts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]batchItem, len(items))
	for i, item := range items {
		if item.Err != nil {
			body := errorBodyFromError(item.Err)
			out[i].Error = &body
			continue
		}
		out[i].Result = item.Result
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": out})
}
