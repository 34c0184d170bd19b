package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sqlsplit/internal/domain"
)

type historyEntry struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Kind           string    `json:"kind"`
	Dialect        string    `json:"dialect"`
	SQL            string    `json:"sql"`
	StatementCount int       `json:"statement_count"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	DurationMs     int64     `json:"duration_ms"`
}

type historyList struct {
	Entries       []historyEntry `json:"entries"`
	Total         int64          `json:"total"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

func historyEntryToAPI(e domain.HistoryEntry) historyEntry {
	return historyEntry{
		ID:             e.ID,
		CreatedAt:      e.CreatedAt,
		Kind:           string(e.Kind),
		Dialect:        e.Dialect,
		SQL:            e.SQL,
		StatementCount: e.StatementCount,
		Status:         string(e.Status),
		Error:          e.Error,
		DurationMs:     e.DurationMs,
	}
}

// ListHistory handles GET /v1/history?kind=&status=&from=&to=&max_results=&page_token=.
// from and to are RFC 3339 timestamps.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeError(w, r, domain.ErrUnavailable("history is disabled"))
		return
	}
	filter, err := historyFilterFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	entries, total, err := h.history.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := historyList{Entries: make([]historyEntry, len(entries)), Total: total}
	for i, e := range entries {
		out.Entries[i] = historyEntryToAPI(e)
	}
	out.NextPageToken = domain.NextPageToken(filter.Page.Offset(), filter.Page.Limit(), total)
	writeJSON(w, http.StatusOK, out)
}

// GetHistory handles GET /v1/history/{id}.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeError(w, r, domain.ErrUnavailable("history is disabled"))
		return
	}
	e, err := h.history.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyEntryToAPI(*e))
}

func historyFilterFromQuery(r *http.Request) (domain.HistoryFilter, error) {
	q := r.URL.Query()
	var f domain.HistoryFilter

	if v := q.Get("kind"); v != "" {
		k := domain.HistoryKind(v)
		if k != domain.HistoryDecompose && k != domain.HistoryQuery {
			return f, domain.ErrValidation("unknown kind %q", v)
		}
		f.Kind = &k
	}
	if v := q.Get("status"); v != "" {
		s := domain.HistoryStatus(v)
		if s != domain.StatusOK && s != domain.StatusError {
			return f, domain.ErrValidation("unknown status %q", v)
		}
		f.Status = &s
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, domain.ErrValidation("%s must be an RFC 3339 timestamp", p.name)
		}
		*p.dst = &ts
	}
	if v := q.Get("max_results"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, domain.ErrValidation("max_results must be a non-negative integer")
		}
		f.Page.MaxResults = n
	}
	f.Page.PageToken = q.Get("page_token")
	return f, nil
}
