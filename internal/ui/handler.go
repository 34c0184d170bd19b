// Package ui serves the server-rendered decomposition workbench: paste a
// script, list its statements, run one and inspect the rows.
package ui

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	gomponents "maragu.dev/gomponents"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/service"
	"sqlsplit/internal/sqlparse"
)

// Handler serves the UI pages.
type Handler struct {
	Decompose  *service.DecomposeService
	Query      *service.QueryService
	Production bool
	Logger     *slog.Logger
}

// Routes returns the UI routes, to be mounted at /ui.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.withSessionSecret)
	r.Use(h.requireFormToken)
	r.Get("/", h.WorkbenchPage)
	r.Post("/decompose", h.DecomposeSubmit)
	r.Post("/run", h.RunSubmit)
	return r
}

// WorkbenchPage renders the empty workbench.
func (h *Handler) WorkbenchPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, workbenchState{
		Dialect: h.Decompose.DefaultDialect().String(),
		Pattern: string(h.Query.DefaultPattern()),
	})
}

// DecomposeSubmit decomposes the posted script and lists its statements.
func (h *Handler) DecomposeSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	state := h.stateFromForm(r)
	h.decompose(r, &state)
	h.render(w, r, state)
}

// RunSubmit re-decomposes the posted script and runs the chosen statement.
func (h *Handler) RunSubmit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	state := h.stateFromForm(r)
	if !h.decompose(r, &state) {
		h.render(w, r, state)
		return
	}

	idx, err := strconv.Atoi(r.Form.Get("index"))
	if err != nil || idx < 0 || idx >= len(state.Result.Statements) {
		state.RunError = "Choose a statement to run."
		h.render(w, r, state)
		return
	}
	state.Selected = idx

	params, err := parseParams(state.Params)
	if err != nil {
		state.RunError = err.Error()
		h.render(w, r, state)
		return
	}
	res, err := h.Query.Run(r.Context(), domain.QueryRequest{
		SQL:        state.Result.Statements[idx].Runnable,
		Pattern:    domain.ParameterPattern(state.Pattern),
		Parameters: params,
	})
	if err != nil {
		state.RunError = err.Error()
		h.render(w, r, state)
		return
	}
	state.Rows = res
	h.render(w, r, state)
}

type workbenchState struct {
	Script   string
	Dialect  string
	Pattern  string
	Params   string
	Result   *service.DecomposeResult
	Selected int
	Error    string
	RunError string
	Rows     *service.QueryResult
	CanRun   bool
}

func (h *Handler) stateFromForm(r *http.Request) workbenchState {
	s := workbenchState{
		Script:   r.Form.Get("script"),
		Dialect:  strings.TrimSpace(r.Form.Get("dialect")),
		Pattern:  strings.TrimSpace(r.Form.Get("pattern")),
		Params:   r.Form.Get("params"),
		Selected: -1,
	}
	if s.Dialect == "" {
		s.Dialect = h.Decompose.DefaultDialect().String()
	}
	if s.Pattern == "" {
		s.Pattern = string(h.Query.DefaultPattern())
	}
	return s
}

func (h *Handler) decompose(r *http.Request, s *workbenchState) bool {
	res, err := h.Decompose.Decompose(r.Context(), domain.DecomposeRequest{SQL: s.Script, Dialect: s.Dialect})
	if err != nil {
		s.Error = err.Error()
		return false
	}
	s.Result = res
	return true
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, s workbenchState) {
	s.CanRun = h.Query.Enabled()
	renderHTML(w, http.StatusOK, workbenchPage(s, func(action string) gomponents.Node { return formTokenInput(r, action) }))
}

// parseParams reads one name=value pair per line. Blank lines are skipped.
func parseParams(text string) ([]domain.Parameter, error) {
	var out []domain.Parameter
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, domain.ErrValidation("parameter line %d: expected name=value", i+1)
		}
		out = append(out, domain.Parameter{Name: name, Value: strings.TrimSpace(value)})
	}
	return out, nil
}

func parseFormOrRenderBadRequest(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 2*domain.MaxSQLBytes)
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Bad Request", "Invalid form submission."))
		return false
	}
	return true
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func dialectNames() []string {
	return []string{
		sqlparse.Postgres.String(),
		sqlparse.MySQL.String(),
		sqlparse.DuckDB.String(),
		sqlparse.Generic.String(),
	}
}
