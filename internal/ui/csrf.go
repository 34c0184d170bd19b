package ui

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"path"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

// The browser keeps a random per-session secret in an HttpOnly cookie. Each
// workbench form carries a token derived from that secret and the form's
// action, so a token lifted from the decompose form cannot submit a run.
const (
	sessionCookieName = "sqlsplit_session"
	formTokenField    = "csrf_token"

	actionDecompose = "decompose"
	actionRun       = "run"
)

type sessionSecretKey struct{}

// withSessionSecret issues the session cookie when the client has none and
// exposes the secret to the form renderers.
func (h *Handler) withSessionSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := readSessionCookie(r)
		if secret == "" {
			secret = newSessionSecret()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    secret,
				Path:     "/ui",
				HttpOnly: true,
				Secure:   h.Production,
				SameSite: http.SameSiteStrictMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionSecretKey{}, secret)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireFormToken rejects a POST unless its token was minted for the action
// it is posted to.
func (h *Handler) requireFormToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		secret := readSessionCookie(r)
		if secret == "" {
			h.rejectForm(w, r, "missing session cookie")
			return
		}
		if err := r.ParseForm(); err != nil {
			h.rejectForm(w, r, "unreadable form")
			return
		}
		action := path.Base(r.URL.Path)
		got := strings.TrimSpace(r.PostForm.Get(formTokenField))
		if !hmac.Equal([]byte(got), []byte(formToken(secret, action))) {
			h.rejectForm(w, r, "form token does not match "+action)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) rejectForm(w http.ResponseWriter, r *http.Request, reason string) {
	h.Logger.Warn("workbench form rejected", "path", r.URL.Path, "reason", reason)
	renderHTML(w, http.StatusForbidden, errorPage("Form Rejected",
		"The form has expired or was not issued by this workbench. Reload the page and try again."))
}

// formToken derives the token a form posting to action must carry.
func formToken(secret, action string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(action))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// formTokenInput renders the hidden token field for a form posting to action.
func formTokenInput(r *http.Request, action string) gomponents.Node {
	secret, _ := r.Context().Value(sessionSecretKey{}).(string)
	if secret == "" {
		secret = readSessionCookie(r)
	}
	return html.Input(html.Type("hidden"), html.Name(formTokenField), html.Value(formToken(secret, action)))
}

func readSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func newSessionSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
