// Package middleware provides the HTTP middleware of the API: request IDs,
// per-client rate limiting and bearer token authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"sqlsplit/internal/domain"
)

// TokenValidator validates a bearer token and returns its subject.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (subject string, err error)
}

// HS256Validator validates JWTs signed with a shared HS256 secret.
type HS256Validator struct {
	secret []byte
}

// NewHS256Validator creates a validator for tokens signed with secret.
func NewHS256Validator(secret string) (*HS256Validator, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	return &HS256Validator{secret: []byte(secret)}, nil
}

// Validate verifies signature and expiry and returns the "sub" claim.
func (v *HS256Validator) Validate(_ context.Context, tokenString string) (string, error) {
	tok, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("token verification failed: %w", err)
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("parse claims: %w", err)
	}
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the
// token subject with domain.WithCaller. Failures respond 401.
func Auth(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="sqlsplit"`)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized: bearer token required")
				return
			}
			sub, err := v.Validate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="sqlsplit", error="invalid_token"`)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized: invalid token")
				return
			}
			ctx := domain.WithCaller(r.Context(), domain.Caller{Subject: sub})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
