package middleware

import (
	"net/http"
)

// TokenAuth enforces a single static bearer token on protected routes.
// The token is loaded once from configuration and compared verbatim;
// no external calls happen on the request path.
type TokenAuth struct {
	token string
}

// NewTokenAuth creates a new token middleware for the given shared secret
func NewTokenAuth(token string) *TokenAuth {
	return &TokenAuth{token: token}
}

// Handler wraps an HTTP handler with the bearer-token check. The 401
// body is identical whether the header is missing, malformed, or
// carries the wrong token.
func (m *TokenAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+m.token {
			m.unauthorizedResponse(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *TokenAuth) unauthorizedResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized"}`))
}
