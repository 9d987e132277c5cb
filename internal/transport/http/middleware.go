package http

import (
	"context"
	"net/http"
	"strings"

	"quizdash/internal/domain"
)

type contextKey struct{}

var userKey contextKey

// requireUser resolves the bearer token to an account and stores it on the
// request context. Requests without a valid token never reach the handler.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, domain.ErrInvalidCredentials)
			return
		}
		user, err := s.auth.CurrentUser(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func requestUser(r *http.Request) domain.User {
	user, _ := r.Context().Value(userKey).(domain.User)
	return user
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	// Browsers cannot set headers on websocket upgrades.
	return r.URL.Query().Get("token")
}
