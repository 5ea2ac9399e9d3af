package httpapi

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/streakkeeper/internal/server/auth"
)

type contextKey string

const usernameKey contextKey = "username"

// usernameFromContext returns the authenticated username set by
// authMiddleware, or "" when the request was not authenticated.
func usernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// authMiddleware requires a valid Bearer JWT and puts the username into
// the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no token"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		username, err := auth.GetUsernameFromToken(token, []byte(s.config.SecretKey))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminMiddleware requires the shared admin key in the X-Admin-Key header.
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.config.AdminKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "admin key required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
