package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

type contextKey string

const (
	userIDKey contextKey = "auth.userID"
	roleKey   contextKey = "auth.role"
)

// UserID returns the authenticated shopper's Telegram id from the request
// context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Middleware builds the route guards used by the other modules.
type Middleware struct {
	secret string
}

// NewMiddleware creates route guards signing-key matching the auth service.
func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{secret: jwtSecret}
}

// RequireUser admits requests carrying a valid shopper token and puts the
// user id in the context.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.claims(w, r)
		if !ok {
			return
		}
		id, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			http.Error(w, "invalid token subject", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin admits requests carrying a valid staff token.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.claims(w, r)
		if !ok {
			return
		}
		if claims.Role != adminRole {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) claims(w http.ResponseWriter, r *http.Request) (*sessionClaims, bool) {
	header := r.Header.Get("Authorization")
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == "" || raw == header {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return nil, false
	}
	claims, err := parseToken(raw, m.secret)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}
