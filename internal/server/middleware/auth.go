// Package middleware provides HTTP middleware for session authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const sessionKey ContextKey = "session"

// Session is the authenticated principal carried by a token.
type Session interface {
	GetEmail() string
}

// TokenValidator validates a session token.
type TokenValidator interface {
	ValidateToken(tokenString string) (Session, error)
}

// Unauthorized handles a request without a valid session.
type Unauthorized func(w http.ResponseWriter, r *http.Request)

// RespondUnauthorized replies with a plain 401.
func RespondUnauthorized(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// AuthMiddleware requires a valid token, read from the Authorization header
// ("Bearer <token>") or, failing that, from the named cookie.
func AuthMiddleware(validator TokenValidator, cookieName string, onFail Unauthorized) func(http.Handler) http.Handler {
	if onFail == nil {
		onFail = RespondUnauthorized
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractToken(r, cookieName)
			if !ok {
				onFail(w, r)
				return
			}

			session, err := validator.ValidateToken(token)
			if err != nil {
				onFail(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request, cookieName string) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return parts[1], true
	}

	if cookieName == "" {
		return "", false
	}
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// GetSession returns the session stored by AuthMiddleware.
func GetSession(r *http.Request) (Session, error) {
	s, ok := r.Context().Value(sessionKey).(Session)
	if !ok {
		return nil, fmt.Errorf("session not found in request context")
	}
	return s, nil
}

// WithSession returns ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}
