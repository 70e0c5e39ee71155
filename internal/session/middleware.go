package session

import (
	"context"
	"net/http"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

// ctxKey is the key used to store session data in context
const ctxKey contextKey = "session"

// Middleware attaches the visitor's session to the request context when the
// request carries a valid cart cookie. Requests without one pass through
// unchanged; handlers see a nil session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.GetSession(r.Context(), r)
		if err == nil {
			ctx := context.WithValue(r.Context(), ctxKey, session)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// FromContext retrieves session data from the request context.
func FromContext(ctx context.Context) *Data {
	if ctx == nil {
		return nil
	}
	session, ok := ctx.Value(ctxKey).(*Data)
	if !ok {
		return nil
	}
	return session
}
