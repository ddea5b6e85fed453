package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/skillspace/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext extracts the dashboard session from context
func SessionFromContext(ctx context.Context) *session.Session {
	s, ok := ctx.Value(sessionContextKey).(*session.Session)
	if !ok {
		return nil
	}
	return s
}

// ContextWithSession adds a session to context
func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// sessionMiddleware resolves the {id} URL parameter to a live session
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.store.Get(chi.URLParam(r, "id"))
		if !ok {
			respondError(w, http.StatusNotFound, "session_not_found", "session not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
	})
}
