package http

import (
	"context"
	"net/http"

	"github.com/combet/combet-server/internal/combet-api/session"
)

type ctxKey int

const ctxKeyUserID ctxKey = iota

// sessionToken lê o token do header "x-session-id", com fallback no
// header legado "session-id" e no query param "session_id" (o WebSocket
// do browser não consegue mandar header customizado)
func sessionToken(r *http.Request) string {
	if t := r.Header.Get("x-session-id"); t != "" {
		return t
	}
	if t := r.Header.Get("session-id"); t != "" {
		return t
	}
	return r.URL.Query().Get("session_id")
}

// requireSession resolve o token pra um userID e injeta no contexto.
// Sem token: 401 "Missing session"; token desconhecido: 401 "Invalid session"
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Missing session")
			return
		}

		userID, err := s.sess.Resolve(r.Context(), token)
		if err == session.ErrNotFound {
			writeError(w, http.StatusUnauthorized, "Invalid session")
			return
		}
		if err != nil {
			s.serverError(w, "resolve session", err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(ctxKeyUserID).(string)
	return id
}
