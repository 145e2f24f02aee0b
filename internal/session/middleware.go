package session

import (
	"net/http"

	"physcalc/internal/handlers"
)

// RequireLogin redirects anonymous requests to /login.
func (m *Manager) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := m.Username(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUsername(r.Context(), username)))
	})
}

// RequireAPI answers anonymous requests with 401 JSON.
func (m *Manager) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := m.Username(r)
		if !ok {
			handlers.WriteError(w, http.StatusUnauthorized, "login required")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUsername(r.Context(), username)))
	})
}
