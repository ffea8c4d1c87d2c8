// Package api implements the Inkpad REST surface on chi: document CRUD,
// block mutations, search, export, workspace state, and attachments.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AuthMiddleware enforces "Authorization: Bearer <token>" on every request
// when enabled. With auth disabled it is a no-op, which is the default for
// a single-user local workspace.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
