package admin

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"coldwatch/internal/models"
)

// BearerAuth guards the admin API with a single operator token:
// Authorization: Bearer <token>. Constant-time compare.
func BearerAuth(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const p = "Bearer "
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, p) ||
				subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(auth, p)), []byte(token)) != 1 {
				models.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
