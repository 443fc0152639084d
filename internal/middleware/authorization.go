package middleware

import (
	"net/http"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"
)

// RequireAuth blocks when no account is present in context (set by WithAuth).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AccountFrom(r.Context()); !ok {
			msg := "authentication required"
			if AuthError(r.Context()) != nil {
				msg = "invalid or expired token"
			}
			w.Header().Set("WWW-Authenticate", "Bearer")
			utils.Error(w, http.StatusUnauthorized, msg)
			return
		}
		next.ServeHTTP(w, r)
	})
}
