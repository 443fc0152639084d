package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func Recoverer(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					l.Error().
						Interface("panic", rec).
						Str("request_id", chimw.GetReqID(r.Context())).
						Bytes("stack", debug.Stack()).
						Msg("panic")
					utils.Error(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
