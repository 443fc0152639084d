package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"

	"github.com/rs/zerolog"
)

type ctxKey string

const (
	ctxAccount   ctxKey = "account"
	ctxAuthError ctxKey = "auth_error"
)

// TokenValidator resolves a bearer token to its account.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*models.Account, error)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// WithAuth attaches the caller's account to the request context. Requests
// without a usable token continue anonymously; RequireAuth and the policy
// decide what anonymous callers may do. Failures other than a rejected token
// end the request with 500.
func WithAuth(log zerolog.Logger, sessions TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			acc, err := sessions.Validate(r.Context(), tok)
			if err != nil && !errs.IsAuth(err) {
				log.Error().Err(err).Str("path", r.URL.Path).Msg("token validation failed")
				utils.Error(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("bearer token rejected")
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxAuthError, err)))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxAccount, acc)))
		})
	}
}

// AccountFrom returns the authenticated account, if any.
func AccountFrom(ctx context.Context) (*models.Account, bool) {
	acc, ok := utils.Get[*models.Account](ctx, ctxAccount)
	return acc, ok && acc != nil
}

// ActorFrom returns the caller as a policy actor; anonymous when no valid
// token was presented.
func ActorFrom(ctx context.Context) policy.Actor {
	if acc, ok := AccountFrom(ctx); ok {
		return policy.ActorFor(*acc)
	}
	return policy.Actor{}
}

// AuthError returns why a presented token was rejected.
func AuthError(ctx context.Context) error {
	err, _ := utils.Get[error](ctx, ctxAuthError)
	return err
}
