package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"

	"github.com/rs/zerolog"
)

// statusFor maps a service error to its HTTP status and public message.
func statusFor(err error) (int, string) {
	var ve interface{ Reason() string }
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ve.Reason()
	case errors.Is(err, errs.ErrValidation):
		return http.StatusUnprocessableEntity, "invalid request"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusBadRequest, "already exists"
	case errs.IsAuth(err):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, "invalid status transition"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// fail writes err as {"detail": ...}. Internal errors are logged, never
// echoed.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	case http.StatusUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	utils.Error(w, status, msg)
}

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// decode reads a JSON body into v. An empty body is allowed when optional.
func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return errs.Validation("request body too large")
	case errors.Is(err, io.EOF) && optional:
		return nil
	case err != nil:
		return errs.Validation("invalid json")
	}
	return nil
}
