package postgres

import (
	"errors"
	"fmt"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// translate maps driver errors onto the shared taxonomy.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, errs.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", what, errs.ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// validID rejects ids Postgres could not cast to uuid, which would otherwise
// surface as a 22P02 error instead of a plain miss.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
