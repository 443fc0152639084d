package postgres

import (
	"context"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepo struct{ db *pgxpool.Pool }

func NewAccountRepo(db *pgxpool.Pool) repository.AccountRepository { return &AccountRepo{db: db} }

// Create relies on the unique index on lower(email); a second writer gets
// ErrConflict.
func (r *AccountRepo) Create(ctx context.Context, email string, role models.Role, passwordHash string) (*models.Account, error) {
	var u models.Account
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (email, role, password_h)
		VALUES ($1,$2,$3)
		RETURNING id::text, email, role, created_at`,
		email, string(role), passwordHash).
		Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, translate(err, "create account")
	}
	return &u, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, string, error) {
	var u models.Account
	var ph string
	err := r.db.QueryRow(ctx, `
		SELECT id::text, email, role, password_h, created_at
		FROM accounts WHERE lower(email)=lower($1)`, email).
		Scan(&u.ID, &u.Email, &u.Role, &ph, &u.CreatedAt)
	if err != nil {
		return nil, "", translate(err, "account by email")
	}
	return &u, ph, nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if !validID(id) {
		return nil, errs.ErrNotFound
	}
	var u models.Account
	err := r.db.QueryRow(ctx, `
		SELECT id::text, email, role, created_at
		FROM accounts WHERE id=$1`, id).
		Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, translate(err, "account by id")
	}
	return &u, nil
}
