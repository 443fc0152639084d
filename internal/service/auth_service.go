package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"

	"github.com/rs/zerolog"
)

var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", errs.ErrUnauthenticated)

type AuthService struct {
	users      repository.AccountRepository
	sessions   *SessionIssuer
	bcryptCost int
	dummyHash  string
	log        zerolog.Logger
}

func NewAuthService(users repository.AccountRepository, sessions *SessionIssuer, bcryptCost int, log zerolog.Logger) *AuthService {
	// compared against on unknown emails so both failure paths pay for bcrypt
	dummy, _ := utils.HashPassword("unused-password", bcryptCost)
	return &AuthService{users: users, sessions: sessions, bcryptCost: bcryptCost, dummyHash: dummy, log: log}
}

// normalizeEmail trims, lower-cases and checks that s is a bare address.
func normalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", errs.Validation("email is required")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", errs.Validation("email is not a valid address")
	}
	return s, nil
}

// Register creates an account. Self-signup may pick patient (default) or
// staff; admin accounts come only from the startup bootstrap.
func (a *AuthService) Register(ctx context.Context, email, password, role string) (*models.Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errs.Validation("password is required")
	}

	r := models.Role(strings.ToLower(strings.TrimSpace(role)))
	if r == "" {
		r = models.RolePatient
	}
	switch {
	case !r.Valid():
		return nil, errs.Validation("role must be patient or staff")
	case r == models.RoleAdmin:
		return nil, fmt.Errorf("admin accounts cannot self-register: %w", errs.ErrForbidden)
	}

	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		return nil, errs.Validation("password cannot be hashed")
	}
	acc, err := a.users.Create(ctx, email, r, hash)
	if err != nil {
		return nil, err
	}
	a.log.Info().Str("account_id", acc.ID).Str("role", string(acc.Role)).Msg("account registered")
	return acc, nil
}

// Login checks credentials and issues a bearer token. Unknown email and wrong
// password fail the same way.
func (a *AuthService) Login(ctx context.Context, email, password string) (token string, user *models.Account, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, hash, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		utils.CheckPassword(a.dummyHash, password)
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPassword(hash, password) {
		a.log.Debug().Str("account_id", u.ID).Msg("login refused")
		return "", nil, ErrInvalidCredentials
	}
	tok, err := a.sessions.Issue(u)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// EnsureAdmin makes sure an admin account with email exists. It is safe to run
// on every start and from several processes at once.
func (a *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*models.Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if u, _, err := a.users.GetByEmail(ctx, email); err == nil {
		if u.Role != models.RoleAdmin {
			return nil, fmt.Errorf("bootstrap admin %s exists with role %s: %w", email, u.Role, errs.ErrConflict)
		}
		return u, nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		return nil, err
	}
	u, err := a.users.Create(ctx, email, models.RoleAdmin, hash)
	if errors.Is(err, errs.ErrConflict) {
		// another process created it between our lookup and insert
		u, _, err = a.users.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	a.log.Info().Str("account_id", u.ID).Msg("admin account ensured")
	return u, nil
}
