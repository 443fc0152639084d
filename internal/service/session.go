package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"
)

// SessionIssuer mints and checks bearer tokens. There is no revocation list:
// a token stays valid until its expiry even if the password changes.
type SessionIssuer struct {
	accounts repository.AccountRepository
	secret   string
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionIssuer(accounts repository.AccountRepository, secret string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{accounts: accounts, secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *SessionIssuer) WithClock(now func() time.Time) *SessionIssuer {
	s.now = now
	return s
}

func (s *SessionIssuer) Issue(acc *models.Account) (string, error) {
	return s.IssueFor(acc, s.ttl)
}

func (s *SessionIssuer) IssueFor(acc *models.Account, ttl time.Duration) (string, error) {
	return utils.SignJWT(s.secret, acc.ID, acc.Email, s.now(), ttl)
}

// Validate resolves token to the account it names. Role and email come from
// storage, not from the token.
func (s *SessionIssuer) Validate(ctx context.Context, token string) (*models.Account, error) {
	claims, err := utils.ParseJWT(s.secret, token, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	acc, err := s.accounts.GetByID(ctx, claims.Subject)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrUnknownSubject
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}
