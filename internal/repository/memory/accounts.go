package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
)

type AccountRepo struct{ s *Store }

func (r *AccountRepo) Create(_ context.Context, email string, role models.Role, passwordHash string) (*models.Account, error) {
	key := strings.ToLower(email)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.accountEmails[key]; taken {
		return nil, fmt.Errorf("account %s: %w", email, errs.ErrConflict)
	}
	acc := models.Account{ID: newID(), Email: email, Role: role, CreatedAt: time.Now().UTC()}
	r.s.accounts[acc.ID] = accountRow{Account: acc, PasswordHash: passwordHash}
	r.s.accountEmails[key] = acc.ID
	return &acc, nil
}

func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.accountEmails[strings.ToLower(email)]
	if !ok {
		return nil, "", errs.ErrNotFound
	}
	row := r.s.accounts[id]
	acc := row.Account
	return &acc, row.PasswordHash, nil
}

func (r *AccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.accounts[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	acc := row.Account
	return &acc, nil
}

// Delete removes an account. Only tests use it, to model a deleted subject.
func (r *AccountRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.accounts[id]
	if !ok {
		return errs.ErrNotFound
	}
	delete(r.s.accounts, id)
	delete(r.s.accountEmails, strings.ToLower(row.Email))
	return nil
}
