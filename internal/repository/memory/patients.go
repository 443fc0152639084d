package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
)

type PatientRepo struct{ s *Store }

func (r *PatientRepo) Create(_ context.Context, p *models.Patient) error {
	key := strings.ToLower(p.Email)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.patientEmails[key]; taken {
		return fmt.Errorf("patient %s: %w", p.Email, errs.ErrConflict)
	}
	p.ID = newID()
	p.CreatedAt = time.Now().UTC()
	r.s.patients[p.ID] = *p
	r.s.patientEmails[key] = p.ID
	r.s.patientOrder = append(r.s.patientOrder, p.ID)
	return nil
}

func (r *PatientRepo) Get(_ context.Context, id string) (*models.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.patients[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &p, nil
}

func (r *PatientRepo) List(_ context.Context, f repository.ListFilter) ([]models.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Patient{}
	for _, id := range r.s.patientOrder {
		p := r.s.patients[id]
		if f.OwnerID != "" && p.AccountID != f.OwnerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
