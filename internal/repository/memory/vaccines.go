package memory

import (
	"context"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
)

type VaccineRepo struct{ s *Store }

func (r *VaccineRepo) Create(_ context.Context, v *models.Vaccine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v.ID = newID()
	v.CreatedAt = time.Now().UTC()
	r.s.vaccines[v.ID] = *v
	r.s.vaccineOrder = append(r.s.vaccineOrder, v.ID)
	return nil
}

func (r *VaccineRepo) Get(_ context.Context, id string) (*models.Vaccine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vaccines[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &v, nil
}

func (r *VaccineRepo) List(_ context.Context) ([]models.Vaccine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Vaccine, 0, len(r.s.vaccineOrder))
	for _, id := range r.s.vaccineOrder {
		out = append(out, r.s.vaccines[id])
	}
	return out, nil
}
