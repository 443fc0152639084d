package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
)

type AppointmentRepo struct{ s *Store }

func (r *AppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.appointmentOrder {
		cur := r.s.appointments[id]
		if cur.PatientID == a.PatientID && cur.VaccineID == a.VaccineID &&
			cur.DoseNumber == a.DoseNumber && cur.Status != models.AppointmentCancelled {
			return fmt.Errorf("dose %d already booked: %w", a.DoseNumber, errs.ErrConflict)
		}
	}
	now := time.Now().UTC()
	a.ID = newID()
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.appointments[a.ID] = *a
	r.s.appointmentOrder = append(r.s.appointmentOrder, a.ID)
	return nil
}

func (r *AppointmentRepo) Get(_ context.Context, id string) (*models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &a, nil
}

func (r *AppointmentRepo) List(_ context.Context, f repository.ListFilter) ([]models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Appointment{}
	for _, id := range r.s.appointmentOrder {
		a := r.s.appointments[id]
		if f.OwnerID != "" && a.BookedBy != f.OwnerID {
			continue
		}
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		out = append(out, a)
	}
	// same order as the postgres listing: scheduled_date, then created_at
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out, nil
}

func (r *AppointmentRepo) Transition(_ context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	allowed := false
	for _, s := range from {
		if a.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%s -> %s: %w", a.Status, to, errs.ErrInvalidTransition)
	}
	a.Status = to
	a.UpdatedAt = time.Now().UTC()
	r.s.appointments[id] = a
	return &a, nil
}

func (r *AppointmentRepo) CountByStatus(_ context.Context) (map[models.AppointmentStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[models.AppointmentStatus]int{}
	for _, a := range r.s.appointments {
		out[a.Status]++
	}
	return out, nil
}
