package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
)

type TicketRepo struct{ s *Store }

func (r *TicketRepo) Create(_ context.Context, t *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	t.ID = newID()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.tickets[t.ID] = *t
	r.s.ticketOrder = append(r.s.ticketOrder, t.ID)
	return nil
}

func (r *TicketRepo) Get(_ context.Context, id string) (*models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &t, nil
}

func (r *TicketRepo) List(_ context.Context, f repository.ListFilter) ([]models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Ticket{}
	for _, id := range r.s.ticketOrder {
		t := r.s.tickets[id]
		if f.OwnerID != "" && t.CreatedBy != f.OwnerID {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TicketRepo) Update(_ context.Context, t *models.Ticket, expected models.TicketStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tickets[t.ID]
	if !ok {
		return errs.ErrNotFound
	}
	if cur.Status != expected {
		return fmt.Errorf("ticket changed concurrently (now %s): %w", cur.Status, errs.ErrInvalidTransition)
	}
	t.CreatedBy, t.CreatedAt = cur.CreatedBy, cur.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	r.s.tickets[t.ID] = *t
	return nil
}

func (r *TicketRepo) CountUnresolved(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, t := range r.s.tickets {
		if t.Status != models.TicketResolved && t.Status != models.TicketClosed {
			n++
		}
	}
	return n, nil
}
