package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/rs/zerolog"
)

// TicketUpdate carries the fields an admin may change. Nil leaves a field
// alone; an empty AssignedTo unassigns.
type TicketUpdate struct {
	Status     *string
	AssignedTo *string
}

type TicketService struct {
	tickets  repository.TicketRepository
	accounts repository.AccountRepository
	log      zerolog.Logger
}

func NewTicketService(tickets repository.TicketRepository, accounts repository.AccountRepository, log zerolog.Logger) *TicketService {
	return &TicketService{tickets: tickets, accounts: accounts, log: log}
}

func (s *TicketService) Create(ctx context.Context, actor policy.Actor, title, description string) (*models.Ticket, error) {
	if err := policy.Authorize(actor, policy.CreateTicket, nil); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errs.Validation("title is required")
	}
	t := &models.Ticket{
		CreatedBy:   actor.ID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      models.TicketOpen,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info().Str("ticket_id", t.ID).Str("created_by", actor.ID).Msg("ticket created")
	return t, nil
}

// List returns all tickets for admins and only the actor's own otherwise.
func (s *TicketService) List(ctx context.Context, actor policy.Actor, status string) ([]models.Ticket, error) {
	f, err := listFilter(actor, policy.ListTickets)
	if err != nil {
		return nil, err
	}
	f.Status = status
	return s.tickets.List(ctx, f)
}

// Get returns a ticket the actor may see. Tickets owned by someone else are
// reported as missing so their existence does not leak.
func (s *TicketService) Get(ctx context.Context, actor policy.Actor, id string) (*models.Ticket, error) {
	if policy.ScopeOf(actor, policy.ViewTicket) == policy.ScopeNone {
		return nil, policy.Authorize(actor, policy.ViewTicket, nil)
	}
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.Allow(actor, policy.ViewTicket, &policy.Resource{OwnerID: t.CreatedBy}) {
		return nil, fmt.Errorf("ticket: %w", errs.ErrNotFound)
	}
	return t, nil
}

func (s *TicketService) Update(ctx context.Context, actor policy.Actor, id string, in TicketUpdate) (*models.Ticket, error) {
	if err := policy.Authorize(actor, policy.UpdateTicket, nil); err != nil {
		return nil, err
	}
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	expected := t.Status
	if t.Status.Terminal() {
		return nil, fmt.Errorf("ticket is %s: %w", t.Status, errs.ErrInvalidTransition)
	}

	if in.Status != nil {
		next := models.TicketStatus(strings.TrimSpace(*in.Status))
		if !next.Valid() {
			return nil, errs.Validation(fmt.Sprintf("unknown ticket status %q", *in.Status))
		}
		if next != t.Status && !t.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%s -> %s: %w", t.Status, next, errs.ErrInvalidTransition)
		}
		t.Status = next
	}
	if in.AssignedTo != nil {
		assignee := strings.TrimSpace(*in.AssignedTo)
		if assignee != "" {
			if _, err := s.accounts.GetByID(ctx, assignee); err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					return nil, fmt.Errorf("assignee: %w", errs.ErrNotFound)
				}
				return nil, err
			}
		}
		t.AssignedTo = assignee
	}

	if err := s.tickets.Update(ctx, t, expected); err != nil {
		return nil, err
	}
	s.log.Info().Str("ticket_id", t.ID).Str("status", string(t.Status)).Str("by", actor.ID).Msg("ticket updated")
	return t, nil
}
