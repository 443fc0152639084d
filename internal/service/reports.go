package service

import (
	"context"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
)

type Summary struct {
	Scheduled         int `json:"scheduled"`
	Completed         int `json:"completed"`
	Cancelled         int `json:"cancelled"`
	UnresolvedTickets int `json:"unresolved_tickets"`
}

type ReportService struct {
	appointments repository.AppointmentRepository
	tickets      repository.TicketRepository
}

func NewReportService(appointments repository.AppointmentRepository, tickets repository.TicketRepository) *ReportService {
	return &ReportService{appointments: appointments, tickets: tickets}
}

func (s *ReportService) Summary(ctx context.Context, actor policy.Actor) (*Summary, error) {
	if err := policy.Authorize(actor, policy.ViewReports, nil); err != nil {
		return nil, err
	}
	counts, err := s.appointments.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.tickets.CountUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Scheduled:         counts[models.AppointmentScheduled],
		Completed:         counts[models.AppointmentCompleted],
		Cancelled:         counts[models.AppointmentCancelled],
		UnresolvedTickets: open,
	}, nil
}
