package repository

import (
	"context"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
)

// Repositories report a missing row as errs.ErrNotFound and a violated
// uniqueness constraint as errs.ErrConflict.

type AccountRepository interface {
	Create(ctx context.Context, email string, role models.Role, passwordHash string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

type PatientRepository interface {
	Create(ctx context.Context, p *models.Patient) error
	Get(ctx context.Context, id string) (*models.Patient, error)
	List(ctx context.Context, f ListFilter) ([]models.Patient, error)
}

type VaccineRepository interface {
	Create(ctx context.Context, v *models.Vaccine) error
	Get(ctx context.Context, id string) (*models.Vaccine, error)
	// List returns vaccines in insertion order.
	List(ctx context.Context) ([]models.Vaccine, error)
}

type AppointmentRepository interface {
	// Create fails with ErrConflict when the patient already holds a
	// non-cancelled booking for the same vaccine dose.
	Create(ctx context.Context, a *models.Appointment) error
	Get(ctx context.Context, id string) (*models.Appointment, error)
	List(ctx context.Context, f ListFilter) ([]models.Appointment, error)
	// Transition moves the appointment to `to` only if its current status is
	// one of `from`. A row in another state yields ErrInvalidTransition.
	Transition(ctx context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus) (*models.Appointment, error)
	CountByStatus(ctx context.Context) (map[models.AppointmentStatus]int, error)
}

type TicketRepository interface {
	Create(ctx context.Context, t *models.Ticket) error
	Get(ctx context.Context, id string) (*models.Ticket, error)
	List(ctx context.Context, f ListFilter) ([]models.Ticket, error)
	// Update persists t if the stored status still equals expected.
	Update(ctx context.Context, t *models.Ticket, expected models.TicketStatus) error
	CountUnresolved(ctx context.Context) (int, error)
}

// Store bundles the repositories one backend provides.
type Store struct {
	Accounts     AccountRepository
	Patients     PatientRepository
	Vaccines     VaccineRepository
	Appointments AppointmentRepository
	Tickets      TicketRepository
}
