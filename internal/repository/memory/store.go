// Package memory is an in-process backend for tests and STORE=memory local
// runs. Each check-and-write happens under one mutex, which gives it the same
// uniqueness guarantees the Postgres constraints give.
package memory

import (
	"sync"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	accounts      map[string]accountRow
	accountEmails map[string]string

	patients      map[string]models.Patient
	patientEmails map[string]string
	patientOrder  []string

	vaccines     map[string]models.Vaccine
	vaccineOrder []string

	appointments     map[string]models.Appointment
	appointmentOrder []string

	tickets     map[string]models.Ticket
	ticketOrder []string
}

type accountRow struct {
	models.Account
	PasswordHash string
}

func NewStore() *Store {
	return &Store{
		accounts:      map[string]accountRow{},
		accountEmails: map[string]string{},
		patients:      map[string]models.Patient{},
		patientEmails: map[string]string{},
		vaccines:      map[string]models.Vaccine{},
		appointments:  map[string]models.Appointment{},
		tickets:       map[string]models.Ticket{},
	}
}

// Repositories exposes the store through the repository ports.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Accounts:     &AccountRepo{s},
		Patients:     &PatientRepo{s},
		Vaccines:     &VaccineRepo{s},
		Appointments: &AppointmentRepo{s},
		Tickets:      &TicketRepo{s},
	}
}

func newID() string { return uuid.NewString() }
