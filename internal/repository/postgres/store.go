package postgres

import (
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewStore(db *pgxpool.Pool) repository.Store {
	return repository.Store{
		Accounts:     NewAccountRepo(db),
		Patients:     NewPatientRepo(db),
		Vaccines:     NewVaccineRepo(db),
		Appointments: NewAppointmentRepo(db),
		Tickets:      NewTicketRepo(db),
	}
}
