package service

import (
	"context"
	"testing"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository/memory"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	repos    repository.Store
	sessions *SessionIssuer
	auth     *AuthService
	catalog  *CatalogService
	patients *PatientService
	booking  *BookingService
	tickets  *TicketService
	reports  *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewStore().Repositories()
	log := zerolog.Nop()
	sessions := NewSessionIssuer(repos.Accounts, "test-secret", time.Hour)
	return &fixture{
		repos:    repos,
		sessions: sessions,
		auth:     NewAuthService(repos.Accounts, sessions, bcrypt.MinCost, log),
		catalog:  NewCatalogService(repos.Vaccines, nil, log),
		patients: NewPatientService(repos.Patients, log),
		booking:  NewBookingService(repos.Appointments, repos.Patients, repos.Vaccines, log),
		tickets:  NewTicketService(repos.Tickets, repos.Accounts, log),
		reports:  NewReportService(repos.Appointments, repos.Tickets),
	}
}

func (f *fixture) account(t *testing.T, email string, role models.Role) policy.Actor {
	t.Helper()
	acc, err := f.repos.Accounts.Create(context.Background(), email, role, "unused")
	if err != nil {
		t.Fatalf("create %s: %v", email, err)
	}
	return policy.ActorFor(*acc)
}

func (f *fixture) vaccine(t *testing.T, admin policy.Actor, doses int) *models.Vaccine {
	t.Helper()
	v, err := f.catalog.CreateVaccine(context.Background(), admin, VaccineInput{Name: "Comirnaty", Manufacturer: "Pfizer", DosesRequired: &doses})
	if err != nil {
		t.Fatalf("create vaccine: %v", err)
	}
	return v
}

func (f *fixture) patient(t *testing.T, owner policy.Actor, email string) *models.Patient {
	t.Helper()
	p, err := f.patients.Register(context.Background(), owner, email, "Pat", 30)
	if err != nil {
		t.Fatalf("register patient: %v", err)
	}
	return p
}
