package service

import (
	"context"
	"strings"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/rs/zerolog"
)

type PatientService struct {
	patients repository.PatientRepository
	log      zerolog.Logger
}

func NewPatientService(patients repository.PatientRepository, log zerolog.Logger) *PatientService {
	return &PatientService{patients: patients, log: log}
}

// Register records a patient owned by the registering account. Patient email
// uniqueness is enforced by storage.
func (s *PatientService) Register(ctx context.Context, actor policy.Actor, email, name string, age int) (*models.Patient, error) {
	if err := policy.Authorize(actor, policy.RegisterPatient, nil); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Validation("name is required")
	}
	if age < 0 {
		return nil, errs.Validation("age must not be negative")
	}

	p := &models.Patient{AccountID: actor.ID, Email: email, Name: name, Age: age}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info().Str("patient_id", p.ID).Str("account_id", actor.ID).Msg("patient registered")
	return p, nil
}

func (s *PatientService) List(ctx context.Context, actor policy.Actor) ([]models.Patient, error) {
	f, err := listFilter(actor, policy.ListPatients)
	if err != nil {
		return nil, err
	}
	return s.patients.List(ctx, f)
}

// listFilter turns the actor's scope for a list action into a repository
// filter.
func listFilter(actor policy.Actor, action policy.Action) (repository.ListFilter, error) {
	switch policy.ScopeOf(actor, action) {
	case policy.ScopeAll:
		return repository.ListFilter{}, nil
	case policy.ScopeOwn:
		return repository.ListFilter{OwnerID: actor.ID}, nil
	default:
		return repository.ListFilter{}, policy.Authorize(actor, action, nil)
	}
}
