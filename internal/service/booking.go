package service

import (
	"context"
	"fmt"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/rs/zerolog"
)

type BookingRequest struct {
	PatientID     string
	VaccineID     string
	ScheduledDate time.Time
	DoseNumber    int // 0 means 1
}

type BookingService struct {
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	vaccines     repository.VaccineRepository
	log          zerolog.Logger
}

func NewBookingService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	vaccines repository.VaccineRepository,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{appointments: appointments, patients: patients, vaccines: vaccines, log: log}
}

// Book schedules a dose for a patient record the actor registered. The
// booking account becomes the appointment's owner.
func (b *BookingService) Book(ctx context.Context, actor policy.Actor, req BookingRequest) (*models.Appointment, error) {
	if policy.ScopeOf(actor, policy.BookAppointment) == policy.ScopeNone {
		return nil, policy.Authorize(actor, policy.BookAppointment, nil)
	}

	patient, err := b.patients.Get(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("patient: %w", err)
	}
	if err := policy.Authorize(actor, policy.BookAppointment, &policy.Resource{OwnerID: patient.AccountID}); err != nil {
		return nil, err
	}
	vaccine, err := b.vaccines.Get(ctx, req.VaccineID)
	if err != nil {
		return nil, fmt.Errorf("vaccine: %w", err)
	}

	dose := req.DoseNumber
	if dose == 0 {
		dose = 1
	}
	if dose < 1 || dose > vaccine.DosesRequired {
		return nil, errs.Validation(fmt.Sprintf("dose_number must be between 1 and %d", vaccine.DosesRequired))
	}
	if req.ScheduledDate.IsZero() {
		return nil, errs.Validation("scheduled_date is required")
	}

	a := &models.Appointment{
		PatientID:     patient.ID,
		VaccineID:     vaccine.ID,
		BookedBy:      actor.ID,
		ScheduledDate: req.ScheduledDate.UTC(),
		DoseNumber:    dose,
		Status:        models.AppointmentScheduled,
	}
	if err := b.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	b.log.Info().Str("appointment_id", a.ID).Str("patient_id", a.PatientID).
		Str("vaccine_id", a.VaccineID).Int("dose", a.DoseNumber).Msg("appointment booked")
	return a, nil
}

// RecordOutcome moves a scheduled appointment to completed (the default) or
// cancelled. Terminal appointments cannot change.
func (b *BookingService) RecordOutcome(ctx context.Context, actor policy.Actor, id, status string) (*models.Appointment, error) {
	if err := policy.Authorize(actor, policy.RecordVaccination, nil); err != nil {
		return nil, err
	}
	next := models.AppointmentStatus(status)
	if next == "" {
		next = models.AppointmentCompleted
	}
	if !next.Valid() {
		return nil, errs.Validation(fmt.Sprintf("unknown appointment status %q", status))
	}

	cur, err := b.appointments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("appointment: %w", err)
	}
	if cur.Status.Terminal() || !cur.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%s -> %s: %w", cur.Status, next, errs.ErrInvalidTransition)
	}
	a, err := b.appointments.Transition(ctx, id, models.AppointmentSourcesFor(next), next)
	if err != nil {
		return nil, err
	}
	b.log.Info().Str("appointment_id", a.ID).Str("status", string(a.Status)).Str("by", actor.ID).Msg("vaccination recorded")
	return a, nil
}

// List returns every appointment for admins and the actor's own bookings
// for everyone else.
func (b *BookingService) List(ctx context.Context, actor policy.Actor, status string) ([]models.Appointment, error) {
	f, err := listFilter(actor, policy.ListAppointments)
	if err != nil {
		return nil, err
	}
	f.Status = status
	return b.appointments.List(ctx, f)
}
