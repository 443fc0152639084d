package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
)

var when = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestBookCreatesScheduledAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	pat := f.account(t, "p@x.com", models.RolePatient)
	v := f.vaccine(t, admin, 2)
	p := f.patient(t, pat, "p@x.com")

	a, err := f.booking.Book(ctx, pat, BookingRequest{PatientID: p.ID, VaccineID: v.ID, ScheduledDate: when})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if a.Status != models.AppointmentScheduled || a.DoseNumber != 1 || a.BookedBy != pat.ID {
		t.Fatalf("unexpected appointment %+v", a)
	}
}

func TestBookUnknownVaccineCreatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pat := f.account(t, "p@x.com", models.RolePatient)
	p := f.patient(t, pat, "p@x.com")

	_, err := f.booking.Book(ctx, pat, BookingRequest{PatientID: p.ID, VaccineID: "missing", ScheduledDate: when})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	all, _ := f.repos.Appointments.List(ctx, repository.ListFilter{})
	if len(all) != 0 {
		t.Fatalf("appointment row created on failure: %+v", all)
	}
}

func TestBookUnknownPatient(t *testing.T) {
	f := newFixture(t)
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	pat := f.account(t, "p@x.com", models.RolePatient)
	v := f.vaccine(t, admin, 1)
	_, err := f.booking.Book(context.Background(), pat, BookingRequest{PatientID: "missing", VaccineID: v.ID, ScheduledDate: when})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	alice := f.account(t, "alice@x.com", models.RolePatient)
	bob := f.account(t, "bob@x.com", models.RolePatient)
	staff := f.account(t, "staff@x.com", models.RoleStaff)
	v := f.vaccine(t, admin, 1)
	p := f.patient(t, alice, "alice@x.com")
	req := BookingRequest{PatientID: p.ID, VaccineID: v.ID, ScheduledDate: when}

	if _, err := f.booking.Book(ctx, bob, req); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("booking for another account's patient: got %v", err)
	}
	if _, err := f.booking.Book(ctx, staff, req); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("staff booking: got %v", err)
	}
	if _, err := f.booking.Book(ctx, admin, req); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("admin booking: got %v", err)
	}
	if _, err := f.booking.Book(ctx, policy.Actor{}, req); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("anonymous booking: got %v", err)
	}
}

func TestBookDoseRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	pat := f.account(t, "p@x.com", models.RolePatient)
	v := f.vaccine(t, admin, 2)
	p := f.patient(t, pat, "p@x.com")

	for _, dose := range []int{-1, 3} {
		_, err := f.booking.Book(ctx, pat, BookingRequest{PatientID: p.ID, VaccineID: v.ID, ScheduledDate: when, DoseNumber: dose})
		if !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("dose %d: got %v", dose, err)
		}
	}
	req := BookingRequest{PatientID: p.ID, VaccineID: v.ID, ScheduledDate: when, DoseNumber: 2}
	if _, err := f.booking.Book(ctx, pat, req); err != nil {
		t.Fatalf("dose 2: %v", err)
	}
	if _, err := f.booking.Book(ctx, pat, req); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("double booking: got %v", err)
	}
	if _, err := f.booking.Book(ctx, pat, BookingRequest{PatientID: p.ID, VaccineID: v.ID}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("missing date: got %v", err)
	}
}

func TestRecordOutcome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	pat := f.account(t, "p@x.com", models.RolePatient)
	v := f.vaccine(t, admin, 1)
	p := f.patient(t, pat, "p@x.com")
	a, _ := f.booking.Book(ctx, pat, BookingRequest{PatientID: p.ID, VaccineID: v.ID, ScheduledDate: when})

	if _, err := f.booking.RecordOutcome(ctx, pat, a.ID, ""); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("patient recording outcome: got %v", err)
	}
	if _, err := f.booking.RecordOutcome(ctx, admin, "missing", ""); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("missing appointment: got %v", err)
	}
	if _, err := f.booking.RecordOutcome(ctx, admin, a.ID, "vaccinated"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("unknown status: got %v", err)
	}

	done, err := f.booking.RecordOutcome(ctx, admin, a.ID, "")
	if err != nil || done.Status != models.AppointmentCompleted {
		t.Fatalf("default outcome: %+v %v", done, err)
	}
	for _, next := range []string{"cancelled", "completed", "scheduled"} {
		if _, err := f.booking.RecordOutcome(ctx, admin, a.ID, next); !errors.Is(err, errs.ErrInvalidTransition) {
			t.Fatalf("terminal -> %s: got %v", next, err)
		}
	}
}

func TestCancelledDoseCanBeRebooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	pat := f.account(t, "p@x.com", models.RolePatient)
	v := f.vaccine(t, admin, 1)
	p := f.patient(t, pat, "p@x.com")
	req := BookingRequest{PatientID: p.ID, VaccineID: v.ID, ScheduledDate: when}

	a, _ := f.booking.Book(ctx, pat, req)
	if _, err := f.booking.RecordOutcome(ctx, admin, a.ID, "cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.booking.Book(ctx, pat, req); err != nil {
		t.Fatalf("rebook: %v", err)
	}
}

func TestListAppointmentsScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	alice := f.account(t, "alice@x.com", models.RolePatient)
	bob := f.account(t, "bob@x.com", models.RolePatient)
	v := f.vaccine(t, admin, 1)
	for _, who := range []policy.Actor{alice, bob} {
		p := f.patient(t, who, who.ID+"@patients.example")
		if _, err := f.booking.Book(ctx, who, BookingRequest{PatientID: p.ID, VaccineID: v.ID, ScheduledDate: when}); err != nil {
			t.Fatalf("book: %v", err)
		}
	}

	mine, _ := f.booking.List(ctx, alice, "")
	if len(mine) != 1 || mine[0].BookedBy != alice.ID {
		t.Fatalf("alice sees %+v", mine)
	}
	all, _ := f.booking.List(ctx, admin, "")
	if len(all) != 2 {
		t.Fatalf("admin sees %d", len(all))
	}
	if _, err := f.booking.List(ctx, policy.Actor{}, ""); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("anonymous list: got %v", err)
	}
}
