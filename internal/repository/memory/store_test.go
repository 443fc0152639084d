package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
)

func TestAccountEmailUniqueUnderConcurrency(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Accounts.Create(ctx, "Dup@X.com", models.RolePatient, "h")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errs.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error %v", err)
		}
	}
	if ok != 1 || conflicts != n-1 {
		t.Fatalf("got %d successes and %d conflicts", ok, conflicts)
	}
}

func TestAccountLookupIsCaseInsensitive(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	acc, err := repos.Accounts.Create(ctx, "a@x.com", models.RoleAdmin, "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, hash, err := repos.Accounts.GetByEmail(ctx, "A@X.COM")
	if err != nil || got.ID != acc.ID || hash != "hash" {
		t.Fatalf("lookup: %+v %q %v", got, hash, err)
	}
	if _, err := repos.Accounts.GetByID(ctx, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVaccinesKeepInsertionOrder(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	for _, name := range []string{"Zeta", "Alpha", "Alpha"} {
		if err := repos.Vaccines.Create(ctx, &models.Vaccine{Name: name, DosesRequired: 1}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, _ := repos.Vaccines.List(ctx)
	if len(list) != 3 || list[0].Name != "Zeta" || list[1].Name != "Alpha" {
		t.Fatalf("unexpected order %+v", list)
	}
}

func TestAppointmentActiveDoseUnique(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	mk := func() *models.Appointment {
		return &models.Appointment{PatientID: "p", VaccineID: "v", BookedBy: "acc", DoseNumber: 1,
			ScheduledDate: time.Now(), Status: models.AppointmentScheduled}
	}
	first := mk()
	if err := repos.Appointments.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repos.Appointments.Create(ctx, mk()); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := repos.Appointments.Transition(ctx, first.ID,
		[]models.AppointmentStatus{models.AppointmentScheduled}, models.AppointmentCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := repos.Appointments.Create(ctx, mk()); err != nil {
		t.Fatalf("rebooking a cancelled dose should succeed: %v", err)
	}
}

func TestAppointmentTransitionCompareAndSet(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	a := &models.Appointment{PatientID: "p", VaccineID: "v", DoseNumber: 1, Status: models.AppointmentScheduled}
	_ = repos.Appointments.Create(ctx, a)
	from := []models.AppointmentStatus{models.AppointmentScheduled}

	if _, err := repos.Appointments.Transition(ctx, a.ID, from, models.AppointmentCompleted); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if _, err := repos.Appointments.Transition(ctx, a.ID, from, models.AppointmentCancelled); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if _, err := repos.Appointments.Transition(ctx, "nope", from, models.AppointmentCompleted); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	counts, _ := repos.Appointments.CountByStatus(ctx)
	if counts[models.AppointmentCompleted] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestTicketListScopedByOwner(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	_ = repos.Tickets.Create(ctx, &models.Ticket{CreatedBy: "u1", Title: "a", Status: models.TicketOpen})
	_ = repos.Tickets.Create(ctx, &models.Ticket{CreatedBy: "u2", Title: "b", Status: models.TicketOpen})

	mine, _ := repos.Tickets.List(ctx, repository.ListFilter{OwnerID: "u1"})
	if len(mine) != 1 || mine[0].CreatedBy != "u1" {
		t.Fatalf("unexpected owner listing %+v", mine)
	}
	all, _ := repos.Tickets.List(ctx, repository.ListFilter{})
	if len(all) != 2 {
		t.Fatalf("expected both tickets, got %d", len(all))
	}
}

func TestAppointmentsListedBySchedule(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for i, offset := range []int{2, 0, 1} {
		a := &models.Appointment{
			PatientID: "p", VaccineID: "v", BookedBy: "u",
			ScheduledDate: day.AddDate(0, 0, offset), DoseNumber: i + 1,
			Status: models.AppointmentScheduled,
		}
		if err := repos.Appointments.Create(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, _ := repos.Appointments.List(ctx, repository.ListFilter{})
	for i, want := range []int{2, 3, 1} {
		if list[i].DoseNumber != want {
			t.Fatalf("position %d: dose %d, want %d", i, list[i].DoseNumber, want)
		}
	}
}
