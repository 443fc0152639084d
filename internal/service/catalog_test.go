package service

import (
	"context"
	"errors"
	"testing"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/cache"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"

	"github.com/rs/zerolog"
)

type fakeCache struct {
	items       []models.Vaccine
	hit         bool
	fail        bool
	gen         int64
	invalidated int
	// beforeSet runs between the storage read and the cache fill.
	beforeSet func()
}

func (c *fakeCache) GetVaccines(context.Context) ([]models.Vaccine, int64, bool, error) {
	if c.fail {
		return nil, 0, false, errors.New("cache down")
	}
	return c.items, c.gen, c.hit, nil
}

func (c *fakeCache) SetVaccines(_ context.Context, gen int64, v []models.Vaccine) error {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	if c.fail {
		return errors.New("cache down")
	}
	if gen != c.gen {
		return cache.ErrStale
	}
	c.items, c.hit = v, true
	return nil
}

func (c *fakeCache) InvalidateVaccines(context.Context) error {
	c.invalidated++
	c.gen++
	c.items, c.hit = nil, false
	return nil
}

func TestCreateVaccinePolicyAndDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	pat := f.account(t, "p@x.com", models.RolePatient)

	if _, err := f.catalog.CreateVaccine(ctx, pat, VaccineInput{Name: "X"}); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("patient create: got %v", err)
	}
	if _, err := f.catalog.CreateVaccine(ctx, policy.Actor{}, VaccineInput{Name: "X"}); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("anonymous create: got %v", err)
	}
	v, err := f.catalog.CreateVaccine(ctx, admin, VaccineInput{Name: "X"})
	if err != nil || v.DosesRequired != 1 {
		t.Fatalf("default doses: %+v %v", v, err)
	}
	zero := 0
	if _, err := f.catalog.CreateVaccine(ctx, admin, VaccineInput{Name: "Y", DosesRequired: &zero}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("zero doses: got %v", err)
	}
	if _, err := f.catalog.CreateVaccine(ctx, admin, VaccineInput{Name: "X"}); err != nil {
		t.Fatalf("duplicate names are allowed: %v", err)
	}
	list, _ := f.catalog.ListVaccines(ctx, policy.Actor{})
	if len(list) != 2 {
		t.Fatalf("anonymous list: %d", len(list))
	}
}

func TestCatalogCacheReadThrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vc := &fakeCache{}
	catalog := NewCatalogService(f.repos.Vaccines, vc, zerolog.Nop())
	admin := f.account(t, "admin@x.com", models.RoleAdmin)

	if _, err := catalog.CreateVaccine(ctx, admin, VaccineInput{Name: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if vc.invalidated != 1 {
		t.Fatalf("create must invalidate the cache")
	}
	first, _ := catalog.ListVaccines(ctx, policy.Actor{})
	if !vc.hit || len(vc.items) != 1 {
		t.Fatalf("list must populate the cache")
	}
	second, _ := catalog.ListVaccines(ctx, policy.Actor{})
	if len(first) != 1 || len(second) != 1 || second[0].ID != first[0].ID {
		t.Fatalf("unexpected lists %+v %+v", first, second)
	}

	if _, err := catalog.CreateVaccine(ctx, admin, VaccineInput{Name: "B"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	fresh, _ := catalog.ListVaccines(ctx, policy.Actor{})
	if len(fresh) != 2 || fresh[1].Name != "B" {
		t.Fatalf("stale list after create: %+v", fresh)
	}
}

func TestCatalogDropsFillAfterConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vc := &fakeCache{}
	catalog := NewCatalogService(f.repos.Vaccines, vc, zerolog.Nop())
	admin := f.account(t, "admin@x.com", models.RoleAdmin)

	// A create lands after the list reads storage but before it fills the cache.
	vc.beforeSet = func() {
		vc.beforeSet = nil
		if _, err := catalog.CreateVaccine(ctx, admin, VaccineInput{Name: "Late"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := catalog.ListVaccines(ctx, policy.Actor{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if vc.hit {
		t.Fatalf("stale list cached: %+v", vc.items)
	}
	list, _ := catalog.ListVaccines(ctx, policy.Actor{})
	if len(list) != 1 || list[0].Name != "Late" {
		t.Fatalf("expected the new vaccine, got %+v", list)
	}
}

func TestCatalogSurvivesCacheFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	f.vaccine(t, admin, 1)

	catalog := NewCatalogService(f.repos.Vaccines, &fakeCache{fail: true}, zerolog.Nop())
	list, err := catalog.ListVaccines(ctx, policy.Actor{})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected storage fallback, got %+v %v", list, err)
	}
}

func TestPatientRegistration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.account(t, "admin@x.com", models.RoleAdmin)
	staff := f.account(t, "s@x.com", models.RoleStaff)

	p, err := f.patients.Register(ctx, staff, "kid@x.com", "Kid", 9)
	if err != nil || p.AccountID != staff.ID {
		t.Fatalf("register: %+v %v", p, err)
	}
	if _, err := f.patients.Register(ctx, admin, "KID@x.com", "Other", 40); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("duplicate patient email: got %v", err)
	}
	if _, err := f.patients.Register(ctx, staff, "neg@x.com", "N", -1); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("negative age: got %v", err)
	}
	if _, err := f.patients.Register(ctx, policy.Actor{}, "a@x.com", "A", 1); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("anonymous register: got %v", err)
	}
	own, _ := f.patients.List(ctx, staff)
	all, _ := f.patients.List(ctx, admin)
	if len(own) != 1 || len(all) != 1 {
		t.Fatalf("own=%d all=%d", len(own), len(all))
	}
}
