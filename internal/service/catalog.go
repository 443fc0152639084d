package service

import (
	"context"
	"errors"
	"strings"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/cache"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/policy"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/rs/zerolog"
)

// VaccineCache is an optional read-through cache for the catalog. Every
// invalidation starts a new generation; SetVaccines must refuse a list read
// under an older one.
type VaccineCache interface {
	GetVaccines(ctx context.Context) (v []models.Vaccine, gen int64, ok bool, err error)
	SetVaccines(ctx context.Context, gen int64, v []models.Vaccine) error
	InvalidateVaccines(ctx context.Context) error
}

type VaccineInput struct {
	Name                string
	Manufacturer        string
	DosesRequired       *int // nil means 1
	StorageRequirements string
}

type CatalogService struct {
	vaccines repository.VaccineRepository
	cache    VaccineCache
	log      zerolog.Logger
}

// NewCatalogService builds the catalog; cache may be nil.
func NewCatalogService(vaccines repository.VaccineRepository, cache VaccineCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{vaccines: vaccines, cache: cache, log: log}
}

// CreateVaccine adds a vaccine. Names are not unique.
func (c *CatalogService) CreateVaccine(ctx context.Context, actor policy.Actor, in VaccineInput) (*models.Vaccine, error) {
	if err := policy.Authorize(actor, policy.CreateVaccine, nil); err != nil {
		return nil, err
	}
	v := &models.Vaccine{
		Name:                strings.TrimSpace(in.Name),
		Manufacturer:        strings.TrimSpace(in.Manufacturer),
		DosesRequired:       1,
		StorageRequirements: strings.TrimSpace(in.StorageRequirements),
	}
	if v.Name == "" {
		return nil, errs.Validation("name is required")
	}
	if in.DosesRequired != nil {
		v.DosesRequired = *in.DosesRequired
	}
	if v.DosesRequired < 1 {
		return nil, errs.Validation("doses_required must be at least 1")
	}

	if err := c.vaccines.Create(ctx, v); err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.InvalidateVaccines(ctx); err != nil {
			c.log.Warn().Err(err).Msg("vaccine cache invalidation failed")
		}
	}
	c.log.Info().Str("vaccine_id", v.ID).Str("created_by", actor.ID).Msg("vaccine created")
	return v, nil
}

// ListVaccines returns the catalog in insertion order. Cache failures fall
// back to storage.
func (c *CatalogService) ListVaccines(ctx context.Context, actor policy.Actor) ([]models.Vaccine, error) {
	if err := policy.Authorize(actor, policy.ListVaccines, nil); err != nil {
		return nil, err
	}
	fill, gen := false, int64(0)
	if c.cache != nil {
		v, g, ok, err := c.cache.GetVaccines(ctx)
		switch {
		case err != nil:
			c.log.Warn().Err(err).Msg("vaccine cache read failed")
		case ok:
			return v, nil
		default:
			fill, gen = true, g
		}
	}

	v, err := c.vaccines.List(ctx)
	if err != nil {
		return nil, err
	}
	if fill {
		if err := c.cache.SetVaccines(ctx, gen, v); errors.Is(err, cache.ErrStale) {
			c.log.Debug().Msg("vaccine cache fill skipped, catalog changed")
		} else if err != nil {
			c.log.Warn().Err(err).Msg("vaccine cache write failed")
		}
	}
	return v, nil
}
