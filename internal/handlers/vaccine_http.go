package handlers

import (
	"net/http"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/middleware"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/service"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"
)

type VaccineHTTP struct {
	svc *service.CatalogService
}

func NewVaccineHTTP(s *service.CatalogService) *VaccineHTTP { return &VaccineHTTP{svc: s} }

// GET /vaccines
func (h *VaccineHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.ListVaccines(r.Context(), middleware.ActorFrom(r.Context()))
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /vaccines
func (h *VaccineHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Name                string `json:"name"`
		Manufacturer        string `json:"manufacturer"`
		DosesRequired       *int   `json:"doses_required"`
		StorageRequirements string `json:"storage_requirements"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := decode(w, r, &in, false); err != nil {
			fail(w, r, err)
			return
		}
		v, err := h.svc.CreateVaccine(r.Context(), middleware.ActorFrom(r.Context()), service.VaccineInput{
			Name:                in.Name,
			Manufacturer:        in.Manufacturer,
			DosesRequired:       in.DosesRequired,
			StorageRequirements: in.StorageRequirements,
		})
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, v)
	}
}
