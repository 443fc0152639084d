package handlers

import (
	"net/http"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/middleware"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/service"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"
)

type PatientHTTP struct {
	svc *service.PatientService
}

func NewPatientHTTP(s *service.PatientService) *PatientHTTP { return &PatientHTTP{svc: s} }

// GET /patients
func (h *PatientHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.List(r.Context(), middleware.ActorFrom(r.Context()))
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /patients
func (h *PatientHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Age   int    `json:"age"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := decode(w, r, &in, false); err != nil {
			fail(w, r, err)
			return
		}
		p, err := h.svc.Register(r.Context(), middleware.ActorFrom(r.Context()), in.Email, in.Name, in.Age)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}
