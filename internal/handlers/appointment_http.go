package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/middleware"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/service"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"

	"github.com/go-chi/chi/v5"
)

type AppointmentHTTP struct {
	svc *service.BookingService
}

func NewAppointmentHTTP(s *service.BookingService) *AppointmentHTTP {
	return &AppointmentHTTP{svc: s}
}

// parseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date
// (midnight UTC).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, errs.Validation("scheduled_date must be RFC 3339 or YYYY-MM-DD")
}

// GET /appointments?status=
func (h *AppointmentHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := strings.TrimSpace(r.URL.Query().Get("status"))
		items, err := h.svc.List(r.Context(), middleware.ActorFrom(r.Context()), status)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /appointments
func (h *AppointmentHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		PatientID     string `json:"patient_id"`
		VaccineID     string `json:"vaccine_id"`
		ScheduledDate string `json:"scheduled_date"`
		DoseNumber    int    `json:"dose_number"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := decode(w, r, &in, false); err != nil {
			fail(w, r, err)
			return
		}
		if strings.TrimSpace(in.PatientID) == "" || strings.TrimSpace(in.VaccineID) == "" {
			fail(w, r, errs.Validation("patient_id and vaccine_id are required"))
			return
		}
		when, err := parseDate(in.ScheduledDate)
		if err != nil {
			fail(w, r, err)
			return
		}

		a, err := h.svc.Book(r.Context(), middleware.ActorFrom(r.Context()), service.BookingRequest{
			PatientID:     strings.TrimSpace(in.PatientID),
			VaccineID:     strings.TrimSpace(in.VaccineID),
			ScheduledDate: when,
			DoseNumber:    in.DoseNumber,
		})
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, a)
	}
}

// POST /appointments/{id}/vaccinate with an optional {"status": ...} body;
// the default outcome is completed.
func (h *AppointmentHTTP) Vaccinate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Status string `json:"status"`
		}
		if err := decode(w, r, &in, true); err != nil {
			fail(w, r, err)
			return
		}
		a, err := h.svc.RecordOutcome(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), strings.TrimSpace(in.Status))
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, a)
	}
}
