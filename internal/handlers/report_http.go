package handlers

import (
	"net/http"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/middleware"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/service"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"
)

type ReportsHTTP struct {
	svc *service.ReportService
}

func NewReportsHTTP(s *service.ReportService) *ReportsHTTP { return &ReportsHTTP{svc: s} }

// GET /reports/summary
// Returns: { scheduled, completed, cancelled, unresolved_tickets }
func (h *ReportsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := h.svc.Summary(r.Context(), middleware.ActorFrom(r.Context()))
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, s)
	}
}
