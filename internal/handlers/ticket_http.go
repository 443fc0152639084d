package handlers

import (
	"net/http"
	"strings"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/middleware"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/service"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"

	"github.com/go-chi/chi/v5"
)

// TicketHTTP wires HTTP endpoints to the ticket service.
type TicketHTTP struct {
	svc *service.TicketService
}

func NewTicketHTTP(s *service.TicketService) *TicketHTTP {
	return &TicketHTTP{svc: s}
}

// GET /tickets?status=
func (h *TicketHTTP) List() http.HandlerFunc {
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

// GET /tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.svc.Get(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /tickets
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := decode(w, r, &in, false); err != nil {
			fail(w, r, err)
			return
		}
		t, err := h.svc.Create(r.Context(), middleware.ActorFrom(r.Context()), in.Title, in.Description)
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// PATCH /tickets/{id}
func (h *TicketHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Status     *string `json:"status"`
		AssignedTo *string `json:"assigned_to"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := decode(w, r, &in, false); err != nil {
			fail(w, r, err)
			return
		}
		t, err := h.svc.Update(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), service.TicketUpdate{
			Status:     in.Status,
			AssignedTo: in.AssignedTo,
		})
		if err != nil {
			fail(w, r, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}
