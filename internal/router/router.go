package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/config"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/handlers"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/middleware"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/service"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth     *service.AuthService
	Sessions *service.SessionIssuer
	Catalog  *service.CatalogService
	Patients *service.PatientService
	Booking  *service.BookingService
	Tickets  *service.TicketService
	Reports  *service.ReportService
}

func New(log zerolog.Logger, cfg config.Config, svc Services, checks ...handlers.Check) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if cfg.RateLimitPerMin > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
	}
	r.Use(middleware.WithAuth(log, svc.Sessions))

	// Health
	r.Get("/healthz", handlers.Health(checks...))

	ah := handlers.NewAuthHTTP(svc.Auth)
	vh := handlers.NewVaccineHTTP(svc.Catalog)
	ph := handlers.NewPatientHTTP(svc.Patients)
	aph := handlers.NewAppointmentHTTP(svc.Booking)
	th := handlers.NewTicketHTTP(svc.Tickets)
	rh := handlers.NewReportsHTTP(svc.Reports)

	// Public
	r.Post("/signup", ah.Signup())
	r.Post("/login", ah.Login())
	r.Get("/vaccines", vh.List())

	// Authenticated; the policy decides the rest.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", ah.Me())
		r.Post("/vaccines", vh.Create())

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", ph.List())
			r.Post("/", ph.Create())
		})
		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", aph.List())
			r.Post("/", aph.Create())
			r.Post("/{id}/vaccinate", aph.Vaccinate())
		})
		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", th.List())
			r.Post("/", th.Create())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", th.Get())
				r.Patch("/", th.Update())
			})
		})
		r.Get("/reports/summary", rh.Summary())
	})

	return r
}
