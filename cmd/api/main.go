package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/cache"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/config"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/database"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/handlers"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository/memory"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository/postgres"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/router"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/service"
	"github.com/CdtaAq/Vaccine-Ticketing-System/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env, nil)
	if err := cfg.Validate(); err != nil {
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	var (
		repos  repository.Store
		checks []handlers.Check
	)

	// storage
	switch cfg.Store {
	case config.StoreMemory:
		l.Warn().Msg("using in-memory store; data is lost on exit")
		repos = memory.NewStore().Repositories()
	default:
		pool, err := database.Open(ctx, cfg)
		if err != nil {
			l.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			l.Fatal().Err(err).Msg("db migrate failed")
		}
		repos = postgres.NewStore(pool)
		checks = append(checks, handlers.Check{Name: "db", Ping: pool.Ping})
	}

	// optional catalog cache
	var vaccineCache service.VaccineCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			l.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			l.Warn().Err(err).Msg("redis unreachable; catalog reads fall back to storage")
		}
		vaccineCache = rc
		checks = append(checks, handlers.Check{Name: "redis", Ping: rc.Ping})
	}

	// services
	sessions := service.NewSessionIssuer(repos.Accounts, cfg.SessionSecret, cfg.TokenTTL)
	auth := service.NewAuthService(repos.Accounts, sessions, cfg.BcryptCost, l)
	if cfg.AdminEmail != "" {
		if _, err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			l.Fatal().Err(err).Msg("admin bootstrap failed")
		}
	}
	svc := router.Services{
		Auth:     auth,
		Sessions: sessions,
		Catalog:  service.NewCatalogService(repos.Vaccines, vaccineCache, l),
		Patients: service.NewPatientService(repos.Patients, l),
		Booking:  service.NewBookingService(repos.Appointments, repos.Patients, repos.Vaccines, l),
		Tickets:  service.NewTicketService(repos.Tickets, repos.Accounts, l),
		Reports:  service.NewReportService(repos.Appointments, repos.Tickets),
	}

	// http
	r := router.New(l, cfg, svc, checks...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Str("store", cfg.Store).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	l.Info().Msg("shutdown complete")
}
