package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/utils"
)

// Check is a named dependency probe, e.g. the database pool's Ping.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

func Health(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		deps := map[string]string{}
		for _, c := range checks {
			if err := c.Ping(ctx); err != nil {
				deps[c.Name] = "unavailable"
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			deps[c.Name] = "ok"
		}
		utils.JSON(w, code, map[string]any{"status": status, "checks": deps})
	}
}
