package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// ReadinessTimeout bounds one readiness check.
const ReadinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// StoreHealth checks a store by opening and discarding a read of every family.
type StoreHealth struct {
	Store repository.Store
}

func (s StoreHealth) CheckHealth(ctx context.Context) error {
	return repository.View(ctx, s.Store, repository.Both, func(repository.Tx) error { return nil })
}

// HealthCheckers reports the first failing checker.
type HealthCheckers []HealthChecker

func (hc HealthCheckers) CheckHealth(ctx context.Context) error {
	for _, c := range hc {
		if err := c.CheckHealth(ctx); err != nil {
			return err
		}
	}
	return nil
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports whether the store can be reached
// @Summary Readiness check
// @Description Returns OK if the record store is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		if err := checker.CheckHealth(ctx); err != nil {
			slog.Error("Readiness check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "store unavailable",
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
