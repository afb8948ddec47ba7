package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/plant"
)

// PlantHandler handles the pork plant
type PlantHandler struct {
	svc plant.Service
}

// NewPlantHandler creates a new plant handler
func NewPlantHandler(svc plant.Service) *PlantHandler {
	return &PlantHandler{svc: svc}
}

// Start builds the plant for tokens
// @Summary Start a plant
// @Tags plant
// @Accept json
// @Produce json
// @Param request body NamedPlayerRequest true "Player"
// @Success 200 {object} domain.TokenSpendResult
// @Failure 400 {object} ErrorResponse "Not enough tokens"
// @Failure 409 {object} ErrorResponse "Already owns a plant"
// @Router /plant/start [post]
func (h *PlantHandler) Start(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Start plant", func(ctx context.Context, req NamedPlayerRequest) (*domain.TokenSpendResult, error) {
		return h.svc.Start(ctx, req.PlayerID, req.Username)
	})
}

// Process turns one eligible piglet into tokens
// @Summary Process a piglet
// @Tags plant
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.ProcessResult
// @Failure 422 {object} ErrorResponse "Nothing eligible"
// @Router /plant/process [post]
func (h *PlantHandler) Process(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Process piglet", func(ctx context.Context, req PlayerRequest) (*domain.ProcessResult, error) {
		return h.svc.Process(ctx, req.PlayerID)
	})
}

// Status returns the plant view
// @Summary Plant status
// @Tags plant
// @Produce json
// @Param playerID path string true "Player id"
// @Success 200 {object} domain.PlantStatus
// @Router /plant/{playerID} [get]
func (h *PlantHandler) Status(w http.ResponseWriter, r *http.Request) {
	handlePlayerView(w, r, "Plant status", h.svc.Status)
}

// Upgrade pays tokens for the next plant level
// @Summary Upgrade the plant
// @Tags plant
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.TokenSpendResult
// @Router /plant/upgrade [post]
func (h *PlantHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Upgrade plant", func(ctx context.Context, req PlayerRequest) (*domain.TokenSpendResult, error) {
		return h.svc.Upgrade(ctx, req.PlayerID)
	})
}
