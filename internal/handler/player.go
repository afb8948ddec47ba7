package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/player"
)

// PlayerRequest identifies the acting player.
type PlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
}

// NamedPlayerRequest is used by operations that may create the player record.
type NamedPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Username string `json:"username" validate:"max=64"`
}

// StartRequest registers a player, optionally crediting a referrer.
type StartRequest struct {
	PlayerID   string `json:"player_id" validate:"required,playerid"`
	Username   string `json:"username" validate:"max=64"`
	ReferrerID string `json:"referrer_id" validate:"omitempty,playerid"`
}

// ClaimTaskRequest claims one catalog task.
type ClaimTaskRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Code     string `json:"code" validate:"required,max=32"`
}

// PlayerHandler handles registration, referrals and tasks
type PlayerHandler struct {
	svc player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(svc player.Service) *PlayerHandler {
	return &PlayerHandler{svc: svc}
}

// Start handles player registration
// @Summary Join the farm
// @Description Creates the player record and grants the join bonus. A valid referrer is credited.
// @Tags players
// @Accept json
// @Produce json
// @Param request body StartRequest true "Start request"
// @Success 200 {object} domain.RegisterResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already registered"
// @Router /players/start [post]
func (h *PlayerHandler) Start(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Start", func(ctx context.Context, req StartRequest) (*domain.RegisterResult, error) {
		return h.svc.Register(ctx, req.PlayerID, req.Username, req.ReferrerID)
	})
}

// Referral returns the referral counters
// @Summary Referral status
// @Tags players
// @Produce json
// @Param playerID path string true "Player id"
// @Success 200 {object} domain.ReferralStatus
// @Failure 404 {object} ErrorResponse
// @Router /players/{playerID}/referral [get]
func (h *PlayerHandler) Referral(w http.ResponseWriter, r *http.Request) {
	handlePlayerView(w, r, "Referral", h.svc.Referral)
}

// Tasks lists the catalog tasks with the player's claim state
// @Summary List tasks
// @Tags players
// @Produce json
// @Param playerID path string true "Player id"
// @Success 200 {array} domain.TaskStatus
// @Router /players/{playerID}/tasks [get]
func (h *PlayerHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	handlePlayerView(w, r, "Tasks", h.svc.Tasks)
}

// ClaimTask claims a task reward
// @Summary Claim a task
// @Tags players
// @Accept json
// @Produce json
// @Param request body ClaimTaskRequest true "Claim request"
// @Success 200 {object} domain.TaskClaimResult
// @Failure 404 {object} ErrorResponse "Unknown task or player"
// @Failure 409 {object} ErrorResponse "Already claimed"
// @Router /tasks/claim [post]
func (h *PlayerHandler) ClaimTask(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Claim task", func(ctx context.Context, req ClaimTaskRequest) (*domain.TaskClaimResult, error) {
		return h.svc.ClaimTask(ctx, req.PlayerID, req.Code)
	})
}
