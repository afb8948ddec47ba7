package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/farm"
	"github.com/osse101/PigFarmBot_Go/internal/piglet"
)

// IndexRequest selects a 1-based entry of a list shown to the player.
type IndexRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Index    int    `json:"index"`
}

// FarmHandler handles the pig lifecycle and the piglet market
type FarmHandler struct {
	farm    farm.Service
	piglets piglet.Service
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmSvc farm.Service, pigletSvc piglet.Service) *FarmHandler {
	return &FarmHandler{farm: farmSvc, piglets: pigletSvc}
}

// Buy acquires the player's pig
// @Summary Buy a pig
// @Tags farm
// @Accept json
// @Produce json
// @Param request body NamedPlayerRequest true "Player"
// @Success 200 {object} domain.PigResult
// @Failure 409 {object} ErrorResponse "Already owns a pig"
// @Router /farm/buy [post]
func (h *FarmHandler) Buy(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Buy pig", func(ctx context.Context, req NamedPlayerRequest) (*domain.PigResult, error) {
		return h.farm.AcquirePig(ctx, req.PlayerID, req.Username)
	})
}

// Feed feeds the pig once per day
// @Summary Feed the pig
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.FeedResult
// @Failure 404 {object} ErrorResponse "No pig"
// @Failure 422 {object} ErrorResponse "Already fed today"
// @Router /farm/feed [post]
func (h *FarmHandler) Feed(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Feed", func(ctx context.Context, req PlayerRequest) (*domain.FeedResult, error) {
		return h.farm.FeedPig(ctx, req.PlayerID)
	})
}

// Status returns the farm view
// @Summary Farm status
// @Tags farm
// @Produce json
// @Param playerID path string true "Player id"
// @Success 200 {object} domain.FarmStatus
// @Failure 404 {object} ErrorResponse
// @Router /farm/{playerID} [get]
func (h *FarmHandler) Status(w http.ResponseWriter, r *http.Request) {
	handlePlayerView(w, r, "Farm status", h.farm.Status)
}

// Breed starts a pregnancy
// @Summary Breed the pig
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.BreedResult
// @Failure 422 {object} ErrorResponse "Too young, underfed or already pregnant"
// @Router /farm/breed [post]
func (h *FarmHandler) Breed(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Breed", func(ctx context.Context, req PlayerRequest) (*domain.BreedResult, error) {
		return h.farm.Breed(ctx, req.PlayerID)
	})
}

// CheckBreed completes a due pregnancy
// @Summary Collect a litter
// @Tags farm
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.LitterResult
// @Failure 422 {object} ErrorResponse "Not pregnant or not due yet"
// @Router /farm/checkbreed [post]
func (h *FarmHandler) CheckBreed(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Check breed", func(ctx context.Context, req PlayerRequest) (*domain.LitterResult, error) {
		return h.farm.CheckBreed(ctx, req.PlayerID)
	})
}

// SellPiglet sells one piglet
// @Summary Sell a piglet
// @Tags piglets
// @Accept json
// @Produce json
// @Param request body IndexRequest true "1-based piglet index"
// @Success 200 {object} domain.PigletSale
// @Failure 400 {object} ErrorResponse "Bad index"
// @Failure 404 {object} ErrorResponse "No piglets"
// @Router /piglets/sell [post]
func (h *FarmHandler) SellPiglet(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Sell piglet", func(ctx context.Context, req IndexRequest) (*domain.PigletSale, error) {
		return h.piglets.Sell(ctx, req.PlayerID, req.Index)
	})
}

// Market draws fresh piglet offers for the player
// @Summary Refresh the piglet market
// @Tags piglets
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {array} domain.MarketOffer
// @Router /piglets/market [post]
func (h *FarmHandler) Market(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Market", func(ctx context.Context, req PlayerRequest) ([]domain.MarketOffer, error) {
		return h.piglets.RefreshMarket(ctx, req.PlayerID)
	})
}

// BuyMarket buys one of the player's current offers
// @Summary Buy a market piglet
// @Tags piglets
// @Accept json
// @Produce json
// @Param request body IndexRequest true "1-based offer index"
// @Success 200 {object} domain.PigletPurchase
// @Failure 400 {object} ErrorResponse "Bad index or not enough coins"
// @Failure 422 {object} ErrorResponse "No market offers"
// @Router /piglets/market/buy [post]
func (h *FarmHandler) BuyMarket(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Buy market", func(ctx context.Context, req IndexRequest) (*domain.PigletPurchase, error) {
		return h.piglets.BuyOffer(ctx, req.PlayerID, req.Index)
	})
}
