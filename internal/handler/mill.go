package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/mill"
)

// AmountRequest carries a feed amount.
type AmountRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Amount   int    `json:"amount"`
}

// SellFeedRequest lists feed from the mill stock.
type SellFeedRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Amount   int    `json:"amount"`
	Price    int    `json:"price"`
}

// BuyFeedRequest buys from a seller identified by mill code or player id.
type BuyFeedRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Seller   string `json:"seller" validate:"required,max=64"`
	Amount   int    `json:"amount"`
}

// BrandRequest renames the player's mill brand.
type BrandRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Name     string `json:"name" validate:"required,max=128"`
}

// MillHandler handles feed mills, the feed market and brands
type MillHandler struct {
	svc mill.Service
}

// NewMillHandler creates a new mill handler
func NewMillHandler(svc mill.Service) *MillHandler {
	return &MillHandler{svc: svc}
}

// Start founds a mill
// @Summary Start a mill
// @Tags mill
// @Accept json
// @Produce json
// @Param request body NamedPlayerRequest true "Player"
// @Success 200 {object} domain.MillStartResult
// @Failure 409 {object} ErrorResponse "Already owns a mill"
// @Router /mill/start [post]
func (h *MillHandler) Start(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Start mill", func(ctx context.Context, req NamedPlayerRequest) (*domain.MillStartResult, error) {
		return h.svc.Start(ctx, req.PlayerID, req.Username)
	})
}

// Produce runs one production batch
// @Summary Make feed
// @Tags mill
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.ProduceResult
// @Failure 422 {object} ErrorResponse "Cooling down"
// @Router /mill/produce [post]
func (h *MillHandler) Produce(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Produce", func(ctx context.Context, req PlayerRequest) (*domain.ProduceResult, error) {
		return h.svc.Produce(ctx, req.PlayerID)
	})
}

// Status returns the mill view
// @Summary Mill status
// @Tags mill
// @Produce json
// @Param playerID path string true "Player id"
// @Success 200 {object} domain.MillStatus
// @Failure 404 {object} ErrorResponse
// @Router /mill/{playerID} [get]
func (h *MillHandler) Status(w http.ResponseWriter, r *http.Request) {
	handlePlayerView(w, r, "Mill status", h.svc.Status)
}

// Upgrade pays coins for the next mill level
// @Summary Upgrade the mill
// @Tags mill
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.UpgradeResult
// @Failure 400 {object} ErrorResponse "Not enough coins"
// @Failure 422 {object} ErrorResponse "Max level"
// @Router /mill/upgrade [post]
func (h *MillHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Upgrade mill", func(ctx context.Context, req PlayerRequest) (*domain.UpgradeResult, error) {
		return h.svc.Upgrade(ctx, req.PlayerID)
	})
}

// Rush pays tokens to clear the cooldown
// @Summary Rush the mill
// @Tags mill
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.TokenSpendResult
// @Failure 400 {object} ErrorResponse "Not enough tokens"
// @Router /mill/rush [post]
func (h *MillHandler) Rush(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Rush mill", func(ctx context.Context, req PlayerRequest) (*domain.TokenSpendResult, error) {
		return h.svc.Rush(ctx, req.PlayerID)
	})
}

// SellFeed lists feed on the market
// @Summary Sell feed
// @Tags feed
// @Accept json
// @Produce json
// @Param request body SellFeedRequest true "Listing"
// @Success 200 {object} domain.FeedListing
// @Failure 400 {object} ErrorResponse "Bad amount or not enough stock"
// @Router /feed/sell [post]
func (h *MillHandler) SellFeed(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Sell feed", func(ctx context.Context, req SellFeedRequest) (*domain.FeedListing, error) {
		return h.svc.SellFeed(ctx, req.PlayerID, req.Amount, req.Price)
	})
}

// FeedMarket lists active feed listings
// @Summary Feed market
// @Tags feed
// @Produce json
// @Success 200 {array} domain.FeedListing
// @Router /feed/market [get]
func (h *MillHandler) FeedMarket(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.Market(r.Context())
	if err != nil {
		respondServiceError(w, r, "Feed market", err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

// BuyFeed buys from a seller's listing
// @Summary Buy feed
// @Tags feed
// @Accept json
// @Produce json
// @Param request body BuyFeedRequest true "Purchase"
// @Success 200 {object} domain.FeedPurchase
// @Failure 400 {object} ErrorResponse "Bad amount or not enough coins"
// @Failure 404 {object} ErrorResponse "Listing not found"
// @Router /feed/buy [post]
func (h *MillHandler) BuyFeed(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Buy feed", func(ctx context.Context, req BuyFeedRequest) (*domain.FeedPurchase, error) {
		return h.svc.BuyFeed(ctx, req.PlayerID, req.Seller, req.Amount)
	})
}

// Transfer moves mill stock to the farm
// @Summary Mill to farm
// @Tags feed
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Amount"
// @Success 200 {object} domain.TransferResult
// @Failure 404 {object} ErrorResponse "No mill or no farm"
// @Router /feed/transfer [post]
func (h *MillHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Mill to farm", func(ctx context.Context, req AmountRequest) (*domain.TransferResult, error) {
		return h.svc.TransferToFarm(ctx, req.PlayerID, req.Amount)
	})
}

// BrandStats returns the player's brand counters
// @Summary Brand stats
// @Tags brands
// @Produce json
// @Param playerID path string true "Player id"
// @Success 200 {object} domain.BrandStats
// @Router /brands/{playerID} [get]
func (h *MillHandler) BrandStats(w http.ResponseWriter, r *http.Request) {
	handlePlayerView(w, r, "Brand stats", h.svc.BrandStats)
}

// TopBrands returns the brand leaderboard
// @Summary Top brands
// @Tags brands
// @Produce json
// @Success 200 {array} domain.BrandRank
// @Router /brands/top [get]
func (h *MillHandler) TopBrands(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.svc.TopBrands(r.Context())
	if err != nil {
		respondServiceError(w, r, "Top brands", err)
		return
	}
	respondJSON(w, http.StatusOK, ranks)
}

// SetBrand renames the mill brand
// @Summary Set brand
// @Tags brands
// @Accept json
// @Produce json
// @Param request body BrandRequest true "Brand"
// @Success 200 {object} domain.BrandStats
// @Failure 400 {object} ErrorResponse "Invalid name"
// @Router /brands [post]
func (h *MillHandler) SetBrand(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Set brand", func(ctx context.Context, req BrandRequest) (*domain.BrandStats, error) {
		return h.svc.SetBrand(ctx, req.PlayerID, req.Name)
	})
}
