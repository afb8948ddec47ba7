package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/wallet"
)

// SetWalletRequest records a TON address.
type SetWalletRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Address  string `json:"address" validate:"required,max=128"`
}

// ExchangeRequest converts coins to tokens.
type ExchangeRequest struct {
	PlayerID string `json:"player_id" validate:"required,playerid"`
	Coins    int    `json:"coins"`
}

type adminKey struct{}

// WithAdmin records the administrator the transport authenticated.
func WithAdmin(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminKey{}, adminID)
}

// actingAdmin resolves who an admin request acts as. An authenticated
// admin wins, and a body admin_id naming anyone else is refused.
func actingAdmin(ctx context.Context, claimed string) (string, error) {
	authed, _ := ctx.Value(adminKey{}).(string)
	switch {
	case authed == "" && claimed == "":
		return "", domain.ErrNotAdmin
	case authed == "":
		return claimed, nil
	case claimed != "" && claimed != authed:
		return "", domain.ErrNotAdmin
	}
	return authed, nil
}

// TonLogRequest reads the token ledger. An empty target covers every player.
type TonLogRequest struct {
	AdminID  string `json:"admin_id" validate:"omitempty,playerid"`
	TargetID string `json:"target_id" validate:"omitempty,playerid"`
	Limit    int    `json:"limit" validate:"gte=0"`
}

// AdminDebitRequest records an off-system payout. Amount is a decimal string.
type AdminDebitRequest struct {
	AdminID  string `json:"admin_id" validate:"omitempty,playerid"`
	TargetID string `json:"target_id" validate:"required,playerid"`
	Amount   string `json:"amount" validate:"required,tokens"`
}

// CashoutRequest zeroes a player's token balance.
type CashoutRequest struct {
	AdminID  string `json:"admin_id" validate:"omitempty,playerid"`
	TargetID string `json:"target_id" validate:"required,playerid"`
}

// WalletHandler handles wallets, exchange, claims and the admin ledger
type WalletHandler struct {
	svc wallet.Service
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(svc wallet.Service) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// Status returns the wallet view
// @Summary Wallet
// @Tags wallet
// @Produce json
// @Param playerID path string true "Player id"
// @Success 200 {object} domain.WalletStatus
// @Router /wallet/{playerID} [get]
func (h *WalletHandler) Status(w http.ResponseWriter, r *http.Request) {
	handlePlayerView(w, r, "Wallet", h.svc.Status)
}

// SetWallet records the payout address
// @Summary Set wallet address
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body SetWalletRequest true "Address"
// @Success 200 {object} domain.WalletStatus
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Router /wallet/address [post]
func (h *WalletHandler) SetWallet(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Set wallet", func(ctx context.Context, req SetWalletRequest) (*domain.WalletStatus, error) {
		return h.svc.SetWallet(ctx, req.PlayerID, req.Address)
	})
}

// Exchange converts coins to tokens
// @Summary Exchange coins
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body ExchangeRequest true "Coins"
// @Success 200 {object} domain.ExchangeResult
// @Failure 400 {object} ErrorResponse "Not enough coins"
// @Router /wallet/exchange [post]
func (h *WalletHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Exchange", func(ctx context.Context, req ExchangeRequest) (*domain.ExchangeResult, error) {
		return h.svc.Exchange(ctx, req.PlayerID, req.Coins)
	})
}

// Claim asks the administrators for a payout
// @Summary Claim tokens
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player"
// @Success 200 {object} domain.ClaimRequest
// @Failure 422 {object} ErrorResponse "Wallet not set or below minimum"
// @Router /wallet/claim [post]
func (h *WalletHandler) Claim(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Claim tokens", func(ctx context.Context, req PlayerRequest) (*domain.ClaimRequest, error) {
		return h.svc.Claim(ctx, req.PlayerID)
	})
}

// TonLog returns ledger lines, newest first
// @Summary Token ledger
// @Tags admin
// @Accept json
// @Produce json
// @Param request body TonLogRequest true "Query"
// @Success 200 {array} domain.LedgerLine
// @Failure 403 {object} ErrorResponse "Not an administrator"
// @Security AdminAuth
// @Router /admin/tonlog [post]
func (h *WalletHandler) TonLog(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Ton log", func(ctx context.Context, req TonLogRequest) ([]domain.LedgerLine, error) {
		adminID, err := actingAdmin(ctx, req.AdminID)
		if err != nil {
			return nil, err
		}
		return h.svc.TonLog(ctx, adminID, req.TargetID, req.Limit)
	})
}

// Debit removes tokens after an off-system payout
// @Summary Pay user
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminDebitRequest true "Debit"
// @Success 200 {object} domain.DebitResult
// @Failure 400 {object} ErrorResponse "Not enough tokens"
// @Failure 403 {object} ErrorResponse "Not an administrator"
// @Security AdminAuth
// @Router /admin/debit [post]
func (h *WalletHandler) Debit(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Admin debit", func(ctx context.Context, req AdminDebitRequest) (*domain.DebitResult, error) {
		adminID, err := actingAdmin(ctx, req.AdminID)
		if err != nil {
			return nil, err
		}
		// Validated by the tokens tag
		amount := decimal.RequireFromString(req.Amount)
		return h.svc.AdminDebit(ctx, adminID, req.TargetID, amount)
	})
}

// Cashout zeroes a player's balance
// @Summary Cash out
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CashoutRequest true "Target"
// @Success 200 {object} domain.DebitResult
// @Failure 403 {object} ErrorResponse "Not an administrator"
// @Security AdminAuth
// @Router /admin/cashout [post]
func (h *WalletHandler) Cashout(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, "Admin cashout", func(ctx context.Context, req CashoutRequest) (*domain.DebitResult, error) {
		adminID, err := actingAdmin(ctx, req.AdminID)
		if err != nil {
			return nil, err
		}
		return h.svc.AdminCashout(ctx, adminID, req.TargetID)
	})
}
