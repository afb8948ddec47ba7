// Package wallet covers the token side of the economy: wallet addresses,
// coin to token exchange, claim requests and the administrative ledger.
package wallet

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// Service defines the wallet and ledger operations
type Service interface {
	Status(ctx context.Context, playerID string) (*domain.WalletStatus, error)
	SetWallet(ctx context.Context, playerID, address string) (*domain.WalletStatus, error)
	Exchange(ctx context.Context, playerID string, coins int) (*domain.ExchangeResult, error)
	Claim(ctx context.Context, playerID string) (*domain.ClaimRequest, error)

	TonLog(ctx context.Context, adminID, targetID string, limit int) ([]domain.LedgerLine, error)
	AdminDebit(ctx context.Context, adminID, targetID string, amount decimal.Decimal) (*domain.DebitResult, error)
	AdminCashout(ctx context.Context, adminID, targetID string) (*domain.DebitResult, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	clock   clock.Clock
	admins  Authorizer
	bus     event.Bus
}

// NewService creates a new wallet service
func NewService(store repository.Store, cat *catalog.Catalog, clk clock.Clock, admins Authorizer, bus event.Bus) Service {
	if admins == nil {
		admins = AdminSet{}
	}
	return &service{store: store, catalog: cat, clock: clk, admins: admins, bus: bus}
}

func (s *service) status(p *domain.PlayerRecord) *domain.WalletStatus {
	ex := s.catalog.Exchange
	recent := make([]domain.LedgerEntry, 0, RecentLedgerEntries)
	for i := len(p.TonLog) - 1; i >= 0 && len(recent) < RecentLedgerEntries; i-- {
		recent = append(recent, p.TonLog[i])
	}
	return &domain.WalletStatus{
		Address:      p.TonWallet,
		TonBalance:   p.TonBalance,
		Coins:        p.Coins,
		ExchangeRate: ex.Rate,
		MinClaim:     ex.MinClaim.Decimal,
		CanClaim:     p.TonWallet != "" && p.TonBalance.GreaterThanOrEqual(ex.MinClaim.Decimal),
		Recent:       recent,
	}
}

func (s *service) Status(ctx context.Context, playerID string) (*domain.WalletStatus, error) {
	logger.FromContext(ctx).Debug(LogMsgStatusCalled, "player_id", playerID)

	var res *domain.WalletStatus
	err := repository.View(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrNoPlayer
		}
		res = s.status(p)
		return nil
	})
	return res, err
}

func (s *service) SetWallet(ctx context.Context, playerID, address string) (*domain.WalletStatus, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSetWalletCalled, "player_id", playerID)

	addr, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	var res *domain.WalletStatus
	err = repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrNoPlayer
		}
		p.TonWallet = addr
		res = s.status(p)
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "SetWallet", "error", err)
		return nil, err
	}
	log.Info(LogMsgWalletSet, "player_id", playerID)
	return res, nil
}

// Exchange converts coins to tokens at the catalog rate. The token amount
// keeps full precision; rounding is left to presentation.
func (s *service) Exchange(ctx context.Context, playerID string, coins int) (*domain.ExchangeResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgExchangeCalled, "player_id", playerID, "coins", coins)

	if coins <= 0 {
		return nil, domain.ErrBadAmount
	}
	tokens := decimal.NewFromInt(int64(coins)).Div(decimal.NewFromInt(int64(s.catalog.Exchange.Rate)))
	today := domain.DateOf(s.clock.Now())

	var res *domain.ExchangeResult
	var username string
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrInsufficientFunds
		}
		if err := p.Debit(coins); err != nil {
			return err
		}
		p.TonBalance = p.TonBalance.Add(tokens)
		p.AppendLedger(today, LedgerSourceExchange, tokens)
		username = p.Username
		res = &domain.ExchangeResult{CoinsSpent: coins, Tokens: tokens, Coins: p.Coins, TonBalance: p.TonBalance}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Exchange", "error", err)
		return nil, err
	}

	log.Info(LogMsgExchanged, "player_id", playerID, "tokens", tokens)
	event.Emit(ctx, s.bus, event.NewTokensEvent(ctx, domain.EventTypeTokensExchanged, domain.TokensPayload{
		PlayerID: playerID,
		Username: username,
		Amount:   tokens,
		Source:   LedgerSourceExchange,
	}))
	return res, nil
}

// Claim asks the administrators to pay out the balance. Nothing is debited
// here; the payout is settled later with AdminDebit or AdminCashout.
func (s *service) Claim(ctx context.Context, playerID string) (*domain.ClaimRequest, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgClaimCalled, "player_id", playerID)

	var res *domain.ClaimRequest
	err := repository.View(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrNoPlayer
		}
		if p.TonWallet == "" {
			return domain.ErrWalletNotSet
		}
		if p.TonBalance.LessThan(s.catalog.Exchange.MinClaim.Decimal) {
			return domain.ErrBelowMinimum
		}
		res = &domain.ClaimRequest{PlayerID: playerID, Username: p.Username, Wallet: p.TonWallet, Amount: p.TonBalance}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Claim", "error", err)
		return nil, err
	}

	log.Info(LogMsgClaimRequested, "player_id", playerID, "amount", res.Amount)
	event.Emit(ctx, s.bus, event.NewTokensEvent(ctx, domain.EventTypeClaimRequested, domain.TokensPayload{
		PlayerID: playerID,
		Username: res.Username,
		Wallet:   res.Wallet,
		Amount:   res.Amount,
		Source:   ClaimSource,
	}))
	return res, nil
}

func (s *service) authorize(ctx context.Context, adminID, op string) error {
	if s.admins.IsAdmin(adminID) {
		return nil
	}
	logger.FromContext(ctx).Warn(LogMsgAdminDenied, "op", op, "caller_id", adminID)
	return domain.ErrNotAdmin
}

// TonLog returns ledger lines newest first. An empty target covers every player.
func (s *service) TonLog(ctx context.Context, adminID, targetID string, limit int) ([]domain.LedgerLine, error) {
	logger.FromContext(ctx).Info(LogMsgTonLogCalled, "admin_id", adminID, "target_id", targetID)

	if err := s.authorize(ctx, adminID, "TonLog"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.catalog.Exchange.LedgerLimit
	}

	var lines []domain.LedgerLine
	err := repository.View(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		players := tx.Players()
		collect := func(id string, p *domain.PlayerRecord) {
			// Walk backwards so equal dates keep newest-appended first
			for i := len(p.TonLog) - 1; i >= 0; i-- {
				lines = append(lines, domain.LedgerLine{PlayerID: id, Username: p.Username, LedgerEntry: p.TonLog[i]})
			}
		}
		if targetID != "" {
			p, ok := players[targetID]
			if !ok {
				return domain.ErrNoPlayer
			}
			collect(targetID, p)
			return nil
		}
		for id, p := range players {
			collect(id, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(lines, func(a, b domain.LedgerLine) int {
		return cmp.Or(cmp.Compare(b.Date, a.Date), cmp.Compare(a.PlayerID, b.PlayerID))
	})
	return lines[:min(len(lines), limit)], nil
}

// AdminDebit removes amount tokens from the target after an off-system payout.
func (s *service) AdminDebit(ctx context.Context, adminID, targetID string, amount decimal.Decimal) (*domain.DebitResult, error) {
	logger.FromContext(ctx).Info(LogMsgAdminDebitCalled, "admin_id", adminID, "target_id", targetID, "amount", amount)

	if err := s.authorize(ctx, adminID, "AdminDebit"); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, domain.ErrBadAmount
	}
	return s.debit(ctx, targetID, LedgerSourceAdminDebit, func(*domain.PlayerRecord) decimal.Decimal { return amount })
}

// AdminCashout zeroes the target's balance.
func (s *service) AdminCashout(ctx context.Context, adminID, targetID string) (*domain.DebitResult, error) {
	logger.FromContext(ctx).Info(LogMsgCashoutCalled, "admin_id", adminID, "target_id", targetID)

	if err := s.authorize(ctx, adminID, "AdminCashout"); err != nil {
		return nil, err
	}
	return s.debit(ctx, targetID, LedgerSourceCashout, func(p *domain.PlayerRecord) decimal.Decimal { return p.TonBalance })
}

func (s *service) debit(ctx context.Context, targetID, source string, amountOf func(*domain.PlayerRecord) decimal.Decimal) (*domain.DebitResult, error) {
	log := logger.FromContext(ctx)
	today := domain.DateOf(s.clock.Now())

	var res *domain.DebitResult
	var username string
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[targetID]
		if !ok {
			return domain.ErrNoPlayer
		}
		amount := amountOf(p)
		if !amount.IsPositive() {
			return domain.ErrInsufficientTokens
		}
		if err := p.DebitTokens(amount); err != nil {
			return err
		}
		p.AppendLedger(today, source, amount.Neg())
		username = p.Username
		res = &domain.DebitResult{PlayerID: targetID, Amount: amount, TonBalance: p.TonBalance}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", source, "error", err)
		return nil, err
	}

	log.Info(LogMsgTokensDebited, "target_id", targetID, "amount", res.Amount, "source", source)
	event.Emit(ctx, s.bus, event.NewTokensEvent(ctx, domain.EventTypeTokensDebited, domain.TokensPayload{
		PlayerID: targetID,
		Username: username,
		Amount:   res.Amount.Neg(),
		Source:   source,
	}))
	return res, nil
}
