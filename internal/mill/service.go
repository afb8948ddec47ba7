// Package mill runs the feed mills: timed production, paid upgrades and
// rushes, the player-to-player feed market, transfers to the farm, and the
// brand leaderboard.
package mill

import (
	"context"
	"time"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// Service defines the feed mill operations
type Service interface {
	Start(ctx context.Context, playerID, username string) (*domain.MillStartResult, error)
	Produce(ctx context.Context, playerID string) (*domain.ProduceResult, error)
	Status(ctx context.Context, playerID string) (*domain.MillStatus, error)
	Upgrade(ctx context.Context, playerID string) (*domain.UpgradeResult, error)
	Rush(ctx context.Context, playerID string) (*domain.TokenSpendResult, error)

	SellFeed(ctx context.Context, playerID string, amount, price int) (*domain.FeedListing, error)
	Market(ctx context.Context) ([]domain.FeedListing, error)
	BuyFeed(ctx context.Context, buyerID, sellerRef string, amount int) (*domain.FeedPurchase, error)
	TransferToFarm(ctx context.Context, playerID string, amount int) (*domain.TransferResult, error)

	BrandStats(ctx context.Context, playerID string) (*domain.BrandStats, error)
	TopBrands(ctx context.Context) ([]domain.BrandRank, error)
	SetBrand(ctx context.Context, playerID, name string) (*domain.BrandStats, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	clock   clock.Clock
	bus     event.Bus
	codes   *codeCache
}

// NewService creates a new mill service
func NewService(store repository.Store, cat *catalog.Catalog, clk clock.Clock, bus event.Bus) Service {
	return &service{store: store, catalog: cat, clock: clk, bus: bus, codes: newCodeCache()}
}

// Start founds the player's mill at level 0, ready to produce at once.
func (s *service) Start(ctx context.Context, playerID, username string) (*domain.MillStartResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStartCalled, "player_id", playerID)

	var res domain.MillStartResult
	var joined bool
	err := repository.WithTx(ctx, s.store, repository.Both, func(tx repository.Tx) error {
		doc := tx.Mills()
		if _, exists := doc.Mills[playerID]; exists {
			return domain.ErrAlreadyOwned
		}
		_, joined = tx.Players().Ensure(playerID, username, s.catalog.Rewards.JoinBonus)

		m := &domain.Mill{
			Level:          0,
			LastProduction: domain.MillEpoch,
			Stock:          []domain.FeedBatch{},
			Brand:          s.catalog.Mill.DefaultBrand,
			Code:           uniqueCode(doc),
		}
		doc.Mills[playerID] = m
		res = domain.MillStartResult{Code: m.Code, Brand: m.Brand}
		if joined {
			res.JoinBonus = s.catalog.Rewards.JoinBonus
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Start", "error", err)
		return nil, err
	}
	s.codes.Set(res.Code, playerID)

	log.Info(LogMsgMillStarted, "player_id", playerID, "code", res.Code)
	if joined {
		event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypePlayerJoined, playerID, ItemJoinBonus, 1, res.JoinBonus))
	}
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypeMillStarted, playerID, ItemMill, 1, 0))
	return &res, nil
}

// Produce adds one batch of the level's feed once the cooldown has passed.
func (s *service) Produce(ctx context.Context, playerID string) (*domain.ProduceResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgProduceCalled, "player_id", playerID)

	now := s.clock.Now()
	var res *domain.ProduceResult
	err := repository.WithTx(ctx, s.store, repository.Mills, func(tx repository.Tx) error {
		m, ok := tx.Mills().Mills[playerID]
		if !ok {
			return domain.ErrNoMill
		}
		level := s.catalog.Mill.Level(m.Level)
		if remaining := cooldownRemaining(m, level, now); remaining > 0 {
			return domain.NewCoolingError(remaining)
		}

		batch := domain.FeedBatch{Amount: level.Amount, Type: level.FeedType, Timestamp: now}
		m.Stock = append(m.Stock, batch)
		m.LastProduction = now
		res = &domain.ProduceResult{Batch: batch, StockTotal: m.StockTotal(), NextProduction: now.Add(level.Cooldown())}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Produce", "error", err)
		return nil, err
	}

	log.Info(LogMsgFeedProduced, "player_id", playerID, "amount", res.Batch.Amount, "type", res.Batch.Type)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypeMillProduced, playerID, string(res.Batch.Type), res.Batch.Amount, 0))
	return res, nil
}

func (s *service) Status(ctx context.Context, playerID string) (*domain.MillStatus, error) {
	logger.FromContext(ctx).Debug(LogMsgStatusCalled, "player_id", playerID)

	now := s.clock.Now()
	rules := s.catalog.Mill
	var res *domain.MillStatus
	err := repository.View(ctx, s.store, repository.Mills, func(tx repository.Tx) error {
		m, ok := tx.Mills().Mills[playerID]
		if !ok {
			return domain.ErrNoMill
		}
		level := rules.Level(m.Level)
		next := m.LastProduction.Add(level.Cooldown())
		remaining := cooldownRemaining(m, level, now)
		res = &domain.MillStatus{
			Level:          m.Level,
			MaxLevel:       rules.MaxLevel(),
			FeedType:       level.FeedType,
			AmountPerBatch: level.Amount,
			Cooldown:       level.Cooldown(),
			NextProduction: next,
			Remaining:      remaining,
			Ready:          remaining == 0,
			StockTotal:     m.StockTotal(),
			Stock:          append([]domain.FeedBatch(nil), m.Stock...),
			AtMaxLevel:     m.Level >= rules.MaxLevel(),
			Brand:          m.Brand,
			Code:           m.Code,
			RoyaltyPoints:  m.RoyaltyPoints,
			Sales:          m.Sales,
		}
		if cost, ok := rules.UpgradeCost(m.Level + 1); ok {
			res.NextUpgradeCost = cost
		}
		return nil
	})
	return res, err
}

// Upgrade raises the mill one level for the table's coin price.
func (s *service) Upgrade(ctx context.Context, playerID string) (*domain.UpgradeResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUpgradeCalled, "player_id", playerID)

	var res *domain.UpgradeResult
	err := repository.WithTx(ctx, s.store, repository.Both, func(tx repository.Tx) error {
		m, ok := tx.Mills().Mills[playerID]
		if !ok {
			return domain.ErrNoMill
		}
		if m.Level >= s.catalog.Mill.MaxLevel() {
			return domain.ErrMaxLevel
		}
		cost, ok := s.catalog.Mill.UpgradeCost(m.Level + 1)
		if !ok {
			return domain.ErrMaxLevel
		}
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrInsufficientFunds
		}
		if err := p.Debit(cost); err != nil {
			return err
		}
		m.Level++
		res = &domain.UpgradeResult{Level: m.Level, Cost: cost, Coins: p.Coins}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Upgrade", "error", err)
		return nil, err
	}

	log.Info(LogMsgMillUpgraded, "player_id", playerID, "level", res.Level)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypeMillUpgraded, playerID, ItemMill, res.Level, -res.Cost))
	return res, nil
}

// Rush pays tokens to skip the current cooldown once.
func (s *service) Rush(ctx context.Context, playerID string) (*domain.TokenSpendResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRushCalled, "player_id", playerID)

	today := domain.DateOf(s.clock.Now())
	cost := s.catalog.Mill.RushCost.Decimal
	var res *domain.TokenSpendResult
	var username string
	err := repository.WithTx(ctx, s.store, repository.Both, func(tx repository.Tx) error {
		m, ok := tx.Mills().Mills[playerID]
		if !ok {
			return domain.ErrNoMill
		}
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrInsufficientTokens
		}
		if err := p.DebitTokens(cost); err != nil {
			return err
		}
		p.AppendLedger(today, LedgerSourceRush, cost.Neg())
		m.LastProduction = domain.MillEpoch
		username = p.Username
		res = &domain.TokenSpendResult{Level: m.Level, Cost: cost, TonBalance: p.TonBalance}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Rush", "error", err)
		return nil, err
	}

	log.Info(LogMsgMillRushed, "player_id", playerID)
	event.Emit(ctx, s.bus, event.NewTokensEvent(ctx, domain.EventTypeMillRushed, domain.TokensPayload{
		PlayerID: playerID,
		Username: username,
		Amount:   cost.Neg(),
		Source:   LedgerSourceRush,
	}))
	return res, nil
}

// cooldownRemaining is the time until m may produce again, zero when ready.
func cooldownRemaining(m *domain.Mill, level catalog.MillLevel, now time.Time) time.Duration {
	return max(0, m.LastProduction.Add(level.Cooldown()).Sub(now))
}
