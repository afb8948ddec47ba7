// Package plant runs the pork plants that turn piglets into tokens, one
// product of each kind per calendar day.
package plant

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// Service defines the pork plant operations
type Service interface {
	Start(ctx context.Context, playerID, username string) (*domain.TokenSpendResult, error)
	Process(ctx context.Context, playerID string) (*domain.ProcessResult, error)
	Status(ctx context.Context, playerID string) (*domain.PlantStatus, error)
	Upgrade(ctx context.Context, playerID string) (*domain.TokenSpendResult, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	clock   clock.Clock
	bus     event.Bus
}

// NewService creates a new plant service
func NewService(store repository.Store, cat *catalog.Catalog, clk clock.Clock, bus event.Bus) Service {
	return &service{store: store, catalog: cat, clock: clk, bus: bus}
}

func (s *service) tokensEvent(ctx context.Context, eventType, playerID, username, source string, amount decimal.Decimal) event.Event {
	return event.NewTokensEvent(ctx, eventType, domain.TokensPayload{
		PlayerID: playerID,
		Username: username,
		Amount:   amount,
		Source:   source,
	})
}

// Start buys the plant for the catalog's token price.
func (s *service) Start(ctx context.Context, playerID, username string) (*domain.TokenSpendResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStartCalled, "player_id", playerID)

	today := domain.DateOf(s.clock.Now())
	cost := s.catalog.Plant.StartCost.Decimal
	var res *domain.TokenSpendResult
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, created := tx.Players().Ensure(playerID, username, s.catalog.Rewards.JoinBonus)
		if p.Plant != nil {
			return domain.ErrAlreadyOwned
		}
		if err := p.DebitTokens(cost); err != nil {
			return err
		}
		p.Plant = &domain.PorkPlant{Processed: map[domain.Product]int{}, TonEarned: decimal.Zero}
		p.AppendLedger(today, LedgerSourceStart, cost.Neg())
		res = &domain.TokenSpendResult{Cost: cost, TonBalance: p.TonBalance}
		if created {
			res.JoinBonus = s.catalog.Rewards.JoinBonus
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Start", "error", err)
		return nil, err
	}

	log.Info(LogMsgPlantStarted, "player_id", playerID)
	event.Emit(ctx, s.bus, s.tokensEvent(ctx, domain.EventTypePlantStarted, playerID, username, LedgerSourceStart, cost.Neg()))
	return res, nil
}

// Process consumes the first piglet eligible for the highest-priority
// product that is unlocked and not yet made today.
func (s *service) Process(ctx context.Context, playerID string) (*domain.ProcessResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgProcessCalled, "player_id", playerID)

	today := domain.DateOf(s.clock.Now())
	rules := s.catalog.Plant
	var res *domain.ProcessResult
	var username string
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok || p.Plant == nil {
			return domain.ErrNoPlant
		}
		plant := p.Plant

		for _, rule := range rules.Products {
			reward, unlocked := rules.Reward(plant.Level, rule.Product)
			if !unlocked || p.LastProcessed[rule.Product] == today {
				continue
			}
			for i, pl := range p.Piglets {
				if !rule.Accepts(pl.Type, pl.EffectiveAge(today)) {
					continue
				}
				p.Piglets = append(p.Piglets[:i], p.Piglets[i+1:]...)
				p.TonBalance = p.TonBalance.Add(reward)
				plant.TonEarned = plant.TonEarned.Add(reward)
				plant.Processed[rule.Product]++
				p.LastProcessed[rule.Product] = today
				p.AppendLedger(today, LedgerSourcePrefix+string(rule.Product), reward)

				username = p.Username
				res = &domain.ProcessResult{
					Product:    rule.Product,
					Piglet:     pl,
					Reward:     reward,
					TonBalance: p.TonBalance,
					Remaining:  len(p.Piglets),
				}
				return nil
			}
		}
		return domain.ErrNothingEligible
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Process", "error", err)
		return nil, err
	}

	log.Info(LogMsgProcessed, "player_id", playerID, "product", res.Product, "reward", res.Reward)
	event.Emit(ctx, s.bus, s.tokensEvent(ctx, domain.EventTypePlantProcess, playerID, username, LedgerSourcePrefix+string(res.Product), res.Reward))
	return res, nil
}

func (s *service) Status(ctx context.Context, playerID string) (*domain.PlantStatus, error) {
	logger.FromContext(ctx).Debug(LogMsgStatusCalled, "player_id", playerID)

	today := domain.DateOf(s.clock.Now())
	rules := s.catalog.Plant
	var res *domain.PlantStatus
	err := repository.View(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok || p.Plant == nil {
			return domain.ErrNoPlant
		}
		res = &domain.PlantStatus{
			Level:       p.Plant.Level,
			MaxLevel:    rules.MaxLevel(),
			Products:    make([]domain.ProductStatus, 0, len(rules.Products)),
			TonEarned:   p.Plant.TonEarned,
			UpgradeCost: rules.UpgradeCost.Decimal,
			AtMaxLevel:  p.Plant.Level >= rules.MaxLevel(),
		}
		for _, rule := range rules.Products {
			reward, unlocked := rules.Reward(p.Plant.Level, rule.Product)
			res.Products = append(res.Products, domain.ProductStatus{
				Product:      rule.Product,
				Unlocked:     unlocked,
				Reward:       reward,
				ClaimedToday: p.LastProcessed[rule.Product] == today,
				Processed:    p.Plant.Processed[rule.Product],
			})
		}
		return nil
	})
	return res, err
}

// Upgrade raises the plant one level for the catalog's token price.
func (s *service) Upgrade(ctx context.Context, playerID string) (*domain.TokenSpendResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUpgradeCalled, "player_id", playerID)

	today := domain.DateOf(s.clock.Now())
	cost := s.catalog.Plant.UpgradeCost.Decimal
	var res *domain.TokenSpendResult
	var username string
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok || p.Plant == nil {
			return domain.ErrNoPlant
		}
		if p.Plant.Level >= s.catalog.Plant.MaxLevel() {
			return domain.ErrMaxLevel
		}
		if err := p.DebitTokens(cost); err != nil {
			return err
		}
		p.Plant.Level++
		p.AppendLedger(today, LedgerSourceUpgrade, cost.Neg())
		username = p.Username
		res = &domain.TokenSpendResult{Level: p.Plant.Level, Cost: cost, TonBalance: p.TonBalance}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Upgrade", "error", err)
		return nil, err
	}

	log.Info(LogMsgPlantUpgraded, "player_id", playerID, "level", res.Level)
	event.Emit(ctx, s.bus, s.tokensEvent(ctx, domain.EventTypePlantUpgraded, playerID, username, LedgerSourceUpgrade, cost.Neg()))
	return res, nil
}
