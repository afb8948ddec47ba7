// Package player owns player records: joining with the one-time bonus,
// referrals, and the one-time task rewards.
package player

import (
	"context"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// Service defines the player operations
type Service interface {
	Register(ctx context.Context, playerID, username, referrerID string) (*domain.RegisterResult, error)
	Referral(ctx context.Context, playerID string) (*domain.ReferralStatus, error)
	Tasks(ctx context.Context, playerID string) ([]domain.TaskStatus, error)
	ClaimTask(ctx context.Context, playerID, code string) (*domain.TaskClaimResult, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	bus     event.Bus
}

// NewService creates a new player service
func NewService(store repository.Store, cat *catalog.Catalog, bus event.Bus) Service {
	return &service{store: store, catalog: cat, bus: bus}
}

// Register creates the player record and grants the join bonus. A referrer
// is credited only when it is a different, existing player.
func (s *service) Register(ctx context.Context, playerID, username, referrerID string) (*domain.RegisterResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterCalled, "player_id", playerID, "referrer_id", referrerID)

	var res domain.RegisterResult
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		players := tx.Players()
		if _, exists := players[playerID]; exists {
			return domain.ErrAlreadyOwned
		}

		p, _ := players.Ensure(playerID, username, s.catalog.Rewards.JoinBonus)
		res = domain.RegisterResult{PlayerID: playerID, Coins: p.Coins, JoinBonus: s.catalog.Rewards.JoinBonus}

		if referrerID == "" {
			return nil
		}
		referrer, ok := players[referrerID]
		if !ok || referrerID == playerID {
			log.Info(LogMsgReferrerIgnored, "referrer_id", referrerID)
			return nil
		}
		referrer.Coins += s.catalog.Rewards.ReferralBonus
		referrer.Referrals++
		p.ReferredBy = referrerID
		res.ReferrerID = referrerID
		res.ReferralBonus = s.catalog.Rewards.ReferralBonus
		return nil
	})
	if err != nil {
		log.Info(LogMsgRegisterRejected, "error", err)
		return nil, err
	}

	log.Info(LogMsgPlayerJoined, "player_id", playerID, "referred", res.ReferrerID != "")
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypePlayerJoined, playerID, ItemJoinBonus, 1, res.JoinBonus))
	if res.ReferrerID != "" {
		log.Info(LogMsgReferralCredited, "referrer_id", res.ReferrerID, "bonus", res.ReferralBonus)
		event.Emit(ctx, s.bus, event.NewReferralRewardedEvent(ctx, res.ReferrerID, playerID, username, res.ReferralBonus))
	}
	return &res, nil
}

func (s *service) Referral(ctx context.Context, playerID string) (*domain.ReferralStatus, error) {
	logger.FromContext(ctx).Debug(LogMsgReferralCalled, "player_id", playerID)

	var res *domain.ReferralStatus
	err := repository.View(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrNoPlayer
		}
		bonus := s.catalog.Rewards.ReferralBonus
		res = &domain.ReferralStatus{
			PlayerID:         playerID,
			Referrals:        p.Referrals,
			BonusPerReferral: bonus,
			EarnedCoins:      p.Referrals * bonus,
			ReferredBy:       p.ReferredBy,
		}
		return nil
	})
	return res, err
}

// Tasks lists the catalog tasks. Unknown players see every task unclaimed.
func (s *service) Tasks(ctx context.Context, playerID string) ([]domain.TaskStatus, error) {
	logger.FromContext(ctx).Debug(LogMsgTasksCalled, "player_id", playerID)

	var out []domain.TaskStatus
	err := repository.View(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p := tx.Players()[playerID]
		out = make([]domain.TaskStatus, 0, len(s.catalog.Tasks))
		for _, t := range s.catalog.Tasks {
			out = append(out, domain.TaskStatus{
				Code:        t.Code,
				Title:       t.Title,
				Kind:        t.Kind,
				URL:         t.URL,
				RewardCoins: t.RewardCoins,
				RewardFeed:  t.RewardFeed,
				Claimed:     p != nil && p.HasClaimed(t.Code),
			})
		}
		return nil
	})
	return out, err
}

func (s *service) ClaimTask(ctx context.Context, playerID, code string) (*domain.TaskClaimResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgClaimTaskCalled, "player_id", playerID, "code", code)

	task, ok := s.catalog.Task(code)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	var res *domain.TaskClaimResult
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrNoPlayer
		}
		if p.HasClaimed(code) {
			return domain.ErrTaskAlreadyClaimed
		}
		p.Coins += task.RewardCoins
		p.Feed += task.RewardFeed
		p.ClaimedTasks = append(p.ClaimedTasks, code)
		res = &domain.TaskClaimResult{
			Code:        code,
			RewardCoins: task.RewardCoins,
			RewardFeed:  task.RewardFeed,
			Coins:       p.Coins,
			Feed:        p.Feed,
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgClaimTaskRejected, "error", err)
		return nil, err
	}

	log.Info(LogMsgTaskClaimed, "player_id", playerID, "code", code)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypeTaskClaimed, playerID, code, 1, task.RewardCoins))
	return res, nil
}
