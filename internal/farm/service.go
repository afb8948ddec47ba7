// Package farm implements the pig lifecycle: purchase, daily feeding with
// streaks, breeding and litters, the farm view, and the daily rollover.
package farm

import (
	"context"
	"slices"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
	"github.com/osse101/PigFarmBot_Go/internal/utils"
)

// Service defines the pig lifecycle operations
type Service interface {
	AcquirePig(ctx context.Context, playerID, username string) (*domain.PigResult, error)
	FeedPig(ctx context.Context, playerID string) (*domain.FeedResult, error)
	Breed(ctx context.Context, playerID string) (*domain.BreedResult, error)
	CheckBreed(ctx context.Context, playerID string) (*domain.LitterResult, error)
	Status(ctx context.Context, playerID string) (*domain.FarmStatus, error)
	Rollover(ctx context.Context) (*domain.RolloverResult, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	clock   clock.Clock
	newRand func() utils.Random
	bus     event.Bus
}

// NewService creates a new farm service. newRand is called once per
// operation that needs randomness.
func NewService(store repository.Store, cat *catalog.Catalog, clk clock.Clock, newRand func() utils.Random, bus event.Bus) Service {
	if newRand == nil {
		newRand = utils.NewRandom
	}
	return &service{store: store, catalog: cat, clock: clk, newRand: newRand, bus: bus}
}

func (s *service) today() domain.Date {
	return domain.DateOf(s.clock.Now())
}

// AcquirePig creates the player's only pig, creating the player first if needed.
func (s *service) AcquirePig(ctx context.Context, playerID, username string) (*domain.PigResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAcquirePigCalled, "player_id", playerID)

	today := s.today()
	var res domain.PigResult
	var joined bool
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, created := tx.Players().Ensure(playerID, username, s.catalog.Rewards.JoinBonus)
		if p.Pig != nil {
			return domain.ErrAlreadyOwned
		}
		p.Pig = domain.NewPig(today)
		joined = created
		res = domain.PigResult{BirthDate: today, Coins: p.Coins}
		if created {
			res.JoinBonus = s.catalog.Rewards.JoinBonus
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "AcquirePig", "error", err)
		return nil, err
	}

	if joined {
		log.Info(LogMsgPlayerJoined, "player_id", playerID)
		event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypePlayerJoined, playerID, ItemJoinBonus, 1, res.JoinBonus))
	}
	log.Info(LogMsgPigAcquired, "player_id", playerID)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypePigAcquired, playerID, ItemPig, 1, 0))
	return &res, nil
}

// FeedPig feeds the pig once per calendar day and pays the feeding reward.
// The streak continues only when the pig was also fed the day before.
func (s *service) FeedPig(ctx context.Context, playerID string) (*domain.FeedResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgFeedPigCalled, "player_id", playerID)

	today := s.today()
	rewards := s.catalog.Rewards
	var res *domain.FeedResult
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok || p.Pig == nil {
			return domain.ErrNoPig
		}
		pig := p.Pig
		if pig.FedOn(today) {
			return domain.ErrAlreadyFedToday
		}
		if rewards.FeedCost > 0 {
			if p.Feed < rewards.FeedCost {
				return domain.ErrInsufficientFeed
			}
			p.Feed -= rewards.FeedCost
		}

		if len(pig.FedDates) == 0 || pig.FedOn(today.AddDays(-1)) {
			p.Streak++
		} else {
			p.Streak = 1
		}
		pig.FedDates = append(pig.FedDates, today)

		bonus := rewards.StreakBonus.For(p.Streak)
		p.Coins += rewards.FeedReward + bonus
		res = &domain.FeedResult{
			FedOn:       today,
			Streak:      p.Streak,
			CoinsEarned: rewards.FeedReward + bonus,
			StreakBonus: bonus,
			FeedUsed:    rewards.FeedCost,
			Coins:       p.Coins,
			Feed:        p.Feed,
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "FeedPig", "error", err)
		return nil, err
	}

	log.Info(LogMsgPigFed, "player_id", playerID, "streak", res.Streak)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypePigFed, playerID, ItemMeal, 1, res.CoinsEarned))
	return res, nil
}

// Breed makes the pig pregnant. Preconditions are checked in a fixed order
// and the first failure is reported.
func (s *service) Breed(ctx context.Context, playerID string) (*domain.BreedResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBreedCalled, "player_id", playerID)

	today := s.today()
	rules := s.catalog.Breeding
	var res *domain.BreedResult
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok || p.Pig == nil {
			return domain.ErrNoPig
		}
		pig := p.Pig
		if pig.AgeDays(today) < rules.MinAgeDays {
			return domain.ErrTooYoung
		}
		for d := 1; d <= rules.FedDaysRequired; d++ {
			if !pig.FedOn(today.AddDays(-d)) {
				return domain.ErrUnderfed
			}
		}
		if pig.Pregnant {
			return domain.ErrAlreadyPregnant
		}
		if err := p.Debit(rules.Cost); err != nil {
			return err
		}
		pig.StartPregnancy(today)
		res = &domain.BreedResult{
			PregnantDate: today,
			DueDate:      today.AddDays(rules.GestationDays),
			Cost:         rules.Cost,
			Coins:        p.Coins,
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Breed", "error", err)
		return nil, err
	}

	log.Info(LogMsgPigBred, "player_id", playerID, "due", res.DueDate)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypePigBred, playerID, ItemBreeding, 1, -res.Cost))
	return res, nil
}

// CheckBreed delivers the litter once the gestation period has elapsed.
func (s *service) CheckBreed(ctx context.Context, playerID string) (*domain.LitterResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCheckBreedCalled, "player_id", playerID)

	today := s.today()
	rules := s.catalog.Breeding
	var res *domain.LitterResult
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok || p.Pig == nil {
			return domain.ErrNoPig
		}
		pig := p.Pig
		if !pig.Pregnant || pig.PregnantDate == nil {
			return domain.ErrNotPregnant
		}
		elapsed := today.DaysSince(*pig.PregnantDate)
		if elapsed < rules.GestationDays {
			return domain.NewNotDueError(rules.GestationDays - elapsed)
		}

		rng := s.newRand()
		size := utils.RandomIntIn(rng, rules.LitterMin, rules.LitterMax)
		litter := make([]domain.Piglet, 0, size)
		counts := make(map[domain.PigletType]int, len(domain.PigletTypes))
		for i := 0; i < size; i++ {
			t := rules.RollType(rng.Float64())
			litter = append(litter, domain.Piglet{Type: t, BornOn: today})
			counts[t]++
		}
		p.Piglets = append(p.Piglets, litter...)
		pig.EndPregnancy()

		res = &domain.LitterResult{Piglets: litter, Counts: counts, TotalPiglets: len(p.Piglets)}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "CheckBreed", "error", err)
		return nil, err
	}

	types := make([]domain.PigletType, len(res.Piglets))
	for i, pl := range res.Piglets {
		types[i] = pl.Type
	}
	log.Info(LogMsgLitterBorn, "player_id", playerID, "size", len(types))
	event.Emit(ctx, s.bus, event.NewLitterBornEvent(ctx, playerID, types))
	return res, nil
}

// Status builds the farm view.
func (s *service) Status(ctx context.Context, playerID string) (*domain.FarmStatus, error) {
	logger.FromContext(ctx).Debug(LogMsgStatusCalled, "player_id", playerID)

	today := s.today()
	gestation := s.catalog.Breeding.GestationDays
	var res *domain.FarmStatus
	err := repository.View(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok || p.Pig == nil {
			return domain.ErrNoPig
		}
		pig := p.Pig

		daysSinceFed := -1
		last, fed := pig.LastFed()
		if fed {
			daysSinceFed = today.DaysSince(last)
		}

		res = &domain.FarmStatus{
			Username:   p.Username,
			AgeDays:    pig.AgeDays(today),
			Streak:     p.Streak,
			Coins:      p.Coins,
			Feed:       p.Feed,
			TonBalance: p.TonBalance,
			Mood:       domain.MoodFor(daysSinceFed),
			LastFed:    last,
			FedToday:   pig.FedOn(today),
			Piglets:    make([]domain.PigletView, len(p.Piglets)),
			Pregnant:   pig.Pregnant,
		}
		for i, pl := range p.Piglets {
			res.Piglets[i] = domain.PigletView{Index: i + 1, Type: pl.Type, Age: pl.EffectiveAge(today)}
		}
		if pig.Pregnant && pig.PregnantDate != nil {
			res.PregnantDays = today.DaysSince(*pig.PregnantDate)
			res.DaysRemaining = max(0, gestation-res.PregnantDays)
			res.ReadyToBirth = res.DaysRemaining == 0
		}
		return nil
	})
	return res, err
}

// Rollover persists piglet ages for the new day and lists the owners whose
// pig has been fed neither yesterday nor today.
func (s *service) Rollover(ctx context.Context) (*domain.RolloverResult, error) {
	log := logger.FromContext(ctx)
	today := s.today()
	log.Info(LogMsgRolloverStarted, "date", today)

	res := &domain.RolloverResult{Hungry: []string{}}
	res.Date = today
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		players := tx.Players()
		res.PlayersScanned = len(players)
		for id, p := range players {
			for i := range p.Piglets {
				if age := p.Piglets[i].EffectiveAge(today); age != p.Piglets[i].Age {
					p.Piglets[i].Age = age
					res.PigletsAged++
				}
			}
			if p.Pig != nil && !p.Pig.FedOn(today) && !p.Pig.FedOn(today.AddDays(-1)) {
				res.Hungry = append(res.Hungry, id)
			}
		}
		return nil
	})
	if err != nil {
		log.Error(LogMsgOpRejected, "op", "Rollover", "error", err)
		return nil, err
	}
	slices.Sort(res.Hungry)

	log.Info(LogMsgRolloverFinished, "date", today, "piglets_aged", res.PigletsAged, "hungry", len(res.Hungry))
	return res, nil
}
