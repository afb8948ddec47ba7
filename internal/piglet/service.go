// Package piglet handles the piglet inventory: selling piglets and the
// per-player piglet market whose offers live only in memory.
package piglet

import (
	"context"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
	"github.com/osse101/PigFarmBot_Go/internal/utils"
)

// Service defines the piglet operations. Indexes are 1-based.
type Service interface {
	Sell(ctx context.Context, playerID string, index int) (*domain.PigletSale, error)
	RefreshMarket(ctx context.Context, playerID string) ([]domain.MarketOffer, error)
	Offers(ctx context.Context, playerID string) ([]domain.MarketOffer, error)
	BuyOffer(ctx context.Context, playerID string, index int) (*domain.PigletPurchase, error)
}

type service struct {
	store   repository.Store
	catalog *catalog.Catalog
	clock   clock.Clock
	newRand func() utils.Random
	bus     event.Bus
	offers  *offerCache
}

// NewService creates a new piglet service. Offers expire after the
// catalog's offer TTL.
func NewService(store repository.Store, cat *catalog.Catalog, clk clock.Clock, newRand func() utils.Random, bus event.Bus) Service {
	if newRand == nil {
		newRand = utils.NewRandom
	}
	return &service{
		store:   store,
		catalog: cat,
		clock:   clk,
		newRand: newRand,
		bus:     bus,
		offers:  newOfferCache(DefaultOfferCacheSize, cat.Piglets.OfferTTL),
	}
}

func (s *service) Sell(ctx context.Context, playerID string, index int) (*domain.PigletSale, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "player_id", playerID, "index", index)

	var res *domain.PigletSale
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		p, ok := tx.Players()[playerID]
		if !ok || len(p.Piglets) == 0 {
			return domain.ErrNoPiglets
		}
		if index < 1 || index > len(p.Piglets) {
			return domain.ErrBadIndex
		}
		sold := p.Piglets[index-1]
		p.Piglets = append(p.Piglets[:index-1], p.Piglets[index:]...)
		price := s.catalog.Piglets.SalePrices[sold.Type]
		p.Coins += price
		res = &domain.PigletSale{Type: sold.Type, CoinsEarned: price, Coins: p.Coins, Remaining: len(p.Piglets)}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "Sell", "error", err)
		return nil, err
	}

	log.Info(LogMsgPigletSold, "player_id", playerID, "type", res.Type)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypePigletSold, playerID, string(res.Type), 1, res.CoinsEarned))
	return res, nil
}

// RefreshMarket draws a new set of offers, uniformly with replacement from
// the market catalog, replacing the previous draw.
func (s *service) RefreshMarket(ctx context.Context, playerID string) ([]domain.MarketOffer, error) {
	logger.FromContext(ctx).Info(LogMsgRefreshMarketCalled, "player_id", playerID)

	rules := s.catalog.Piglets
	rng := s.newRand()
	offers := make([]domain.MarketOffer, rules.OffersPerRefresh)
	for i := range offers {
		entry := rules.Market[rng.IntN(len(rules.Market))]
		offers[i] = domain.MarketOffer{Index: i + 1, Type: entry.Type, Price: entry.Price}
	}
	s.offers.Set(playerID, offers)

	logger.FromContext(ctx).Debug(LogMsgMarketRefreshed, "player_id", playerID, "offers", len(offers))
	return offers, nil
}

// Offers returns the player's current draw.
func (s *service) Offers(_ context.Context, playerID string) ([]domain.MarketOffer, error) {
	offers, ok := s.offers.Get(playerID)
	if !ok {
		return nil, domain.ErrNoMarketOffers
	}
	return offers, nil
}

// BuyOffer buys one offer of the current draw. A draw serves a single
// purchase; the offers are dropped once it commits.
func (s *service) BuyOffer(ctx context.Context, playerID string, index int) (*domain.PigletPurchase, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyOfferCalled, "player_id", playerID, "index", index)

	today := domain.DateOf(s.clock.Now())
	var res *domain.PigletPurchase
	var consumed []domain.MarketOffer
	err := repository.WithTx(ctx, s.store, repository.Players, func(tx repository.Tx) error {
		// The players lock serialises concurrent purchases against one draw
		offers, ok := s.offers.Get(playerID)
		if !ok || len(offers) == 0 {
			return domain.ErrNoMarketOffers
		}
		if index < 1 || index > len(offers) {
			return domain.ErrBadIndex
		}
		p, ok := tx.Players()[playerID]
		if !ok {
			return domain.ErrNoPlayer
		}
		offer := offers[index-1]
		if err := p.Debit(offer.Price); err != nil {
			return err
		}
		p.Piglets = append(p.Piglets, domain.Piglet{Type: offer.Type, BornOn: today})

		s.offers.Invalidate(playerID)
		consumed = offers
		res = &domain.PigletPurchase{Type: offer.Type, Price: offer.Price, Coins: p.Coins}
		return nil
	})
	if err != nil {
		if consumed != nil {
			s.offers.Set(playerID, consumed)
		}
		log.Info(LogMsgOpRejected, "op", "BuyOffer", "error", err)
		return nil, err
	}

	log.Info(LogMsgPigletBought, "player_id", playerID, "type", res.Type)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypePigletBought, playerID, string(res.Type), 1, -res.Price))
	return res, nil
}
