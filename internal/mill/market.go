package mill

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// SellFeed moves amount units out of the mill stock, oldest batches first,
// into a new market listing. The listing takes the type of the oldest
// batch consumed.
func (s *service) SellFeed(ctx context.Context, playerID string, amount, price int) (*domain.FeedListing, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellFeedCalled, "player_id", playerID, "amount", amount, "price", price)

	if amount <= 0 || price <= 0 || price > s.catalog.Mill.MaxFeedPrice || amount > math.MaxInt/price {
		return nil, domain.ErrBadAmount
	}

	now := s.clock.Now()
	var listing domain.FeedListing
	err := repository.WithTx(ctx, s.store, repository.Mills, func(tx repository.Tx) error {
		doc := tx.Mills()
		m, ok := doc.Mills[playerID]
		if !ok {
			return domain.ErrNoMill
		}
		taken, err := m.TakeStock(amount)
		if err != nil {
			return err
		}
		listing = domain.FeedListing{
			ID:       uuid.NewString(),
			Seller:   playerID,
			MillCode: m.Code,
			Amount:   amount,
			Price:    price,
			Type:     taken[0].Type,
			Brand:    m.Brand,
			ListedAt: now,
		}
		doc.Market = append(doc.Market, listing)
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "SellFeed", "error", err)
		return nil, err
	}

	log.Info(LogMsgFeedListed, "player_id", playerID, "listing_id", listing.ID)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypeFeedListed, playerID, ItemFeed, amount, price))
	return &listing, nil
}

// Market lists the open listings in the order they were posted.
func (s *service) Market(ctx context.Context) ([]domain.FeedListing, error) {
	var out []domain.FeedListing
	err := repository.View(ctx, s.store, repository.Mills, func(tx repository.Tx) error {
		out = make([]domain.FeedListing, 0, len(tx.Mills().Market))
		for _, l := range tx.Mills().Market {
			if l.Amount > 0 {
				out = append(out, l)
			}
		}
		return nil
	})
	return out, err
}

// BuyFeed buys amount units from the first listing of the referenced seller
// that still holds that many. sellerRef is a mill code or an owner id.
func (s *service) BuyFeed(ctx context.Context, buyerID, sellerRef string, amount int) (*domain.FeedPurchase, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyFeedCalled, "buyer_id", buyerID, "seller_ref", sellerRef, "amount", amount)

	if amount <= 0 {
		return nil, domain.ErrBadAmount
	}

	var res *domain.FeedPurchase
	err := repository.WithTx(ctx, s.store, repository.Both, func(tx repository.Tx) error {
		doc := tx.Mills()
		players := tx.Players()

		sellerID, sellerMill, ok := s.codes.Resolve(doc, sellerRef)
		if !ok {
			return domain.ErrListingNotFound
		}
		if sellerID == buyerID {
			return domain.ErrSelfPurchase
		}

		idx := -1
		for i, l := range doc.Market {
			if l.Seller == sellerID && l.Amount >= amount {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrListingNotFound
		}
		listing := &doc.Market[idx]

		buyer, ok := players[buyerID]
		if !ok {
			return domain.ErrNoPlayer
		}
		// Listings stored before the price cap may still ask any price
		if listing.Price <= 0 || amount > math.MaxInt/listing.Price {
			return domain.ErrBadAmount
		}
		total := amount * listing.Price
		if err := buyer.Debit(total); err != nil {
			return err
		}
		seller, _ := players.Ensure(sellerID, "", 0)
		seller.Coins += total
		buyer.Feed += amount

		sellerMill.Sales += amount
		sellerMill.RoyaltyPoints += amount
		listing.Sales += amount
		listing.Amount -= amount

		res = &domain.FeedPurchase{
			ListingID: listing.ID,
			SellerID:  sellerID,
			Brand:     listing.Brand,
			Type:      listing.Type,
			Amount:    amount,
			Price:     listing.Price,
			TotalCost: total,
			Coins:     buyer.Coins,
			Feed:      buyer.Feed,
			Remaining: listing.Amount,
		}
		if listing.Amount == 0 {
			doc.RemoveListing(idx)
		}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "BuyFeed", "error", err)
		return nil, err
	}

	log.Info(LogMsgFeedBought, "buyer_id", buyerID, "seller_id", res.SellerID, "amount", amount)
	event.Emit(ctx, s.bus, event.NewFeedBoughtEvent(ctx, domain.FeedBoughtPayload{
		BuyerID:  buyerID,
		SellerID: res.SellerID,
		Amount:   amount,
		Coins:    res.TotalCost,
		Brand:    res.Brand,
	}))
	return res, nil
}

// TransferToFarm moves mill stock into the owner's farm feed inventory.
// Both families are written in one commit.
func (s *service) TransferToFarm(ctx context.Context, playerID string, amount int) (*domain.TransferResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgTransferCalled, "player_id", playerID, "amount", amount)

	if amount <= 0 {
		return nil, domain.ErrBadAmount
	}

	var res *domain.TransferResult
	err := repository.WithTx(ctx, s.store, repository.Both, func(tx repository.Tx) error {
		m, ok := tx.Mills().Mills[playerID]
		if !ok {
			return domain.ErrNoMill
		}
		p, ok := tx.Players()[playerID]
		if !ok || p.Pig == nil {
			return domain.ErrNoFarm
		}
		if _, err := m.TakeStock(amount); err != nil {
			return err
		}
		p.Feed += amount
		res = &domain.TransferResult{Amount: amount, StockTotal: m.StockTotal(), Feed: p.Feed}
		return nil
	})
	if err != nil {
		log.Info(LogMsgOpRejected, "op", "TransferToFarm", "error", err)
		return nil, err
	}

	log.Info(LogMsgFeedTransferred, "player_id", playerID, "amount", amount)
	event.Emit(ctx, s.bus, event.NewCoinsEvent(ctx, domain.EventTypeFeedTransfer, playerID, ItemFeed, amount, 0))
	return res, nil
}
