package piglet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
	"github.com/osse101/PigFarmBot_Go/internal/testing/testkit"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func seedPlayer(t *testing.T, store repository.Store, id string, mutate func(p *domain.PlayerRecord)) {
	t.Helper()
	require.NoError(t, repository.WithTx(context.Background(), store, repository.Players, func(tx repository.Tx) error {
		p, _ := tx.Players().Ensure(id, "p"+id, 0)
		if mutate != nil {
			mutate(p)
		}
		return nil
	}))
}

func loadPlayer(t *testing.T, store repository.Store, id string) *domain.PlayerRecord {
	t.Helper()
	var p *domain.PlayerRecord
	require.NoError(t, repository.View(context.Background(), store, repository.Players, func(tx repository.Tx) error {
		p = tx.Players()[id]
		return nil
	}))
	return p
}

func TestSell(t *testing.T) {
	store, _ := memory.NewStore()
	bus := testkit.NewRecordingBus()
	svc := NewService(store, catalog.Default(), clock.NewFakeClock(now), nil, bus)
	ctx := context.Background()

	_, err := svc.Sell(ctx, "1", 1)
	assert.ErrorIs(t, err, domain.ErrNoPiglets)

	seedPlayer(t, store, "1", func(p *domain.PlayerRecord) {
		p.Piglets = []domain.Piglet{
			{Type: domain.PigletNormal},
			{Type: domain.PigletGolden},
			{Type: domain.PigletSpotted},
		}
	})

	for _, idx := range []int{0, 4, -1} {
		_, err = svc.Sell(ctx, "1", idx)
		assert.ErrorIs(t, err, domain.ErrBadIndex)
	}

	res, err := svc.Sell(ctx, "1", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.PigletGolden, res.Type)
	assert.Equal(t, 5, res.CoinsEarned)
	assert.Equal(t, 2, res.Remaining)

	res, err = svc.Sell(ctx, "1", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.PigletSpotted, res.Type)
	assert.Equal(t, 3, res.CoinsEarned)

	p := loadPlayer(t, store, "1")
	assert.Equal(t, 8, p.Coins)
	assert.Equal(t, []domain.Piglet{{Type: domain.PigletNormal}}, p.Piglets)
	assert.Equal(t, []string{domain.EventTypePigletSold, domain.EventTypePigletSold}, bus.Types())
}

func TestRefreshMarket_DrawsFromCatalog(t *testing.T) {
	store, _ := memory.NewStore()
	rng := testkit.NewScriptedRandom(nil, []int{2, 0, 1})
	svc := NewService(store, catalog.Default(), clock.NewFakeClock(now), rng.Factory(), nil)
	ctx := context.Background()

	_, err := svc.Offers(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNoMarketOffers)

	offers, err := svc.RefreshMarket(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []domain.MarketOffer{
		{Index: 1, Type: domain.PigletGolden, Price: 7},
		{Index: 2, Type: domain.PigletNormal, Price: 2},
		{Index: 3, Type: domain.PigletSpotted, Price: 4},
	}, offers)

	cached, err := svc.Offers(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, offers, cached)

	_, err = svc.Offers(ctx, "2")
	assert.ErrorIs(t, err, domain.ErrNoMarketOffers)
}

func TestBuyOffer(t *testing.T) {
	store, _ := memory.NewStore()
	rng := testkit.NewScriptedRandom(nil, []int{2, 0, 1})
	bus := testkit.NewRecordingBus()
	svc := NewService(store, catalog.Default(), clock.NewFakeClock(now), rng.Factory(), bus)
	ctx := context.Background()

	_, err := svc.BuyOffer(ctx, "1", 1)
	assert.ErrorIs(t, err, domain.ErrNoMarketOffers)

	seedPlayer(t, store, "1", func(p *domain.PlayerRecord) { p.Coins = 5 })
	_, err = svc.RefreshMarket(ctx, "1")
	require.NoError(t, err)

	_, err = svc.BuyOffer(ctx, "1", 4)
	assert.ErrorIs(t, err, domain.ErrBadIndex)

	_, err = svc.BuyOffer(ctx, "1", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// A rejected purchase keeps the draw
	res, err := svc.BuyOffer(ctx, "1", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.PigletNormal, res.Type)
	assert.Equal(t, 3, res.Coins)

	// One purchase per draw
	_, err = svc.BuyOffer(ctx, "1", 3)
	assert.ErrorIs(t, err, domain.ErrNoMarketOffers)

	p := loadPlayer(t, store, "1")
	require.Len(t, p.Piglets, 1)
	assert.Equal(t, domain.Piglet{Type: domain.PigletNormal, BornOn: "2025-03-10"}, p.Piglets[0])
	assert.Equal(t, []string{domain.EventTypePigletBought}, bus.Types())
}

func TestBuyOffer_RestoresDrawWhenCommitFails(t *testing.T) {
	store, backend := memory.NewStore()
	svc := NewService(store, catalog.Default(), clock.NewFakeClock(now), testkit.NewScriptedRandom(nil, []int{0}).Factory(), nil)
	ctx := context.Background()

	seedPlayer(t, store, "1", func(p *domain.PlayerRecord) { p.Coins = 10 })
	_, err := svc.RefreshMarket(ctx, "1")
	require.NoError(t, err)

	backend.FailSaves(errors.New("disk full"))
	_, err = svc.BuyOffer(ctx, "1", 1)
	require.Error(t, err)

	backend.FailSaves(nil)
	_, err = svc.BuyOffer(ctx, "1", 1)
	require.NoError(t, err)
	assert.Equal(t, 8, loadPlayer(t, store, "1").Coins)
}

func TestBuyOffer_RequiresPlayer(t *testing.T) {
	store, _ := memory.NewStore()
	svc := NewService(store, catalog.Default(), clock.NewFakeClock(now), nil, nil)
	ctx := context.Background()

	_, err := svc.RefreshMarket(ctx, "1")
	require.NoError(t, err)
	_, err = svc.BuyOffer(ctx, "1", 1)
	assert.ErrorIs(t, err, domain.ErrNoPlayer)
}

func TestOfferCache_Expires(t *testing.T) {
	c := newOfferCache(4, 20*time.Millisecond)
	c.Set("1", []domain.MarketOffer{{Index: 1, Type: domain.PigletNormal, Price: 2}})

	_, ok := c.Get("1")
	require.True(t, ok)
	assert.Eventually(t, func() bool {
		_, ok := c.Get("1")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestOfferCache_ReturnsCopies(t *testing.T) {
	c := newOfferCache(4, time.Minute)
	c.Set("1", []domain.MarketOffer{{Index: 1, Type: domain.PigletNormal, Price: 2}})

	got, _ := c.Get("1")
	got[0].Price = 0

	again, _ := c.Get("1")
	assert.Equal(t, 2, again[0].Price)
}
