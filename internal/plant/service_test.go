package plant

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
	"github.com/osse101/PigFarmBot_Go/internal/testing/testkit"
)

var today = time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	svc   Service
	store repository.Store
	clock *clock.FakeClock
	bus   *testkit.RecordingBus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, _ := memory.NewStore()
	f := &fixture{store: store, clock: clock.NewFakeClock(today), bus: testkit.NewRecordingBus()}
	f.svc = NewService(store, catalog.Default(), f.clock, f.bus)
	return f
}

func (f *fixture) update(t *testing.T, id string, fn func(p *domain.PlayerRecord)) {
	t.Helper()
	require.NoError(t, repository.WithTx(context.Background(), f.store, repository.Players, func(tx repository.Tx) error {
		p, _ := tx.Players().Ensure(id, "p"+id, 0)
		fn(p)
		return nil
	}))
}

func (f *fixture) player(t *testing.T, id string) *domain.PlayerRecord {
	t.Helper()
	var p *domain.PlayerRecord
	require.NoError(t, repository.View(context.Background(), f.store, repository.Players, func(tx repository.Tx) error {
		p = tx.Players()[id]
		return nil
	}))
	return p
}

func TestStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "1", "alice")
	assert.ErrorIs(t, err, domain.ErrInsufficientTokens)
	assert.Nil(t, f.player(t, "1"), "a rejected start must not create the player")

	f.update(t, "1", func(p *domain.PlayerRecord) { p.TonBalance = dec("2.5") })
	res, err := f.svc.Start(ctx, "1", "alice")
	require.NoError(t, err)
	assert.True(t, res.TonBalance.Equal(dec("1.5")))

	_, err = f.svc.Start(ctx, "1", "alice")
	assert.ErrorIs(t, err, domain.ErrAlreadyOwned)

	p := f.player(t, "1")
	require.NotNil(t, p.Plant)
	assert.Equal(t, 0, p.Plant.Level)
	require.Len(t, p.TonLog, 1)
	assert.Equal(t, LedgerSourceStart, p.TonLog[0].Source)
	assert.True(t, p.TonLog[0].Amount.Equal(dec("-1")))
}

func TestProcess_OnePerProductPerDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Process(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNoPlant)

	f.update(t, "1", func(p *domain.PlayerRecord) {
		p.Plant = &domain.PorkPlant{Processed: map[domain.Product]int{}}
		p.Piglets = []domain.Piglet{
			{Type: domain.PigletNormal, Age: 1},
			{Type: domain.PigletNormal, BornOn: "2025-03-15"},
			{Type: domain.PigletNormal, Age: 4},
		}
	})

	res, err := f.svc.Process(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProductMeat, res.Product)
	assert.Equal(t, domain.Date("2025-03-15"), res.Piglet.BornOn, "effective age counts days since birth")
	assert.True(t, res.Reward.Equal(dec("0.01")))
	assert.Equal(t, 2, res.Remaining)

	_, err = f.svc.Process(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNothingEligible)

	f.clock.AdvanceDays(1)
	_, err = f.svc.Process(ctx, "1")
	require.NoError(t, err)

	p := f.player(t, "1")
	assert.Equal(t, []domain.Piglet{{Type: domain.PigletNormal, Age: 1}}, p.Piglets)
	assert.Equal(t, 2, p.Plant.Processed[domain.ProductMeat])
	assert.True(t, p.Plant.TonEarned.Equal(dec("0.02")))
	assert.True(t, p.TonBalance.Equal(dec("0.02")))
	assert.Equal(t, domain.Date("2025-03-21"), p.LastProcessed[domain.ProductMeat])
	assert.Len(t, p.TonLog, 2)
}

func TestProcess_PriorityOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.update(t, "1", func(p *domain.PlayerRecord) {
		p.Plant = &domain.PorkPlant{Level: 4, Processed: map[domain.Product]int{}}
		p.Piglets = []domain.Piglet{
			{Type: domain.PigletNormal, Age: 5},
			{Type: domain.PigletSpotted, Age: 0},
			{Type: domain.PigletGolden, Age: 2},
			{Type: domain.PigletGolden, Age: 9},
		}
	})

	var got []domain.Product
	var picked []domain.Piglet
	for i := 0; i < 3; i++ {
		res, err := f.svc.Process(ctx, "1")
		require.NoError(t, err)
		got = append(got, res.Product)
		picked = append(picked, res.Piglet)
	}
	assert.Equal(t, []domain.Product{domain.ProductBacon, domain.ProductSausage, domain.ProductMeat}, got)
	assert.Equal(t, domain.Piglet{Type: domain.PigletGolden, Age: 9}, picked[0])
	assert.Equal(t, domain.Piglet{Type: domain.PigletSpotted, Age: 0}, picked[1])
	assert.Equal(t, domain.Piglet{Type: domain.PigletNormal, Age: 5}, picked[2])

	_, err := f.svc.Process(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNothingEligible)

	p := f.player(t, "1")
	assert.True(t, p.TonBalance.Equal(dec("0.26")))
	assert.Equal(t, []domain.Piglet{{Type: domain.PigletGolden, Age: 2}}, p.Piglets)
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Status(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNoPlant)

	f.update(t, "1", func(p *domain.PlayerRecord) {
		p.Plant = &domain.PorkPlant{Level: 2, Processed: map[domain.Product]int{domain.ProductMeat: 4}}
		p.LastProcessed[domain.ProductMeat] = "2025-03-20"
	})

	status, err := f.svc.Status(ctx, "1")
	require.NoError(t, err)
	require.Len(t, status.Products, 3)

	byProduct := map[domain.Product]domain.ProductStatus{}
	for _, ps := range status.Products {
		byProduct[ps.Product] = ps
	}
	assert.False(t, byProduct[domain.ProductBacon].Unlocked)
	assert.True(t, byProduct[domain.ProductSausage].Unlocked)
	assert.True(t, byProduct[domain.ProductSausage].Reward.Equal(dec("0.05")))
	assert.True(t, byProduct[domain.ProductMeat].ClaimedToday)
	assert.Equal(t, 4, byProduct[domain.ProductMeat].Processed)
	assert.False(t, status.AtMaxLevel)
}

func TestUpgrade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Upgrade(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNoPlant)

	f.update(t, "1", func(p *domain.PlayerRecord) {
		p.Plant = &domain.PorkPlant{Level: 5, Processed: map[domain.Product]int{}}
	})
	_, err = f.svc.Upgrade(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrInsufficientTokens)

	f.update(t, "1", func(p *domain.PlayerRecord) { p.TonBalance = dec("100") })
	res, err := f.svc.Upgrade(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 6, res.Level)

	_, err = f.svc.Upgrade(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrMaxLevel)

	p := f.player(t, "1")
	assert.True(t, p.TonBalance.Equal(dec("99")))
	assert.Equal(t, LedgerSourceUpgrade, p.TonLog[len(p.TonLog)-1].Source)
	assert.Equal(t, []string{domain.EventTypePlantUpgraded}, f.bus.Types())
}
