package command

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/clock"
	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/farm"
	"github.com/osse101/PigFarmBot_Go/internal/mill"
	"github.com/osse101/PigFarmBot_Go/internal/piglet"
	"github.com/osse101/PigFarmBot_Go/internal/plant"
	"github.com/osse101/PigFarmBot_Go/internal/player"
	"github.com/osse101/PigFarmBot_Go/internal/testing/testkit"
	"github.com/osse101/PigFarmBot_Go/internal/wallet"
)

const admin = "1000"

func newDispatcher(t *testing.T) (*Dispatcher, *clock.FakeClock) {
	t.Helper()
	store, _ := memory.NewStore()
	cat := catalog.Default()
	clk := clock.NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	rng := testkit.NewScriptedRandom([]float64{0.99}, []int{0})
	bus := testkit.NewRecordingBus()

	svc := Services{
		Players: player.NewService(store, cat, bus),
		Farm:    farm.NewService(store, cat, clk, rng.Factory(), bus),
		Piglets: piglet.NewService(store, cat, clk, rng.Factory(), bus),
		Mills:   mill.NewService(store, cat, clk, bus),
		Plants:  plant.NewService(store, cat, clk, bus),
		Wallets: wallet.NewService(store, cat, clk, wallet.NewAdminSet([]string{admin}), bus),
	}
	return NewDispatcher(svc, cat, Options{ReferralLink: "https://t.me/PigFarmBot?start=%s"}), clk
}

func run(t *testing.T, d *Dispatcher, sender, name string, args ...string) string {
	t.Helper()
	reply, err := d.Dispatch(context.Background(), sender, "piggy", name, args)
	require.NoError(t, err)
	return reply
}

func TestDispatch_FarmFlow(t *testing.T) {
	d, _ := newDispatcher(t)

	assert.Equal(t, fmt.Sprintf(MsgWelcome, 2), run(t, d, "42", "start"))
	assert.Equal(t, MsgAlreadyJoined, run(t, d, "42", "start"))

	assert.Contains(t, run(t, d, "42", "/FEED"), "You don't have a pig")
	assert.Contains(t, run(t, d, "42", "buy"), "bought your first pig")

	fed := run(t, d, "42", "feed")
	assert.Contains(t, fed, "💰 Coins: 3")
	assert.Contains(t, fed, "🔥 Streak: 1")
	assert.Equal(t, "🍽 You already fed your pig today!", run(t, d, "42", "feed"))

	farmView := run(t, d, "42", "myfarm")
	assert.Contains(t, farmView, "👤 Owner: piggy")
	assert.Contains(t, farmView, "❤️ Mood: 😊 Happy")
}

func TestDispatch_PigletMarket(t *testing.T) {
	d, _ := newDispatcher(t)
	run(t, d, "42", "start")

	assert.Equal(t, "❌ No market offers. Use /market first.", run(t, d, "42", "buymarket", "1"))

	market := run(t, d, "42", "market")
	assert.Contains(t, market, "1. Normal piglet — 2 coins")
	assert.Contains(t, market, MsgMarketFooter)

	assert.Equal(t, fmt.Sprintf(MsgMarketBought, domain.PigletNormal, 0), run(t, d, "42", "buymarket", "1"))

	assert.Equal(t, fmt.Sprintf(MsgUsage, UsageSellPiglet), run(t, d, "42", "sellpiglet", "abc"))
	assert.Contains(t, run(t, d, "42", "sellpiglet", "1"), "Remaining piglets: 0")
	assert.Equal(t, "😢 You don't have any piglets.", run(t, d, "42", "sellpiglet", "1"))
}

func TestDispatch_ReferralUsesLink(t *testing.T) {
	d, _ := newDispatcher(t)
	run(t, d, "1", "start")

	assert.Equal(t, fmt.Sprintf(MsgWelcomeReferred, 2), run(t, d, "2", "start", "<@1>"))
	assert.Contains(t, run(t, d, "1", "referral"), "https://t.me/PigFarmBot?start=1")
	assert.Contains(t, run(t, d, "1", "referral"), "👥 Total referrals: 1")
}

func TestDispatch_MillCooldown(t *testing.T) {
	d, clk := newDispatcher(t)

	assert.Contains(t, run(t, d, "7", "startmill"), "Mill code")
	assert.Contains(t, run(t, d, "7", "makefeed"), "Produced 10 basic feed")
	assert.Equal(t, "⏳ Your mill is cooling down. Next batch in 24h.", run(t, d, "7", "makefeed"))

	clk.Advance(90 * time.Minute)
	assert.Equal(t, "⏳ Your mill is cooling down. Next batch in 22h 30m.", run(t, d, "7", "makefeed"))

	assert.Equal(t, "🐷 You don't have a pig! Use /buy to start.", run(t, d, "7", "milltofarm", "4"))
	run(t, d, "7", "buy")
	assert.Equal(t, "📦 Your mill doesn't have that much feed.", run(t, d, "7", "milltofarm", "11"))
	assert.Contains(t, run(t, d, "7", "milltofarm", "4"), "🌾 Farm feed: 4")
}

func TestDispatch_AdminCommands(t *testing.T) {
	d, _ := newDispatcher(t)
	run(t, d, "42", "start")

	assert.Equal(t, "⛔ Admins only.", run(t, d, "42", "payuser", "42", "1"))
	assert.Equal(t, fmt.Sprintf(MsgUsage, UsagePayUser), run(t, d, admin, "payuser", "42", "lots"))
	assert.Equal(t, MsgTonLogEmpty, run(t, d, admin, "tonlog"))
}

func TestDispatch_UnknownCommand(t *testing.T) {
	d, _ := newDispatcher(t)
	assert.Equal(t, fmt.Sprintf(MsgUnknownCommand, "dance"), run(t, d, "42", "dance"))
}

type brokenFarm struct {
	farm.Service
}

func (brokenFarm) FeedPig(context.Context, string) (*domain.FeedResult, error) {
	return nil, errors.New("disk full")
}

func TestDispatch_InfrastructureErrorIsReturned(t *testing.T) {
	d := NewDispatcher(Services{Farm: brokenFarm{}}, catalog.Default(), Options{})

	reply, err := d.Dispatch(context.Background(), "42", "piggy", "feed", nil)
	require.Error(t, err)
	assert.Empty(t, reply)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCommands_CoverSurface(t *testing.T) {
	d, _ := newDispatcher(t)

	var names []string
	admins := 0
	for _, c := range d.Commands() {
		names = append(names, c.Name)
		if c.Admin {
			admins++
		}
	}
	assert.IsIncreasing(t, names)
	assert.Len(t, names, 35)
	assert.Equal(t, 3, admins)
	for _, n := range []string{"start", "checkbreed", "buyfeed", "processpig", "claimton", "cashout"} {
		assert.Contains(t, names, n)
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "now", formatRemaining(0))
	assert.Equal(t, "less than a minute", formatRemaining(20*time.Second))
	assert.Equal(t, "45m", formatRemaining(45*time.Minute))
	assert.Equal(t, "6h", formatRemaining(6*time.Hour))
	assert.Equal(t, "1h 1m", formatRemaining(61*time.Minute))
}

func TestTitleAndTon(t *testing.T) {
	assert.Equal(t, "Golden", title("golden"))
	assert.Equal(t, "0.33", ton(decimalOf("0.3333333")))
}

func decimalOf(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
