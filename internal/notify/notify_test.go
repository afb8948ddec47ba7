package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
)

type delivery struct {
	recipient string
	message   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []delivery
	err  error
}

func (r *recordingNotifier) Deliver(_ context.Context, recipient, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, delivery{recipient, message})
	return nil
}

func TestMultiNotifier(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{err: errors.New("offline")}
	multi := NewMultiNotifier(a, nil, b)
	require.Len(t, multi, 2)

	err := multi.Deliver(context.Background(), "1", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Equal(t, []delivery{{"1", "hi"}}, a.sent)

	assert.NoError(t, NewMultiNotifier(a, LogNotifier{}).Deliver(context.Background(), "2", "ok"))
}

func TestSubscriber_RoutesEvents(t *testing.T) {
	ctx := context.Background()
	rec := &recordingNotifier{}
	bus := event.NewMemoryBus()
	NewSubscriber(rec, []string{"admin1", "admin2"}).Subscribe(bus)

	require.NoError(t, bus.Publish(ctx, event.NewReferralRewardedEvent(ctx, "10", "11", "newbie", 5)))
	require.NoError(t, bus.Publish(ctx, event.NewLitterBornEvent(ctx, "10", []domain.PigletType{domain.PigletNormal, domain.PigletGolden})))
	require.NoError(t, bus.Publish(ctx, event.NewFeedBoughtEvent(ctx, domain.FeedBoughtPayload{
		BuyerID: "11", SellerID: "10", Amount: 4, Coins: 8, Brand: "Oinkers",
	})))
	require.NoError(t, bus.Publish(ctx, event.NewTokensEvent(ctx, domain.EventTypeClaimRequested, domain.TokensPayload{
		PlayerID: "10", Username: "farmer", Wallet: "EQabc", Amount: decimal.RequireFromString("2.5"), Source: "claim",
	})))
	require.NoError(t, bus.Publish(ctx, event.NewTokensEvent(ctx, domain.EventTypeTokensDebited, domain.TokensPayload{
		PlayerID: "10", Amount: decimal.RequireFromString("-1.5"), Source: "cashout",
	})))

	require.Len(t, rec.sent, 6)
	assert.Equal(t, "10", rec.sent[0].recipient)
	assert.Contains(t, rec.sent[0].message, "@newbie")
	assert.Contains(t, rec.sent[0].message, "5 coins")
	assert.Contains(t, rec.sent[1].message, "2 piglet(s)")
	assert.Contains(t, rec.sent[2].message, "Oinkers")
	assert.Equal(t, "admin1", rec.sent[3].recipient)
	assert.Equal(t, "admin2", rec.sent[4].recipient)
	assert.Contains(t, rec.sent[3].message, "2.50 TON to EQabc")
	assert.Contains(t, rec.sent[5].message, "1.50 TON")
}

func TestSubscriber_AdminChannel(t *testing.T) {
	ctx := context.Background()
	players := &recordingNotifier{}
	admins := &recordingNotifier{}
	bus := event.NewMemoryBus()
	NewSubscriber(players, nil).WithAdminChannel(admins).Subscribe(bus)

	require.NoError(t, bus.Publish(ctx, event.NewTokensEvent(ctx, domain.EventTypeClaimRequested, domain.TokensPayload{
		PlayerID: "10", Username: "farmer", Wallet: "EQabc", Amount: decimal.RequireFromString("3"),
	})))
	require.NoError(t, bus.Publish(ctx, event.NewLitterBornEvent(ctx, "10", nil)))

	require.Len(t, admins.sent, 1)
	assert.Equal(t, AdminChannelRecipient, admins.sent[0].recipient)
	assert.Contains(t, admins.sent[0].message, "3.00 TON to EQabc")
	require.Len(t, players.sent, 1, "only the litter message reaches players")
}

func TestSubscriber_DeliveryFailureDoesNotFailPublish(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	NewSubscriber(&recordingNotifier{err: errors.New("blocked")}, nil).Subscribe(bus)

	assert.NoError(t, bus.Publish(ctx, event.NewLitterBornEvent(ctx, "1", nil)))
	assert.NoError(t, bus.Publish(ctx, event.NewTokensEvent(ctx, domain.EventTypeClaimRequested, domain.TokensPayload{PlayerID: "1"})))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Someone", displayName(" "))
	assert.Equal(t, "@pig", displayName("pig"))
}
