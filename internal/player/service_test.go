package player

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/catalog"
	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/event"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
	"github.com/osse101/PigFarmBot_Go/internal/testing/testkit"
)

func newTestService(t *testing.T) (Service, repository.Store, *memory.Backend, *testkit.RecordingBus) {
	t.Helper()
	store, backend := memory.NewStore()
	bus := testkit.NewRecordingBus()
	return NewService(store, catalog.Default(), bus), store, backend, bus
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

func TestRegister_GrantsJoinBonusOnce(t *testing.T) {
	svc, store, _, bus := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, "1", "alice", "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Coins)
	assert.Empty(t, res.ReferrerID)

	_, err = svc.Register(ctx, "1", "alice", "")
	assert.ErrorIs(t, err, domain.ErrAlreadyOwned)

	assert.Equal(t, 2, loadPlayer(t, store, "1").Coins)
	assert.Equal(t, []string{domain.EventTypePlayerJoined}, bus.Types())
}

func TestRegister_CreditsReferrer(t *testing.T) {
	svc, store, _, bus := newTestService(t)
	ctx := context.Background()

	var notified domain.ReferralRewardedPayload
	bus.Subscribe(domain.EventTypeReferralRewarded, func(_ context.Context, e event.Event) error {
		p, err := event.DecodePayload[domain.ReferralRewardedPayload](e.Payload)
		notified = p
		return err
	})

	_, err := svc.Register(ctx, "1", "alice", "")
	require.NoError(t, err)

	res, err := svc.Register(ctx, "2", "bob", "1")
	require.NoError(t, err)
	assert.Equal(t, "1", res.ReferrerID)
	assert.Equal(t, 5, res.ReferralBonus)

	referrer := loadPlayer(t, store, "1")
	assert.Equal(t, 7, referrer.Coins)
	assert.Equal(t, 1, referrer.Referrals)
	assert.Equal(t, "1", loadPlayer(t, store, "2").ReferredBy)

	assert.Equal(t, "1", notified.ReferrerID)
	assert.Equal(t, "2", notified.NewPlayerID)
	assert.Equal(t, "bob", notified.Username)
}

func TestRegister_IgnoresInvalidReferrers(t *testing.T) {
	tests := []struct {
		name     string
		referrer string
	}{
		{"unknown referrer", "404"},
		{"self referral", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _, bus := newTestService(t)

			res, err := svc.Register(context.Background(), "1", "alice", tt.referrer)
			require.NoError(t, err)
			assert.Empty(t, res.ReferrerID)
			assert.Equal(t, 0, loadPlayer(t, store, "1").Referrals)
			_, sent := bus.Last(domain.EventTypeReferralRewarded)
			assert.False(t, sent)
		})
	}
}

func TestRegister_StoreFailureLeavesNoRecord(t *testing.T) {
	svc, store, backend, bus := newTestService(t)
	backend.FailSaves(errors.New("disk full"))

	_, err := svc.Register(context.Background(), "1", "alice", "")
	require.Error(t, err)
	assert.Nil(t, loadPlayer(t, store, "1"))
	assert.Empty(t, bus.Types())
}

func TestReferral(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Referral(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNoPlayer)

	_, err = svc.Register(ctx, "1", "alice", "")
	require.NoError(t, err)
	for _, id := range []string{"2", "3"} {
		_, err = svc.Register(ctx, id, "friend"+id, "1")
		require.NoError(t, err)
	}

	status, err := svc.Referral(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 2, status.Referrals)
	assert.Equal(t, 10, status.EarnedCoins)
	assert.Equal(t, 5, status.BonusPerReferral)
}

func TestTasks_MarksClaimed(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	tasks, err := svc.Tasks(ctx, "nobody")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.False(t, task.Claimed)
	}

	_, err = svc.Register(ctx, "1", "alice", "")
	require.NoError(t, err)
	_, err = svc.ClaimTask(ctx, "1", "view1")
	require.NoError(t, err)

	tasks, err = svc.Tasks(ctx, "1")
	require.NoError(t, err)
	for _, task := range tasks {
		assert.Equal(t, task.Code == "view1", task.Claimed, task.Code)
	}
}

func TestClaimTask(t *testing.T) {
	svc, store, _, bus := newTestService(t)
	ctx := context.Background()

	_, err := svc.ClaimTask(ctx, "1", "join1")
	assert.ErrorIs(t, err, domain.ErrNoPlayer)

	_, err = svc.Register(ctx, "1", "alice", "")
	require.NoError(t, err)

	_, err = svc.ClaimTask(ctx, "1", "nope")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	res, err := svc.ClaimTask(ctx, "1", "join1")
	require.NoError(t, err)
	assert.Equal(t, 5, res.Coins)

	res, err = svc.ClaimTask(ctx, "1", "share1")
	require.NoError(t, err)
	assert.Equal(t, 5, res.Feed)
	assert.Equal(t, 0, res.RewardCoins)

	_, err = svc.ClaimTask(ctx, "1", "join1")
	assert.ErrorIs(t, err, domain.ErrTaskAlreadyClaimed)

	p := loadPlayer(t, store, "1")
	assert.Equal(t, []string{"join1", "share1"}, p.ClaimedTasks)
	assert.Equal(t, 5, p.Coins)
	assert.Equal(t, 5, p.Feed)

	evt, ok := bus.Last(domain.EventTypeTaskClaimed)
	require.True(t, ok)
	payload, err := event.DecodePayload[domain.CoinsMovedPayload](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, "share1", payload.Item)
}
