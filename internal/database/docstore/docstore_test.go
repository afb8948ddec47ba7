package docstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

func TestBeginTx_DecodesDefaultsForAbsentFields(t *testing.T) {
	store, backend := memory.NewStore()
	backend.Seed(repository.FamilyPlayers, []byte(`{"42": {"username": "alice", "pig": {"birth_date": "2025-01-01"}}}`))

	tx, err := store.BeginTx(context.Background(), repository.FamilyPlayers)
	require.NoError(t, err)
	defer repository.SafeRollback(context.Background(), tx)

	p := tx.Players()["42"]
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Coins)
	assert.True(t, p.TonBalance.IsZero())
	assert.NotNil(t, p.Piglets)
	assert.NotNil(t, p.LastProcessed)
	assert.NotNil(t, p.Pig.FedDates)
	assert.Nil(t, p.Pig.PregnantDate)
	assert.Nil(t, tx.Mills(), "mill family was not requested")
}

func TestCommit_PersistsAndRollbackDiscards(t *testing.T) {
	ctx := context.Background()
	store, _ := memory.NewStore()

	err := repository.WithTx(ctx, store, repository.Both, func(tx repository.Tx) error {
		tx.Players()["1"] = domain.NewPlayerRecord("bob")
		tx.Mills().Mills["1"] = &domain.Mill{Brand: "Bob Feed"}
		return nil
	})
	require.NoError(t, err)

	failure := errors.New("boom")
	err = repository.WithTx(ctx, store, repository.Both, func(tx repository.Tx) error {
		tx.Players()["1"].Coins = 99
		delete(tx.Mills().Mills, "1")
		return failure
	})
	assert.ErrorIs(t, err, failure)

	require.NoError(t, repository.View(ctx, store, repository.Both, func(tx repository.Tx) error {
		assert.Equal(t, 0, tx.Players()["1"].Coins)
		assert.Equal(t, "Bob Feed", tx.Mills().Mills["1"].Brand)
		return nil
	}))
}

func TestCommit_FailureLeavesDocumentsUntouched(t *testing.T) {
	ctx := context.Background()
	store, backend := memory.NewStore()
	backend.Seed(repository.FamilyPlayers, []byte(`{"1": {"username": "a", "coins": 5}}`))
	backend.FailSaves(errors.New("disk full"))

	err := repository.WithTx(ctx, store, repository.Players, func(tx repository.Tx) error {
		tx.Players()["1"].Coins = 0
		return nil
	})
	assert.Error(t, err)

	backend.FailSaves(nil)
	require.NoError(t, repository.View(ctx, store, repository.Players, func(tx repository.Tx) error {
		assert.Equal(t, 5, tx.Players()["1"].Coins)
		return nil
	}))
}

func TestTx_ClosedAfterCommit(t *testing.T) {
	ctx := context.Background()
	store, _ := memory.NewStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	assert.ErrorIs(t, tx.Commit(ctx), domain.ErrTxClosed)
	assert.ErrorIs(t, tx.Rollback(ctx), domain.ErrTxClosed)
}

func TestWithTx_NoLostUpdates(t *testing.T) {
	ctx := context.Background()
	store, backend := memory.NewStore()
	backend.Seed(repository.FamilyPlayers, []byte(`{"1": {"username": "a"}}`))

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Alternate family order; locks are still taken canonically
			fams := []repository.Family{repository.FamilyMills, repository.FamilyPlayers}
			if i%2 == 0 {
				fams = repository.Both
			}
			assert.NoError(t, repository.WithTx(ctx, store, fams, func(tx repository.Tx) error {
				tx.Players()["1"].Coins++
				return nil
			}))
		}(i)
	}
	wg.Wait()

	require.NoError(t, repository.View(ctx, store, repository.Players, func(tx repository.Tx) error {
		assert.Equal(t, 40, tx.Players()["1"].Coins)
		return nil
	}))
}
