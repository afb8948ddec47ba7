package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rollback after Commit is the normal deferred path
		if !errors.Is(err, domain.ErrTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}

// WithTx executes operation within a transaction over the given families.
// It handles begin, commit, and rollback automatically; any error returned
// by operation leaves the stored documents untouched.
func WithTx(ctx context.Context, store Store, families []Family, operation func(tx Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := store.BeginTx(ctx, families...)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	if err := operation(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// View runs a read-only operation. Nothing is written back.
func View(ctx context.Context, store Store, families []Family, operation func(tx Tx) error) error {
	tx, err := store.BeginTx(ctx, families...)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	return operation(tx)
}

// Players opens only the player family.
var Players = []Family{FamilyPlayers}

// Mills opens only the mill family.
var Mills = []Family{FamilyMills}

// Both opens the two families as one critical section.
var Both = []Family{FamilyPlayers, FamilyMills}
