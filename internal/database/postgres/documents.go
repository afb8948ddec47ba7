// Package postgres stores the record families as JSONB rows, one row per
// family, so a whole-document read-modify-write cycle maps onto a single
// SQL transaction holding row locks.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PigFarmBot_Go/internal/database/docstore"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// Backend is the PostgreSQL document backend.
type Backend struct {
	pool        *pgxpool.Pool
	historyKeep int
}

// New returns a backend over pool. The schema must already be migrated.
func New(pool *pgxpool.Pool) *Backend {
	return &Backend{pool: pool, historyKeep: DefaultHistoryKeep}
}

// NewStore returns a store over pool.
func NewStore(pool *pgxpool.Pool) *docstore.Store {
	return docstore.New(New(pool))
}

// Begin opens a transaction and locks the family rows until Save or Abort.
func (b *Backend) Begin(ctx context.Context, families []repository.Family) (docstore.Session, error) {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	names := make([]string, len(families))
	for i, f := range families {
		names[i] = string(f)
	}

	rows, err := tx.Query(ctx, queryLockDocuments, names)
	if err != nil {
		SafeRollback(ctx, tx)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockDocuments, err)
	}
	docs := make(map[repository.Family][]byte, len(families))
	for rows.Next() {
		var (
			family string
			body   []byte
		)
		if err := rows.Scan(&family, &body); err != nil {
			rows.Close()
			SafeRollback(ctx, tx)
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockDocuments, err)
		}
		docs[repository.Family(family)] = body
	}
	if err := rows.Err(); err != nil {
		SafeRollback(ctx, tx)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLockDocuments, err)
	}

	return &session{tx: tx, docs: docs, historyKeep: b.historyKeep}, nil
}

// Close closes the pool.
func (b *Backend) Close(context.Context) error {
	b.pool.Close()
	return nil
}

type session struct {
	tx          pgx.Tx
	docs        map[repository.Family][]byte
	historyKeep int
}

func (s *session) Load(_ context.Context, family repository.Family) ([]byte, error) {
	return s.docs[family], nil
}

func (s *session) Save(ctx context.Context, docs map[repository.Family][]byte) error {
	defer SafeRollback(ctx, s.tx)

	for _, f := range repository.Families {
		body, ok := docs[f]
		if !ok {
			continue
		}
		if _, err := s.tx.Exec(ctx, queryArchiveDocument, string(f)); err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToSaveDocument, f, err)
		}
		if _, err := s.tx.Exec(ctx, queryUpsertDocument, string(f), body); err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToSaveDocument, f, err)
		}
		if _, err := s.tx.Exec(ctx, queryPruneHistory, string(f), s.historyKeep); err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgFailedToSaveDocument, f, err)
		}
	}

	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

func (s *session) Abort(ctx context.Context) error {
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
