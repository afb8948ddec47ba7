// Package docstore implements repository.Store over any backend able to load
// and save whole family documents. It owns the locking and the codec; the
// backend only moves bytes.
package docstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/PigFarmBot_Go/internal/concurrency"
	"github.com/osse101/PigFarmBot_Go/internal/domain"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// Backend opens sessions against the physical storage.
type Backend interface {
	Begin(ctx context.Context, families []repository.Family) (Session, error)
	Close(ctx context.Context) error
}

// Session is one backend read-modify-write cycle.
type Session interface {
	// Load returns the stored document, or nil when the family has never been saved.
	Load(ctx context.Context, family repository.Family) ([]byte, error)
	// Save persists every document all-or-nothing and ends the session.
	Save(ctx context.Context, docs map[repository.Family][]byte) error
	// Abort ends the session without writing.
	Abort(ctx context.Context) error
}

// Store serialises access to the families with in-process locks taken in
// canonical order, then delegates persistence to the backend.
type Store struct {
	backend Backend
	locks   *concurrency.LockManager
}

// New wraps a backend.
func New(backend Backend) *Store {
	return &Store{backend: backend, locks: concurrency.NewLockManager()}
}

// BeginTx locks and loads the requested families. No families means all of them.
func (s *Store) BeginTx(ctx context.Context, families ...repository.Family) (repository.Tx, error) {
	fams := canonical(families)
	keys := make([]string, len(fams))
	for i, f := range fams {
		keys[i] = string(f)
	}
	release := s.locks.Acquire(keys...)

	session, err := s.backend.Begin(ctx, fams)
	if err != nil {
		release()
		return nil, fmt.Errorf("failed to open store session: %w", err)
	}

	t := &tx{session: session, families: fams, release: release}
	if err := t.load(ctx); err != nil {
		_ = session.Abort(ctx)
		release()
		return nil, err
	}
	return t, nil
}

// Close closes the backend.
func (s *Store) Close(ctx context.Context) error {
	return s.backend.Close(ctx)
}

func canonical(families []repository.Family) []repository.Family {
	if len(families) == 0 {
		return slices.Clone(repository.Families)
	}
	out := make([]repository.Family, 0, len(families))
	for _, f := range repository.Families {
		if slices.Contains(families, f) {
			out = append(out, f)
		}
	}
	return out
}

type tx struct {
	session  Session
	families []repository.Family
	release  func()
	closed   bool

	players domain.Players
	mills   *domain.MillDocument
}

func (t *tx) load(ctx context.Context) error {
	for _, f := range t.families {
		data, err := t.session.Load(ctx, f)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
		switch f {
		case repository.FamilyPlayers:
			if t.players, err = domain.DecodePlayers(data); err != nil {
				return err
			}
		case repository.FamilyMills:
			if t.mills, err = domain.DecodeMills(data); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *tx) Players() domain.Players      { return t.players }
func (t *tx) Mills() *domain.MillDocument { return t.mills }

func (t *tx) Commit(ctx context.Context) error {
	if t.closed {
		return domain.ErrTxClosed
	}
	t.closed = true
	defer t.release()

	docs := make(map[repository.Family][]byte, len(t.families))
	for _, f := range t.families {
		var (
			data []byte
			err  error
		)
		switch f {
		case repository.FamilyPlayers:
			data, err = t.players.Encode()
		case repository.FamilyMills:
			data, err = t.mills.Encode()
		}
		if err != nil {
			_ = t.session.Abort(ctx)
			return err
		}
		docs[f] = data
	}

	if err := t.session.Save(ctx, docs); err != nil {
		logger.FromContext(ctx).Error("Store commit failed", "families", t.families, "error", err)
		return fmt.Errorf("failed to save documents: %w", err)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.closed {
		return domain.ErrTxClosed
	}
	t.closed = true
	defer t.release()
	return t.session.Abort(ctx)
}
