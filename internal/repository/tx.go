package repository

import (
	"context"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

// Family names one of the two independently stored record families.
type Family string

const (
	FamilyPlayers Family = "players"
	FamilyMills   Family = "mills"
)

// Families lists every family in canonical lock order.
var Families = []Family{FamilyPlayers, FamilyMills}

// Store loads and saves whole record families. A transaction holds the
// families it was opened with exclusively until Commit or Rollback, so every
// operation is one atomic read-modify-write cycle.
type Store interface {
	BeginTx(ctx context.Context, families ...Family) (Tx, error)
	Close(ctx context.Context) error
}

// Tx is an open read-modify-write cycle over one or both families.
// Mutations made through the returned documents are persisted by Commit
// all-or-nothing; Rollback discards them.
type Tx interface {
	// Players returns the player family, or nil if it was not requested.
	Players() domain.Players
	// Mills returns the mill family, or nil if it was not requested.
	Mills() *domain.MillDocument
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
