// Package memory is a process-local document backend for tests and local runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/osse101/PigFarmBot_Go/internal/database/docstore"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// Backend keeps one encoded document per family.
type Backend struct {
	mu       sync.Mutex
	docs     map[repository.Family][]byte
	saveErr  error
	saveHits int
}

// New returns an empty backend.
func New() *Backend {
	return &Backend{docs: map[repository.Family][]byte{}}
}

// NewStore returns a ready store over a fresh backend.
func NewStore() (*docstore.Store, *Backend) {
	b := New()
	return docstore.New(b), b
}

// Seed replaces a stored document.
func (b *Backend) Seed(family repository.Family, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[family] = slices.Clone(data)
}

// Document returns a copy of a stored document.
func (b *Backend) Document(family repository.Family) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.docs[family])
}

// FailSaves makes every following Save return err, until called with nil.
func (b *Backend) FailSaves(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveErr = err
}

// Saves counts successful saves.
func (b *Backend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saveHits
}

func (b *Backend) Begin(_ context.Context, _ []repository.Family) (docstore.Session, error) {
	return &session{b: b}, nil
}

func (b *Backend) Close(context.Context) error { return nil }

type session struct {
	b *Backend
}

func (s *session) Load(_ context.Context, family repository.Family) ([]byte, error) {
	return s.b.Document(family), nil
}

func (s *session) Save(_ context.Context, docs map[repository.Family][]byte) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if s.b.saveErr != nil {
		return s.b.saveErr
	}
	for f, data := range docs {
		s.b.docs[f] = slices.Clone(data)
	}
	s.b.saveHits++
	return nil
}

func (s *session) Abort(context.Context) error { return nil }
