// Package jsonfile stores each record family as one JSON file in a data
// directory: players.json and mills.json.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/PigFarmBot_Go/internal/database/docstore"
	"github.com/osse101/PigFarmBot_Go/internal/logger"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
	"github.com/osse101/PigFarmBot_Go/internal/utils"
)

const filePerm = 0o644

// Backend reads and writes the family files under Dir.
type Backend struct {
	Dir string
}

// New creates the data directory if needed.
func New(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &Backend{Dir: dir}, nil
}

// NewStore returns a store over the files in dir.
func NewStore(dir string) (*docstore.Store, error) {
	b, err := New(dir)
	if err != nil {
		return nil, err
	}
	return docstore.New(b), nil
}

// Path is the file holding family.
func (b *Backend) Path(family repository.Family) string {
	return filepath.Join(b.Dir, string(family)+".json")
}

func (b *Backend) Begin(context.Context, []repository.Family) (docstore.Session, error) {
	return &session{b: b}, nil
}

func (b *Backend) Close(context.Context) error { return nil }

type session struct {
	b *Backend
}

func (s *session) Load(_ context.Context, family repository.Family) ([]byte, error) {
	return utils.ReadFileIfExists(s.b.Path(family))
}

// Save replaces the files one by one. If a later file fails, the files
// already replaced are restored to their previous contents.
func (s *session) Save(ctx context.Context, docs map[repository.Family][]byte) error {
	type written struct {
		path     string
		previous []byte
	}
	var done []written

	for _, f := range repository.Families {
		data, ok := docs[f]
		if !ok {
			continue
		}
		path := s.b.Path(f)
		previous, err := utils.ReadFileIfExists(path)
		if err != nil {
			return err
		}
		if err := utils.WriteFileAtomic(path, data, filePerm); err != nil {
			for i := len(done) - 1; i >= 0; i-- {
				s.restore(ctx, done[i].path, done[i].previous)
			}
			return err
		}
		done = append(done, written{path: path, previous: previous})
	}
	return nil
}

func (s *session) restore(ctx context.Context, path string, previous []byte) {
	var err error
	if previous == nil {
		err = os.Remove(path)
	} else {
		err = utils.WriteFileAtomic(path, previous, filePerm)
	}
	if err != nil {
		logger.FromContext(ctx).Error("Failed to restore document after partial save", "path", path, "error", err)
	}
}

func (s *session) Abort(context.Context) error { return nil }
