// Package store persists bandit state and run summaries beyond a single
// process: a file or Redis backend for bandit state, and an optional
// Postgres index for querying run history.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lokahilabs/rlvr-gym/internal/bandit"
)

// BanditStore loads and saves one language's bandit state under a key
// (conventionally the language code).
type BanditStore interface {
	Load(ctx context.Context, key string) (*bandit.Bandit, error)
	Save(ctx context.Context, key string, b *bandit.Bandit) error
}

// FileBanditStore persists each language's bandit state as its own JSON
// file under dir, named "<key>_state.json". This is the default store: no
// external service required.
type FileBanditStore struct {
	dir string
}

// NewFileBanditStore returns a FileBanditStore rooted at dir, creating dir
// if it does not already exist.
func NewFileBanditStore(dir string) (*FileBanditStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create bandit state dir: %w", err)
	}
	return &FileBanditStore{dir: dir}, nil
}

func (s *FileBanditStore) path(key string) string {
	return filepath.Join(s.dir, key+"_state.json")
}

// Load reads the bandit state for key. A missing file is not an error — the
// caller is expected to fall back to a freshly constructed bandit.
func (s *FileBanditStore) Load(_ context.Context, key string) (*bandit.Bandit, error) {
	b, err := bandit.LoadState(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// Save writes b's state for key, overwriting any prior state.
func (s *FileBanditStore) Save(_ context.Context, key string, b *bandit.Bandit) error {
	return b.SaveState(s.path(key))
}
