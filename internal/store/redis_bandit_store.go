package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lokahilabs/rlvr-gym/internal/bandit"
)

// RedisBanditStore persists bandit state as a JSON blob under one key per
// language, for deployments that run multiple gym/server processes sharing
// state rather than each reading/writing its own local file.
type RedisBanditStore struct {
	client *redis.Client
	prefix string
}

// NewRedisBanditStore returns a RedisBanditStore using an existing client.
// Keys are namespaced under prefix (e.g. "rlvr:bandit:") to avoid colliding
// with other data sharing the same Redis instance.
func NewRedisBanditStore(client *redis.Client, prefix string) *RedisBanditStore {
	return &RedisBanditStore{client: client, prefix: prefix}
}

func (s *RedisBanditStore) key(langCode string) string {
	return s.prefix + langCode
}

// Load reads and unmarshals the bandit state stored under key. A missing
// key is not an error — the caller is expected to fall back to a freshly
// constructed bandit.
func (s *RedisBanditStore) Load(ctx context.Context, langCode string) (*bandit.Bandit, error) {
	raw, err := s.client.Get(ctx, s.key(langCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: redis get %s: %w", s.key(langCode), err)
	}

	var b bandit.Bandit
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("store: unmarshal bandit state for %s: %w", langCode, err)
	}
	if b.History == nil {
		b.History = []bandit.HistoryEntry{}
	}
	return &b, nil
}

// Save marshals b and writes it under key, with no expiration — bandit
// state is durable until explicitly replaced.
func (s *RedisBanditStore) Save(ctx context.Context, langCode string, b *bandit.Bandit) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("store: marshal bandit state for %s: %w", langCode, err)
	}
	if err := s.client.Set(ctx, s.key(langCode), raw, 0).Err(); err != nil {
		return fmt.Errorf("store: redis set %s: %w", s.key(langCode), err)
	}
	return nil
}
