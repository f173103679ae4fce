// Package idempotency records agent tool-call results so the LLM framework
// can retry a call (network hiccups, duplicated webhooks) without re-running
// its side effects.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "toolcall:"

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Get returns the recorded response for the key, or found=false.
func (s *Store) Get(ctx context.Context, key string) (response []byte, found bool, err error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Put records a response. First writer wins so two racing retries cannot
// overwrite each other's outcome.
func (s *Store) Put(ctx context.Context, key string, response []byte) error {
	return s.rdb.SetNX(ctx, keyPrefix+key, response, s.ttl).Err()
}
