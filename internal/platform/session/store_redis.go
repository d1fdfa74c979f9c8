// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkstone/internal/platform/apperr"
	"github.com/taibuivan/inkstone/internal/platform/constants"
	"github.com/taibuivan/inkstone/internal/platform/sec"
)

// RedisStore implements [Store] using Redis with native TTL expiry.
type RedisStore struct {
	client *redis.Client
	secret string
}

// NewRedisStore creates a Redis-backed session store.
// The secret keys the HMAC under which tokens are stored.
func NewRedisStore(client *redis.Client, secret string) *RedisStore {
	return &RedisStore{client: client, secret: secret}
}

/*
Load retrieves and decodes the session bag for a client token.

Description: Returns apperr.NotFound when the token is unknown or its TTL
has lapsed, so callers can fall back to a fresh anonymous session.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - map[string]string: Decoded bag
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisStore) Load(context context.Context, token string) (map[string]string, error) {
	raw, err := store.client.Get(context, store.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_load_failed: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return values, nil
}

/*
Save encodes and persists the session bag, resetting its TTL.

Parameters:
  - context: context.Context
  - token: string
  - values: map[string]string
  - ttl: time.Duration

Returns:
  - error: Encoding or persistence failures
*/
func (store *RedisStore) Save(context context.Context, token string, values map[string]string, ttl time.Duration) error {
	encoded, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := store.client.Set(context, store.key(token), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

/*
Delete removes the session bag for a client token.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Delete(context context.Context, token string) error {
	if err := store.client.Del(context, store.key(token)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

// key derives the storage key from a client token.
// Raw tokens never reach Redis; only their keyed digest does.
func (store *RedisStore) key(token string) string {
	return constants.RedisPrefixSession + sec.HashToken(store.secret, token)
}
