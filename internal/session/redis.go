package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streamatlas/stream-atlas/internal/model"
)

// Redis is the Store backing for multi-process deployments. Snapshots are
// stored as JSON under prefix:token and expiry rides on the Redis TTL.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Store = (*Redis)(nil)

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(token string) string {
	if r.prefix == "" {
		return token
	}
	return r.prefix + ":" + token
}

func (r *Redis) Put(ctx context.Context, token string, u model.User, ttl time.Duration) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := r.client.Set(ctx, r.key(token), b, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, token string) (model.User, bool, error) {
	b, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("load session: %w", err)
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil {
		return model.User{}, false, fmt.Errorf("decode session user: %w", err)
	}
	return u, true, nil
}

func (r *Redis) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
