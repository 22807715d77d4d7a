// Package redis provides a redis-backed guest quota store. The counter
// is a plain key with a TTL equal to the quota window, so passive expiry
// is handled by redis itself and Increment rides on the atomicity of
// INCR.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

var _ model.GuestQuotaStore = (*QuotaRepository)(nil)

const quotaKeyPrefix = "guest_usage:"

type QuotaRepository struct {
	rdb *redis.Client
}

func NewQuotaRepository(rdb *redis.Client) *QuotaRepository {
	return &QuotaRepository{rdb: rdb}
}

func quotaKey(identifier string) string {
	return quotaKeyPrefix + identifier
}

// GetOrInit reads the counter, creating it with a fresh window when the
// key is absent. An absent key is exactly an elapsed window: redis has
// already expired it, which is the passive reset.
func (r *QuotaRepository) GetOrInit(ctx context.Context, identifier string, window time.Duration) (model.GuestQuota, error) {
	key := quotaKey(identifier)
	now := time.Now()

	created, err := r.rdb.SetNX(ctx, key, 0, window).Result()
	if err != nil {
		return model.GuestQuota{}, storeErr("setnx guest usage", err)
	}
	if created {
		return model.GuestQuota{
			Identifier: identifier,
			Count:      0,
			ResetAt:    now.Add(window),
			CreatedAt:  now,
		}, nil
	}

	pipe := r.rdb.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return model.GuestQuota{}, storeErr("read guest usage", err)
	}

	count, err := getCmd.Int()
	if errors.Is(err, redis.Nil) {
		// Expired between SetNX and Get; treat as a fresh window.
		return r.GetOrInit(ctx, identifier, window)
	}
	if err != nil {
		return model.GuestQuota{}, storeErr("parse guest usage", err)
	}

	ttl := ttlCmd.Val()
	if ttl < 0 {
		// Counter lost its TTL somehow; reinstate the window so the
		// key cannot meter forever.
		if err := r.rdb.Expire(ctx, key, window).Err(); err != nil {
			return model.GuestQuota{}, storeErr("expire guest usage", err)
		}
		ttl = window
	}

	return model.GuestQuota{
		Identifier: identifier,
		Count:      count,
		ResetAt:    now.Add(ttl),
	}, nil
}

// Increment bumps the counter atomically and returns the new value.
func (r *QuotaRepository) Increment(ctx context.Context, identifier string) (int, error) {
	count, err := r.rdb.Incr(ctx, quotaKey(identifier)).Result()
	if err != nil {
		return 0, storeErr("incr guest usage", err)
	}
	return int(count), nil
}

func (r *QuotaRepository) Reset(ctx context.Context, identifier string, resetAt time.Time) error {
	ttl := time.Until(resetAt)
	if ttl <= 0 {
		if err := r.rdb.Del(ctx, quotaKey(identifier)).Err(); err != nil {
			return storeErr("del guest usage", err)
		}
		return nil
	}
	if err := r.rdb.Set(ctx, quotaKey(identifier), 0, ttl).Err(); err != nil {
		return storeErr("reset guest usage", err)
	}
	return nil
}

// DeleteExpired is a no-op: redis evicts expired counters on its own.
func (r *QuotaRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, model.ErrStoreUnavailable, err)
}
