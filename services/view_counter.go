package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const viewKeyPrefix = "blog:post:views:"

// ViewCounter keeps per-post read counts in Redis. A nil client disables it:
// increments are dropped and reads return zero.
type ViewCounter struct {
	rdb *redis.Client
}

func NewViewCounter(rdb *redis.Client) *ViewCounter {
	return &ViewCounter{rdb: rdb}
}

func viewKey(id uint) string {
	return fmt.Sprintf("%s%d", viewKeyPrefix, id)
}

// Incr records one read of the post and returns the new total.
func (v *ViewCounter) Incr(ctx context.Context, id uint) (int64, error) {
	if v == nil || v.rdb == nil {
		return 0, nil
	}
	return v.rdb.Incr(ctx, viewKey(id)).Result()
}

// Get returns the number of recorded reads of the post.
func (v *ViewCounter) Get(ctx context.Context, id uint) (int64, error) {
	if v == nil || v.rdb == nil {
		return 0, nil
	}
	n, err := v.rdb.Get(ctx, viewKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Forget drops the counter of a deleted post.
func (v *ViewCounter) Forget(ctx context.Context, id uint) error {
	if v == nil || v.rdb == nil {
		return nil
	}
	return v.rdb.Del(ctx, viewKey(id)).Err()
}
