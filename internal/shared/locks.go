package shared

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GenerationLockKey builds the redis key guarding insight generation for a cafe.
func GenerationLockKey(cafeID fmt.Stringer) string {
	return fmt.Sprintf("insights:cafe:%s:lock", cafeID)
}

// Lock is a best-effort per-cafe mutual exclusion backed by redis SETNX.
// It prevents two concurrent generation runs from double-inserting; it is
// not a correctness guarantee across redis failover.
type Lock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLock constructs a Lock helper. A nil client disables locking.
func NewLock(client *redis.Client, ttl time.Duration) *Lock {
	return &Lock{client: client, ttl: ttl}
}

// Acquire takes the named lock, returning ErrLocked when already held.
func (l *Lock) Acquire(ctx context.Context, key string) error {
	if l == nil || l.client == nil {
		return nil
	}
	ok, err := l.client.SetNX(ctx, key, 1, l.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrLocked
	}
	return nil
}

// Release drops the named lock. Safe to call when the lock expired.
func (l *Lock) Release(ctx context.Context, key string) {
	if l == nil || l.client == nil {
		return
	}
	_ = l.client.Del(ctx, key).Err()
}
