package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/domain/shared"
	"github.com/erp/storesetup/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockKeyPrefix = "lock:"

// releaseScript deletes the key only while it still holds the caller's token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements setup.Locker with SET NX PX on Redis.
// It is safe to share across processes and hosts.
type RedisLocker struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisLocker connects to Redis and creates a locker
func NewRedisLocker(cfg config.RedisConfig) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLocker{
		client:    client,
		keyPrefix: defaultLockKeyPrefix,
	}, nil
}

// NewRedisLockerWithClient creates a locker on an existing Redis client
func NewRedisLockerWithClient(client *redis.Client, keyPrefix string) *RedisLocker {
	if keyPrefix == "" {
		keyPrefix = defaultLockKeyPrefix
	}
	return &RedisLocker{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire sets the lock key to a fresh token unless it is already set
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (setup.Lock, error) {
	fullKey := l.keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, shared.NewDomainError(setup.ErrLockHeld.Code,
			fmt.Sprintf("Lock %s is held by another setup process", key))
	}

	return &redisLock{client: l.client, key: fullKey, token: token}, nil
}

// Close closes the Redis client
func (l *RedisLocker) Close() error {
	return l.client.Close()
}

type redisLock struct {
	client *redis.Client
	key    string
	token  string
}

// Release deletes the key if this lock still owns it
func (l *redisLock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Ensure RedisLocker implements Locker
var _ setup.Locker = (*RedisLocker)(nil)
