package cache

import (
	"fmt"

	"github.com/erp/storesetup/internal/domain/setup"
	"github.com/erp/storesetup/internal/infrastructure/config"
	"go.uber.org/zap"
)

// LockerFactory creates the setup run locker based on configuration
type LockerFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// LockerFactoryOption is a functional option for configuring the factory
type LockerFactoryOption func(*LockerFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) LockerFactoryOption {
	return func(f *LockerFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether a process-local lock may stand in for Redis.
// Default is true.
func WithInMemoryFallback(allow bool) LockerFactoryOption {
	return func(f *LockerFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewLockerFactory creates a new factory
func NewLockerFactory(cfg config.RedisConfig, opts ...LockerFactoryOption) *LockerFactory {
	f := &LockerFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateLocker returns a Redis locker when Redis is enabled and reachable,
// otherwise an in-memory locker if the fallback is allowed
func (f *LockerFactory) CreateLocker() (setup.Locker, error) {
	if !f.redisConfig.Enabled {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis is disabled and the in-memory setup lock is not allowed")
		}
		f.logger.Info("using in-memory setup lock")
		return NewInMemoryLocker(), nil
	}

	locker, err := NewRedisLocker(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis setup lock", zap.String("addr", f.redisConfig.Addr()))
		return locker, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for the setup lock but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory setup lock. "+
		"Concurrent upgrades from other hosts will not be serialised.",
		zap.Error(err),
	)
	return NewInMemoryLocker(), nil
}
