package cache

import (
	"testing"

	"github.com/erp/storesetup/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// unreachableRedis points at a port nothing listens on
var unreachableRedis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

func TestLockerFactory_CreateLocker(t *testing.T) {
	t.Run("redis disabled uses in-memory lock", func(t *testing.T) {
		locker, err := NewLockerFactory(config.RedisConfig{}, WithLogger(zap.NewNop())).CreateLocker()
		require.NoError(t, err)
		defer locker.Close()
		assert.IsType(t, &InMemoryLocker{}, locker)
	})

	t.Run("redis disabled without fallback fails", func(t *testing.T) {
		_, err := NewLockerFactory(config.RedisConfig{}, WithInMemoryFallback(false)).CreateLocker()
		assert.Error(t, err)
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		locker, err := NewLockerFactory(unreachableRedis).CreateLocker()
		require.NoError(t, err)
		defer locker.Close()
		assert.IsType(t, &InMemoryLocker{}, locker)
	})

	t.Run("unreachable redis without fallback fails", func(t *testing.T) {
		_, err := NewLockerFactory(unreachableRedis, WithInMemoryFallback(false)).CreateLocker()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis required")
	})
}
