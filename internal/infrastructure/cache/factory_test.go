package cache

import (
	"context"
	"testing"
	"time"

	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// unreachableRedis points at a port nothing listens on
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestIdempotencyStoreFactory_CreateStore(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Backend: config.IdempotencyMemory}, unreachableRedis)

		store, err := f.CreateStore()
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("unreachable redis falls back with a warning", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := NewIdempotencyStoreFactory(
			config.IdempotencyConfig{Backend: config.IdempotencyRedis},
			unreachableRedis,
			WithLogger(zap.New(core)),
		)

		store, err := f.CreateStore()
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("unreachable redis without fallback fails", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(
			config.IdempotencyConfig{Backend: config.IdempotencyRedis},
			unreachableRedis,
			WithInMemoryFallback(false),
		)

		_, err := f.CreateStore()
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Backend: "etcd"}, unreachableRedis)

		_, err := f.CreateStore()
		assert.Error(t, err)
	})
}

func TestRedisIdempotencyStore_WrapsClientErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	store := NewRedisIdempotencyStoreWithClient(client, "")
	defer store.Close()
	ctx := context.Background()

	assert.Equal(t, DefaultKeyPrefix, store.keyPrefix)

	_, err := store.MarkProcessed(ctx, "k", time.Minute)
	assert.ErrorContains(t, err, "failed to mark merge key")

	_, err = store.IsProcessed(ctx, "k")
	assert.ErrorContains(t, err, "failed to check merge key")

	assert.ErrorContains(t, store.Release(ctx, "k"), "failed to release merge key")
}
