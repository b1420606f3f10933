package repository_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shresthasriv/ecom-nexora/internal/config"
	repository "github.com/shresthasriv/ecom-nexora/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRateLimitRepo(t *testing.T, maxAttempts int64, window time.Duration) (repository.RateLimitRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return repository.NewRateLimitRepo(client, &config.RateConfig{MaxAttempts: maxAttempts, WindowSize: window}), mr
}

func TestCheckRateLimit(t *testing.T) {
	ctx := t.Context()

	t.Run("Allows up to the limit", func(t *testing.T) {
		// Arrange
		repo, _ := setupRateLimitRepo(t, 3, time.Minute)

		// Act & Assert
		for want := 2; want >= 0; want-- {
			allowed, remaining, retryAfter, err := repo.CheckRateLimit(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, want, remaining)
			assert.Zero(t, retryAfter)
		}
	})

	t.Run("Rejects once the limit is exceeded", func(t *testing.T) {
		// Arrange
		repo, _ := setupRateLimitRepo(t, 2, time.Minute)

		for range 2 {
			_, _, _, err := repo.CheckRateLimit(ctx, "10.0.0.2")
			require.NoError(t, err)
		}

		// Act
		allowed, remaining, retryAfter, err := repo.CheckRateLimit(ctx, "10.0.0.2")

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.Positive(t, retryAfter)
		assert.LessOrEqual(t, retryAfter, 60)
	})

	t.Run("Keys are counted independently", func(t *testing.T) {
		// Arrange
		repo, _ := setupRateLimitRepo(t, 1, time.Minute)

		// Act
		allowedA, _, _, errA := repo.CheckRateLimit(ctx, "a")
		allowedB, _, _, errB := repo.CheckRateLimit(ctx, "b")

		// Assert
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.True(t, allowedA)
		assert.True(t, allowedB)
	})

	t.Run("Redis unavailable", func(t *testing.T) {
		// Arrange
		repo, mr := setupRateLimitRepo(t, 5, time.Minute)
		mr.Close()

		// Act
		allowed, _, _, err := repo.CheckRateLimit(ctx, "10.0.0.3")

		// Assert
		require.Error(t, err)
		assert.False(t, allowed)
		assert.ErrorContains(t, err, "redis pipeline error")
	})
}
