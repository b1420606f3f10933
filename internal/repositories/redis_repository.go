package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/config"
	"github.com/shresthasriv/ecom-nexora/internal/utils"
)

const rateLimitKeyPrefix = "rate_limit"

type RateLimitRepository interface {
	CheckRateLimit(ctx context.Context, key string) (bool, int, int, error)
}

type redisRepository struct {
	client *redis.Client
	cfg    *config.RateConfig
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := utils.WithTimeout(context.Background(), utils.DefaultPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")
	return client, nil

}

func NewRateLimitRepo(client *redis.Client, cfg *config.RateConfig) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg}
}

// CheckRateLimit records one hit for key in a sliding window and returns
// isAllowed, hits left, seconds to wait, error.
func (r *redisRepository) CheckRateLimit(ctx context.Context, key string) (bool, int, int, error) {

	logger := middleware.LoggerFromContext(ctx)

	redisKey := rateLimitKeyPrefix + ":" + key
	window := r.cfg.WindowSize

	now := time.Now()
	windowStart := now.Add(-window).UnixMilli()

	// score is the hit time in ms; member is unique per hit so that bursts
	// within one millisecond are all counted
	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: now.UnixNano()})
	count := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", redisKey), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	hits := count.Val()

	if hits > r.cfg.MaxAttempts {

		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: redisKey, Start: 0, Stop: 0}).Result()
		if err != nil {
			logger.Error("Failed to get oldest hit for rate limit", slog.String("key", redisKey), slog.Any("error", err))
			return false, 0, int(window.Seconds()), fmt.Errorf("failed to get oldest hit time: %w", err)
		}

		// the set expired between the pipeline and this read
		if len(scores) == 0 {
			return false, 0, int(window.Seconds()), nil
		}

		oldest := time.UnixMilli(int64(scores[0].Score))
		retryAfter := max(int(time.Until(oldest.Add(window)).Seconds()+0.999), 1)

		logger.Warn("Rate limit exceeded", slog.String("key", key), slog.Int64("hits", hits))
		return false, 0, retryAfter, nil
	}

	remaining := int(r.cfg.MaxAttempts - hits)

	logger.Debug("Rate limit check passed", slog.String("key", key), slog.Int64("hits", hits), slog.Int("remaining", remaining))
	return true, remaining, 0, nil
}
