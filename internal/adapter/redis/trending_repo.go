package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/immofind/ads-service/internal/config"
	"github.com/immofind/ads-service/internal/port/trending"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const trendingKey = "trending:ads"

type trendingRedisRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", zap.String("address", cfg.Address), zap.Error(err))
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}
	logger.Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return rdb, nil
}

// NewTrendingRedisRepository keeps per-ad view counters in a sorted set.
// The counter is analytics data, not a cache: ad documents themselves are
// always read fresh from the store.
func NewTrendingRedisRepository(client *redis.Client, logger *zap.Logger) trending.Recorder {
	return &trendingRedisRepository{
		client: client,
		logger: logger,
	}
}

func (r *trendingRedisRepository) RecordView(ctx context.Context, adID string) error {
	if err := r.client.ZIncrBy(ctx, trendingKey, 1, adID).Err(); err != nil {
		r.logger.Error("Redis ZIncrBy operation failed", zap.String("ad_id", adID), zap.Error(err))
		return fmt.Errorf("trendingRedisRepository.RecordView for ad '%s': %w", adID, err)
	}
	return nil
}

func (r *trendingRedisRepository) TopAds(ctx context.Context, limit int64) ([]trending.AdScore, error) {
	if limit <= 0 {
		return []trending.AdScore{}, nil
	}

	entries, err := r.client.ZRevRangeWithScores(ctx, trendingKey, 0, limit-1).Result()
	if err != nil {
		r.logger.Error("Redis ZRevRangeWithScores operation failed", zap.Error(err))
		return nil, fmt.Errorf("trendingRedisRepository.TopAds: %w", err)
	}

	scores := make([]trending.AdScore, 0, len(entries))
	for _, e := range entries {
		adID, ok := e.Member.(string)
		if !ok {
			continue
		}
		scores = append(scores, trending.AdScore{AdID: adID, Views: e.Score})
	}
	return scores, nil
}
