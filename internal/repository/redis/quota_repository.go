package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/traveller-backend/internal/domain/repository"
	"go.uber.org/zap"
)

type quotaRepository struct {
	client *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewQuotaRepository создает счётчик квоты с фиксированным окном.
// Ключ quota:<name>:<номер окна> живёт два окна.
func NewQuotaRepository(client *redis.Client, logger *zap.Logger) repository.QuotaRepository {
	return &quotaRepository{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (r *quotaRepository) Acquire(ctx context.Context, name string, limit int, window time.Duration) (bool, time.Duration, error) {
	windowMS := window.Milliseconds()
	if windowMS < 1 {
		return false, 0, fmt.Errorf("quota window must be at least 1ms, got %s", window)
	}

	now := r.now()
	idx := now.UnixMilli() / windowMS
	key := fmt.Sprintf("quota:%s:%d", name, idx)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.PExpire(ctx, key, 2*window)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to acquire quota", zap.String("key", key), zap.Error(err))
		return false, 0, fmt.Errorf("quota acquire error: %w", err)
	}

	if incr.Val() <= int64(limit) {
		return true, 0, nil
	}

	next := time.UnixMilli((idx + 1) * windowMS)
	r.logger.Debug("Quota exhausted",
		zap.String("key", key),
		zap.Int64("count", incr.Val()),
		zap.Duration("retry_in", next.Sub(now)))

	return false, next.Sub(now), nil
}
