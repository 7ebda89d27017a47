package usecase

import (
	"context"
	"time"

	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/domain/repository"
	"go.uber.org/zap"
)

// QuotaGate holds distance calls until the shared quota has room.
// If the quota backend is unreachable the call is let through and only the
// local throttler applies.
type QuotaGate struct {
	repo   repository.QuotaRepository
	cfg    config.QuotaConfig
	logger *zap.Logger
}

func NewQuotaGate(repo repository.QuotaRepository, cfg config.QuotaConfig, logger *zap.Logger) *QuotaGate {
	return &QuotaGate{repo: repo, cfg: cfg, logger: logger}
}

func (g *QuotaGate) Wait(ctx context.Context) error {
	for {
		ok, retryIn, err := g.repo.Acquire(ctx, g.cfg.Name, g.cfg.Requests, g.cfg.Window)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			g.logger.Warn("Quota backend unavailable, falling back to local throttling",
				zap.String("quota", g.cfg.Name),
				zap.Error(err))
			return nil
		}
		if ok {
			return nil
		}

		if retryIn <= 0 {
			retryIn = time.Millisecond
		}
		timer := time.NewTimer(retryIn)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
