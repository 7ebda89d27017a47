package usecase

import (
	"context"

	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/domain"
	"github.com/traveller-backend/internal/domain/repository"
	"github.com/traveller-backend/internal/pkg/throttle"
	"go.uber.org/zap"
)

// ThrottledDistanceMatrix makes every distance call of the process go through
// one shared throttler: at most MaxConcurrent in flight, starts spaced by
// MinInterval.
type ThrottledDistanceMatrix struct {
	repo      repository.DistanceMatrixRepository
	throttler *throttle.Throttler[domain.DistanceMatrixRequest, *domain.DistanceMatrix]
}

var _ repository.DistanceMatrixRepository = (*ThrottledDistanceMatrix)(nil)

func NewThrottledDistanceMatrix(
	repo repository.DistanceMatrixRepository,
	cfg config.ThrottleConfig,
	logger *zap.Logger,
	extra ...throttle.Option,
) *ThrottledDistanceMatrix {
	opts := []throttle.Option{
		throttle.WithName("distance_matrix"),
		throttle.WithMinInterval(cfg.MinInterval),
		throttle.WithMaxConcurrent(cfg.MaxConcurrent),
		throttle.WithQueueSize(cfg.QueueSize),
		throttle.WithLogger(logger),
	}
	opts = append(opts, extra...)

	return &ThrottledDistanceMatrix{
		repo:      repo,
		throttler: throttle.New(repo.GetDistanceMatrix, opts...),
	}
}

func (t *ThrottledDistanceMatrix) GetDistanceMatrix(ctx context.Context, req domain.DistanceMatrixRequest) (*domain.DistanceMatrix, error) {
	return t.throttler.Do(ctx, req)
}

func (t *ThrottledDistanceMatrix) MaxDestinations() int {
	return t.repo.MaxDestinations()
}

// InFlight returns the number of distance calls currently running.
func (t *ThrottledDistanceMatrix) InFlight() int {
	return t.throttler.InFlight()
}

// Waiting returns the number of queued distance calls.
func (t *ThrottledDistanceMatrix) Waiting() int {
	return t.throttler.Waiting()
}

// Stop rejects queued calls and waits for running ones.
func (t *ThrottledDistanceMatrix) Stop() {
	t.throttler.Stop()
}
