// Package bootstrap собирает провайдеры, throttler и use case из конфигурации.
// Используется и HTTP сервером, и CLI.
package bootstrap

import (
	"fmt"

	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/domain/repository"
	"github.com/traveller-backend/internal/infrastructure/google"
	"github.com/traveller-backend/internal/infrastructure/httpclient"
	"github.com/traveller-backend/internal/infrastructure/mapbox"
	"github.com/traveller-backend/internal/pkg/throttle"
	redisrepo "github.com/traveller-backend/internal/repository/redis"
	"github.com/traveller-backend/internal/usecase"
	"go.uber.org/zap"
)

// Services - собранные зависимости процесса
type Services struct {
	Places   *usecase.PlacesUseCase
	Distance *usecase.ThrottledDistanceMatrix
	Provider string

	redis  *redisrepo.Redis
	logger *zap.Logger
}

// New wires the provider adapters behind the process-wide throttler.
// Call Close when done.
func New(cfg *config.Config, log *zap.Logger) (*Services, error) {
	googleClient, err := google.NewGoogleClient(
		&cfg.Google,
		httpclient.New(cfg.HTTP.MaxRetries, cfg.Google.RequestTimeout, log),
		log,
	)
	if err != nil {
		return nil, err
	}

	var distanceRepo repository.DistanceMatrixRepository = googleClient
	if cfg.Distance.Provider == config.ProviderMapbox {
		distanceRepo = mapbox.NewMapboxClient(
			&cfg.Mapbox,
			httpclient.New(cfg.HTTP.MaxRetries, cfg.Mapbox.RequestTimeout, log),
			log,
		)
	}

	s := &Services{
		Provider: cfg.Distance.Provider,
		logger:   log,
	}

	var opts []throttle.Option
	if cfg.Quota.Enabled {
		r, err := redisrepo.NewRedis(&cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("quota backend: %w", err)
		}
		s.redis = r

		quotaRepo := redisrepo.NewQuotaRepository(r.Client(), log)
		opts = append(opts, throttle.WithGate(usecase.NewQuotaGate(quotaRepo, cfg.Quota, log)))
		log.Info("Shared distance quota enabled",
			zap.String("quota", cfg.Quota.Name),
			zap.Int("requests", cfg.Quota.Requests),
			zap.Duration("window", cfg.Quota.Window))
	}

	s.Distance = usecase.NewThrottledDistanceMatrix(distanceRepo, cfg.Throttle, log, opts...)
	s.Places = usecase.NewPlacesUseCase(googleClient, s.Distance, log, cfg.Search.BatchSize)

	log.Info("Services initialized",
		zap.String("distance_provider", s.Provider),
		zap.Int("batch_size", s.Places.BatchSize()),
		zap.Duration("min_interval", cfg.Throttle.MinInterval),
		zap.Int("max_concurrent", cfg.Throttle.MaxConcurrent))

	return s, nil
}

// Close останавливает throttler и закрывает соединение с Redis
func (s *Services) Close() {
	s.Distance.Stop()
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}
}
