package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/traveller-backend/internal/domain"
	"github.com/traveller-backend/internal/domain/repository"
	"github.com/traveller-backend/internal/pkg/errors"
	"github.com/traveller-backend/internal/pkg/utils"
	"github.com/traveller-backend/internal/usecase/dto"
	"go.uber.org/zap"
)

// PlacesUseCase - поиск мест с временем и расстоянием в пути
type PlacesUseCase struct {
	placesRepo   repository.PlacesRepository
	distanceRepo repository.DistanceMatrixRepository
	logger       *zap.Logger
	batchSize    int
}

// NewPlacesUseCase. distanceRepo is expected to be the process-wide throttled
// provider; batchSize is capped by the provider's destination limit.
func NewPlacesUseCase(
	placesRepo repository.PlacesRepository,
	distanceRepo repository.DistanceMatrixRepository,
	logger *zap.Logger,
	batchSize int,
) *PlacesUseCase {
	if limit := distanceRepo.MaxDestinations(); batchSize <= 0 || batchSize > limit {
		batchSize = limit
	}

	return &PlacesUseCase{
		placesRepo:   placesRepo,
		distanceRepo: distanceRepo,
		logger:       logger,
		batchSize:    batchSize,
	}
}

// BatchSize returns the effective number of destinations per distance call.
func (uc *PlacesUseCase) BatchSize() int {
	return uc.batchSize
}

// Search runs discovery, clips the list to req.Size, then fans the candidates
// out to the distance provider in batches and merges the answers back in
// discovery order. Failed batches are reported in the result, not returned
// as an error, unless every batch failed.
func (uc *PlacesUseCase) Search(ctx context.Context, req dto.PlacesSearchRequest) (*domain.SearchResult, error) {
	origin := domain.Coordinate{Lat: req.Lat, Lng: req.Long}
	if !utils.ValidateCoordinates(origin.Lat, origin.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(req.Radius) {
		return nil, errors.ErrInvalidRadius
	}

	mode := domain.ParseTravelMode(req.Mode)
	log := uc.logger.With(
		zap.String("search_id", uuid.NewString()),
		zap.String("keyword", req.Keyword),
		zap.String("mode", string(mode)),
	)
	started := time.Now()

	candidates, err := uc.placesRepo.NearbySearch(ctx, domain.NearbyQuery{
		Keyword:  req.Keyword,
		Location: origin,
		RadiusM:  req.Radius,
		Limit:    req.Size,
	})
	if err != nil {
		log.Error("Place discovery failed", zap.Error(err))
		return nil, fmt.Errorf("discovery: %w", err)
	}

	if len(candidates) == 0 {
		log.Warn("No places found")
		return &domain.SearchResult{
			Records: []domain.TravelRecord{},
			Batches: []domain.BatchOutcome{},
		}, nil
	}

	candidates = truncateCandidates(candidates, req.Size)
	batches := chunkCandidates(candidates, uc.batchSize)

	log.Debug("Dispatching distance batches",
		zap.Int("candidates", len(candidates)),
		zap.Int("batches", len(batches)),
		zap.Int("batch_size", uc.batchSize))

	results := uc.dispatch(ctx, log, domain.DistanceMatrixRequest{
		Origin:        origin,
		Mode:          mode,
		DepartureTime: req.Date,
	}, batches, req.OnBatchDone)

	records, outcomes := mergeBatches(batches, results)
	result := &domain.SearchResult{
		Records:    records,
		Batches:    outcomes,
		Candidates: len(candidates),
	}

	failed := result.FailedBatches()
	log.Info("Places search finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("records", len(records)),
		zap.Int("failed_batches", failed),
		zap.Duration("took", time.Since(started)))

	if failed == len(outcomes) {
		return nil, fmt.Errorf("%w: %w", domain.ErrAllBatchesFailed, firstBatchError(results))
	}

	return result, nil
}

// dispatch issues one distance call per batch concurrently. Pacing and the
// concurrency cap belong to the throttled distance repository.
func (uc *PlacesUseCase) dispatch(
	ctx context.Context,
	log *zap.Logger,
	template domain.DistanceMatrixRequest,
	batches [][]domain.PlaceCandidate,
	onDone func(done, total int),
) []batchResult {
	results := make([]batchResult, len(batches))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)

	for i, batch := range batches {
		wg.Add(1)
		go func(i int, batch []domain.PlaceCandidate) {
			defer wg.Done()

			req := template
			req.Destinations = batch

			matrix, err := uc.distanceRepo.GetDistanceMatrix(ctx, req)
			if err != nil {
				log.Error("Distance batch failed",
					zap.Int("batch", i),
					zap.Int("size", len(batch)),
					zap.Error(err))
			}
			results[i] = batchResult{matrix: matrix, err: err}

			if onDone != nil {
				mu.Lock()
				done++
				onDone(done, len(batches))
				mu.Unlock()
			}
		}(i, batch)
	}

	wg.Wait()
	return results
}

func firstBatchError(results []batchResult) error {
	for _, r := range results {
		if r.err != nil {
			return r.err
		}
	}
	return domain.ErrMalformedResponse
}

// Details возвращает имя и ссылку на карточку места
func (uc *PlacesUseCase) Details(ctx context.Context, req dto.PlaceDetailsRequest) (*domain.PlaceDetails, error) {
	details, err := uc.placesRepo.PlaceDetails(ctx, req.PlaceID)
	if err != nil {
		if stderrors.Is(err, domain.ErrPlaceNotFound) {
			return nil, errors.ErrPlaceNotFound
		}
		uc.logger.Error("Failed to get place details", zap.String("place_id", req.PlaceID), zap.Error(err))
		return nil, fmt.Errorf("place details: %w", err)
	}

	return details, nil
}
