package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/traveller-backend/internal/domain"
)

// MockPlacesRepository is a mock of PlacesRepository
type MockPlacesRepository struct {
	mock.Mock
}

func (m *MockPlacesRepository) NearbySearch(ctx context.Context, query domain.NearbyQuery) ([]domain.PlaceCandidate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlaceCandidate), args.Error(1)
}

func (m *MockPlacesRepository) PlaceDetails(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceDetails), args.Error(1)
}

// MockDistanceRepository is a mock of DistanceMatrixRepository.
// Return values may be functions of the request.
type MockDistanceRepository struct {
	mock.Mock
	Max int
}

func (m *MockDistanceRepository) GetDistanceMatrix(ctx context.Context, req domain.DistanceMatrixRequest) (*domain.DistanceMatrix, error) {
	args := m.Called(ctx, req)

	var matrix *domain.DistanceMatrix
	switch v := args.Get(0).(type) {
	case func(domain.DistanceMatrixRequest) *domain.DistanceMatrix:
		matrix = v(req)
	case *domain.DistanceMatrix:
		matrix = v
	}

	var err error
	switch v := args.Get(1).(type) {
	case func(domain.DistanceMatrixRequest) error:
		err = v(req)
	case error:
		err = v
	}

	return matrix, err
}

func (m *MockDistanceRepository) MaxDestinations() int {
	if m.Max == 0 {
		return 25
	}
	return m.Max
}

// MockQuotaRepository is a mock of QuotaRepository
type MockQuotaRepository struct {
	mock.Mock
}

func (m *MockQuotaRepository) Acquire(ctx context.Context, name string, limit int, window time.Duration) (bool, time.Duration, error) {
	args := m.Called(ctx, name, limit, window)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}
