package repository

import (
	"context"

	"github.com/traveller-backend/internal/domain"
)

// DistanceMatrixRepository определяет методы для работы с distance matrix API
type DistanceMatrixRepository interface {
	// GetDistanceMatrix возвращает по одному элементу на каждый destination,
	// в том же порядке, с привязанным кандидатом
	GetDistanceMatrix(ctx context.Context, req domain.DistanceMatrixRequest) (*domain.DistanceMatrix, error)

	// MaxDestinations - лимит провайдера на число destinations в одном запросе
	MaxDestinations() int
}
