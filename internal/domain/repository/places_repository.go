package repository

import (
	"context"

	"github.com/traveller-backend/internal/domain"
)

// PlacesRepository определяет методы поиска мест у провайдера
type PlacesRepository interface {
	// NearbySearch возвращает до query.Limit кандидатов в порядке выдачи провайдера.
	// Пустой результат не является ошибкой.
	NearbySearch(ctx context.Context, query domain.NearbyQuery) ([]domain.PlaceCandidate, error)

	// PlaceDetails возвращает имя и ссылку на карточку места
	PlaceDetails(ctx context.Context, placeID string) (*domain.PlaceDetails, error)
}
