package google

import (
	"context"
	"fmt"

	"github.com/traveller-backend/internal/domain"
	"github.com/traveller-backend/internal/pkg/utils"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// GetDistanceMatrix возвращает время и расстояние от origin до каждого места батча.
// Элементы идут в порядке req.Destinations и несут своего кандидата.
func (c *Client) GetDistanceMatrix(ctx context.Context, req domain.DistanceMatrixRequest) (*domain.DistanceMatrix, error) {
	if len(req.Destinations) == 0 {
		return nil, fmt.Errorf("destinations cannot be empty")
	}
	if len(req.Destinations) > MaxDestinations {
		return nil, fmt.Errorf("%d destinations exceed Distance Matrix limit of %d", len(req.Destinations), MaxDestinations)
	}

	destinations := make([]string, len(req.Destinations))
	for i, d := range req.Destinations {
		destinations[i] = "place_id:" + d.PlaceID
	}

	departure := req.DepartureTime
	if departure == "" {
		departure = "now"
	}

	c.logger.Debug("Calling Google Distance Matrix",
		zap.String("mode", string(req.Mode)),
		zap.Int("destinations_count", len(destinations)))

	resp, err := c.maps.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:       []string{req.Origin.String()},
		Destinations:  destinations,
		Mode:          travelMode(req.Mode),
		Units:         maps.UnitsImperial,
		DepartureTime: departure,
	})
	if err != nil {
		err = classify(err)
		c.logger.Error("Google Distance Matrix failed", zap.Error(err))
		return nil, fmt.Errorf("distance matrix: %w", err)
	}

	if len(resp.Rows) != 1 {
		return nil, fmt.Errorf("%w: expected 1 row, got %d", domain.ErrMalformedResponse, len(resp.Rows))
	}
	elements := resp.Rows[0].Elements
	if len(elements) != len(req.Destinations) || len(resp.DestinationAddresses) != len(req.Destinations) {
		return nil, fmt.Errorf("%w: %d destinations, %d elements, %d addresses",
			domain.ErrMalformedResponse, len(req.Destinations), len(elements), len(resp.DestinationAddresses))
	}

	matrix := &domain.DistanceMatrix{Elements: make([]domain.DistanceElement, 0, len(elements))}
	for i, el := range elements {
		if el == nil {
			return nil, fmt.Errorf("%w: element %d is null", domain.ErrMalformedResponse, i)
		}

		e := domain.DistanceElement{
			Candidate: req.Destinations[i],
			Address:   resp.DestinationAddresses[i],
			Status:    domain.ElementStatus(el.Status),
		}
		if e.Reachable() {
			e.Duration = el.Duration
			e.DurationText = utils.FormatDuration(el.Duration)
			e.DistanceText = el.Distance.HumanReadable
			e.DistanceMeters = el.Distance.Meters
		}
		matrix.Elements = append(matrix.Elements, e)
	}

	return matrix, nil
}
