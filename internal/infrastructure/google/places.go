package google

import (
	"context"
	"fmt"
	"time"

	"github.com/traveller-backend/internal/domain"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// NearbySearch ищет места вокруг точки. Ключевое слово, совпадающее с типом
// места Google (restaurant, park, ...), уходит как type, иначе как keyword.
// Страницы next_page_token читаются, пока не набран лимит.
func (c *Client) NearbySearch(ctx context.Context, q domain.NearbyQuery) ([]domain.PlaceCandidate, error) {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: q.Location.Lat, Lng: q.Location.Lng},
		Radius:   q.RadiusM,
	}
	if placeType, err := maps.ParsePlaceType(q.Keyword); err == nil {
		req.Type = placeType
	} else {
		req.Keyword = q.Keyword
	}

	var candidates []domain.PlaceCandidate

	for page := 0; page < c.maxPages; page++ {
		c.logger.Debug("Calling Google Nearby Search",
			zap.String("keyword", q.Keyword),
			zap.Int("page", page),
			zap.Bool("page_token", req.PageToken != ""))

		resp, err := c.maps.NearbySearch(ctx, req)
		if err != nil {
			err = classify(err)
			if isZeroResults(err) {
				break
			}
			c.logger.Error("Google Nearby Search failed", zap.String("keyword", q.Keyword), zap.Error(err))
			return nil, fmt.Errorf("nearby search: %w", err)
		}

		for _, r := range resp.Results {
			candidates = append(candidates, domain.PlaceCandidate{
				PlaceID: r.PlaceID,
				Name:    r.Name,
				Location: domain.Coordinate{
					Lat: r.Geometry.Location.Lat,
					Lng: r.Geometry.Location.Lng,
				},
			})
			if q.Limit > 0 && len(candidates) >= q.Limit {
				return candidates, nil
			}
		}

		if resp.NextPageToken == "" {
			break
		}

		// a fresh page token is not valid right away
		if err := sleep(ctx, c.pageTokenDelay); err != nil {
			return nil, err
		}
		next := *req
		next.PageToken = resp.NextPageToken
		req = &next
	}

	return candidates, nil
}

// PlaceDetails возвращает имя и ссылку на карточку места в Google Maps
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*domain.PlaceDetails, error) {
	res, err := c.maps.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskURL,
		},
	})
	if err != nil {
		err = classify(err)
		c.logger.Error("Google Place Details failed", zap.String("place_id", placeID), zap.Error(err))
		return nil, fmt.Errorf("place details: %w", err)
	}

	return &domain.PlaceDetails{
		PlaceID: placeID,
		Name:    res.Name,
		URL:     res.URL,
	}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
