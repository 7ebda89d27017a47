package google

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/domain"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// MaxDestinations - лимит Distance Matrix API на число destinations в запросе
const MaxDestinations = 25

// Client реализует repository.PlacesRepository и repository.DistanceMatrixRepository
// поверх Google Maps Web Services
type Client struct {
	maps           *maps.Client
	maxPages       int
	pageTokenDelay time.Duration
	logger         *zap.Logger
}

// NewGoogleClient создает клиент Google Maps. Ключ передаётся один раз при старте.
func NewGoogleClient(cfg *config.GoogleConfig, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}

	mc, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}

	maxPages := cfg.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}

	return &Client{
		maps:           mc,
		maxPages:       maxPages,
		pageTokenDelay: cfg.PageTokenDelay,
		logger:         logger,
	}, nil
}

// MaxDestinations implements repository.DistanceMatrixRepository.
func (c *Client) MaxDestinations() int {
	return MaxDestinations
}

// travelMode maps to Google's mode names; cycling is "bicycling" there.
func travelMode(m domain.TravelMode) maps.Mode {
	switch m {
	case domain.ModeDriving:
		return maps.TravelModeDriving
	case domain.ModeCycling:
		return maps.TravelModeBicycling
	case domain.ModeWalking:
		return maps.TravelModeWalking
	default:
		return maps.TravelModeTransit
	}
}

// classify turns a status error of the maps library ("maps: STATUS - message")
// into domain errors.
func classify(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "ZERO_RESULTS"):
		return fmt.Errorf("%w: %v", domain.ErrNoResults, err)
	case strings.Contains(msg, "OVER_QUERY_LIMIT"), strings.Contains(msg, "OVER_DAILY_LIMIT"):
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	case strings.Contains(msg, "NOT_FOUND"):
		return fmt.Errorf("%w: %v", domain.ErrPlaceNotFound, err)
	}
	return err
}

func isZeroResults(err error) bool {
	return errors.Is(err, domain.ErrNoResults)
}
