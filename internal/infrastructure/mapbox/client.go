package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/domain"
	"github.com/traveller-backend/internal/pkg/utils"
	"go.uber.org/zap"
)

// maxCoordinates - лимит Mapbox Matrix API (origin + destinations)
const maxCoordinates = 25

var profiles = map[domain.TravelMode]string{
	domain.ModeDriving: "mapbox/driving",
	domain.ModeCycling: "mapbox/cycling",
	domain.ModeWalking: "mapbox/walking",
}

// Client реализует repository.DistanceMatrixRepository поверх Mapbox Matrix API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewMapboxClient создает новый клиент для Mapbox API
func NewMapboxClient(cfg *config.MapboxConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// MaxDestinations - один слот из 25 занимает origin
func (c *Client) MaxDestinations() int {
	return maxCoordinates - 1
}

// GetDistanceMatrix возвращает матрицу расстояний и времени от origin до мест батча
func (c *Client) GetDistanceMatrix(ctx context.Context, req domain.DistanceMatrixRequest) (*domain.DistanceMatrix, error) {
	if len(req.Destinations) == 0 {
		return nil, fmt.Errorf("destinations cannot be empty")
	}

	// Проверка лимита Mapbox (25 точек максимум)
	if len(req.Destinations)+1 > maxCoordinates {
		return nil, fmt.Errorf("total coordinates exceed Mapbox limit of %d points", maxCoordinates)
	}

	profile, ok := profiles[req.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: mapbox has no %q profile", domain.ErrUnsupportedMode, req.Mode)
	}

	// Формируем список координат: сначала origin, потом destinations
	coordinates := make([]string, 0, len(req.Destinations)+1)
	coordinates = append(coordinates, lonLat(req.Origin))
	destinationsIndices := make([]string, len(req.Destinations))
	for i, d := range req.Destinations {
		coordinates = append(coordinates, lonLat(d.Location))
		destinationsIndices[i] = strconv.Itoa(i + 1)
	}

	url := fmt.Sprintf("%s/directions-matrix/v1/%s/%s?sources=0&destinations=%s&annotations=distance,duration&access_token=%s",
		c.baseURL,
		profile,
		strings.Join(coordinates, ";"),
		strings.Join(destinationsIndices, ";"),
		c.accessToken,
	)

	c.logger.Debug("Calling Mapbox Matrix API",
		zap.String("profile", profile),
		zap.Int("destinations_count", len(req.Destinations)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("mapbox API error: %w", domain.ErrRateLimited)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var matrixResp domain.MatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrixResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w: %v", domain.ErrMalformedResponse, err)
	}

	switch matrixResp.Code {
	case "Ok":
	case "NoRoute":
		return nil, fmt.Errorf("mapbox API returned code %s: %w", matrixResp.Code, domain.ErrNoResults)
	default:
		c.logger.Error("Mapbox API returned non-OK code",
			zap.String("code", matrixResp.Code))
		return nil, fmt.Errorf("mapbox API returned code: %s", matrixResp.Code)
	}

	return toMatrix(req.Destinations, &matrixResp)
}

func toMatrix(destinations []domain.PlaceCandidate, m *domain.MatrixResponse) (*domain.DistanceMatrix, error) {
	if len(m.Durations) != 1 || len(m.Distances) != 1 ||
		len(m.Durations[0]) != len(destinations) || len(m.Distances[0]) != len(destinations) {
		return nil, fmt.Errorf("%w: matrix shape does not match %d destinations", domain.ErrMalformedResponse, len(destinations))
	}

	matrix := &domain.DistanceMatrix{Elements: make([]domain.DistanceElement, 0, len(destinations))}
	for i, d := range destinations {
		e := domain.DistanceElement{
			Candidate: d,
			Address:   d.Name,
			Status:    domain.ElementZeroResults,
		}
		if i < len(m.Destinations) && m.Destinations[i].Name != "" {
			e.Address = m.Destinations[i].Name
		}

		dur, dist := m.Durations[0][i], m.Distances[0][i]
		if dur != nil && dist != nil {
			e.Status = domain.ElementOK
			e.Duration = time.Duration(*dur * float64(time.Second))
			e.DurationText = utils.FormatDuration(e.Duration)
			e.DistanceMeters = int(*dist)
			e.DistanceText = utils.FormatImperialDistance(*dist)
		}
		matrix.Elements = append(matrix.Elements, e)
	}

	return matrix, nil
}

func lonLat(c domain.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lng, c.Lat)
}
