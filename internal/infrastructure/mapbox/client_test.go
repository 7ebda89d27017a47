package mapbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ptr(v float64) *float64 { return &v }

func testConfig(baseURL string) *config.MapboxConfig {
	return &config.MapboxConfig{
		AccessToken:    "test_token",
		BaseURL:        baseURL,
		RequestTimeout: 30 * time.Second,
	}
}

func TestClient_GetDistanceMatrix(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	destinations := []domain.PlaceCandidate{
		{PlaceID: "d1", Name: "Dest 1", Location: domain.Coordinate{Lat: 41.3900, Lng: 2.1800}},
		{PlaceID: "d2", Name: "Dest 2", Location: domain.Coordinate{Lat: 41.3950, Lng: 2.1850}},
		{PlaceID: "d3", Name: "Dest 3", Location: domain.Coordinate{Lat: 41.4000, Lng: 2.1900}},
	}
	origin := domain.Coordinate{Lat: 41.3851, Lng: 2.1734}

	t.Run("successful request", func(t *testing.T) {
		// Mock server
		mockResp := domain.MatrixResponse{
			Code:      "Ok",
			Distances: [][]*float64{{ptr(100.0), nil, ptr(3200.0)}},
			Durations: [][]*float64{{ptr(60.0), nil, ptr(780.0)}},
			Destinations: []domain.Location{
				{Name: "Carrer de Pau Claris", Location: []float64{2.1800, 41.3900}},
				{Name: "", Location: []float64{2.1850, 41.3950}},
				{Name: "", Location: []float64{2.1900, 41.4000}},
			},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/directions-matrix/v1/mapbox/walking/2.173400,41.385100;2.180000,41.390000;2.185000,41.395000;2.190000,41.400000", r.URL.Path)
			assert.Equal(t, "0", r.URL.Query().Get("sources"))
			assert.Equal(t, "1;2;3", r.URL.Query().Get("destinations"))
			assert.Equal(t, "test_token", r.URL.Query().Get("access_token"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(mockResp)
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), server.Client(), logger)

		result, err := client.GetDistanceMatrix(context.Background(), domain.DistanceMatrixRequest{
			Origin:       origin,
			Destinations: destinations,
			Mode:         domain.ModeWalking,
		})
		require.NoError(t, err)
		require.Len(t, result.Elements, 3)

		assert.Equal(t, "d1", result.Elements[0].Candidate.PlaceID)
		assert.Equal(t, "Carrer de Pau Claris", result.Elements[0].Address)
		assert.Equal(t, domain.ElementOK, result.Elements[0].Status)
		assert.Equal(t, "1 min", result.Elements[0].DurationText)
		assert.Equal(t, "328 ft", result.Elements[0].DistanceText)
		assert.Equal(t, 100, result.Elements[0].DistanceMeters)

		assert.Equal(t, domain.ElementZeroResults, result.Elements[1].Status)
		assert.Equal(t, "Dest 3", result.Elements[2].Address)
		assert.Equal(t, "13 mins", result.Elements[2].DurationText)
		assert.Equal(t, "2.0 mi", result.Elements[2].DistanceText)
	})

	t.Run("empty destinations", func(t *testing.T) {
		client := NewMapboxClient(testConfig("https://api.mapbox.com"), http.DefaultClient, logger)

		result, err := client.GetDistanceMatrix(context.Background(), domain.DistanceMatrixRequest{
			Origin: origin,
			Mode:   domain.ModeWalking,
		})
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("exceeds mapbox limit", func(t *testing.T) {
		client := NewMapboxClient(testConfig("https://api.mapbox.com"), http.DefaultClient, logger)

		// 1 origin + 25 destinations = 26 > 25 limit
		result, err := client.GetDistanceMatrix(context.Background(), domain.DistanceMatrixRequest{
			Origin:       origin,
			Destinations: make([]domain.PlaceCandidate, 25),
			Mode:         domain.ModeWalking,
		})
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "exceed Mapbox limit")
		assert.Equal(t, 24, client.MaxDestinations())
	})

	t.Run("transit is not supported", func(t *testing.T) {
		client := NewMapboxClient(testConfig("https://api.mapbox.com"), http.DefaultClient, logger)

		_, err := client.GetDistanceMatrix(context.Background(), domain.DistanceMatrixRequest{
			Origin:       origin,
			Destinations: destinations,
			Mode:         domain.ModeTransit,
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedMode)
	})

	t.Run("api error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"code":"InvalidInput","message":"Invalid coordinates"}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), server.Client(), logger)

		result, err := client.GetDistanceMatrix(context.Background(), domain.DistanceMatrixRequest{
			Origin:       origin,
			Destinations: destinations,
			Mode:         domain.ModeDriving,
		})
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "mapbox API error")
	})

	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), server.Client(), logger)

		_, err := client.GetDistanceMatrix(context.Background(), domain.DistanceMatrixRequest{
			Origin:       origin,
			Destinations: destinations,
			Mode:         domain.ModeCycling,
		})
		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":"Ok","distances":[[1]],"durations":[[1]]}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), server.Client(), logger)

		_, err := client.GetDistanceMatrix(context.Background(), domain.DistanceMatrixRequest{
			Origin:       origin,
			Destinations: destinations,
			Mode:         domain.ModeCycling,
		})
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})
}
