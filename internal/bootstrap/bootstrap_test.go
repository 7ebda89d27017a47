package bootstrap_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traveller-backend/internal/bootstrap"
	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/usecase/dto"
)

// fakeGoogle отдаёт n мест и маршрут до каждого
func fakeGoogle(t *testing.T, n int, matrixCalls *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		results := make([]string, n)
		for i := range results {
			results[i] = fmt.Sprintf(`{"place_id":"p%d","name":"Bar %d","geometry":{"location":{"lat":37.%d,"lng":-122.4}}}`, i, i, i+10)
		}
		fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, strings.Join(results, ","))
	})
	mux.HandleFunc("/maps/api/distancematrix/json", func(w http.ResponseWriter, r *http.Request) {
		matrixCalls.Add(1)
		dests := strings.Split(r.URL.Query().Get("destinations"), "|")
		addrs := make([]string, len(dests))
		elems := make([]string, len(dests))
		for i, d := range dests {
			addrs[i] = strconv.Quote(strings.TrimPrefix(d, "place_id:") + " street")
			elems[i] = `{"status":"OK","duration":{"value":600,"text":"10 mins"},"distance":{"value":1609,"text":"1.0 mi"}}`
		}
		fmt.Fprintf(w, `{"status":"OK","origin_addresses":["x"],"destination_addresses":[%s],"rows":[{"elements":[%s]}]}`,
			strings.Join(addrs, ","), strings.Join(elems, ","))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(googleURL string) *config.Config {
	return &config.Config{
		Google:   config.GoogleConfig{APIKey: "key", BaseURL: googleURL, MaxPages: 1},
		Distance: config.DistanceConfig{Provider: config.ProviderGoogle},
		HTTP:     config.HTTPClientConfig{MaxRetries: 3},
		Throttle: config.ThrottleConfig{MaxConcurrent: 4, QueueSize: 8},
		Search:   config.SearchConfig{BatchSize: 25},
	}
}

func searchRequest() dto.PlacesSearchRequest {
	return dto.PlacesSearchRequest{
		Keyword: "bar",
		Lat:     37.78,
		Long:    -122.41,
		Radius:  2000,
		Mode:    "walk",
		Date:    "now",
		Size:    200,
	}
}

func TestNew_GoogleEndToEnd(t *testing.T) {
	var calls atomic.Int64
	srv := fakeGoogle(t, 30, &calls)

	services, err := bootstrap.New(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)
	defer services.Close()

	result, err := services.Places.Search(context.Background(), searchRequest())
	require.NoError(t, err)

	require.Len(t, result.Records, 30)
	assert.Equal(t, "p0 street", result.Records[0].Name)
	assert.Equal(t, "p29", result.Records[29].PlaceID)
	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, config.ProviderGoogle, services.Provider)
}

func TestNew_WithQuota(t *testing.T) {
	var calls atomic.Int64
	srv := fakeGoogle(t, 10, &calls)
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := testConfig(srv.URL)
	cfg.Redis = config.RedisConfig{Host: mr.Host(), Port: port}
	cfg.Quota = config.QuotaConfig{Enabled: true, Name: "distancematrix", Requests: 5, Window: time.Minute}

	services, err := bootstrap.New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer services.Close()

	_, err = services.Places.Search(context.Background(), searchRequest())
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "quota:distancematrix:"))
}

func TestNew_QuotaBackendDown(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Redis = config.RedisConfig{Host: "127.0.0.1", Port: 1}
	cfg.Quota = config.QuotaConfig{Enabled: true, Name: "q", Requests: 1}

	_, err := bootstrap.New(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "quota backend")
}

func TestNew_MapboxProvider(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Distance.Provider = config.ProviderMapbox
	cfg.Mapbox = config.MapboxConfig{AccessToken: "pk.test", BaseURL: "http://127.0.0.1:1"}

	services, err := bootstrap.New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer services.Close()

	assert.Equal(t, 24, services.Distance.MaxDestinations())
	assert.Equal(t, 24, services.Places.BatchSize())
}
