package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGoogle = "google"
	ProviderMapbox = "mapbox"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Google   GoogleConfig
	Mapbox   MapboxConfig
	Distance DistanceConfig
	HTTP     HTTPClientConfig
	Throttle ThrottleConfig
	Search   SearchConfig
	Redis    RedisConfig
	Quota    QuotaConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type LogConfig struct {
	Level string
}

type GoogleConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	MaxPages       int
	PageTokenDelay time.Duration
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	RequestTimeout time.Duration
}

type DistanceConfig struct {
	Provider string
}

type HTTPClientConfig struct {
	MaxRetries int
}

// ThrottleConfig - ограничения на вызовы distance matrix
type ThrottleConfig struct {
	MinInterval   time.Duration
	MaxConcurrent int
	QueueSize     int
}

type SearchConfig struct {
	BatchSize     int
	DefaultSize   int
	DefaultRadius uint
	DefaultLat    float64
	DefaultLong   float64
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// QuotaConfig - общий для всех реплик лимит запросов (Redis)
type QuotaConfig struct {
	Enabled  bool
	Name     string
	Requests int
	Window   time.Duration
}

// Load читает конфигурацию из окружения и, если есть, из файла .env
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Google: GoogleConfig{
			APIKey:         v.GetString("GOOGLE_KEY"),
			BaseURL:        v.GetString("GOOGLE_BASE_URL"),
			RequestTimeout: time.Duration(v.GetInt("GOOGLE_REQUEST_TIMEOUT")) * time.Second,
			MaxPages:       v.GetInt("GOOGLE_MAX_PAGES"),
			PageTokenDelay: time.Duration(v.GetInt("GOOGLE_PAGE_TOKEN_DELAY_MS")) * time.Millisecond,
		},
		Mapbox: MapboxConfig{
			AccessToken:    v.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        v.GetString("MAPBOX_BASE_URL"),
			RequestTimeout: time.Duration(v.GetInt("MAPBOX_REQUEST_TIMEOUT")) * time.Second,
		},
		Distance: DistanceConfig{
			Provider: strings.ToLower(v.GetString("DISTANCE_PROVIDER")),
		},
		HTTP: HTTPClientConfig{
			MaxRetries: v.GetInt("HTTP_MAX_RETRIES"),
		},
		Throttle: ThrottleConfig{
			MinInterval:   time.Duration(v.GetInt("THROTTLE_MIN_INTERVAL_MS")) * time.Millisecond,
			MaxConcurrent: v.GetInt("THROTTLE_MAX_CONCURRENT"),
			QueueSize:     v.GetInt("THROTTLE_QUEUE_SIZE"),
		},
		Search: SearchConfig{
			BatchSize:     v.GetInt("SEARCH_BATCH_SIZE"),
			DefaultSize:   v.GetInt("SEARCH_DEFAULT_SIZE"),
			DefaultRadius: v.GetUint("SEARCH_DEFAULT_RADIUS"),
			DefaultLat:    v.GetFloat64("SEARCH_DEFAULT_LAT"),
			DefaultLong:   v.GetFloat64("SEARCH_DEFAULT_LONG"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Quota: QuotaConfig{
			Enabled:  v.GetBool("QUOTA_ENABLED"),
			Name:     v.GetString("QUOTA_NAME"),
			Requests: v.GetInt("QUOTA_REQUESTS"),
			Window:   time.Duration(v.GetInt("QUOTA_WINDOW_MS")) * time.Millisecond,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_PORT", 3000)
	v.SetDefault("API_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("GOOGLE_REQUEST_TIMEOUT", 30)
	v.SetDefault("GOOGLE_MAX_PAGES", 3)
	v.SetDefault("GOOGLE_PAGE_TOKEN_DELAY_MS", 2000)

	v.SetDefault("MAPBOX_BASE_URL", "https://api.mapbox.com")
	v.SetDefault("MAPBOX_REQUEST_TIMEOUT", 30)

	v.SetDefault("DISTANCE_PROVIDER", ProviderGoogle)
	v.SetDefault("HTTP_MAX_RETRIES", 3)

	// 1 request per second, 4 in flight
	v.SetDefault("THROTTLE_MIN_INTERVAL_MS", 1000)
	v.SetDefault("THROTTLE_MAX_CONCURRENT", 4)
	v.SetDefault("THROTTLE_QUEUE_SIZE", 64)

	v.SetDefault("SEARCH_BATCH_SIZE", 25)
	v.SetDefault("SEARCH_DEFAULT_SIZE", 200)
	v.SetDefault("SEARCH_DEFAULT_RADIUS", 50000)
	v.SetDefault("SEARCH_DEFAULT_LAT", 37.7825177)
	v.SetDefault("SEARCH_DEFAULT_LONG", -122.4106772)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("QUOTA_NAME", "distancematrix")
	v.SetDefault("QUOTA_REQUESTS", 1)
	v.SetDefault("QUOTA_WINDOW_MS", 1000)
}

func (c *Config) validate() error {
	switch c.Distance.Provider {
	case ProviderGoogle:
	case ProviderMapbox:
		if c.Mapbox.AccessToken == "" {
			return fmt.Errorf("MAPBOX_ACCESS_TOKEN is required when DISTANCE_PROVIDER=mapbox")
		}
	default:
		return fmt.Errorf("unknown DISTANCE_PROVIDER %q", c.Distance.Provider)
	}

	if c.Throttle.MaxConcurrent < 1 {
		return fmt.Errorf("THROTTLE_MAX_CONCURRENT must be positive, got %d", c.Throttle.MaxConcurrent)
	}
	if c.Search.BatchSize < 1 || c.Search.BatchSize > 25 {
		return fmt.Errorf("SEARCH_BATCH_SIZE must be within 1..25, got %d", c.Search.BatchSize)
	}
	if c.Quota.Enabled && c.Quota.Requests < 1 {
		return fmt.Errorf("QUOTA_REQUESTS must be positive when quota is enabled")
	}

	return nil
}

// IsDevelopment - dev и test окружения (CORS включён, см. middleware)
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "dev" || c.Server.Env == "test"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
