package configs

import (
	"errors"
	"fmt"
	"time"

	"github.com/hilthontt/scenario-tracker/internal/infrastructure/env"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var ErrMissingTokenSecret = errors.New("auth.token_secret is required: set it in the config file or via AUTH_TOKEN_SECRET")

type Config struct {
	HTTP        HTTPConfig        `koanf:"http"`
	RateLimiter RateLimiterConfig `koanf:"rateLimiter"`
	Auth        AuthConfig        `koanf:"auth"`
	Pagination  PaginationConfig  `koanf:"pagination"`
	ChangeFeed  ChangeFeedConfig  `koanf:"change_feed"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	AllowedHeaders []string      `koanf:"allowed_headers"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

type RateLimiterConfig struct {
	MaxRatePerSecond int           `koanf:"maxRatePerSecond"`
	MaxBurst         int           `koanf:"maxBurst"`
	CacheTTL         time.Duration `koanf:"cacheTTL"`
	SourceHeaderKey  string        `koanf:"sourceHeaderKey"`
}

type AuthConfig struct {
	TokenSecret string `koanf:"token_secret"`
	GroupsClaim string `koanf:"groups_claim"`
	EditorGroup string `koanf:"editor_group"`
}

type PaginationConfig struct {
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

type ChangeFeedConfig struct {
	MaxDeliveryAttempts int `koanf:"max_delivery_attempts"`
}

// Load reads the yaml config at path, then layers defaults and environment
// variable overrides. An empty path runs on defaults alone.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// An empty secret would verify tokens against []byte(""), letting any
	// client mint its own editor token. Refuse to start without one.
	if cfg.Auth.TokenSecret == "" {
		return nil, ErrMissingTokenSecret
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	// HTTP defaults
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 8080)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)
	setDefault(k, "http.allowed_origins", []string{"http://localhost:3000"})
	setDefault(k, "http.allowed_headers", []string{"Content-Type", "Authorization"})

	// Rate limiter defaults
	setDefault(k, "rateLimiter.maxRatePerSecond", 10)
	setDefault(k, "rateLimiter.maxBurst", 20)
	setDefault(k, "rateLimiter.cacheTTL", 5*time.Minute)
	setDefault(k, "rateLimiter.sourceHeaderKey", "X-Forwarded-For")

	// Auth defaults
	setDefault(k, "auth.groups_claim", "cognito:groups")
	setDefault(k, "auth.editor_group", "editors")

	// Pagination defaults
	setDefault(k, "pagination.default_limit", 20)
	setDefault(k, "pagination.max_limit", 100)

	// Change feed defaults
	setDefault(k, "change_feed.max_delivery_attempts", 3)
}

func applyEnvOverrides(k *koanf.Koanf) {
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if readTimeout := env.GetInt("HTTP_READ_TIMEOUT_SECONDS", 0); readTimeout > 0 {
		k.Set("http.read_timeout", time.Duration(readTimeout)*time.Second)
	}
	if writeTimeout := env.GetInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); writeTimeout > 0 {
		k.Set("http.write_timeout", time.Duration(writeTimeout)*time.Second)
	}

	if maxRate := env.GetInt("RATE_LIMIT_MAX_RATE_PER_SECOND", 0); maxRate > 0 {
		k.Set("rateLimiter.maxRatePerSecond", maxRate)
	}
	if maxBurst := env.GetInt("RATE_LIMIT_MAX_BURST", 0); maxBurst > 0 {
		k.Set("rateLimiter.maxBurst", maxBurst)
	}

	if secret := env.GetString("AUTH_TOKEN_SECRET", ""); secret != "" {
		k.Set("auth.token_secret", secret)
	}
	if claim := env.GetString("AUTH_GROUPS_CLAIM", ""); claim != "" {
		k.Set("auth.groups_claim", claim)
	}

	if limit := env.GetInt("PAGINATION_DEFAULT_LIMIT", 0); limit > 0 {
		k.Set("pagination.default_limit", limit)
	}
	if attempts := env.GetInt("CHANGE_FEED_MAX_DELIVERY_ATTEMPTS", 0); attempts > 0 {
		k.Set("change_feed.max_delivery_attempts", attempts)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
