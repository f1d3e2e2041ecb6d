package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Fatalf("http.port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeout != 10*time.Second {
		t.Fatalf("http.read_timeout = %v, want 10s", cfg.HTTP.ReadTimeout)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("http.allowed_origins = %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Auth.GroupsClaim != "cognito:groups" {
		t.Fatalf("auth.groups_claim = %q", cfg.Auth.GroupsClaim)
	}
	if cfg.Auth.EditorGroup != "editors" {
		t.Fatalf("auth.editor_group = %q", cfg.Auth.EditorGroup)
	}
	if cfg.Pagination.DefaultLimit != 20 || cfg.Pagination.MaxLimit != 100 {
		t.Fatalf("pagination = %+v", cfg.Pagination)
	}
	if cfg.ChangeFeed.MaxDeliveryAttempts != 3 {
		t.Fatalf("change_feed.max_delivery_attempts = %d, want 3", cfg.ChangeFeed.MaxDeliveryAttempts)
	}
	if cfg.RateLimiter.MaxBurst != 20 {
		t.Fatalf("rateLimiter.maxBurst = %d, want 20", cfg.RateLimiter.MaxBurst)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http:
  port: 9090
  allowed_origins:
    - "https://tracker.example.com"
auth:
  token_secret: "file-secret"
  editor_group: "qa-editors"
pagination:
  default_limit: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Fatalf("http.port = %d, want 9090", cfg.HTTP.Port)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "https://tracker.example.com" {
		t.Fatalf("http.allowed_origins = %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Auth.EditorGroup != "qa-editors" {
		t.Fatalf("auth.editor_group = %q", cfg.Auth.EditorGroup)
	}
	if cfg.Auth.TokenSecret != "file-secret" {
		t.Fatalf("auth.token_secret = %q", cfg.Auth.TokenSecret)
	}
	if cfg.Pagination.DefaultLimit != 5 {
		t.Fatalf("pagination.default_limit = %d, want 5", cfg.Pagination.DefaultLimit)
	}

	// Untouched keys keep their defaults.
	if cfg.Auth.GroupsClaim != "cognito:groups" {
		t.Fatalf("auth.groups_claim = %q", cfg.Auth.GroupsClaim)
	}
	if cfg.ChangeFeed.MaxDeliveryAttempts != 3 {
		t.Fatalf("change_feed.max_delivery_attempts = %d, want 3", cfg.ChangeFeed.MaxDeliveryAttempts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8443")
	t.Setenv("AUTH_TOKEN_SECRET", "super-secret")
	t.Setenv("AUTH_GROUPS_CLAIM", "custom:groups")
	t.Setenv("CHANGE_FEED_MAX_DELIVERY_ATTEMPTS", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 8443 {
		t.Fatalf("http.port = %d, want 8443", cfg.HTTP.Port)
	}
	if cfg.Auth.TokenSecret != "super-secret" {
		t.Fatalf("auth.token_secret = %q", cfg.Auth.TokenSecret)
	}
	if cfg.Auth.GroupsClaim != "custom:groups" {
		t.Fatalf("auth.groups_claim = %q", cfg.Auth.GroupsClaim)
	}
	if cfg.ChangeFeed.MaxDeliveryAttempts != 5 {
		t.Fatalf("change_feed.max_delivery_attempts = %d, want 5", cfg.ChangeFeed.MaxDeliveryAttempts)
	}
}

// Starting without a token secret would verify bearer tokens against an
// empty key, so Load must refuse.
func TestLoadRejectsMissingTokenSecret(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "")

	if _, err := Load(""); !errors.Is(err, ErrMissingTokenSecret) {
		t.Fatalf("err = %v, want ErrMissingTokenSecret", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}
