package config

import (
	"errors"
	"testing"

	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
)

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("CLIENT_ID", "")
	t.Setenv("CLIENT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() = nil error, want ConfigError for missing credentials")
	}

	var cfgErr *pkgerrs.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error type = %T, want *errors.ConfigError", err)
	}
	if cfgErr.Field != "CLIENT_ID" {
		t.Errorf("Field = %q, want CLIENT_ID", cfgErr.Field)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("CLIENT_ID", "abc")
	t.Setenv("CLIENT_SECRET", "")

	_, err := Load()
	var cfgErr *pkgerrs.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %v, want *errors.ConfigError", err)
	}
	if cfgErr.Field != "CLIENT_SECRET" {
		t.Errorf("Field = %q, want CLIENT_SECRET", cfgErr.Field)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CLIENT_ID", "abc")
	t.Setenv("CLIENT_SECRET", "def")
	t.Setenv("REDDIT_USERNAME", "tester")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.UserAgent != "go-reddit-poster/1.0 (by u/tester)" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.MinDelay != 30 || cfg.MaxDelay != 300 || cfg.DefaultDelay != 90 {
		t.Errorf("delay defaults = %d/%d/%d, want 30/300/90", cfg.MinDelay, cfg.MaxDelay, cfg.DefaultDelay)
	}
	if cfg.MaxRequestsPerWindow != 50 {
		t.Errorf("MaxRequestsPerWindow = %d, want 50", cfg.MaxRequestsPerWindow)
	}
	if cfg.MaxPostsPerSession != 50 {
		t.Errorf("MaxPostsPerSession = %d, want 50", cfg.MaxPostsPerSession)
	}
	if len(cfg.ImageExtensions) == 0 {
		t.Error("ImageExtensions is empty")
	}
}
