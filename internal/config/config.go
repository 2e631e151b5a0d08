// Package config loads the immutable process configuration: Reddit API
// credentials from the environment (optionally a .env file) and the safety
// settings that bound pacing and session limits.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
)

// Safety defaults. Delays are in seconds to match post records and CLI
// flags.
const (
	DefaultMinDelay     = 30
	DefaultMaxDelay     = 300
	DefaultDelay        = 90
	DefaultMaxRequests  = 50 // stays well under Reddit's 60/min limit
	DefaultWindow       = 60 * time.Second
	DefaultMaxPosts     = 50
	DefaultSessionLimit = 2 * time.Hour
)

// Config is built once at startup and passed by reference into the
// controller, guard, and scheduler. It is never mutated afterwards.
type Config struct {
	// Reddit API credentials.
	ClientID     string
	ClientSecret string
	Username     string
	UserAgent    string

	// Delay settings, in seconds.
	MinDelay     int
	MaxDelay     int
	DefaultDelay int

	// Rate limiting.
	MaxRequestsPerWindow int
	RequestWindow        time.Duration

	// Session limits.
	MaxPostsPerSession int
	SessionMaxDuration time.Duration

	// Supported image file extensions for attachment posts.
	ImageExtensions []string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first if present; real environment
// variables win. Missing API credentials are a fatal ConfigError.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file just means env-only config.
	_ = godotenv.Load()

	clientID := strings.TrimSpace(os.Getenv("CLIENT_ID"))
	clientSecret := strings.TrimSpace(os.Getenv("CLIENT_SECRET"))
	username := strings.TrimSpace(os.Getenv("REDDIT_USERNAME"))

	if clientID == "" {
		return nil, &pkgerrs.ConfigError{Field: "CLIENT_ID", Message: "missing Reddit API credential; check your .env file"}
	}
	if clientSecret == "" {
		return nil, &pkgerrs.ConfigError{Field: "CLIENT_SECRET", Message: "missing Reddit API credential; check your .env file"}
	}

	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Username:     username,
		UserAgent:    fmt.Sprintf("go-reddit-poster/1.0 (by u/%s)", username),

		MinDelay:     DefaultMinDelay,
		MaxDelay:     DefaultMaxDelay,
		DefaultDelay: DefaultDelay,

		MaxRequestsPerWindow: DefaultMaxRequests,
		RequestWindow:        DefaultWindow,

		MaxPostsPerSession: DefaultMaxPosts,
		SessionMaxDuration: DefaultSessionLimit,

		ImageExtensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
	}, nil
}
