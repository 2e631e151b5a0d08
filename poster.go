package poster

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jamesprial/go-reddit-poster/internal/config"
	"github.com/jamesprial/go-reddit-poster/internal/reddit"
	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

const (
	defaultBaseURL = "https://oauth.reddit.com/"
	defaultAuthURL = "https://www.reddit.com/"
)

// API is the Reddit surface the controller needs. The live implementation
// lives in internal/reddit; dry-run sessions and tests substitute their
// own.
type API interface {
	// Me returns the authenticated account, proving credentials work.
	Me(ctx context.Context) (*types.AccountInfo, error)

	// GetSubreddit fetches subreddit metadata; an error means the target
	// is missing, private, or otherwise unreachable.
	GetSubreddit(ctx context.Context, name string) (*types.SubredditInfo, error)

	// LinkFlairTemplates lists the link-flair templates a subreddit offers.
	LinkFlairTemplates(ctx context.Context, subreddit string) ([]types.FlairTemplate, error)

	// Submit creates the post and returns the API's receipt.
	Submit(ctx context.Context, post *types.PostRecord, flairID, flairText string) (*types.SubmitReceipt, error)
}

// Config holds credentials, endpoints, and the safety settings that bound
// a posting session. Use DefaultConfig and fill in the credentials.
type Config struct {
	// Reddit script-app credentials.
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string

	// BaseURL is the OAuth API endpoint. Defaults to https://oauth.reddit.com/.
	BaseURL string
	// AuthURL is the token endpoint host. Defaults to https://www.reddit.com/.
	AuthURL string

	// HTTPClient is used for all requests. Defaults to a client with a
	// 30 second timeout.
	HTTPClient *http.Client

	// Logger for structured output. If nil, logging is disabled.
	Logger *slog.Logger

	// Inter-post delay settings, in seconds. The default delay is jittered
	// by up to 25% in either direction and clamped to [MinDelaySeconds,
	// MaxDelaySeconds]. A per-post delay override is clamped only to >= 1.
	MinDelaySeconds     int
	MaxDelaySeconds     int
	DefaultDelaySeconds int

	// Sliding-window API budget for the batch layer.
	MaxRequestsPerWindow int
	RequestWindow        time.Duration

	// Session ceilings. Once either trips, remaining posts are not
	// attempted.
	MaxPostsPerSession int
	SessionMaxDuration time.Duration

	// ImageExtensions lists the accepted extensions for image posts.
	// Defaults to jpg, jpeg, png, gif, and webp.
	ImageExtensions []string
}

// DefaultConfig returns a Config with the stock safety settings and no
// credentials.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:              defaultBaseURL,
		AuthURL:              defaultAuthURL,
		MinDelaySeconds:      config.DefaultMinDelay,
		MaxDelaySeconds:      config.DefaultMaxDelay,
		DefaultDelaySeconds:  config.DefaultDelay,
		MaxRequestsPerWindow: config.DefaultMaxRequests,
		RequestWindow:        config.DefaultWindow,
		MaxPostsPerSession:   config.DefaultMaxPosts,
		SessionMaxDuration:   config.DefaultSessionLimit,
	}
}

// ConfigFromEnv loads credentials from the environment (merging a .env
// file if present) on top of the stock safety settings. The password is
// not read from the environment; collect it interactively or set it on
// the returned Config.
func ConfigFromEnv() (*Config, error) {
	env, err := config.Load()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.ClientID = env.ClientID
	cfg.ClientSecret = env.ClientSecret
	cfg.Username = env.Username
	cfg.UserAgent = env.UserAgent
	cfg.ImageExtensions = env.ImageExtensions
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ClientID == "" {
		return &pkgerrs.ConfigError{Field: "ClientID", Message: "client ID is required"}
	}
	if c.ClientSecret == "" {
		return &pkgerrs.ConfigError{Field: "ClientSecret", Message: "client secret is required"}
	}
	if c.Username == "" {
		return &pkgerrs.ConfigError{Field: "Username", Message: "username is required"}
	}
	if c.Password == "" {
		return &pkgerrs.ConfigError{Field: "Password", Message: "password is required"}
	}
	return nil
}

func (c *Config) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("go-reddit-poster/1.0 (by u/%s)", c.Username)
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// NewRedditAPI builds the live API client from the config, wiring up the
// password-grant authenticator and the rate-limited transport. It does not
// perform any network calls; use Controller.CheckAuth or API.Me to verify
// credentials.
func NewRedditAPI(cfg *Config) (API, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	auth, err := reddit.NewAuthenticator(
		cfg.httpClient(),
		cfg.Username, cfg.Password,
		cfg.ClientID, cfg.ClientSecret,
		cfg.userAgent(), authURL,
	)
	if err != nil {
		return nil, err
	}

	client, err := reddit.NewClient(cfg.httpClient(), auth, baseURL, cfg.userAgent(), nil, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}
