// Package web serves a small JSON API over the posting pipeline so a
// batch can be driven from a browser form. The same safety layer applies
// as on the command line; the server adds nothing that bypasses it.
package web

import (
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	poster "github.com/jamesprial/go-reddit-poster"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
	"github.com/jamesprial/go-reddit-poster/pkg/validation"
)

// Server bundles shared dependencies for HTTP handlers. One server holds
// one posting session: the live controller, created at authentication
// time, carries the session limits across requests.
type Server struct {
	cfg       *poster.Config
	validator *validation.Validator
	logger    *slog.Logger

	mu   sync.Mutex
	api  poster.API
	live *poster.Controller
	dry  *poster.Controller
}

// NewServer creates a server over the given config. Credentials except
// the password must already be set; the password arrives through the
// authenticate endpoint.
func NewServer(cfg *poster.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		cfg:       cfg,
		validator: validation.New(cfg.ImageExtensions),
		logger:    logger,
		dry:       poster.NewController(cfg, nil, types.DryRun),
	}
}

// Router configures the Gin engine and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		api.POST("/authenticate", s.Authenticate)
		api.GET("/status", s.Status)
		api.POST("/validate", s.ValidatePost)
		api.POST("/posts", s.SubmitPost)
		api.POST("/posts/upload", s.UploadBatch)
		api.POST("/posts/batch", s.SubmitBatch)
		api.GET("/subreddits/:name", s.GetSubreddit)
		api.GET("/subreddits/:name/flairs", s.GetFlairs)
	}

	return r
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("web interface listening", "addr", addr)
	return s.Router().Run(addr)
}

// controllerFor returns the session controller for the requested mode,
// or nil when live was requested before authentication.
func (s *Server) controllerFor(liveRequested bool) *poster.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !liveRequested {
		return s.dry
	}
	return s.live
}

func (s *Server) currentAPI() poster.API {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.api
}
