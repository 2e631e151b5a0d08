package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	poster "github.com/jamesprial/go-reddit-poster"
	"github.com/jamesprial/go-reddit-poster/internal/input"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

type authenticateRequest struct {
	Password string `json:"password" binding:"required"`
}

// Authenticate builds the live API client with the supplied password and
// verifies it against the account endpoint. Until this succeeds only
// dry-run operations are available.
func (s *Server) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if !bindJSON(c, &req, "password is required") {
		return
	}

	cfg := *s.cfg
	cfg.Password = req.Password

	api, err := poster.NewRedditAPI(&cfg)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := api.Me(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusUnauthorized, "authentication failed: "+err.Error())
		return
	}

	s.mu.Lock()
	s.api = api
	s.live = poster.NewController(s.cfg, api, types.Live)
	s.mu.Unlock()

	s.logger.Info("web session authenticated", "user", account.Name)
	c.JSON(http.StatusOK, gin.H{
		"message": "authenticated",
		"account": account,
	})
}

// Status reports whether the session is authenticated and how many live
// posts it has submitted.
func (s *Server) Status(c *gin.Context) {
	s.mu.Lock()
	live := s.live
	s.mu.Unlock()

	status := gin.H{"authenticated": live != nil, "session_posts": 0}
	if live != nil {
		status["session_posts"] = live.PostCount()
	}
	c.JSON(http.StatusOK, status)
}

// ValidatePost checks a single record without submitting it.
func (s *Server) ValidatePost(c *gin.Context) {
	var post types.PostRecord
	if !bindJSON(c, &post, "invalid post record") {
		return
	}

	if err := s.validator.ValidatePost(&post); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "kind": post.Kind()})
}

type submitRequest struct {
	types.PostRecord
	Live bool `json:"live"`
}

// SubmitPost runs a single record through the pipeline.
func (s *Server) SubmitPost(c *gin.Context) {
	var req submitRequest
	if !bindJSON(c, &req, "invalid post record") {
		return
	}

	ctrl := s.controllerFor(req.Live)
	if ctrl == nil {
		respondError(c, http.StatusUnauthorized, "authenticate before live posting")
		return
	}

	results, err := ctrl.Run(c.Request.Context(), []*types.PostRecord{&req.PostRecord}, nil)
	if err != nil {
		respondError(c, http.StatusTooManyRequests, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": results[0]})
}

// UploadBatch parses an uploaded JSON or CSV file and returns the parsed
// records with per-record validation, without submitting anything.
func (s *Server) UploadBatch(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file upload is required")
		return
	}

	dst := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer os.Remove(dst)

	posts, err := input.ReadFile(dst)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	records := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		entry := gin.H{"post": post, "valid": true}
		if err := s.validator.ValidatePost(post); err != nil {
			entry["valid"] = false
			entry["error"] = err.Error()
		}
		records = append(records, entry)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(posts), "records": records})
}

type batchRequest struct {
	Posts   []*types.PostRecord `json:"posts" binding:"required"`
	Live    bool                `json:"live"`
	Confirm bool                `json:"confirm"`
}

// SubmitBatch runs a batch. Submitting more than one post for real
// requires an explicit confirm flag; dry runs never do.
func (s *Server) SubmitBatch(c *gin.Context) {
	var req batchRequest
	if !bindJSON(c, &req, "posts are required") {
		return
	}

	if req.Live && len(req.Posts) > 1 && !req.Confirm {
		respondError(c, http.StatusBadRequest, "live batch submission requires confirm=true")
		return
	}

	ctrl := s.controllerFor(req.Live)
	if ctrl == nil {
		respondError(c, http.StatusUnauthorized, "authenticate before live posting")
		return
	}

	results, runErr := ctrl.Run(c.Request.Context(), req.Posts, nil)
	response := gin.H{
		"results": results,
		"summary": poster.Summarize(results),
	}
	if runErr != nil {
		// Partial results are still returned when the session limit trips.
		response["stopped"] = runErr.Error()
	}
	c.JSON(http.StatusOK, response)
}

// GetSubreddit fetches subreddit metadata for the form's target preview.
func (s *Server) GetSubreddit(c *gin.Context) {
	api := s.currentAPI()
	if api == nil {
		respondError(c, http.StatusUnauthorized, "authenticate first")
		return
	}

	info, err := api.GetSubreddit(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"subreddit": info})
}

// GetFlairs lists a subreddit's link-flair templates.
func (s *Server) GetFlairs(c *gin.Context) {
	api := s.currentAPI()
	if api == nil {
		respondError(c, http.StatusUnauthorized, "authenticate first")
		return
	}

	templates, err := api.LinkFlairTemplates(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"flairs": templates})
}
