package poster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jamesprial/go-reddit-poster/internal/pacing"
	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
	"github.com/jamesprial/go-reddit-poster/pkg/validation"
)

// rateLimiter gates and records API-consuming actions.
type rateLimiter interface {
	Wait(ctx context.Context) error
	Record()
}

// delayScheduler computes and serves the inter-post wait.
type delayScheduler interface {
	ComputeDelay(explicitSeconds *int) int
	Wait(ctx context.Context, seconds int, progress func(remaining int)) error
}

// sessionGuard enforces the per-session post quota and time ceiling.
type sessionGuard interface {
	CheckCanContinue() (bool, string)
	RecordPost()
	PostCount() int
}

// Progress carries optional callbacks fired as a batch runs. Any field may
// be nil.
type Progress struct {
	// PostStarted fires before a record enters the pipeline. index is
	// zero-based.
	PostStarted func(index, total int, post *types.PostRecord)

	// PostFinished fires with the recorded result for a record.
	PostFinished func(index, total int, result types.SubmissionResult)

	// Waiting fires during the inter-post delay with the whole seconds
	// remaining.
	Waiting func(remaining int)
}

// Controller runs batches of post records through validation, pacing, and
// submission. A Controller tracks one session; create a new one to reset
// the session limits.
type Controller struct {
	api       API
	mode      types.Mode
	validator *validation.Validator
	limiter   rateLimiter
	scheduler delayScheduler
	guard     sessionGuard
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewController wires a controller from the config. api may be nil in
// dry-run mode.
func NewController(cfg *Config, api API, mode types.Mode) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Controller{
		api:       api,
		mode:      mode,
		validator: validation.New(cfg.ImageExtensions),
		limiter:   pacing.NewRateLimiter(cfg.MaxRequestsPerWindow, cfg.RequestWindow, logger),
		scheduler: pacing.NewScheduler(cfg.DefaultDelaySeconds, cfg.MinDelaySeconds, cfg.MaxDelaySeconds, nil, logger),
		guard:     pacing.NewSessionGuard(cfg.MaxPostsPerSession, cfg.SessionMaxDuration),
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Mode reports whether the controller submits for real.
func (c *Controller) Mode() types.Mode { return c.mode }

// PostCount reports how many live posts this session has submitted.
func (c *Controller) PostCount() int { return c.guard.PostCount() }

// CheckAuth verifies credentials by fetching the authenticated account.
func (c *Controller) CheckAuth(ctx context.Context) (*types.AccountInfo, error) {
	if c.mode == types.DryRun {
		return &types.AccountInfo{Name: "dry-run"}, nil
	}
	return c.api.Me(ctx)
}

// Run processes the batch in order. Every attempted record yields exactly
// one result; a failed record never stops the batch, and the inter-post
// delay applies after failures too. Run returns early with a
// SessionLimitError once the session quota or time ceiling trips, or with
// the context error if ctx is cancelled mid-wait. Results accumulated
// before the stop are always returned.
func (c *Controller) Run(ctx context.Context, posts []*types.PostRecord, progress *Progress) ([]types.SubmissionResult, error) {
	if progress == nil {
		progress = &Progress{}
	}

	total := len(posts)
	results := make([]types.SubmissionResult, 0, total)

	for i, post := range posts {
		if ok, reason := c.guard.CheckCanContinue(); !ok {
			limitErr := &pkgerrs.SessionLimitError{Message: reason}
			c.logger.Warn("session limit reached, stopping batch",
				"reason", reason, "completed", len(results), "remaining", total-i)

			// The denied post gets a failure result; posts after it are
			// not attempted at all.
			result := types.SubmissionResult{
				Subreddit: post.Subreddit,
				Title:     post.Title,
				Timestamp: c.now(),
				DryRun:    c.mode == types.DryRun,
				Error:     limitErr.Error(),
			}
			results = append(results, result)
			if progress.PostFinished != nil {
				progress.PostFinished(i, total, result)
			}
			return results, limitErr
		}

		if progress.PostStarted != nil {
			progress.PostStarted(i, total, post)
		}

		result := c.processPost(ctx, post)
		results = append(results, result)

		if progress.PostFinished != nil {
			progress.PostFinished(i, total, result)
		}

		if i == total-1 {
			break
		}

		delay := c.scheduler.ComputeDelay(post.DelaySeconds)
		if err := c.scheduler.Wait(ctx, delay, progress.Waiting); err != nil {
			return results, err
		}
	}

	return results, nil
}

// processPost runs one record through the pipeline and always produces a
// result. A panic anywhere inside is captured as an unexpected failure so
// one bad record cannot take down the batch.
func (c *Controller) processPost(ctx context.Context, post *types.PostRecord) (result types.SubmissionResult) {
	result = types.SubmissionResult{
		Subreddit: post.Subreddit,
		Title:     post.Title,
		Timestamp: c.now(),
		DryRun:    c.mode == types.DryRun,
	}

	defer func() {
		if r := recover(); r != nil {
			err := &pkgerrs.UnexpectedError{Message: fmt.Sprintf("panic while processing post: %v", r)}
			c.logger.Error("recovered from panic", "subreddit", post.Subreddit, "panic", r)
			result.Success = false
			result.Error = err.Error()
		}
	}()

	if err := c.validator.ValidatePost(post); err != nil {
		result.Error = err.Error()
		c.logger.Warn("post failed validation", "subreddit", post.Subreddit, "error", err)
		return result
	}

	if c.mode == types.DryRun {
		result.Success = true
		result.PostID = "dry-" + c.newID()[:8]
		c.logger.Info("dry run, would submit",
			"subreddit", post.Subreddit, "title", post.Title, "kind", post.Kind())
		return result
	}

	return c.submitLive(ctx, post, result)
}

func (c *Controller) submitLive(ctx context.Context, post *types.PostRecord, result types.SubmissionResult) types.SubmissionResult {
	if _, err := c.api.GetSubreddit(ctx, post.Subreddit); err != nil {
		submitErr := &pkgerrs.SubmitError{Subreddit: post.Subreddit, Message: "subreddit not reachable", Err: err}
		result.Error = submitErr.Error()
		c.logger.Warn("subreddit not reachable", "subreddit", post.Subreddit, "error", err)
		return result
	}

	var flairID, flairText string
	if post.Flair != "" {
		templates, err := c.api.LinkFlairTemplates(ctx, post.Subreddit)
		if err != nil {
			// Flair lookup failures never fail the post.
			c.logger.Debug("flair template lookup failed, using raw text",
				"subreddit", post.Subreddit, "error", err)
			flairText = post.Flair
		} else {
			flairID, flairText = resolveFlair(templates, post.Flair)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		result.Error = err.Error()
		return result
	}
	c.limiter.Record()

	receipt, err := c.api.Submit(ctx, post, flairID, flairText)
	if err != nil {
		result.Error = err.Error()
		c.logger.Warn("submission failed", "subreddit", post.Subreddit, "error", err)
		return result
	}

	result.Success = true
	result.PostID = receipt.ID
	result.PostURL = postURL(receipt)
	c.guard.RecordPost()
	c.logger.Info("post submitted",
		"subreddit", post.Subreddit, "post_id", result.PostID, "session_posts", c.guard.PostCount())
	return result
}

func postURL(receipt *types.SubmitReceipt) string {
	if receipt.URL != "" {
		return receipt.URL
	}
	if receipt.Permalink != "" {
		return "https://www.reddit.com" + receipt.Permalink
	}
	return ""
}
