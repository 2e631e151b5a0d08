package reddit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	pkgerrs "github.com/jamesprial/go-reddit-poster/pkg/errors"
	"github.com/jamesprial/go-reddit-poster/pkg/types"
)

// Me returns information about the authenticated user. Useful for testing
// authentication before a live run.
func (c *Client) Me(ctx context.Context) (*types.AccountInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "api/v1/me", nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var account types.AccountInfo
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("failed to parse account info: %w", err)
	}
	if account.Name == "" {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("authentication succeeded but no user info returned")}
	}

	return &account, nil
}

// GetSubreddit retrieves metadata for a subreddit. A private or missing
// subreddit surfaces as an APIError from the about endpoint.
func (c *Client) GetSubreddit(ctx context.Context, name string) (*types.SubredditInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "r/"+name+"/about", nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	// The about endpoint wraps data in a kind/data envelope.
	var envelope struct {
		Kind string              `json:"kind"`
		Data types.SubredditInfo `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse subreddit info: %w", err)
	}
	if envelope.Data.DisplayName == "" {
		return nil, fmt.Errorf("subreddit r/%s not accessible", name)
	}

	return &envelope.Data, nil
}

// LinkFlairTemplates returns the link-flair templates a subreddit offers.
// Some subreddits restrict flair listing; callers should treat an error
// here as "no templates available" rather than a fatal condition.
func (c *Client) LinkFlairTemplates(ctx context.Context, subreddit string) ([]types.FlairTemplate, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "r/"+subreddit+"/api/link_flair_v2", nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		ID      string `json:"id"`
		Text    string `json:"text"`
		ModOnly bool   `json:"mod_only"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse flair templates: %w", err)
	}

	templates := make([]types.FlairTemplate, 0, len(raw))
	for _, t := range raw {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		templates = append(templates, types.FlairTemplate{ID: t.ID, Text: t.Text, ModOnly: t.ModOnly})
	}
	return templates, nil
}

// submitResponse is the api_type=json envelope returned by api/submit.
type submitResponse struct {
	JSON struct {
		Errors [][]string `json:"errors"`
		Data   struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"data"`
	} `json:"json"`
}

// Submit submits a post. Text and link posts go straight to api/submit;
// image posts first upload the file to Reddit's media host. Exactly one of
// flairID and flairText should be set when the post carries a flair.
func (c *Client) Submit(ctx context.Context, post *types.PostRecord, flairID, flairText string) (*types.SubmitReceipt, error) {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("sr", post.Subreddit)
	form.Set("title", post.Title)
	form.Set("resubmit", "true")

	if flairID != "" {
		form.Set("flair_id", flairID)
	} else if flairText != "" {
		form.Set("flair_text", flairText)
	}

	switch post.Kind() {
	case "image":
		assetURL, err := c.uploadMedia(ctx, strings.TrimSpace(post.ImagePath))
		if err != nil {
			return nil, &pkgerrs.SubmitError{Subreddit: post.Subreddit, Err: err}
		}
		form.Set("kind", "image")
		form.Set("url", assetURL)
	case "link":
		form.Set("kind", "link")
		form.Set("url", strings.TrimSpace(post.URL))
	default:
		form.Set("kind", "self")
		form.Set("text", post.Body)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "api/submit", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &pkgerrs.SubmitError{Subreddit: post.Subreddit, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return nil, &pkgerrs.SubmitError{Subreddit: post.Subreddit, Err: err}
	}

	var resp submitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &pkgerrs.SubmitError{Subreddit: post.Subreddit, Err: fmt.Errorf("failed to parse submit response: %w", err)}
	}

	if len(resp.JSON.Errors) > 0 {
		first := resp.JSON.Errors[0]
		code, msg := "", ""
		if len(first) > 0 {
			code = first[0]
		}
		if len(first) > 1 {
			msg = first[1]
		}
		return nil, &pkgerrs.SubmitError{
			Subreddit: post.Subreddit,
			Message:   fmt.Sprintf("%s: %s", code, msg),
		}
	}

	receipt := &types.SubmitReceipt{
		ID:  resp.JSON.Data.ID,
		URL: resp.JSON.Data.URL,
	}
	if receipt.URL != "" {
		if u, err := url.Parse(receipt.URL); err == nil {
			receipt.Permalink = u.Path
		}
	}

	if c.logger != nil {
		c.logger.Info("post submitted", "subreddit", post.Subreddit, "post_id", receipt.ID)
	}

	return receipt, nil
}

// mediaLease is the response from the media asset endpoint: a presigned
// upload target plus the form fields the upload host expects.
type mediaLease struct {
	Args struct {
		Action string `json:"action"`
		Fields []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"fields"`
	} `json:"args"`
}

// uploadMedia performs Reddit's two-step image upload: request a lease
// from api/media/asset.json, then POST the file to the leased URL. It
// returns the URL of the uploaded asset for use in an image submission.
func (c *Client) uploadMedia(ctx context.Context, path string) (string, error) {
	mimeType := mimeTypeFor(path)

	leaseForm := url.Values{}
	leaseForm.Set("filepath", filepath.Base(path))
	leaseForm.Set("mimetype", mimeType)

	req, err := c.newRequest(ctx, http.MethodPost, "api/media/asset.json", strings.NewReader(leaseForm.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("media lease request failed: %w", err)
	}

	var lease mediaLease
	if err := json.Unmarshal(body, &lease); err != nil {
		return "", fmt.Errorf("failed to parse media lease: %w", err)
	}
	if lease.Args.Action == "" {
		return "", fmt.Errorf("media lease missing upload action")
	}

	action := lease.Args.Action
	if strings.HasPrefix(action, "//") {
		action = "https:" + action
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	var key string
	for _, field := range lease.Args.Fields {
		if field.Name == "key" {
			key = field.Value
		}
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return "", err
		}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	uploadReq, err := http.NewRequestWithContext(ctx, http.MethodPost, action, &buf)
	if err != nil {
		return "", err
	}
	uploadReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(uploadReq)
	if err != nil {
		return "", fmt.Errorf("media upload failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("media upload failed with status %d", resp.StatusCode)
	}

	return action + "/" + key, nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
