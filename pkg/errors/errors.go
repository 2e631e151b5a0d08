// Package errors defines the error taxonomy used throughout the poster.
//
// Only ConfigError and SessionLimitError abort further work. Every other
// kind is captured into a SubmissionResult by the controller and never
// propagates past it.
package errors

import (
	"fmt"
	"strings"
)

// ConfigError indicates a problem with the startup configuration, such as
// missing credentials. It is fatal and raised before any session begins.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// ValidationError indicates a malformed post record. It is per-post and
// non-fatal: the controller records a failure and continues the batch.
type ValidationError struct {
	// Field is the post field that failed validation, if attributable
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// SessionLimitError indicates the per-session post quota or time ceiling
// was reached. It stops processing of all remaining posts in the batch;
// results recorded so far are kept.
type SessionLimitError struct {
	// Message describes which limit tripped
	Message string
}

func (e *SessionLimitError) Error() string {
	return fmt.Sprintf("session limit reached: %s", e.Message)
}

// SubmitError indicates the remote submission call failed. It is per-post
// and non-fatal; the inter-post delay still applies afterwards.
type SubmitError struct {
	// Subreddit is the target of the failed submission
	Subreddit string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *SubmitError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Subreddit != "" {
		return fmt.Sprintf("submit error for r/%s: %s", e.Subreddit, msg)
	}
	return fmt.Sprintf("submit error: %s", msg)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// UnexpectedError wraps anything uncategorized that escapes the per-post
// pipeline, including recovered panics. It is non-fatal by design.
type UnexpectedError struct {
	// Err contains the underlying error if available
	Err error
	// Message contains the detailed error message
	Message string
}

func (e *UnexpectedError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("unexpected error: %s", msg)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// AuthError indicates an authentication failure against the Reddit API.
type AuthError struct {
	// StatusCode is the HTTP status code (if from an HTTP response)
	StatusCode int
	// Body contains the raw response body (if available)
	Body string
	// Err contains the underlying error if available
	Err error
}

func (e *AuthError) Error() string {
	var sb strings.Builder
	sb.WriteString("auth error")

	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, ": status code %d", e.StatusCode)
	}

	if e.Body != "" {
		fmt.Fprintf(&sb, ", body: %q", e.Body)
	}

	if e.Err != nil {
		fmt.Fprintf(&sb, ", err: %v", e.Err)
	}

	return sb.String()
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError represents an error response from the Reddit API.
type APIError struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// ErrorCode is the error code from Reddit (if available)
	ErrorCode string
	// Message is the error message from Reddit
	Message string
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("reddit API error (status %d, code %s): %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// ParseError indicates a problem parsing an input file.
type ParseError struct {
	// Path is the file that failed to parse
	Path string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("parse error in %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
