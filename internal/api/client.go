// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the TaskFlow backend API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// APIError represents an error from the TaskFlow API or the transport
// beneath it.
type APIError struct {
	Type   ErrorType
	Status int    // HTTP status, 0 for transport failures
	Detail string // Human-readable message, normalized from the response body
	Cause  error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Detail + ": " + e.Cause.Error()
	}
	return e.Detail
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes API errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeUnauthorized
	ErrTypeNotFound
	ErrTypeValidation
	ErrTypeServer
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrConnectionLost = &APIError{Type: ErrTypeConnection, Detail: "Connection lost. Please try again."}
	ErrTimeout        = &APIError{Type: ErrTypeTimeout, Detail: "request timed out"}
	ErrUnauthorized   = &APIError{Type: ErrTypeUnauthorized, Status: http.StatusUnauthorized, Detail: "authentication required"}
)

// typeOf extracts the ErrorType from any error in the chain.
func typeOf(err error) ErrorType {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type
	}
	return ErrTypeUnknown
}

// IsUnauthorized reports whether err is a 401 from the API. The task views
// treat this as a signal to drop the session and return to login.
func IsUnauthorized(err error) bool {
	return typeOf(err) == ErrTypeUnauthorized
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return typeOf(err) == ErrTypeNotFound
}

// IsValidation reports whether err is a 400/422 rejection.
func IsValidation(err error) bool {
	return typeOf(err) == ErrTypeValidation
}

// IsConnection reports whether err is a transport-level failure (the server
// never produced a response).
func IsConnection(err error) bool {
	t := typeOf(err)
	return t == ErrTypeConnection || t == ErrTypeTimeout
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the API client.
type ClientConfig struct {
	// BaseURL is the API base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for requests that don't carry their own deadline (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 30 * time.Second,
	}
}

// TokenSource supplies the bearer token attached to every request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource wrapping a fixed string.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the TaskFlow API.
//
// The Client is safe for concurrent use. All methods take a context and
// return either a decoded response or an *APIError.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a client with the given configuration and token source.
// A nil config uses defaults; a nil token source sends unauthenticated
// requests.
func NewClient(config *ClientConfig, tokens TokenSource) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		tokens: tokens,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs a JSON request against the API. A non-nil body is marshaled
// as the request payload; a non-nil out receives the decoded response.
// Responses with no body (204) are accepted when out is nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Type: ErrTypeInvalidResponse, Detail: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &APIError{Type: ErrTypeConnection, Detail: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &APIError{Type: ErrTypeConnection, Detail: ErrConnectionLost.Detail, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Type: ErrTypeInvalidResponse, Detail: "failed to decode response", Cause: err}
	}
	return nil
}

// decodeError turns a non-2xx response into a typed *APIError.
func decodeError(resp *http.Response) *APIError {
	detail := normalizeDetail(resp.Body)
	if detail == "" {
		detail = resp.Status
	}

	var errType ErrorType
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		errType = ErrTypeUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		errType = ErrTypeNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		errType = ErrTypeValidation
	case resp.StatusCode >= 500:
		errType = ErrTypeServer
	default:
		errType = ErrTypeUnknown
	}

	return &APIError{Type: errType, Status: resp.StatusCode, Detail: detail}
}

// errorBody matches the API's error envelope. The detail field is either a
// plain string or a list of field errors, each carrying a msg.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// normalizeDetail flattens the detail field into a single message. Field
// error lists are joined with ", ".
func normalizeDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var envelope errorBody
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}

	return ""
}

// Ping performs an unauthenticated reachability check against the API root.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return &APIError{Type: ErrTypeConnection, Detail: "failed to create request", Cause: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &APIError{Type: ErrTypeConnection, Detail: ErrConnectionLost.Detail, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &APIError{Type: ErrTypeServer, Status: resp.StatusCode, Detail: fmt.Sprintf("server error: %s", resp.Status)}
	}
	return nil
}
