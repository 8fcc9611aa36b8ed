// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package client is the Go consumer for the Agrio platform API.

It wraps every public endpoint behind typed methods and normalizes the
transport outcome into an explicit [Result]: success carries the decoded
payload, failure carries a typed [*APIError]. Callers branch on the result
instead of unwinding through panics or sentinel errors.

# Architecture

  - Transport: net/http with a bounded per-request timeout.
  - Envelope: Every response is {"success": bool, "data": ..., "error": ...}.
  - Auth: A pluggable [TokenStore] supplies the bearer token per request.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// # Constants

const (
	// DefaultTimeout bounds every request round trip.
	DefaultTimeout = 15 * time.Second

	// apiPrefix is prepended to every endpoint path.
	apiPrefix = "/api/v1"
)

// Error codes synthesized by the client itself, never by the server.
const (
	// CodeNetwork marks failures where no HTTP response arrived at all.
	CodeNetwork = "NETWORK_ERROR"

	// CodeBadPayload marks responses whose body could not be decoded.
	CodeBadPayload = "BAD_PAYLOAD"
)

// # Result Container

// APIError is the typed failure outcome of an API call.
type APIError struct {
	// Status is the HTTP status code, or 0 when no response arrived.
	Status int `json:"status"`

	// Code is the machine-readable error code, when the server sent one.
	Code string `json:"code,omitempty"`

	// Message is the human-readable description.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// IsNetwork reports whether the call failed before reaching the server.
func (e *APIError) IsNetwork() bool {
	return e.Status == 0
}

// Result is the explicit outcome of an API call.
//
// Exactly one of Data or Err is meaningful: when OK is true the call
// succeeded and Data holds the payload, otherwise Err describes the failure.
type Result[T any] struct {
	OK   bool
	Data T
	Err  *APIError
}

func success[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

func failure[T any](err *APIError) Result[T] {
	return Result[T]{Err: err}
}

// # Token Supply

// TokenStore supplies and persists the session token pair.
//
// The client only reads tokens; writing them back after login or refresh is
// the session layer's responsibility.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(accessToken, refreshToken string) error
	Clear() error
}

// # Client

// Client calls the Agrio platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient swaps the underlying [*http.Client].
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTokenStore attaches a token source for authenticated endpoints.
func WithTokenStore(tokens TokenStore) Option {
	return func(c *Client) { c.tokens = tokens }
}

// New constructs a [Client] for the API at baseURL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Tokens returns the attached token store, or nil when none is attached.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// # Transport Core

// envelope mirrors the server's uniform response shape.
type envelope[T any] struct {
	Success bool       `json:"success"`
	Data    T          `json:"data"`
	Error   *errorBody `json:"error"`
}

// errorBody is the error block of a failed response.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// roundTrip performs one HTTP exchange and returns the raw response.
//
// A nil *APIError means a response arrived, whatever its status code; the
// caller decides how to interpret the body.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (int, []byte, *APIError) {

	// 1. Encode the request body, if any
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &APIError{Code: CodeBadPayload, Message: "failed to encode request body"}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return 0, nil, &APIError{Code: CodeNetwork, Message: err.Error()}
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	// 2. Attach the bearer token when one is available
	if c.tokens != nil {
		if accessToken := c.tokens.AccessToken(); accessToken != "" {
			request.Header.Set("Authorization", "Bearer "+accessToken)
		}
	}

	// 3. Round trip. A transport failure carries Status 0 so callers can
	// tell "server said no" apart from "server never answered".
	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, nil, &APIError{Code: CodeNetwork, Message: err.Error()}
	}
	defer func() { _ = response.Body.Close() }()

	rawBody, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, &APIError{Status: response.StatusCode, Code: CodeNetwork, Message: err.Error()}
	}

	return response.StatusCode, rawBody, nil
}

// do performs one API call and folds the outcome into a [Result].
//
// Generic functions stand in for methods here because Go methods cannot carry
// their own type parameters.
func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) Result[T] {
	status, rawBody, transportErr := c.roundTrip(ctx, method, path, query, body)
	if transportErr != nil {
		return failure[T](transportErr)
	}

	// A 204 has no envelope at all
	if status == http.StatusNoContent {
		var zero T
		return success(zero)
	}

	var parsed envelope[T]
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return failure[T](&APIError{
			Status:  status,
			Code:    CodeBadPayload,
			Message: fmt.Sprintf("unexpected response (HTTP %d)", status),
		})
	}

	if status >= 200 && status < 300 && parsed.Success {
		return success(parsed.Data)
	}

	return failure[T](foldError(status, parsed.Error))
}

// foldError turns a failed response into the typed failure. A missing error
// body still yields a usable generic message.
func foldError(status int, body *errorBody) *APIError {
	apiErr := &APIError{Status: status}
	if body != nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed (HTTP %d)", status)
	}

	return apiErr
}

// get performs an authenticated-or-anonymous GET.
func get[T any](ctx context.Context, c *Client, path string, query url.Values) Result[T] {
	return do[T](ctx, c, http.MethodGet, path, query, nil)
}

// post performs a POST with a JSON body.
func post[T any](ctx context.Context, c *Client, path string, body any) Result[T] {
	return do[T](ctx, c, http.MethodPost, path, nil, body)
}

// put performs a PUT with a JSON body.
func put[T any](ctx context.Context, c *Client, path string, body any) Result[T] {
	return do[T](ctx, c, http.MethodPut, path, nil, body)
}
