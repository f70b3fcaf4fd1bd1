// Package transport is the single point through which every resource client
// issues requests to the Devigo backend. It owns the base URL and default
// headers, attaches the bearer token from the session, and implements the
// one-shot silent refresh: a request failing with 401 triggers at most one
// token refresh followed by one retry of the original request, invisible to
// the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/developer9560/devigo-go/internal/metrics"
	"github.com/developer9560/devigo-go/session"
)

// refreshPath is the token refresh endpoint. Refresh calls go through a
// dedicated code path that never attaches a bearer token and never recurses
// into 401 handling.
const refreshPath = "/auth/token/refresh/"

// Client sends authenticated JSON requests to the backend API.
// It is safe for concurrent use; independent requests are not coordinated
// with each other beyond sharing the session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     zerolog.Logger
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client, e.g. to set a
// timeout or inject a test transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// New creates a transport client for the API rooted at baseURL, reading and
// updating authentication state through sess.
func New(baseURL string, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    sess,
		logger:     zerolog.Nop(),
		userAgent:  "devigo-go/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues one request against the API and decodes a successful JSON
// response into out (which may be nil to discard the body).
//
// body may be nil, an io.Reader, []byte, or any JSON-marshalable value.
// Reader bodies are buffered in full so the request can be replayed by the
// 401 retry path.
//
// Error returns follow a fixed taxonomy:
//   - *TransportError (matches ErrTransport) when no response was received
//   - *APIError for any error status, with the server payload intact
//
// A 401 on a not-yet-retried request triggers the silent refresh described
// in the package comment; the caller only ever observes the final outcome.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	ro := requestOptions{header: make(http.Header), query: make(url.Values)}
	for _, opt := range opts {
		opt(&ro)
	}

	payload, err := encodeBody(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	return c.do(ctx, method, path, payload, out, false, ro)
}

// do performs one request attempt. The retried flag makes the at-most-one
// refresh invariant explicit: the retry after a successful token refresh is
// issued with retried=true and is never retried again.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any, retried bool, ro requestOptions) error {
	req, err := c.newRequest(ctx, method, path, payload, ro)
	if err != nil {
		return err
	}

	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveTransportFailure(method, time.Since(start))
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Request failed before reaching the server")
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveTransportFailure(method, time.Since(start))
		return &TransportError{Method: method, Path: path, Err: err}
	}
	metrics.ObserveRequest(method, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       respBody,
		}

		if resp.StatusCode == http.StatusUnauthorized && !retried {
			return c.recoverUnauthorized(ctx, method, path, payload, out, ro, apiErr)
		}

		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("Request rejected by server")
		return apiErr
	}

	if out != nil && len(respBody) > 0 && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response for %s %s: %w", method, path, err)
		}
	}
	return nil
}

// recoverUnauthorized handles a first 401: refresh the access token, then
// replay the original request exactly once. When no refresh token is held
// the session is cleared and the original 401 propagates; when the refresh
// itself fails the session is cleared and the refresh error propagates.
func (c *Client) recoverUnauthorized(ctx context.Context, method, path string, payload []byte, out any, ro requestOptions, original *APIError) error {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		c.logger.Info().Str("method", method).Str("path", path).Msg("Unauthorized with no refresh token, clearing session")
		c.session.Clear()
		return original
	}

	if err := c.refreshAccessToken(ctx, refreshToken); err != nil {
		c.logger.Info().Err(err).Msg("Token refresh failed, clearing session")
		c.session.Clear()
		return fmt.Errorf("token refresh failed: %w", err)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("Access token refreshed, retrying request")
	return c.do(ctx, method, path, payload, out, true, ro)
}

// refreshAccessToken exchanges the refresh token for a new access token and
// stores it in the session. The call deliberately bypasses Do: no bearer
// token is attached and a 401 here is a plain failure, not another refresh.
func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) error {
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, refreshPath, payload, requestOptions{
		header: make(http.Header),
		query:  make(url.Values),
	})
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveTokenRefresh(false)
		return &TransportError{Method: http.MethodPost, Path: refreshPath, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveTokenRefresh(false)
		return &TransportError{Method: http.MethodPost, Path: refreshPath, Err: err}
	}
	metrics.ObserveRequest(http.MethodPost, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		metrics.ObserveTokenRefresh(false)
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodPost,
			Path:       refreshPath,
			Body:       respBody,
		}
	}

	var tokenResp struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		metrics.ObserveTokenRefresh(false)
		return fmt.Errorf("decode refresh response: %w", err)
	}
	if tokenResp.Access == "" {
		metrics.ObserveTokenRefresh(false)
		return fmt.Errorf("refresh response missing access token")
	}

	if err := c.session.SetAccessToken(tokenResp.Access); err != nil {
		metrics.ObserveTokenRefresh(false)
		return fmt.Errorf("store refreshed access token: %w", err)
	}

	metrics.ObserveTokenRefresh(true)
	return nil
}

// newRequest builds an *http.Request with the client defaults and per-call
// overrides applied. Endpoint paths keep their trailing slashes; the
// backend treats them as significant.
func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte, ro requestOptions) (*http.Request, error) {
	requestURL := c.baseURL + path
	if len(ro.query) > 0 {
		requestURL += "?" + ro.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range ro.header {
		req.Header[key] = values
	}

	return req, nil
}

// encodeBody turns the accepted body kinds into a replayable byte slice.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case io.Reader:
		// Buffered so the 401 retry path can resend it.
		return io.ReadAll(b)
	default:
		return json.Marshal(b)
	}
}
