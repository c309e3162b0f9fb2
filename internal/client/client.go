package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/labshare-dev/labshare/internal/api"
	"github.com/labshare-dev/labshare/internal/metrics"
)

// DefaultTimeout bounds a single request when the caller supplies no http.Client
const DefaultTimeout = 30 * time.Second

// ErrNoToken is returned by a TokenSource that has nothing stored
var ErrNoToken = errors.New("not authenticated. Please run 'labshare login' first")

// TokenSource yields the bearer token for outgoing requests
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource that always returns the same token
type StaticToken string

// Token implements TokenSource
func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func() (string, error)

// Token implements TokenSource
func (f TokenFunc) Token() (string, error) {
	return f()
}

// APIError is a non-success answer from the platform API
type APIError struct {
	Endpoint api.EndpointID
	Status   int
	Code     int
	Message  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s failed (status %d): %s", e.Endpoint, e.Status, msg)
}

// IsStatus reports whether err is an APIError with the given HTTP status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client represents an HTTP client for the platform API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithLogger sets the request logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a new API client. baseURL includes the API prefix, e.g. http://host/api/v1
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do dispatches req and decodes the response data into out (which may be nil).
// Errors are returned as-is to the caller; there is no retry.
func (c *Client) Do(ctx context.Context, req api.Request, out any) error {
	start := time.Now()
	err := c.do(ctx, req, out)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			outcome = fmt.Sprintf("%d", apiErr.Status)
		}
	}
	m := metrics.Get()
	m.APIRequests.WithLabelValues(string(req.Endpoint), outcome).Inc()
	m.APIDuration.WithLabelValues(string(req.Endpoint)).Observe(time.Since(start).Seconds())

	return err
}

func (c *Client) do(ctx context.Context, req api.Request, out any) error {
	var body io.Reader
	if req.Body != nil {
		jsonData, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL(c.baseURL), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := ulid.Make().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		switch {
		case err == nil:
			httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		case errors.Is(err, ErrNoToken):
			// Anonymous call; the backend decides whether that is allowed.
		default:
			return err
		}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", httpReq.URL.String()).
		Msg("Dispatching API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Msg("API response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(req.Endpoint, resp.StatusCode, raw)
	}

	// /health answers with a bare object rather than an envelope.
	if req.Endpoint == api.EndpointHealth {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	var env api.Envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	if env.Code != 0 && (env.Code < 200 || env.Code >= 300) {
		return &APIError{Endpoint: req.Endpoint, Status: resp.StatusCode, Code: env.Code, Message: env.Msg}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func newAPIError(endpoint api.EndpointID, status int, raw []byte) *APIError {
	apiErr := &APIError{Endpoint: endpoint, Status: status}

	var env api.Envelope
	if err := json.Unmarshal(raw, &env); err == nil && (env.Msg != "" || env.Code != 0) {
		apiErr.Code = env.Code
		apiErr.Message = env.Msg
		return apiErr
	}

	var plain struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &plain); err == nil && plain.Error != "" {
		apiErr.Message = plain.Error
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}
