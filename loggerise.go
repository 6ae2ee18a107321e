package loggerise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Version is the release version of this module, reported in the default
// User-Agent header.
const Version = "1.1.0"

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "loggerise-go/" + Version

	headerRequestID = "X-Request-Id"
)

// body limits: JSON payloads are small, invoice PDFs are not
const (
	maxResponseBodySize = 1 << 20  // 1MB
	maxDocumentBodySize = 32 << 20 // 32MB
)

// connection pooling limits to prevent resource exhaustion when a process
// drives many tenants or long polling sessions
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second // conservative: matches common ALB defaults
)

// Client is a Loggerise API client scoped to a single tenant.
//
// A Client is created with [New] and configured via functional options. All
// API access goes through the typed services hanging off the client:
//
//	client, err := loggerise.New("https://api.acme.loggerise.com",
//	    loggerise.WithToken(token),
//	)
//	if err != nil {
//	    slog.Error("failed to create client", "error", err)
//	    os.Exit(1)
//	}
//	defer client.Close()
//
//	invoice, err := client.Invoices.Get(ctx, 42)
//
// The zero value is not usable; always construct through [New]. A Client is
// safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	ownsClient bool
	timeout    time.Duration
	userAgent  string
	logger     *slog.Logger
	tokens     TokenStore

	realtimeHost string
	realtimeKey  string

	Auth            *AuthService
	Invoices        *InvoicesService
	TransportOrders *TransportOrdersService
	Loads           *LoadsService
	Vehicles        *VehiclesService
	Trips           *TripsService
	Quotes          *QuotesService
	Devices         *DevicesService
}

// New creates a [Client] for the tenant API at baseURL.
//
// The base URL is the tenant's API origin without the /api/v1 prefix, for
// example "https://api.acme.loggerise.com". Options have sensible defaults:
//   - Request timeout: 15 seconds
//   - Token storage: in-memory [MemoryTokenStore]
//   - Logger: [slog.Default]
//
// Returns an error if the base URL is not an absolute http(s) URL or if any
// option is invalid.
//
// Example:
//
//	client, err := loggerise.New("https://api.acme.loggerise.com",
//	    loggerise.WithTimeout(30 * time.Second),
//	    loggerise.WithTokenStore(store),
//	)
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute, got %q", baseURL)
	}

	cfg := &clientConfig{
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens := cfg.tokens
	if tokens == nil {
		tokens = NewMemoryTokenStore(cfg.token)
	}

	httpClient := cfg.httpClient
	ownsClient := false
	if httpClient == nil {
		httpClient = &http.Client{
			// no global timeout - timeouts are applied per request via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				DisableKeepAlives:   false, // explicitly enable connection reuse
			},
		}
		ownsClient = true
	}

	c := &Client{
		baseURL:      u,
		httpClient:   httpClient,
		ownsClient:   ownsClient,
		timeout:      cfg.timeout,
		userAgent:    cfg.userAgent,
		logger:       logger,
		tokens:       tokens,
		realtimeHost: cfg.realtimeHost,
		realtimeKey:  cfg.realtimeKey,
	}

	c.Auth = &AuthService{c: c}
	c.Invoices = &InvoicesService{c: c}
	c.TransportOrders = &TransportOrdersService{c: c}
	c.Loads = &LoadsService{c: c}
	c.Vehicles = &VehiclesService{c: c}
	c.Trips = &TripsService{c: c}
	c.Quotes = &QuotesService{c: c}
	c.Devices = &DevicesService{c: c}

	return c, nil
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Timeout returns the per-request timeout applied to API calls.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Authenticated reports whether the client currently holds a bearer token.
//
// It does not verify the token against the API; use [AuthService.Me] for
// that.
func (c *Client) Authenticated() bool {
	return c.tokens.Token() != ""
}

// Close releases idle connections held by the client's connection pool.
//
// Close only affects the pool when the client owns its *http.Client; a
// client injected via [WithHTTPClient] is left untouched. Safe to call
// multiple times. After Close the client remains usable and new connections
// are established as needed.
func (c *Client) Close() {
	if c == nil || !c.ownsClient {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// get performs a GET request against path and decodes the JSON response
// into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post performs a POST request with in as the JSON body, decoding the
// response into out. Either may be nil.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

// put performs a PUT request with in as the JSON body, decoding the
// response into out.
func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}

// del performs a DELETE request against path.
func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do executes one API request. The configured timeout is applied on top of
// ctx, bodies are read with a 1MB cap, and any response with status >= 400
// is decoded into an [*Error] at this boundary.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, query, in)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	c.logger.Debug("api request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
		"request_id", req.Header.Get(headerRequestID),
	)

	if resp.StatusCode >= 400 {
		return c.decodeError(resp, body)
	}
	if out == nil || len(body) == 0 || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// download fetches a binary document (e.g. an invoice PDF) from path.
// Error responses still arrive as JSON and go through the usual decoding.
func (c *Client) download(ctx context.Context, path, accept string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		return nil, c.decodeError(resp, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBodySize))
	if err != nil {
		return nil, fmt.Errorf("GET %s: read document: %w", path, err)
	}
	return body, nil
}

// newRequest builds an API request with the standard headers. Every request
// carries a fresh X-Request-Id so failures can be correlated with server
// logs.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, in any) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerRequestID, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// decodeError turns a failed response into an [*Error]. Classification
// happens here and nowhere else: auth failures that arrive with a mangled
// status but a recognizable guard body are normalized to 401 so callers can
// rely on [IsUnauthorized] alone.
func (c *Client) decodeError(resp *http.Response, body []byte) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get(headerRequestID),
	}

	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil {
		apiErr.Message = env.Message
		if apiErr.Message == "" {
			apiErr.Message = env.ErrText
		}
		apiErr.Fields = env.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = truncate(strings.TrimSpace(string(body)), 200)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	if apiErr.StatusCode != http.StatusUnauthorized && isAuthBodyText(apiErr.Message) {
		apiErr.StatusCode = http.StatusUnauthorized
	}
	return apiErr
}

// truncate limits s to max runes, appending an ellipsis marker when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
