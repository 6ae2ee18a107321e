package loggerise

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// clientConfig holds mutable state during Client construction.
type clientConfig struct {
	httpClient   *http.Client
	timeout      time.Duration
	userAgent    string
	logger       *slog.Logger
	token        string
	tokens       TokenStore
	realtimeHost string
	realtimeKey  string
}

// Option is a function that configures a [Client] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithHTTPClient], [WithTimeout], [WithUserAgent],
// [WithLogger], [WithToken], [WithTokenStore], [WithRealtime].
type Option func(*clientConfig) error

// WithHTTPClient sets a custom *http.Client for API requests.
//
// Use this to inject proxies, custom TLS configuration, or instrumented
// transports. The client's own Timeout field is left alone; per-request
// timeouts are still applied via context (see [WithTimeout]).
//
// Returns an error if the client is nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *clientConfig) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		cfg.httpClient = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout applied to every API call.
//
// The timeout is layered onto the caller's context, so a shorter context
// deadline still wins. Defaults to 15 seconds if not specified.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
//
// Defaults to "loggerise-go/<version>". Integrations that ship their own
// release cycle should append their identifier rather than replace it:
//
//	loggerise.WithUserAgent("loggerise-go/" + loggerise.Version + " acme-sync/2.3")
//
// Returns an error if the string is empty.
func WithUserAgent(ua string) Option {
	return func(cfg *clientConfig) error {
		if ua == "" {
			return errors.New("user agent cannot be empty")
		}
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the client.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	client, err := loggerise.New(baseURL, loggerise.WithLogger(logger))
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithToken seeds the client with an existing bearer token.
//
// The token is placed in an in-memory [MemoryTokenStore]. Use
// [WithTokenStore] instead when tokens must survive process restarts.
// Ignored if [WithTokenStore] is also given.
func WithToken(token string) Option {
	return func(cfg *clientConfig) error {
		cfg.token = token
		return nil
	}
}

// WithTokenStore sets the store the client reads bearer tokens from and
// writes them to after [AuthService.Login] and [AuthService.Register].
//
// Implementations must be safe for concurrent use. Returns an error if the
// store is nil.
func WithTokenStore(store TokenStore) Option {
	return func(cfg *clientConfig) error {
		if store == nil {
			return errors.New("token store cannot be nil")
		}
		cfg.tokens = store
		return nil
	}
}

// WithRealtime configures the websocket host and application key used by
// [Client.DialRealtime].
//
// The host is the bare authority of the websocket endpoint, for example
// "ws.loggerise.com" or "localhost:6001". Returns an error if either value
// is empty.
func WithRealtime(host, key string) Option {
	return func(cfg *clientConfig) error {
		if host == "" {
			return errors.New("realtime host cannot be empty")
		}
		if key == "" {
			return errors.New("realtime key cannot be empty")
		}
		cfg.realtimeHost = host
		cfg.realtimeKey = key
		return nil
	}
}
