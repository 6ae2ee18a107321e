package loggerise

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrNotAuthenticated is returned by operations that require a bearer token
// when the client has none, before any request is made.
var ErrNotAuthenticated = errors.New("loggerise: client is not authenticated")

// Error is an API failure response. Every non-2xx response is decoded into
// an Error at the transport boundary, so callers branch on StatusCode (or
// the Is* helpers) and never have to parse message text.
type Error struct {
	// StatusCode is the HTTP status the failure was classified as. Auth
	// failures always carry 401 here, even when an upstream proxy mangled
	// the original status; see [IsUnauthorized].
	StatusCode int

	// Message is the human-readable error message from the API, or the
	// standard text for StatusCode when the body carried none.
	Message string

	// Fields holds per-field validation messages for 422 responses,
	// keyed by input field name.
	Fields map[string][]string

	// RequestID is the X-Request-Id header of the failed request, when
	// present. Include it when reporting problems to Loggerise support.
	RequestID string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "loggerise: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, " (invalid: %s)", strings.Join(names, ", "))
	}
	return b.String()
}

// IsUnauthorized reports whether err is an API error classified as
// authentication failure. The classification happens once, when the response
// is decoded: a 401 status, or a recognizable Laravel guard body behind a
// broken proxy status, both end up here with StatusCode 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is an API error with status 422. The
// per-field messages are available via [Error.Fields].
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity
}

// errorEnvelope is the wire shape of Laravel API error bodies. Some
// endpoints use "message", older ones "error"; validation failures add a
// map of per-field messages.
type errorEnvelope struct {
	Message string              `json:"message"`
	ErrText string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

// isAuthBodyText reports whether msg is one of the bodies Laravel auth
// guards emit, sometimes with a misleading status when fronted by certain
// proxies. Matches are normalized to 401 during decoding so nothing above
// the transport inspects strings.
func isAuthBodyText(msg string) bool {
	if strings.EqualFold(strings.TrimSuffix(msg, "."), "unauthenticated") {
		return true
	}
	if strings.EqualFold(msg, "unauthorized") {
		return true
	}
	return strings.Contains(msg, "401")
}
