package loggerise

import (
	"context"
	"sync"
	"time"
)

// TokenStore supplies the bearer token attached to API requests and
// receives new tokens after sign-in.
//
// The client reads the token on every request, so implementations must be
// safe for concurrent use. A file-backed implementation for CLI use lives
// in the config package; the default is [MemoryTokenStore].
type TokenStore interface {
	// Token returns the current bearer token, or "" when signed out.
	Token() string

	// SetToken replaces the stored token.
	SetToken(token string) error

	// Clear removes the stored token.
	Clear() error
}

// MemoryTokenStore is a process-local [TokenStore]. Tokens do not survive
// restarts; use a persistent store for long-lived integrations.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates a [MemoryTokenStore] seeded with token,
// which may be empty.
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

// Token returns the stored token.
func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the stored token.
func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// User is a Loggerise account within a tenant.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Tenant is the company workspace the client is scoped to. SetupState
// stays [SetupStateSettingUp] while the platform provisions the tenant's
// backend; see [Client.WatchSetup].
type Tenant struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Subdomain  string     `json:"subdomain"`
	SetupState SetupState `json:"setup_status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Session is the result of a successful sign-in.
type Session struct {
	Token  string `json:"token"`
	User   User   `json:"user"`
	Tenant Tenant `json:"tenant"`
}

// Account is the authenticated user plus their tenant, as returned by
// [AuthService.Me].
type Account struct {
	User   User   `json:"user"`
	Tenant Tenant `json:"tenant"`
}

// LoginParams are the credentials for [AuthService.Login].
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// DeviceName labels the issued token in the tenant's device list,
	// e.g. "dispatch-desk" or "reporting-job".
	DeviceName string `json:"device_name"`
}

// RegisterParams creates a new tenant and its first (owner) user.
type RegisterParams struct {
	CompanyName          string `json:"company_name"`
	Subdomain            string `json:"subdomain"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	DeviceName           string `json:"device_name"`
}

// AuthService signs users in and out and manages the client's token.
type AuthService struct {
	c *Client
}

// Login exchanges credentials for a bearer token.
//
// On success the token is written to the client's [TokenStore], so
// subsequent calls on the same client are authenticated without further
// setup. Failed credentials surface as an [*Error] with status 422.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (*Session, error) {
	var session Session
	if err := s.c.post(ctx, "/api/v1/auth/login", params, &session); err != nil {
		return nil, err
	}
	if err := s.c.tokens.SetToken(session.Token); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates a new tenant together with its owner user and signs the
// owner in.
//
// The returned session's tenant starts in [SetupStateSettingUp]: the
// platform provisions the tenant account, database, and settings
// asynchronously.
// Use [Client.WatchSetup] to follow provisioning to completion before
// calling resource endpoints.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*Session, error) {
	var session Session
	if err := s.c.post(ctx, "/api/v1/auth/register", params, &session); err != nil {
		return nil, err
	}
	if err := s.c.tokens.SetToken(session.Token); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout revokes the current token server-side and clears the client's
// [TokenStore].
//
// The local token is cleared even when the server call fails, so the
// client always ends up signed out. A 401 from the server (token already
// dead) is not reported as an error.
func (s *AuthService) Logout(ctx context.Context) error {
	if s.c.tokens.Token() == "" {
		return nil
	}
	err := s.c.post(ctx, "/api/v1/auth/logout", nil, nil)
	if clearErr := s.c.tokens.Clear(); clearErr != nil {
		return clearErr
	}
	if err != nil && !IsUnauthorized(err) {
		return err
	}
	return nil
}

// ForgotPassword asks the platform to send a password-reset email. The
// call succeeds whether or not the address belongs to an account, so it
// cannot be used to probe for registered emails.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	in := struct {
		Email string `json:"email"`
	}{Email: email}
	return s.c.post(ctx, "/api/v1/auth/forgot-password", in, nil)
}

// Me returns the authenticated user and tenant. Returns
// [ErrNotAuthenticated] without calling the API when the client holds no
// token.
func (s *AuthService) Me(ctx context.Context) (*Account, error) {
	if s.c.tokens.Token() == "" {
		return nil, ErrNotAuthenticated
	}
	var account Account
	if err := s.c.get(ctx, "/api/v1/auth/me", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
