package config

import (
	"fmt"
	"sync"

	"github.com/Futurecode-Software/loggerise-go"
)

// BuildClient constructs an SDK client from a profile.
//
// Environment references in the profile are resolved first, then the
// profile is validated. The token is seeded into the client's default
// in-memory store; pass loggerise.WithTokenStore (for example one from
// [NewTokenStore]) through extra to persist logins, or any other option
// to override what the profile set.
func BuildClient(p Profile, extra ...loggerise.Option) (*loggerise.Client, error) {
	rp, err := p.Expand()
	if err != nil {
		return nil, err
	}
	if err := rp.Validate(); err != nil {
		return nil, err
	}

	var opts []loggerise.Option
	if rp.Token != "" {
		opts = append(opts, loggerise.WithToken(rp.Token))
	}
	if rp.Timeout != 0 {
		opts = append(opts, loggerise.WithTimeout(rp.Timeout.Duration()))
	}
	if rp.RealtimeHost != "" {
		opts = append(opts, loggerise.WithRealtime(rp.RealtimeHost, rp.RealtimeKey))
	}
	opts = append(opts, extra...)

	return loggerise.New(rp.BaseURL, opts...)
}

// fileTokenStore persists a profile's token in the config file, so a
// login from one CLI invocation survives into the next.
type fileTokenStore struct {
	mu      sync.Mutex
	profile string
	token   string
}

// NewTokenStore returns a loggerise.TokenStore backed by the named
// profile in the config file. Token writes re-read the file before
// saving so concurrent edits to other profiles are not clobbered.
func NewTokenStore(profile string) (loggerise.TokenStore, error) {
	f, err := Load()
	if err != nil {
		return nil, err
	}
	p, ok := f.Profiles[profile]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", profile)
	}
	return &fileTokenStore{profile: profile, token: p.Token}, nil
}

// Token returns the current token. A token stored as an environment
// reference resolves on every read; an unresolvable reference reads as
// no token.
func (s *fileTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	expanded, err := expandEnv(s.token)
	if err != nil {
		return ""
	}
	return expanded
}

// SetToken stores the token on the profile and saves the file.
func (s *fileTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(token)
}

// Clear removes the profile's token and saves the file.
func (s *fileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write("")
}

// write persists token against a fresh read of the file. Caller holds mu.
func (s *fileTokenStore) write(token string) error {
	f, err := Load()
	if err != nil {
		return err
	}
	p, ok := f.Profiles[s.profile]
	if !ok {
		return fmt.Errorf("profile %q no longer exists", s.profile)
	}
	p.Token = token
	f.Profiles[s.profile] = p
	if err := f.Save(); err != nil {
		return err
	}
	s.token = token
	return nil
}
