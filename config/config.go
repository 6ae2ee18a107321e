// Package config handles CLI profile configuration for connecting to
// Loggerise tenants.
//
// Profiles are stored at $XDG_CONFIG_HOME/loggerise/config.yaml (defaults
// to ~/.config/loggerise/config.yaml) and follow the kubeconfig pattern:
// named profiles with a current-profile selector.
//
// Example configuration:
//
//	current-profile: acme
//	profiles:
//	  acme:
//	    base_url: https://acme.loggerise.com
//	    email: dispatcher@acme.test
//	    token: ${LOGGERISE_TOKEN}
//	    realtime_host: ws.loggerise.com:443
//	    realtime_key: acme-app-key
//	    timeout: 15s
//
// String values support environment variable references, expanded when a
// profile is resolved, never when the file is written back. ${VAR} fails
// if VAR is unset; ${VAR:-default} falls back.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile describes how to connect to one Loggerise tenant.
type Profile struct {
	// BaseURL is the tenant's API origin, e.g.
	// "https://acme.loggerise.com". Required before the profile can build
	// a client.
	BaseURL string `yaml:"base_url"`

	// Email is the account signed in on this profile, informational.
	Email string `yaml:"email,omitempty"`

	// Token is the bearer token. May reference an environment variable,
	// e.g. ${LOGGERISE_TOKEN}, to keep the secret out of the file.
	Token string `yaml:"token,omitempty"`

	// RealtimeHost and RealtimeKey configure the websocket endpoint.
	// Both must be set for realtime features.
	RealtimeHost string `yaml:"realtime_host,omitempty"`
	RealtimeKey  string `yaml:"realtime_key,omitempty"`

	// Timeout overrides the per-request timeout. Accepts duration
	// strings like "15s", "1m".
	Timeout Duration `yaml:"timeout,omitempty"`
}

// Expand returns a copy of the profile with environment variable
// references resolved in every string field.
func (p Profile) Expand() (Profile, error) {
	fields := []struct {
		name string
		dst  *string
	}{
		{"base_url", &p.BaseURL},
		{"token", &p.Token},
		{"realtime_host", &p.RealtimeHost},
		{"realtime_key", &p.RealtimeKey},
	}
	for _, f := range fields {
		expanded, err := expandEnv(*f.dst)
		if err != nil {
			return Profile{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = expanded
	}
	return p, nil
}

// Validate checks the resolved profile is usable: a base_url with an
// http or https scheme, and realtime settings either complete or absent.
func (p Profile) Validate() error {
	if p.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", u.Scheme)
	}
	if (p.RealtimeHost == "") != (p.RealtimeKey == "") {
		return errors.New("realtime_host and realtime_key must be set together")
	}
	if p.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", p.Timeout.Duration())
	}
	return nil
}

// File holds named profiles and the current selection.
type File struct {
	CurrentProfile string             `yaml:"current-profile"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Path returns the config file location. It respects XDG_CONFIG_HOME,
// falling back to ~/.config/loggerise/config.yaml.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "loggerise", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "loggerise", "config.yaml")
}

// Load reads the config file. A missing file yields an empty File, not
// an error.
func Load() (*File, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{Profiles: make(map[string]Profile)}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses config file contents. Environment references are left
// untouched; they resolve via [Profile.Expand].
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if f.Profiles == nil {
		f.Profiles = make(map[string]Profile)
	}
	return &f, nil
}

// Save writes the config to disk, creating directories as needed. The
// file is written with owner-only permissions because it may hold a
// token.
func (f *File) Save() error {
	p := Path()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Current returns the current profile name and value. The bool is false
// when no current profile is set or it names a missing profile.
func (f *File) Current() (string, Profile, bool) {
	if f.CurrentProfile == "" {
		return "", Profile{}, false
	}
	p, ok := f.Profiles[f.CurrentProfile]
	if !ok {
		return "", Profile{}, false
	}
	return f.CurrentProfile, p, true
}

// Use sets the current profile. It returns an error if the name doesn't
// exist.
func (f *File) Use(name string) error {
	if _, ok := f.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	f.CurrentProfile = name
	return nil
}

// Set adds or updates a named profile. The first profile added becomes
// current.
func (f *File) Set(name string, p Profile) {
	f.Profiles[name] = p
	if f.CurrentProfile == "" {
		f.CurrentProfile = name
	}
}

// Remove deletes a profile. If it was the current profile,
// current-profile is cleared. Returns an error if the name doesn't exist.
func (f *File) Remove(name string) error {
	if _, ok := f.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(f.Profiles, name)
	if f.CurrentProfile == name {
		f.CurrentProfile = ""
	}
	return nil
}

// Duration wraps time.Duration for YAML round-tripping in human form
// ("15s" rather than nanoseconds).
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (any, error) {
	return d.Duration().String(), nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
// Group 1: variable name. Group 2: the ":-default" part when present.
// Group 3: the default value, possibly empty.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnv replaces ${VAR} and ${VAR:-default} references with
// environment values. A bare ${VAR} fails when VAR is unset.
func expandEnv(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		sub := envVarPattern.FindStringSubmatch(match)
		if len(sub) < 4 {
			return match
		}
		name, hasDefault, fallback := sub[1], sub[2] != "", sub[3]

		value, exists := os.LookupEnv(name)
		if !exists {
			if hasDefault {
				return fallback
			}
			firstErr = fmt.Errorf("environment variable %q is not set", name)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
