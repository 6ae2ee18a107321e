package config

import (
	"testing"
	"time"

	"github.com/Futurecode-Software/loggerise-go"
)

func TestBuildClient(t *testing.T) {
	t.Setenv("LOGGERISE_TOKEN", "tok_env")

	c, err := BuildClient(Profile{
		BaseURL:      "https://acme.loggerise.test",
		Token:        "${LOGGERISE_TOKEN}",
		RealtimeHost: "ws.loggerise.test:6001",
		RealtimeKey:  "acme-key",
		Timeout:      Duration(20 * time.Second),
	})
	if err != nil {
		t.Fatalf("BuildClient() error = %v", err)
	}
	defer c.Close()

	if got := c.BaseURL(); got != "https://acme.loggerise.test" {
		t.Errorf("BaseURL() = %q", got)
	}
	if got := c.Timeout(); got != 20*time.Second {
		t.Errorf("Timeout() = %v, want 20s", got)
	}
	if !c.Authenticated() {
		t.Error("Authenticated() = false, want true with a token")
	}
}

func TestBuildClient_InvalidProfile(t *testing.T) {
	if _, err := BuildClient(Profile{}); err == nil {
		t.Error("BuildClient() with empty profile succeeded, want error")
	}
	if _, err := BuildClient(Profile{BaseURL: "ftp://x"}); err == nil {
		t.Error("BuildClient() with ftp base_url succeeded, want error")
	}
}

func TestBuildClient_ExtraOptionsWin(t *testing.T) {
	c, err := BuildClient(
		Profile{BaseURL: "http://localhost:8080", Timeout: Duration(5 * time.Second)},
		loggerise.WithTimeout(time.Second),
	)
	if err != nil {
		t.Fatalf("BuildClient() error = %v", err)
	}
	defer c.Close()

	if got := c.Timeout(); got != time.Second {
		t.Errorf("Timeout() = %v, want the extra option's 1s", got)
	}
}

func TestTokenStore_Persistence(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	f := &File{Profiles: make(map[string]Profile)}
	f.Set("acme", Profile{BaseURL: "https://acme.loggerise.test"})
	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	store, err := NewTokenStore("acme")
	if err != nil {
		t.Fatalf("NewTokenStore() error = %v", err)
	}
	if got := store.Token(); got != "" {
		t.Errorf("Token() = %q on a fresh profile, want empty", got)
	}

	if err := store.SetToken("tok_123"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if got := store.Token(); got != "tok_123" {
		t.Errorf("Token() = %q, want tok_123", got)
	}

	// the token survives into a fresh load
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.Profiles["acme"].Token; got != "tok_123" {
		t.Errorf("persisted token = %q, want tok_123", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	loaded, err = Load()
	if err != nil {
		t.Fatalf("Load() after Clear error = %v", err)
	}
	if got := loaded.Profiles["acme"].Token; got != "" {
		t.Errorf("token after Clear = %q, want empty", got)
	}
}

func TestNewTokenStore_MissingProfile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := NewTokenStore("ghost"); err == nil {
		t.Error("NewTokenStore(ghost) succeeded, want error")
	}
}

func TestTokenStore_EnvReference(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LOGGERISE_TOKEN", "tok_env")

	f := &File{Profiles: make(map[string]Profile)}
	f.Set("acme", Profile{BaseURL: "http://x", Token: "${LOGGERISE_TOKEN}"})
	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	store, err := NewTokenStore("acme")
	if err != nil {
		t.Fatalf("NewTokenStore() error = %v", err)
	}
	if got := store.Token(); got != "tok_env" {
		t.Errorf("Token() = %q, want the env value", got)
	}
}
