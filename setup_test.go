package loggerise

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// setupHandler serves the setup-status endpoint from a scripted sequence
// of JSON bodies, repeating the last entry once exhausted.
func setupHandler(t *testing.T, calls *atomic.Int32, bodies ...string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tenant/setup-status" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("setup-status request missing Authorization header")
		}
		n := int(calls.Add(1))
		if n > len(bodies) {
			n = len(bodies)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bodies[n-1]))
	})
}

// TestClient_SetupStatus verifies the one-shot status call, including the
// seconds-to-duration conversion of the server's retry directive.
func TestClient_SetupStatus(t *testing.T) {
	var calls atomic.Int32
	handler := setupHandler(t, &calls,
		`{"setup_status": "setting_up", "message": "Creating tenant database", "estimated_time": "2 minutes", "retry_after": 2}`,
	)

	c := newTestClient(t, handler, WithToken("tok"))
	status, err := c.SetupStatus(context.Background())
	if err != nil {
		t.Fatalf("SetupStatus() error = %v", err)
	}

	if status.State != SetupStateSettingUp {
		t.Errorf("State = %q, want setting_up", status.State)
	}
	if status.Message != "Creating tenant database" {
		t.Errorf("Message = %q, want server message", status.Message)
	}
	if status.EstimatedTime != "2 minutes" {
		t.Errorf("EstimatedTime = %q, want server estimate", status.EstimatedTime)
	}
	if status.RetryAfter != 2*time.Second {
		t.Errorf("RetryAfter = %v, want 2s", status.RetryAfter)
	}
}

// TestClient_SetupStatusRequiresToken verifies both the one-shot call and
// the watcher constructor refuse to run signed out.
func TestClient_SetupStatusRequiresToken(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	c := newTestClient(t, handler)

	if _, err := c.SetupStatus(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("SetupStatus() error = %v, want ErrNotAuthenticated", err)
	}
	if _, err := c.WatchSetup(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("WatchSetup() error = %v, want ErrNotAuthenticated", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

// TestSetupWatcher_ProvisioningFlow verifies a full watch session over the
// wire: progress updates while setting_up, then a ready resolution with
// the checklist completed and the OnReady hook fired.
func TestSetupWatcher_ProvisioningFlow(t *testing.T) {
	var calls atomic.Int32
	handler := setupHandler(t, &calls,
		`{"setup_status": "setting_up", "message": "Creating tenant account"}`,
		`{"setup_status": "setting_up", "message": "Creating tenant database", "estimated_time": "1 minute"}`,
		`{"setup_status": "active"}`,
	)

	readyRan := make(chan struct{}, 1)
	c := newTestClient(t, handler, WithToken("tok"))
	w, err := c.WatchSetup(
		WithPollInterval(time.Millisecond),
		WithOnReady(func() { readyRan <- struct{}{} }),
	)
	if err != nil {
		t.Fatalf("WatchSetup() error = %v", err)
	}

	w.Start(context.Background())
	defer w.Stop()

	var updates []SetupUpdate
	timeout := time.After(10 * time.Second)
collecting:
	for {
		select {
		case u, ok := <-w.Updates():
			if !ok {
				break collecting
			}
			updates = append(updates, u)
		case <-timeout:
			t.Fatal("timeout waiting for updates channel to close")
		}
	}

	if len(updates) != 3 {
		t.Fatalf("got %d updates, want 3 (2 progress + terminal)", len(updates))
	}
	if updates[0].Message != "Creating tenant account" {
		t.Errorf("first update Message = %q, want server message", updates[0].Message)
	}
	if updates[1].EstimatedTime != "1 minute" {
		t.Errorf("second update EstimatedTime = %q, want server estimate", updates[1].EstimatedTime)
	}

	final := updates[2]
	if !final.Terminal || final.Outcome != SetupReady {
		t.Fatalf("final update = %+v, want terminal ready", final)
	}
	if len(final.Steps) != 4 {
		t.Fatalf("final update has %d steps, want 4", len(final.Steps))
	}
	for i, step := range final.Steps {
		if !step.Completed {
			t.Errorf("step %d (%s) not completed after ready", i, step.Name)
		}
	}

	if got := w.Result(); got.Outcome != SetupReady {
		t.Errorf("Result().Outcome = %q, want ready", got.Outcome)
	}

	select {
	case <-readyRan:
	case <-time.After(time.Second):
		t.Error("OnReady hook never ran")
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("server saw %d polls, want 3", n)
	}
}

// TestSetupWatcher_FailedSurfacesServerReason verifies a failed tenant
// resolves the session with the server's explanation verbatim.
func TestSetupWatcher_FailedSurfacesServerReason(t *testing.T) {
	var calls atomic.Int32
	handler := setupHandler(t, &calls,
		`{"setup_status": "failed", "error": "Provisioning quota exceeded"}`,
	)

	c := newTestClient(t, handler, WithToken("tok"))
	w, err := c.WatchSetup(WithPollInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("WatchSetup() error = %v", err)
	}

	w.Start(context.Background())
	select {
	case <-w.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for session to end")
	}

	got := w.Result()
	if got.Outcome != SetupFailed {
		t.Fatalf("Result().Outcome = %q, want failed", got.Outcome)
	}
	if got.Message != "Provisioning quota exceeded" {
		t.Errorf("Result().Message = %q, want the server reason verbatim", got.Message)
	}
}

// TestSetupWatcher_AuthExpiryClearsToken verifies a 401 mid-session
// resolves auth_expired, wipes the token store, and fires the hook, all
// without a retry.
func TestSetupWatcher_AuthExpiryClearsToken(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Unauthenticated."}`))
	})

	expiredRan := make(chan struct{}, 1)
	c := newTestClient(t, handler, WithToken("tok_stale"))
	w, err := c.WatchSetup(
		WithPollInterval(time.Millisecond),
		WithOnAuthExpired(func() {
			if c.Authenticated() {
				t.Error("token store still holds a token inside OnAuthExpired")
			}
			expiredRan <- struct{}{}
		}),
	)
	if err != nil {
		t.Fatalf("WatchSetup() error = %v", err)
	}

	w.Start(context.Background())
	select {
	case <-w.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for session to end")
	}
	time.Sleep(20 * time.Millisecond)

	if got := w.Result(); got.Outcome != SetupAuthExpired {
		t.Fatalf("Result().Outcome = %q, want auth_expired", got.Outcome)
	}
	if c.Authenticated() {
		t.Error("Authenticated() = true after auth expiry, want false")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server saw %d polls, want 1 (auth errors must not retry)", n)
	}
	select {
	case <-expiredRan:
	case <-time.After(time.Second):
		t.Error("OnAuthExpired hook never ran")
	}
}

// TestSetupWatcher_TimesOut verifies the attempt ceiling resolves the
// session as timed_out with a stock message.
func TestSetupWatcher_TimesOut(t *testing.T) {
	var calls atomic.Int32
	handler := setupHandler(t, &calls,
		`{"setup_status": "setting_up"}`,
	)

	c := newTestClient(t, handler, WithToken("tok"))
	w, err := c.WatchSetup(
		WithPollInterval(time.Millisecond),
		WithMaxAttempts(5),
	)
	if err != nil {
		t.Fatalf("WatchSetup() error = %v", err)
	}

	w.Start(context.Background())
	select {
	case <-w.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for session to end")
	}

	got := w.Result()
	if got.Outcome != SetupTimedOut {
		t.Fatalf("Result().Outcome = %q, want timed_out", got.Outcome)
	}
	if got.Message == "" {
		t.Error("Result().Message is empty, want a stock timeout message")
	}
	if n := calls.Load(); n != 5 {
		t.Errorf("server saw %d polls, want exactly the 5-attempt ceiling", n)
	}
}

// TestSetupWatcher_StopBeforeStart verifies the public lifecycle mirrors
// the engine's: stop first, and a later start polls nothing.
func TestSetupWatcher_StopBeforeStart(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = fmt.Fprint(w, `{"setup_status": "setting_up"}`)
	})

	c := newTestClient(t, handler, WithToken("tok"))
	w, err := c.WatchSetup()
	if err != nil {
		t.Fatalf("WatchSetup() error = %v", err)
	}

	w.Stop()
	w.Start(context.Background())
	w.Stop()

	if _, ok := <-w.Updates(); ok {
		t.Error("updates channel still open after Stop")
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server saw %d polls after stop-then-start, want 0", n)
	}
	if got := w.Result(); got.Outcome != SetupOutcomeNone {
		t.Errorf("Result().Outcome = %q, want unresolved", got.Outcome)
	}
}

// TestSetupWatcher_OptionValidation verifies watcher option validation.
func TestSetupWatcher_OptionValidation(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler(), WithToken("tok"))

	if _, err := c.WatchSetup(WithPollInterval(0)); err == nil {
		t.Error("WithPollInterval(0) accepted, want error")
	}
	if _, err := c.WatchSetup(WithMaxAttempts(-1)); err == nil {
		t.Error("WithMaxAttempts(-1) accepted, want error")
	}
}

// TestSetupOutcome_Terminal verifies the exported outcome predicate.
func TestSetupOutcome_Terminal(t *testing.T) {
	if SetupOutcomeNone.Terminal() {
		t.Error("SetupOutcomeNone.Terminal() = true, want false")
	}
	for _, o := range []SetupOutcome{SetupReady, SetupFailed, SetupTimedOut, SetupAuthExpired} {
		if !o.Terminal() {
			t.Errorf("%q.Terminal() = false, want true", o)
		}
	}
}
