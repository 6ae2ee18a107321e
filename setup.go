package loggerise

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Futurecode-Software/loggerise-go/internal/setup"
)

// SetupState is the tenant provisioning state reported by the platform.
type SetupState string

const (
	// SetupStateSettingUp means the tenant backend is still being built.
	SetupStateSettingUp SetupState = "setting_up"

	// SetupStateActive means provisioning finished and the tenant is
	// usable.
	SetupStateActive SetupState = "active"

	// SetupStateFailed means provisioning failed server-side.
	SetupStateFailed SetupState = "failed"

	// SetupStateUnknown covers states this client version does not
	// recognize; treat it as still provisioning.
	SetupStateUnknown SetupState = "unknown"
)

// String returns the string representation of the state.
func (s SetupState) String() string {
	return string(s)
}

// UnmarshalJSON normalizes wire values through the recognized set, so an
// unknown state from a newer server decodes as [SetupStateUnknown] rather
// than leaking raw strings into comparisons.
func (s *SetupState) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = SetupState(setup.ParseState(raw))
	return nil
}

// SetupOutcome is the terminal resolution of a setup watch session. The
// zero value means the session has not resolved.
type SetupOutcome string

const (
	// SetupOutcomeNone is the zero value: no resolution yet, or a
	// session cut short by [SetupWatcher.Stop].
	SetupOutcomeNone SetupOutcome = ""

	// SetupReady means the tenant reported active.
	SetupReady SetupOutcome = "ready"

	// SetupFailed means the tenant reported a provisioning failure.
	SetupFailed SetupOutcome = "failed"

	// SetupTimedOut means the attempt ceiling passed without resolution.
	// The tenant may still be provisioning; starting a new watch is
	// safe.
	SetupTimedOut SetupOutcome = "timed_out"

	// SetupAuthExpired means a poll was rejected as unauthenticated.
	// The client's token store has been cleared by the time this
	// outcome is observable.
	SetupAuthExpired SetupOutcome = "auth_expired"
)

// String returns the string representation of the outcome.
func (o SetupOutcome) String() string {
	return string(o)
}

// Terminal reports whether the outcome resolves a session.
func (o SetupOutcome) Terminal() bool {
	return o != SetupOutcomeNone
}

// SetupStatus is one response from the tenant setup-status endpoint.
type SetupStatus struct {
	// State is the provisioning state, normalized to the recognized set.
	State SetupState

	// Message is the server's progress description, when given.
	Message string

	// EstimatedTime is the server's human-readable completion estimate,
	// when given.
	EstimatedTime string

	// RetryAfter is the server-directed gap before the next poll, zero
	// when the server left pacing to the client.
	RetryAfter time.Duration

	// Reason is the failure explanation when State is
	// [SetupStateFailed].
	Reason string
}

// SetupStep is one entry of the provisioning checklist.
type SetupStep struct {
	Name      string
	Completed bool
	Current   bool
}

// SetupUpdate is one progress emission from a [SetupWatcher]. One update
// arrives per poll cycle, plus a final one with Terminal set.
type SetupUpdate struct {
	// Attempt is the number of unresolved polls so far.
	Attempt int

	// State is the last reported provisioning state.
	State SetupState

	// Steps is the rendered milestone checklist for this point of the
	// session.
	Steps []SetupStep

	// Message is the server's progress or terminal description.
	Message string

	// EstimatedTime is the server's completion estimate, when given.
	EstimatedTime string

	// Terminal marks the final update of the session.
	Terminal bool

	// Outcome is set on the terminal update.
	Outcome SetupOutcome
}

// SetupResult is the resolution of a finished watch session.
type SetupResult struct {
	Outcome SetupOutcome

	// Message is the user-facing terminal text: the server's failure
	// explanation verbatim when one was given, a stock message
	// otherwise.
	Message string
}

// setupStatusEnvelope is the wire shape of the setup-status endpoint.
type setupStatusEnvelope struct {
	SetupStatus   string `json:"setup_status"`
	Message       string `json:"message"`
	EstimatedTime string `json:"estimated_time"`
	RetryAfter    int    `json:"retry_after"`
	Error         string `json:"error"`
}

// SetupStatus fetches the tenant's provisioning state once. Most callers
// want [Client.WatchSetup] instead, which owns the retry cadence.
//
// Returns [ErrNotAuthenticated] without calling the API when the client
// holds no token.
func (c *Client) SetupStatus(ctx context.Context) (*SetupStatus, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	st, err := c.fetchSetupStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &SetupStatus{
		State:         SetupState(st.State),
		Message:       st.Message,
		EstimatedTime: st.EstimatedTime,
		RetryAfter:    st.RetryAfter,
		Reason:        st.Reason,
	}, nil
}

// fetchSetupStatus performs one status request in the engine's terms.
func (c *Client) fetchSetupStatus(ctx context.Context) (setup.Status, error) {
	var env setupStatusEnvelope
	if err := c.get(ctx, "/api/v1/tenant/setup-status", nil, &env); err != nil {
		return setup.Status{}, err
	}
	return setup.Status{
		State:         setup.ParseState(env.SetupStatus),
		Message:       env.Message,
		EstimatedTime: env.EstimatedTime,
		RetryAfter:    time.Duration(env.RetryAfter) * time.Second,
		Reason:        env.Error,
	}, nil
}

// setupConfig holds mutable state during SetupWatcher construction.
type setupConfig struct {
	interval      time.Duration
	maxAttempts   int
	onReady       func()
	onAuthExpired func()
}

// SetupOption configures a [SetupWatcher] created by [Client.WatchSetup].
type SetupOption func(*setupConfig) error

// WithPollInterval sets the gap between polls, barring a server-directed
// override. Defaults to 5 seconds. Returns an error if the duration is
// zero or negative.
func WithPollInterval(d time.Duration) SetupOption {
	return func(cfg *setupConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithMaxAttempts sets the unresolved-poll ceiling after which the session
// resolves [SetupTimedOut]. Defaults to 60. Returns an error if n is zero
// or negative.
func WithMaxAttempts(n int) SetupOption {
	return func(cfg *setupConfig) error {
		if n <= 0 {
			return errors.New("max attempts must be positive")
		}
		cfg.maxAttempts = n
		return nil
	}
}

// WithOnReady registers a function run once when the session resolves
// [SetupReady], typically to refresh cached session state. The callback
// runs on the watch goroutine after the terminal update is emitted; panics
// are recovered and logged.
func WithOnReady(fn func()) SetupOption {
	return func(cfg *setupConfig) error {
		cfg.onReady = fn
		return nil
	}
}

// WithOnAuthExpired registers a function run once when the session
// resolves [SetupAuthExpired], typically to send the user back to sign-in.
// It runs after the client's token store has been cleared; same contract
// as [WithOnReady] otherwise.
func WithOnAuthExpired(fn func()) SetupOption {
	return func(cfg *setupConfig) error {
		cfg.onAuthExpired = fn
		return nil
	}
}

// SetupWatcher follows tenant provisioning to its terminal outcome.
//
// A watcher runs one session: strictly sequential polls of the setup
// status, progress updates per cycle, and exactly one terminal resolution.
// Create it with [Client.WatchSetup], drive it with [SetupWatcher.Start]
// and [SetupWatcher.Stop], observe it via [SetupWatcher.Updates] or
// [SetupWatcher.Done] plus [SetupWatcher.Result].
//
// A watcher cannot be reused; create a new one to poll again after a
// timeout or failure.
type SetupWatcher struct {
	poller  *setup.Poller
	updates chan SetupUpdate

	pumpOnce sync.Once
}

// WatchSetup creates a [SetupWatcher] for the tenant's provisioning.
//
// Returns [ErrNotAuthenticated] when the client holds no token: the status
// endpoint is tenant-scoped, so an unauthenticated watch could never
// succeed.
//
// If provisioning later rejects the token mid-session, the session
// resolves [SetupAuthExpired] and the client's token store is cleared
// before any [WithOnAuthExpired] callback runs.
func (c *Client) WatchSetup(opts ...SetupOption) (*SetupWatcher, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	cfg := &setupConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	onAuthExpired := func() {
		if err := c.tokens.Clear(); err != nil {
			c.logger.Error("failed to clear token store after auth expiry", "error", err)
		}
		if cfg.onAuthExpired != nil {
			cfg.onAuthExpired()
		}
	}

	p, err := setup.New(setup.Config{
		Fetch:         c.fetchSetupStatus,
		IsAuthError:   IsUnauthorized,
		Interval:      cfg.interval,
		MaxAttempts:   cfg.maxAttempts,
		Logger:        c.logger,
		OnReady:       cfg.onReady,
		OnAuthExpired: onAuthExpired,
	})
	if err != nil {
		return nil, err
	}

	maxAttempts := cfg.maxAttempts
	if maxAttempts == 0 {
		maxAttempts = setup.DefaultMaxAttempts
	}
	return &SetupWatcher{
		poller:  p,
		updates: make(chan SetupUpdate, maxAttempts+2),
	}, nil
}

// Start begins the watch session in the background. The first poll is sent
// immediately. Start is non-blocking and idempotent; cancelling ctx ends
// the session without a terminal outcome.
func (w *SetupWatcher) Start(ctx context.Context) {
	w.pumpOnce.Do(func() {
		w.poller.Start(ctx)
		go func() {
			defer close(w.updates)
			for u := range w.poller.Updates() {
				w.updates <- publicUpdate(u)
			}
		}()
	})
}

// Stop ends the session. A response already in flight is discarded: no
// terminal update is emitted, no callback runs, and [SetupWatcher.Result]
// stays unresolved. Stop is idempotent and safe before Start.
func (w *SetupWatcher) Stop() {
	w.poller.Stop()
	// if Start never ran there is no pump to close the public channel
	w.pumpOnce.Do(func() { close(w.updates) })
}

// Updates returns the progress channel. It is buffered for a full session
// and closed after the terminal update (or after Stop), so it may be
// drained after the fact.
func (w *SetupWatcher) Updates() <-chan SetupUpdate {
	return w.updates
}

// Done returns a channel closed once the session has ended, whether by
// resolution or by Stop.
func (w *SetupWatcher) Done() <-chan struct{} {
	return w.poller.Done()
}

// Result returns the session's resolution. The outcome is
// [SetupOutcomeNone] while the session runs and after a stopped session.
func (w *SetupWatcher) Result() SetupResult {
	r := w.poller.Result()
	return SetupResult{
		Outcome: publicOutcome(r.Outcome),
		Message: r.Message,
	}
}

// publicUpdate converts an engine update into the exported shape,
// expanding the milestone checklist.
func publicUpdate(u setup.Update) SetupUpdate {
	ms := setup.Milestones(u.Step, u.Outcome)
	steps := make([]SetupStep, len(ms))
	for i, m := range ms {
		steps[i] = SetupStep{Name: m.Name, Completed: m.Completed, Current: m.Current}
	}
	return SetupUpdate{
		Attempt:       u.Attempt,
		State:         SetupState(u.State),
		Steps:         steps,
		Message:       u.Message,
		EstimatedTime: u.EstimatedTime,
		Terminal:      u.Terminal,
		Outcome:       publicOutcome(u.Outcome),
	}
}

func publicOutcome(o setup.Outcome) SetupOutcome {
	switch o {
	case setup.OutcomeReady:
		return SetupReady
	case setup.OutcomeFailed:
		return SetupFailed
	case setup.OutcomeTimedOut:
		return SetupTimedOut
	case setup.OutcomeAuthExpired:
		return SetupAuthExpired
	default:
		return SetupOutcomeNone
	}
}
