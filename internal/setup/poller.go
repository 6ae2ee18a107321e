package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaults for the poll cadence. The ceiling is attempt-based, not
// wall-clock: server-directed retry gaps stretch the session without
// consuming extra attempts.
const (
	DefaultInterval    = 5 * time.Second
	DefaultMaxAttempts = 60
)

// terminal messages used when the server supplies none.
const (
	readyMessage       = "Your workspace is ready."
	failedMessage      = "Tenant setup failed. Please contact support."
	timedOutMessage    = "Setup is taking longer than expected. Please try again later."
	authExpiredMessage = "Your session has expired. Please sign in again."
)

// Outcome is the terminal resolution of a poll session.
//
// Every started session ends in exactly one outcome other than
// [OutcomeNone]; outcomes are absorbing, so no poll activity follows them.
type Outcome int

const (
	// OutcomeNone means the session has not resolved yet.
	OutcomeNone Outcome = iota

	// OutcomeReady means the tenant reported active.
	OutcomeReady

	// OutcomeFailed means the tenant reported a provisioning failure.
	OutcomeFailed

	// OutcomeTimedOut means the attempt ceiling was reached without
	// resolution.
	OutcomeTimedOut

	// OutcomeAuthExpired means a poll was rejected as unauthenticated.
	OutcomeAuthExpired
)

// String returns the string representation of the outcome.
// This implements the fmt.Stringer interface.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeReady:
		return "ready"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeAuthExpired:
		return "auth_expired"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Terminal reports whether the outcome resolves a session.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// Update is one progress emission from a poll session.
//
// Consumers receive an Update per completed poll cycle plus a final one
// with Terminal set. Updates describe rendering state only; acting on the
// session's end belongs with [Poller.Result] and the configured callbacks.
type Update struct {
	// Attempt is the number of unresolved polls so far.
	Attempt int

	// State is the last reported provisioning state. [StateUnknown]
	// covers both unrecognized wire values and cycles that failed
	// transiently; render either as still provisioning.
	State State

	// Step is the current milestone index; see [StepIndex].
	Step int

	// Message is the server's progress or terminal description.
	Message string

	// EstimatedTime is the server's completion estimate, when given.
	EstimatedTime string

	// Terminal marks the final update of the session.
	Terminal bool

	// Outcome is set on the terminal update, [OutcomeNone] before.
	Outcome Outcome
}

// Result is the resolution of a finished session.
type Result struct {
	Outcome Outcome

	// Message is the user-facing terminal text: the server's failure
	// explanation verbatim when one was given, a stock message
	// otherwise.
	Message string
}

// Config assembles a [Poller]. Fetch is required; everything else has a
// default.
type Config struct {
	// Fetch performs one status request. It must honor ctx cancellation.
	Fetch func(ctx context.Context) (Status, error)

	// IsAuthError classifies a Fetch error as an authentication
	// rejection, which resolves the session as [OutcomeAuthExpired]
	// instead of retrying. Nil means no error is treated as one.
	IsAuthError func(err error) bool

	// Interval is the gap between polls, barring a server-directed
	// override. Defaults to [DefaultInterval].
	Interval time.Duration

	// MaxAttempts is the unresolved-poll ceiling. Defaults to
	// [DefaultMaxAttempts].
	MaxAttempts int

	// Logger receives session events. Defaults to [slog.Default].
	Logger *slog.Logger

	// OnReady runs once if the session resolves [OutcomeReady], after
	// the terminal update is emitted. Panics are recovered and logged.
	OnReady func()

	// OnAuthExpired runs once if the session resolves
	// [OutcomeAuthExpired], same contract as OnReady.
	OnAuthExpired func()
}

// Poller runs one tenant setup poll session.
//
// The session is strictly sequential: a poll is sent, its response decides
// the next action, and only then is another poll scheduled. There is never
// more than one request in flight, so out-of-order responses cannot occur.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Poller struct {
	fetch         func(ctx context.Context) (Status, error)
	isAuthError   func(err error) bool
	interval      time.Duration
	maxAttempts   int
	logger        *slog.Logger
	onReady       func()
	onAuthExpired func()

	updates chan Update
	done    chan struct{}
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu        sync.Mutex
	started   bool
	stopped   bool
	result    Result
	closeOnce sync.Once
	doneOnce  sync.Once
}

// New creates a [Poller] from cfg. Returns an error if cfg.Fetch is nil or
// a supplied knob is invalid.
func New(cfg Config) (*Poller, error) {
	if cfg.Fetch == nil {
		return nil, errors.New("fetch function is required")
	}
	if cfg.Interval < 0 {
		return nil, errors.New("interval cannot be negative")
	}
	if cfg.MaxAttempts < 0 {
		return nil, errors.New("max attempts cannot be negative")
	}

	interval := cfg.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	isAuthError := cfg.IsAuthError
	if isAuthError == nil {
		isAuthError = func(error) bool { return false }
	}

	return &Poller{
		fetch:         cfg.Fetch,
		isAuthError:   isAuthError,
		interval:      interval,
		maxAttempts:   maxAttempts,
		logger:        logger,
		onReady:       cfg.OnReady,
		onAuthExpired: cfg.OnAuthExpired,
		// sized so a session that never gets drained cannot stall the loop
		updates: make(chan Update, maxAttempts+2),
		done:    make(chan struct{}),
	}, nil
}

// Updates returns the receive-only progress channel.
//
// The channel is closed after the terminal update (or after [Poller.Stop]).
// It is buffered for a full session, so consumers may drain it after the
// fact rather than concurrently.
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// Done returns a channel closed once the session has ended, whether by
// resolution or by [Poller.Stop].
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Result returns the session's resolution. The zero Result (outcome
// [OutcomeNone]) is returned while the session is still running and after
// a session cut short by [Poller.Stop].
func (p *Poller) Result() Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Start begins the poll session in a background goroutine.
//
// Start is non-blocking and returns immediately. The first poll is sent
// right away; subsequent polls follow the configured interval or a
// server-directed gap, until the session resolves or ctx is cancelled.
//
// If ctx is nil, context.Background() is used as the parent context.
// Start is idempotent; subsequent calls after the first are no-ops.
// If Stop was called before Start, Start is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(runCtx)
}

// Stop ends the session and waits for the poll goroutine to exit.
//
// Stop takes effect before any further state change: a response already in
// flight is discarded, no further update is emitted, no callback runs, and
// nothing else is scheduled. Stop is idempotent and safe to call multiple
// times; calling Stop before Start is a safe no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		if p.cancel != nil {
			p.cancel()
		}
	}
	p.mu.Unlock()

	p.wg.Wait()

	// ensure channels are closed even if Start was never called
	p.closeOnce.Do(func() { close(p.updates) })
	p.doneOnce.Do(func() { close(p.done) })
}

// run is the sequential poll loop: one request, one decision, one timer.
func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()
	defer p.doneOnce.Do(func() { close(p.done) })
	defer p.closeOnce.Do(func() { close(p.updates) })

	attempt := 0
	for {
		if ctx.Err() != nil || p.isStopped() {
			return
		}
		status, err := p.fetch(ctx)
		// a stop issued while the request was in flight wins over the
		// response, whatever it said
		if ctx.Err() != nil || p.isStopped() {
			return
		}

		var delay time.Duration
		switch {
		case err != nil && p.isAuthError(err):
			p.finish(ctx, attempt, OutcomeAuthExpired, authExpiredMessage)
			return

		case err != nil:
			// transient: count the attempt, retry quietly
			attempt++
			p.logger.Debug("setup poll attempt failed",
				"attempt", attempt,
				"error", err.Error(),
			)
			p.emit(ctx, Update{
				Attempt: attempt,
				State:   StateUnknown,
				Step:    StepIndex(attempt, OutcomeNone),
			})
			if attempt >= p.maxAttempts {
				p.finish(ctx, attempt, OutcomeTimedOut, timedOutMessage)
				return
			}
			delay = p.interval

		default:
			switch status.State {
			case StateActive:
				message := status.Message
				if message == "" {
					message = readyMessage
				}
				p.finish(ctx, attempt, OutcomeReady, message)
				return

			case StateFailed:
				message := status.Reason
				if message == "" {
					message = status.Message
				}
				if message == "" {
					message = failedMessage
				}
				p.finish(ctx, attempt, OutcomeFailed, message)
				return

			default:
				// setting_up, or a state this client does not know;
				// either way the tenant is not resolved yet
				attempt++
				p.emit(ctx, Update{
					Attempt:       attempt,
					State:         status.State,
					Step:          StepIndex(attempt, OutcomeNone),
					Message:       status.Message,
					EstimatedTime: status.EstimatedTime,
				})
				if attempt >= p.maxAttempts {
					p.finish(ctx, attempt, OutcomeTimedOut, timedOutMessage)
					return
				}
				delay = p.interval
				if status.RetryAfter > 0 {
					// server-directed gap overrides this one wait only
					delay = status.RetryAfter
				}
			}
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// finish records the result, emits the terminal update, and fires the
// outcome's callback. Called at most once per session, from the run
// goroutine only.
func (p *Poller) finish(ctx context.Context, attempt int, outcome Outcome, message string) {
	p.mu.Lock()
	p.result = Result{Outcome: outcome, Message: message}
	p.mu.Unlock()

	p.emit(ctx, Update{
		Attempt:  attempt,
		State:    terminalState(outcome),
		Step:     StepIndex(attempt, outcome),
		Message:  message,
		Terminal: true,
		Outcome:  outcome,
	})

	// callbacks fire after the terminal update is observable
	switch outcome {
	case OutcomeReady:
		p.invokeSafe("on_ready", p.onReady)
	case OutcomeAuthExpired:
		p.invokeSafe("on_auth_expired", p.onAuthExpired)
	}

	p.logger.Info("setup session resolved",
		"outcome", outcome.String(),
		"attempts", attempt,
	)
}

// emit delivers an update unless the session is being torn down.
func (p *Poller) emit(ctx context.Context, u Update) {
	select {
	case p.updates <- u:
	case <-ctx.Done():
	}
}

func (p *Poller) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// terminalState picks the State reported on a terminal update.
func terminalState(outcome Outcome) State {
	switch outcome {
	case OutcomeReady:
		return StateActive
	case OutcomeFailed:
		return StateFailed
	case OutcomeTimedOut:
		return StateSettingUp
	default:
		return StateUnknown
	}
}

// invokeSafe calls a terminal callback with panic recovery.
// If the callback panics, the full stack trace is logged with a correlation
// ID so the failure can be traced without crashing the session.
func (p *Poller) invokeSafe(name string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("setup callback panicked",
				"correlation_id", correlationID,
				"callback", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
