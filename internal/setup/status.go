package setup

import "time"

// State is the provisioning state reported by the setup-status endpoint.
//
// State is a string type holding one of the wire values plus
// [StateUnknown] for anything unrecognized. Using a string type keeps JSON
// handling and logging straightforward while maintaining type safety
// through the defined constants.
type State string

const (
	// StateSettingUp indicates the tenant backend is still being
	// provisioned.
	StateSettingUp State = "setting_up"

	// StateActive indicates provisioning completed and the tenant is
	// usable.
	StateActive State = "active"

	// StateFailed indicates provisioning failed server-side.
	StateFailed State = "failed"

	// StateUnknown covers states this client version does not recognize.
	// Unknown states are treated as still provisioning, so a newer server
	// can add intermediate states without breaking older clients.
	StateUnknown State = "unknown"
)

// String returns the string representation of the state.
// This implements the fmt.Stringer interface.
func (s State) String() string {
	return string(s)
}

// ParseState maps a wire value onto a [State]. Anything unrecognized,
// including the empty string, becomes [StateUnknown].
func ParseState(raw string) State {
	switch State(raw) {
	case StateSettingUp, StateActive, StateFailed:
		return State(raw)
	default:
		return StateUnknown
	}
}

// Status is one decoded response from the setup-status endpoint.
type Status struct {
	// State is the provisioning state, already normalized via
	// [ParseState].
	State State

	// Message is the server's progress description, e.g. "Creating
	// tenant database". May be empty.
	Message string

	// EstimatedTime is the server's human-readable completion estimate,
	// e.g. "2 minutes". May be empty.
	EstimatedTime string

	// RetryAfter overrides the default gap before the next poll when
	// positive. It applies to that single gap only.
	RetryAfter time.Duration

	// Reason carries the failure explanation when State is
	// [StateFailed]. May be empty even then.
	Reason string
}
