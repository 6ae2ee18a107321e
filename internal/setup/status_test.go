package setup

import "testing"

// TestParseState verifies wire-value normalization, in particular that
// anything unrecognized degrades to unknown instead of failing.
func TestParseState(t *testing.T) {
	tests := []struct {
		raw  string
		want State
	}{
		{raw: "setting_up", want: StateSettingUp},
		{raw: "active", want: StateActive},
		{raw: "failed", want: StateFailed},
		{raw: "", want: StateUnknown},
		{raw: "provisioning", want: StateUnknown},
		{raw: "ACTIVE", want: StateUnknown}, // wire values are lowercase
		{raw: "unknown", want: StateUnknown},
	}

	for _, tt := range tests {
		t.Run("value "+tt.raw, func(t *testing.T) {
			if got := ParseState(tt.raw); got != tt.want {
				t.Errorf("ParseState(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

// TestOutcome_String verifies outcome labels used in logs and CLI output.
func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeNone, "none"},
		{OutcomeReady, "ready"},
		{OutcomeFailed, "failed"},
		{OutcomeTimedOut, "timed_out"},
		{OutcomeAuthExpired, "auth_expired"},
		{Outcome(99), "outcome(99)"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(tt.outcome), got, tt.want)
		}
	}
}

// TestOutcome_Terminal verifies that every concrete outcome is terminal and
// only the zero value is not.
func TestOutcome_Terminal(t *testing.T) {
	if OutcomeNone.Terminal() {
		t.Error("OutcomeNone.Terminal() = true, want false")
	}
	for _, o := range []Outcome{OutcomeReady, OutcomeFailed, OutcomeTimedOut, OutcomeAuthExpired} {
		if !o.Terminal() {
			t.Errorf("%v.Terminal() = false, want true", o)
		}
	}
}
