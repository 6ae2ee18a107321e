package setup

import "testing"

// TestStepIndex verifies the attempt-to-milestone projection: one milestone
// per four attempts, clamped to the third until the session resolves ready.
func TestStepIndex(t *testing.T) {
	tests := []struct {
		name    string
		attempt int
		outcome Outcome
		want    int
	}{
		{name: "first attempt", attempt: 0, outcome: OutcomeNone, want: 0},
		{name: "third attempt", attempt: 3, outcome: OutcomeNone, want: 0},
		{name: "fourth attempt advances", attempt: 4, outcome: OutcomeNone, want: 1},
		{name: "seventh attempt", attempt: 7, outcome: OutcomeNone, want: 1},
		{name: "eighth attempt", attempt: 8, outcome: OutcomeNone, want: 2},
		{name: "clamped at third milestone", attempt: 40, outcome: OutcomeNone, want: 2},
		{name: "ceiling attempt still clamped", attempt: 60, outcome: OutcomeTimedOut, want: 2},
		{name: "ready forces final milestone", attempt: 2, outcome: OutcomeReady, want: 3},
		{name: "ready after many attempts", attempt: 59, outcome: OutcomeReady, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StepIndex(tt.attempt, tt.outcome); got != tt.want {
				t.Errorf("StepIndex(%d, %v) = %d, want %d", tt.attempt, tt.outcome, got, tt.want)
			}
		})
	}
}

// TestMilestones_InProgress verifies the checklist shape mid-session:
// milestones before the current one read completed, the current one is
// marked, the rest are pending.
func TestMilestones_InProgress(t *testing.T) {
	ms := Milestones(1, OutcomeNone)
	if len(ms) != StepCount {
		t.Fatalf("got %d milestones, want %d", len(ms), StepCount)
	}

	if !ms[0].Completed || ms[0].Current {
		t.Errorf("milestone 0 = %+v, want completed and not current", ms[0])
	}
	if ms[1].Completed || !ms[1].Current {
		t.Errorf("milestone 1 = %+v, want current and not completed", ms[1])
	}
	for i := 2; i < StepCount; i++ {
		if ms[i].Completed || ms[i].Current {
			t.Errorf("milestone %d = %+v, want pending", i, ms[i])
		}
	}
}

// TestMilestones_Ready verifies that a ready outcome completes the whole
// checklist with nothing left current.
func TestMilestones_Ready(t *testing.T) {
	ms := Milestones(StepIndex(12, OutcomeReady), OutcomeReady)
	for i, m := range ms {
		if !m.Completed {
			t.Errorf("milestone %d (%s) not completed after ready", i, m.Name)
		}
		if m.Current {
			t.Errorf("milestone %d (%s) still current after ready", i, m.Name)
		}
	}
}

// TestStepName verifies the milestone labels stay in provisioning order.
func TestStepName(t *testing.T) {
	want := []string{"Tenant account", "Database", "Settings", "Ready"}
	for i, label := range want {
		if got := StepName(i); got != label {
			t.Errorf("StepName(%d) = %q, want %q", i, got, label)
		}
	}
}
