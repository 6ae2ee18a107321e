package setupcmd

import (
	"testing"

	"github.com/Futurecode-Software/loggerise-go"
	"github.com/Futurecode-Software/loggerise-go/cmd/loggerise/ui"
)

func TestWatchCmdShape(t *testing.T) {
	profile := ""
	cmd := watchCmd(&profile)

	if cmd.Use != "watch" {
		t.Fatalf("unexpected use: %q", cmd.Use)
	}
	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Fatal("expected args validation error")
	}
	for _, name := range []string{"interval", "max-attempts"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag %q", name)
		}
	}
}

func TestChecklistStepsWhileRunning(t *testing.T) {
	u := loggerise.SetupUpdate{
		Attempt: 5,
		State:   loggerise.SetupStateSettingUp,
		Steps: []loggerise.SetupStep{
			{Name: "Tenant account", Completed: true},
			{Name: "Database", Current: true},
			{Name: "Settings"},
			{Name: "Ready"},
		},
	}

	steps := checklistSteps(u)
	want := []ui.StepState{ui.StepDone, ui.StepActive, ui.StepPending, ui.StepPending}
	for i, w := range want {
		if steps[i].State != w {
			t.Fatalf("step %d state = %v, want %v", i, steps[i].State, w)
		}
	}
}

func TestChecklistStepsMarksFirstIncompleteFailed(t *testing.T) {
	u := loggerise.SetupUpdate{
		Terminal: true,
		Outcome:  loggerise.SetupFailed,
		Steps: []loggerise.SetupStep{
			{Name: "Tenant account", Completed: true},
			{Name: "Database", Completed: true},
			{Name: "Settings"},
			{Name: "Ready"},
		},
	}

	steps := checklistSteps(u)
	want := []ui.StepState{ui.StepDone, ui.StepDone, ui.StepFailed, ui.StepPending}
	for i, w := range want {
		if steps[i].State != w {
			t.Fatalf("step %d state = %v, want %v", i, steps[i].State, w)
		}
	}
}

func TestChecklistStepsAllDoneOnReady(t *testing.T) {
	u := loggerise.SetupUpdate{
		Terminal: true,
		Outcome:  loggerise.SetupReady,
		Steps: []loggerise.SetupStep{
			{Name: "Tenant account", Completed: true},
			{Name: "Database", Completed: true},
			{Name: "Settings", Completed: true},
			{Name: "Ready", Completed: true},
		},
	}

	for i, s := range checklistSteps(u) {
		if s.State != ui.StepDone {
			t.Fatalf("step %d state = %v, want done", i, s.State)
		}
	}
}

func TestNote(t *testing.T) {
	u := loggerise.SetupUpdate{Message: "Creating database", EstimatedTime: "2 minutes"}
	if got := note(u); got != "Creating database, about 2 minutes" {
		t.Fatalf("note = %q", got)
	}

	u = loggerise.SetupUpdate{EstimatedTime: "2 minutes"}
	if got := note(u); got != "about 2 minutes" {
		t.Fatalf("note = %q", got)
	}

	u = loggerise.SetupUpdate{Message: "done", Terminal: true}
	if got := note(u); got != "" {
		t.Fatalf("terminal note = %q, want empty", got)
	}
}
