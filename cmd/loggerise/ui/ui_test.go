package ui

import (
	"strings"
	"testing"
)

func TestKeyValuesAlignsLabels(t *testing.T) {
	ConfigureInteraction(true)

	got := KeyValues(
		KV("Name", "Ada"),
		KV("Email", "ada@example.test"),
	)
	want := "  Name:  Ada\n  Email: ada@example.test\n"
	if got != want {
		t.Fatalf("KeyValues() = %q, want %q", got, want)
	}
}

func TestBoolRendersYesNo(t *testing.T) {
	ConfigureInteraction(true)

	if got := Bool(true); got != "yes" {
		t.Fatalf("Bool(true) = %q", got)
	}
	if got := Bool(false); got != "no" {
		t.Fatalf("Bool(false) = %q", got)
	}
}

func TestStatusMessagesCarryIcon(t *testing.T) {
	ConfigureInteraction(true)

	if got := SuccessMsg("saved %d", 3); got != "✓ saved 3" {
		t.Fatalf("SuccessMsg() = %q", got)
	}
	if got := ErrorMsg("boom"); got != "✗ boom" {
		t.Fatalf("ErrorMsg() = %q", got)
	}
	if got := WarnMsg("slow"); got != "! slow" {
		t.Fatalf("WarnMsg() = %q", got)
	}
}

func TestTableRendersHeadersAndRows(t *testing.T) {
	ConfigureInteraction(true)

	out := Table(
		[]string{"ID", "NAME"},
		[][]string{{"1", "alpha"}, {"2", "beta"}},
	)
	for _, want := range []string{"ID", "NAME", "alpha", "beta"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines < 4 {
		t.Fatalf("expected bordered multi-line table, got %d newlines:\n%s", lines, out)
	}
}
