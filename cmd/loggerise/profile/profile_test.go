package profile

import "testing"

func TestAddCmdShape(t *testing.T) {
	cmd := addCmd()

	if cmd.Use != "add <name>" {
		t.Fatalf("unexpected use: %q", cmd.Use)
	}
	for _, name := range []string{"base-url", "email", "token", "realtime-host", "realtime-key", "timeout"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag %q", name)
		}
	}
}

func TestRemoveCmdBindsYesFlag(t *testing.T) {
	cmd := removeCmd()

	if cmd.Flags().Lookup("yes") == nil {
		t.Fatal("expected --yes flag")
	}
	if len(cmd.Aliases) == 0 || cmd.Aliases[0] != "rm" {
		t.Fatalf("expected rm alias, got %v", cmd.Aliases)
	}
}
