package trips

import "testing"

func TestSendCmdRequiresIDAndBody(t *testing.T) {
	profile := ""
	cmd := sendCmd(&profile)

	if err := cmd.Args(cmd, []string{"7"}); err == nil {
		t.Fatal("expected args validation error for missing body")
	}
	if err := cmd.Args(cmd, []string{"7", "running", "late"}); err != nil {
		t.Fatalf("multi-word body should pass validation: %v", err)
	}
}

func TestListCmdBindsFilters(t *testing.T) {
	profile := ""
	cmd := listCmd(&profile)

	for _, name := range []string{"status", "vehicle", "page", "per-page"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag %q", name)
		}
	}
}
