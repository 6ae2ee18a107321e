package ui

import "testing"

func TestEnvTruthyValues(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "one", value: "1", want: true},
		{name: "true", value: "true", want: true},
		{name: "yes", value: "yes", want: true},
		{name: "on", value: "on", want: true},
		{name: "mixed case", value: "True", want: true},
		{name: "zero", value: "0", want: false},
		{name: "false", value: "false", want: false},
		{name: "empty", value: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("LOGGERISE_TEST_TRUTHY", tc.value)
			if got := envTruthy("LOGGERISE_TEST_TRUTHY"); got != tc.want {
				t.Fatalf("envTruthy() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetectInteractiveForcedOff(t *testing.T) {
	t.Setenv(envNoColor, "")
	t.Setenv(envCI, "")
	t.Setenv(envTerm, "xterm-256color")

	if detectInteractive(true) {
		t.Fatal("noColor flag should force non-interactive")
	}

	t.Setenv(envNoColor, "1")
	if detectInteractive(false) {
		t.Fatal("NO_COLOR should force non-interactive")
	}
	t.Setenv(envNoColor, "")

	t.Setenv(envCI, "true")
	if detectInteractive(false) {
		t.Fatal("CI should force non-interactive")
	}
	t.Setenv(envCI, "")

	t.Setenv(envTerm, "dumb")
	if detectInteractive(false) {
		t.Fatal("TERM=dumb should force non-interactive")
	}
}

func TestIsInteractiveAfterConfigure(t *testing.T) {
	ConfigureInteraction(true)
	if IsInteractive() {
		t.Fatal("expected non-interactive after ConfigureInteraction(true)")
	}
}
