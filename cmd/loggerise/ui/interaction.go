package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	envNoColor = "NO_COLOR"
	envCI      = "CI"
	envTerm    = "TERM"
)

var interaction struct {
	mu          sync.RWMutex
	initialized bool
	interactive bool
}

// ConfigureInteraction decides whether the CLI runs interactively and
// sets the lipgloss color profile to match: full color on a terminal,
// plain ASCII when piped, in CI, or when noColor is set. Called once
// from the root command before any output.
func ConfigureInteraction(noColor bool) {
	interactive := detectInteractive(noColor)

	interaction.mu.Lock()
	interaction.initialized = true
	interaction.interactive = interactive
	interaction.mu.Unlock()

	if interactive {
		lipgloss.SetColorProfile(termenv.ColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// IsInteractive reports whether the CLI is talking to a person on a
// terminal. Commands use it to choose between live rendering and plain
// line output.
func IsInteractive() bool {
	interaction.mu.RLock()
	if interaction.initialized {
		v := interaction.interactive
		interaction.mu.RUnlock()
		return v
	}
	interaction.mu.RUnlock()

	ConfigureInteraction(false)
	return IsInteractive()
}

func detectInteractive(noColor bool) bool {
	if noColor {
		return false
	}
	if os.Getenv(envNoColor) != "" || envTruthy(envCI) {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(envTerm)), "dumb") {
		return false
	}
	return stderrIsTerminal()
}

func stderrIsTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func envTruthy(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
