package ui

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNonInteractive is returned by prompts when the CLI is not attached
// to a terminal. The wrapping error names the flag that bypasses the
// prompt.
var ErrNonInteractive = errors.New("not an interactive terminal")

// RequireInteraction returns an error mentioning bypassHint when the CLI
// cannot prompt, e.g. "set --email to skip the prompt".
func RequireInteraction(bypassHint string) error {
	if IsInteractive() {
		return nil
	}
	return fmt.Errorf("%w (%s)", ErrNonInteractive, bypassHint)
}

// Prompt asks for a line of input on stderr and returns it trimmed.
func Prompt(label, bypassHint string) (string, error) {
	if err := RequireInteraction(bypassHint); err != nil {
		return "", err
	}

	fmt.Fprint(os.Stderr, AccentStyle.Render("?")+" "+label+": ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(question, bypassHint string) (bool, error) {
	answer, err := Prompt(question+" [y/N]", bypassHint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptSecret asks for a value with terminal echo disabled, for
// passwords and tokens.
func PromptSecret(label, bypassHint string) (string, error) {
	if err := RequireInteraction(bypassHint); err != nil {
		return "", err
	}

	fmt.Fprint(os.Stderr, AccentStyle.Render("?")+" "+label+": ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(secret), nil
}
