// Package ui holds the terminal styling helpers shared by the loggerise
// CLI commands: colors, status messages, key-value blocks, and tables.
// Output degrades to plain ASCII on non-interactive terminals; see
// [ConfigureInteraction].
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Palette. Chosen to stay readable on both dark and light terminals.
var (
	blue   = lipgloss.Color("39")
	green  = lipgloss.Color("78")
	red    = lipgloss.Color("203")
	yellow = lipgloss.Color("214")
	dim    = lipgloss.Color("245")
	faint  = lipgloss.Color("240")
)

var (
	AccentStyle  = lipgloss.NewStyle().Foreground(blue)
	SuccessStyle = lipgloss.NewStyle().Foreground(green)
	ErrorStyle   = lipgloss.NewStyle().Foreground(red)
	WarnStyle    = lipgloss.NewStyle().Foreground(yellow)
	MutedStyle   = lipgloss.NewStyle().Foreground(dim)
	FaintStyle   = lipgloss.NewStyle().Foreground(faint)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

// Inline helpers, no trailing newline.

func Accent(s string) string  { return AccentStyle.Render(s) }
func Bold(s string) string    { return BoldStyle.Render(s) }
func Muted(s string) string   { return MutedStyle.Render(s) }
func Success(s string) string { return SuccessStyle.Render(s) }

// Bool renders a boolean for table cells.
func Bool(v bool) string {
	if v {
		return SuccessStyle.Render("yes")
	}
	return MutedStyle.Render("no")
}

// Status message helpers, single line, no trailing newline.

func SuccessMsg(format string, a ...any) string {
	return SuccessStyle.Render("✓") + " " + fmt.Sprintf(format, a...)
}

func ErrorMsg(format string, a ...any) string {
	return ErrorStyle.Render("✗") + " " + fmt.Sprintf(format, a...)
}

func WarnMsg(format string, a ...any) string {
	return WarnStyle.Render("!") + " " + fmt.Sprintf(format, a...)
}

func InfoMsg(format string, a ...any) string {
	return AccentStyle.Render("●") + " " + fmt.Sprintf(format, a...)
}

// Pair is one row of a KeyValues block. Construct with KV.
type Pair struct {
	key   string
	value string
}

// KV creates a key-value pair.
func KV(key, value string) Pair {
	return Pair{key: key, value: value}
}

// KeyValues renders aligned "key:  value" lines with a trailing newline,
// for detail views of a single resource.
func KeyValues(pairs ...Pair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}

	var b strings.Builder
	for _, p := range pairs {
		label := fmt.Sprintf("%-*s", width+1, p.key+":")
		b.WriteString("  " + MutedStyle.Render(label) + " " + p.value + "\n")
	}
	return b.String()
}

// Table renders rows under a header with rounded borders, for list
// command output.
func Table(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(blue).
		Bold(true).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}
