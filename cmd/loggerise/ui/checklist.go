package ui

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var spinFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StepState is the display state of one checklist entry.
type StepState int

const (
	StepPending StepState = iota
	StepActive
	StepDone
	StepFailed
)

// Step is one line of a Checklist.
type Step struct {
	Title string
	State StepState
}

// Checklist renders a fixed set of steps in place on stderr: done steps
// get a checkmark, the active step a spinner, failed steps a red cross.
// An optional note line sits under the steps. Only useful on an
// interactive terminal; non-interactive callers should print plain
// lines instead.
type Checklist struct {
	mu    sync.Mutex
	steps []Step
	note  string
	lines int
	frame int
	stop  chan struct{}
	once  sync.Once
}

// NewChecklist creates an empty Checklist. The spinner starts on the
// first Update.
func NewChecklist() *Checklist {
	return &Checklist{stop: make(chan struct{})}
}

// Update replaces the rendered steps and note.
func (c *Checklist) Update(steps []Step, note string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	first := c.steps == nil
	c.steps = steps
	c.note = note

	c.redraw()
	if first {
		go c.spin()
	}
}

// Close stops the spinner, leaving the last rendered frame in place.
func (c *Checklist) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Checklist) spin() {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.frame = (c.frame + 1) % len(spinFrames)
			c.redraw()
			c.mu.Unlock()
		}
	}
}

// redraw reprints the whole block in place. Caller must hold c.mu.
func (c *Checklist) redraw() {
	if c.lines > 0 {
		fmt.Fprintf(os.Stderr, "\033[%dA", c.lines)
	}

	count := 0
	for _, s := range c.steps {
		fmt.Fprintf(os.Stderr, "\r  %s %s\033[K\n", c.icon(s), c.title(s))
		count++
	}
	if c.note != "" {
		fmt.Fprintf(os.Stderr, "\r  %s\033[K\n", Muted(c.note))
		count++
	}
	// blank lines left over from a taller previous frame, then park the
	// cursor back under the block
	extra := c.lines - count
	for i := 0; i < extra; i++ {
		fmt.Fprint(os.Stderr, "\r\033[K\n")
	}
	if extra > 0 {
		fmt.Fprintf(os.Stderr, "\033[%dA", extra)
	}
	c.lines = count
}

func (c *Checklist) icon(s Step) string {
	switch s.State {
	case StepActive:
		return Accent(spinFrames[c.frame])
	case StepDone:
		return Success("✓")
	case StepFailed:
		return ErrorStyle.Render("✗")
	default:
		return Muted("●")
	}
}

func (c *Checklist) title(s Step) string {
	switch s.State {
	case StepPending:
		return Muted(s.Title)
	case StepFailed:
		return ErrorStyle.Render(s.Title)
	default:
		return s.Title
	}
}
