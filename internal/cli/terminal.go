package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Spinner frames for animated progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal provides terminal-aware progress output on stderr,
// leaving stdout for results
type Terminal struct {
	IsTerminal   bool
	UseColor     bool
	out          io.Writer
	spinnerIndex int
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal, // Only use color in terminal
		out:        os.Stderr,
	}
}

// Interactive reports whether both stdin and stdout are terminals,
// so prompts can be shown and answered
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Fprint(t.out, "\r\033[K")
	}
}

// Spinner returns the next spinner frame
func (t *Terminal) Spinner() string {
	if !t.IsTerminal {
		return ""
	}
	frame := spinnerFrames[t.spinnerIndex]
	t.spinnerIndex = (t.spinnerIndex + 1) % len(spinnerFrames)
	return frame
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// WaitForCatalog blocks until the catalog finishes loading, animating a
// spinner with the row count while it waits
func (t *Terminal) WaitForCatalog(ctx context.Context, c *scheme.Catalog) ([]scheme.Scheme, error) {
	if !t.IsTerminal || c.State() != scheme.StateLoading {
		return c.Wait(ctx)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	defer t.ClearLine()

	for {
		select {
		case <-c.Done():
			return c.Schemes(), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			p := c.Progress()
			t.ClearLine()
			msg := fmt.Sprintf("%s Loading schemes: %d read (%s)", t.Spinner(), p.Rows, FormatElapsed(p.Elapsed()))
			fmt.Fprint(t.out, t.Color(ColorCyan, msg))
		}
	}
}

// FormatElapsed formats a duration as a short human-readable string
func FormatElapsed(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if s > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%dm", m)
}

// TierColor returns the color for a result tier
func TierColor(tier eligibility.Tier) string {
	switch tier {
	case eligibility.TierEligible:
		return ColorGreen
	case eligibility.TierPartial:
		return ColorYellow
	default:
		return ColorGray
	}
}
