package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	planStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	boldStyle = lipgloss.NewStyle().Bold(true)
)

// StatusPrinter prints one persistent line per processed video.
// Lines stay on screen because a single video can take minutes and
// scrollback is how failures get found afterwards.
type StatusPrinter struct {
	total     int
	completed int
	quiet     bool
	mu        sync.Mutex
}

// NewStatusPrinter creates a new status printer
func NewStatusPrinter(total int, quiet bool) *StatusPrinter {
	if total < 0 {
		total = 0
	}
	return &StatusPrinter{total: total, quiet: quiet}
}

// Generated reports a freshly written subtitle
func (p *StatusPrinter) Generated(name, language string, elapsed time.Duration) {
	p.line(okStyle.Render("✓"), fmt.Sprintf("%s (%s, %s)", name, language, FormatDuration(elapsed)))
}

// Skipped reports a video whose subtitle already existed
func (p *StatusPrinter) Skipped(name string) {
	p.line(skipStyle.Render("-"), name+" (subtitle exists)")
}

// Failed reports a video whose generation did not produce a subtitle
func (p *StatusPrinter) Failed(name, reason string) {
	p.line(failStyle.Render("✗"), fmt.Sprintf("%s: %s", name, reason))
}

// Planned reports what a dry run would generate
func (p *StatusPrinter) Planned(name, subtitle string) {
	p.line(planStyle.Render("•"), fmt.Sprintf("%s would write %s", name, subtitle))
}

func (p *StatusPrinter) line(glyph, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completed++
	if p.quiet {
		return
	}
	fmt.Printf("[%d/%d] %s %s\n", p.completed, p.total, glyph, text)
}

// Summary prints the final counters
func (p *StatusPrinter) Summary(generated, skipped, failed, planned int, elapsed time.Duration) {
	if p.quiet {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Println()
	fmt.Println(boldStyle.Render(fmt.Sprintf("Done in %s", FormatDuration(elapsed))))
	if planned > 0 {
		fmt.Printf("  %d planned, %d skipped\n", planned, skipped)
		return
	}
	fmt.Printf("  %d generated, %d skipped, %d failed\n", generated, skipped, failed)
}
