package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/harness/ar-stats/internal/style"
)

// StyledReporter implements Reporter with lipgloss-styled output.
type StyledReporter struct {
	out io.Writer
}

// NewStyledReporter creates a reporter with lipgloss-styled output.
func NewStyledReporter(out io.Writer) *StyledReporter {
	if out == nil {
		out = os.Stdout
	}
	return &StyledReporter{out: out}
}

// NewAutoReporter returns a StyledReporter when colours are enabled,
// otherwise falls back to the plain ConsoleReporter.
func NewAutoReporter(out io.Writer) Reporter {
	if style.Enabled {
		return NewStyledReporter(out)
	}
	return NewConsoleReporter(out)
}

var (
	startStyle   = lipgloss.NewStyle().Bold(true).Foreground(style.Cyan)
	stepStyle    = lipgloss.NewStyle().Foreground(style.Dim).PaddingLeft(2)
	warnStyle    = lipgloss.NewStyle().Foreground(style.Yellow).PaddingLeft(2)
	errorStyle   = lipgloss.NewStyle().Foreground(style.Red).Bold(true).PaddingLeft(2)
	successStyle = lipgloss.NewStyle().Foreground(style.Green).Bold(true).PaddingLeft(2)
)

func (r *StyledReporter) Start(message string) {
	fmt.Fprintln(r.out, startStyle.Render("⚡ "+message+"..."))
}

func (r *StyledReporter) Step(message string) {
	fmt.Fprintln(r.out, stepStyle.Render("→ "+message+"..."))
}

func (r *StyledReporter) Warn(message string) {
	fmt.Fprintln(r.out, warnStyle.Render("! "+message))
}

func (r *StyledReporter) Error(message string) {
	fmt.Fprintln(r.out, errorStyle.Render("✗ "+message))
}

func (r *StyledReporter) Success(message string) {
	fmt.Fprintln(r.out, successStyle.Render("✓ "+message))
}

func (r *StyledReporter) End() {}
