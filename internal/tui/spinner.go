package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harness/ar-stats/internal/style"
)

// ─── Messages ────────────────────────────────────────────────────────────────

// spinnerDoneMsg signals that the long-running operation finished.
type spinnerDoneMsg[T any] struct {
	result T
	err    error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// SpinnerModel shows a spinner while a background operation runs.
type SpinnerModel[T any] struct {
	spinner  spinner.Model
	title    string
	done     bool
	err      error
	result   T
	runFunc  func() (T, error)
	quitting bool
}

// NewSpinnerModel creates a spinner that runs fn in the background.
func NewSpinnerModel[T any](title string, fn func() (T, error)) SpinnerModel[T] {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.SpinnerColor)

	return SpinnerModel[T]{
		spinner: s,
		title:   title,
		runFunc: fn,
	}
}

func (m SpinnerModel[T]) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			result, err := m.runFunc()
			return spinnerDoneMsg[T]{result: result, err: err}
		},
	)
}

func (m SpinnerModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinnerDoneMsg[T]:
		m.done = true
		m.err = msg.err
		m.result = msg.result
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m SpinnerModel[T]) View() string {
	if m.quitting {
		return ""
	}
	if m.done {
		if m.err != nil {
			return style.Error.Render(fmt.Sprintf("✗ %s: %v", m.title, m.err)) + "\n"
		}
		return style.Success.Render(fmt.Sprintf("✓ %s", m.title)) + "\n"
	}
	return m.spinner.View() + " " + m.title + "...\n"
}

// ErrInterrupted is returned when the user quits the spinner with ctrl+c.
var ErrInterrupted = errors.New("interrupted")

// RunWithSpinner runs fn while drawing a spinner on out. Returns the
// result or error of fn. ctrl+c in the spinner returns ErrInterrupted;
// a cancelled ctx returns the context error.
func RunWithSpinner[T any](ctx context.Context, out io.Writer, title string, fn func() (T, error), opts ...tea.ProgramOption) (T, error) {
	var zero T
	m := NewSpinnerModel(title, fn)
	opts = append([]tea.ProgramOption{tea.WithOutput(out), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	finalModel, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		return zero, err
	}

	result := finalModel.(SpinnerModel[T])
	if result.quitting {
		return zero, ErrInterrupted
	}
	if result.err != nil {
		return zero, result.err
	}
	return result.result, nil
}
