package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harness/ar-stats/internal/style"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerModel_DoneMessage(t *testing.T) {
	style.Init(false)
	defer style.Init(true)

	m := NewSpinnerModel("Running AQL query", func() (int, error) { return 42, nil })
	assert.True(t, strings.HasSuffix(m.View(), "Running AQL query...\n"))

	next, cmd := m.Update(spinnerDoneMsg[int]{result: 42})
	require.NotNil(t, cmd)
	done := next.(SpinnerModel[int])
	assert.True(t, done.done)
	assert.Equal(t, 42, done.result)
	assert.Contains(t, done.View(), "✓ Running AQL query")
}

func TestSpinnerModel_Error(t *testing.T) {
	style.Init(false)
	defer style.Init(true)

	m := NewSpinnerModel("Running AQL query", func() (string, error) { return "", nil })
	next, _ := m.Update(spinnerDoneMsg[string]{err: errors.New("connection refused")})
	assert.Contains(t, next.View(), "✗ Running AQL query: connection refused")
}

func TestSpinnerModel_CtrlC(t *testing.T) {
	m := NewSpinnerModel("Running AQL query", func() (int, error) { return 0, nil })
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	quit := next.(SpinnerModel[int])
	assert.True(t, quit.quitting)
	assert.Empty(t, quit.View())
}

func TestRunWithSpinner_Result(t *testing.T) {
	var out bytes.Buffer
	got, err := RunWithSpinner(context.Background(), &out, "Running AQL query",
		func() (int, error) { return 7, nil },
		tea.WithInput(strings.NewReader("")))
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestRunWithSpinner_CtrlCInterrupts(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	var out bytes.Buffer
	_, err := RunWithSpinner(context.Background(), &out, "Running AQL query",
		func() (int, error) {
			<-release
			return 1, nil
		},
		tea.WithInput(strings.NewReader("\x03")))
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestRunWithSpinner_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	var out bytes.Buffer
	_, err := RunWithSpinner(ctx, &out, "Running AQL query",
		func() (int, error) {
			<-release
			return 1, nil
		},
		tea.WithInput(strings.NewReader("")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStyledHelpTemplate(t *testing.T) {
	style.Init(false)
	assert.Empty(t, StyledHelpTemplate())

	style.Init(true)
	tpl := StyledHelpTemplate()
	assert.Contains(t, tpl, "{{.UseLine}}")
	assert.Contains(t, tpl, "{{.Example}}")
}
