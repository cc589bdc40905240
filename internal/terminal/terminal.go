// Package terminal provides TTY detection and terminal capability helpers.
// Commands use it to decide on colour, spinners and table rendering.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Info holds the resolved terminal state for the current process.
// Create one at startup via Detect() and pass it down.
type Info struct {
	// IsTerminal is true when stdout is connected to a TTY.
	IsTerminal bool
	// StderrIsTerminal is true when stderr is connected to a TTY.
	StderrIsTerminal bool
	// ColorEnabled is true when ANSI colours should be emitted.
	ColorEnabled bool
	// SpinnerEnabled is true when a spinner may be drawn while a query runs.
	SpinnerEnabled bool
}

// Detect inspects the environment and returns a populated Info.
// noColor is the value of --no-color; the NO_COLOR env is honoured too.
func Detect(noColor bool) Info {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	stderrTTY := term.IsTerminal(int(os.Stderr.Fd()))

	// https://no-color.org/
	envNoColor := os.Getenv("NO_COLOR") != ""

	return Info{
		IsTerminal:       isTTY,
		StderrIsTerminal: stderrTTY,
		ColorEnabled:     isTTY && !noColor && !envNoColor,
		SpinnerEnabled:   isTTY && !IsCI() && !IsDumb(),
	}
}

// IsDumb returns true when the terminal is known to have no capabilities
// (e.g. TERM=dumb or running inside Emacs).
func IsDumb() bool {
	t := strings.ToLower(os.Getenv("TERM"))
	return t == "dumb" || t == ""
}

// IsCI returns true when a well-known CI environment variable is set.
func IsCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "JENKINS_URL", "GITLAB_CI", "CIRCLECI", "TRAVIS"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}
