// Package style holds the colours and text styles used for console output.
//
// Call Init(colorEnabled) once at startup. After that the exported styles
// and helpers can be used freely; with colour off they degrade to plain text.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ─── Colour palette ──────────────────────────────────────────────────────────

var (
	Blue   = lipgloss.Color("#0078D4")
	Cyan   = lipgloss.Color("#00B4D8")
	Green  = lipgloss.Color("#22C55E")
	Yellow = lipgloss.Color("#FACC15")
	Red    = lipgloss.Color("#EF4444")

	White  = lipgloss.Color("#FAFAFA")
	Dim    = lipgloss.Color("#6B7280")
	Subtle = lipgloss.Color("#374151")
)

// ─── Text styles ─────────────────────────────────────────────────────────────

var (
	// Title is used for the banner and per-repository headings.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	// Subtitle is used for section headers such as "Download Ranges".
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan)

	Success = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Yellow)

	Error = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	// DimText is used for hints and secondary info like file paths.
	DimText = lipgloss.NewStyle().
		Foreground(Dim)

	// Code renders inline identifiers such as AQL snippets.
	Code = lipgloss.NewStyle().
		Foreground(Cyan)

	// SpinnerColor is the colour used for spinner animations.
	SpinnerColor = Cyan
)

// Banner returns the arstats ASCII banner.
func Banner() string {
	banner := `
   __ _ _ __ ___| |_ __ _| |_ ___
  / _` + "`" + ` | '__/ __| __/ _` + "`" + ` | __/ __|
 | (_| | |  \__ \ || (_| | |_\__ \
  \__,_|_|  |___/\__\__,_|\__|___/`

	return Title.Render(banner)
}

// Enabled tracks whether styles should render ANSI output.
var Enabled = true

// Init configures the style package. Call once at startup.
func Init(colorEnabled bool) {
	Enabled = colorEnabled
	if !colorEnabled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SuccessIcon returns a themed check mark.
func SuccessIcon() string {
	if Enabled {
		return Success.Render("✓")
	}
	return "OK"
}

// ErrorIcon returns a themed X mark.
func ErrorIcon() string {
	if Enabled {
		return Error.Render("✗")
	}
	return "ERROR"
}

// WarningIcon returns a themed warning indicator.
func WarningIcon() string {
	if Enabled {
		return Warning.Render("!")
	}
	return "WARN"
}

// Hint renders a "next step" hint message.
func Hint(msg string) string {
	return DimText.Render("→ " + msg)
}
