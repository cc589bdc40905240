package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/harness/ar-stats/internal/style"
)

// StyledHelpTemplate returns a Cobra usage template with coloured section
// headings, or "" when colour is off so Cobra's default is kept. Command and
// flag names stay unstyled since the template engine renders them.
func StyledHelpTemplate() string {
	if !style.Enabled {
		return ""
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(style.Cyan).Render
	dim := lipgloss.NewStyle().Foreground(style.Dim).Render

	return heading("Usage") + `:
  {{.UseLine}}
` + `{{if .HasExample}}
` + heading("Examples") + `
{{.Example}}
{{end}}` + `{{if .HasAvailableSubCommands}}
` + heading("Available Commands") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }}  {{.Short}}{{end}}{{end}}
{{end}}` + `{{if .HasAvailableLocalFlags}}
` + heading("Flags") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableInheritedFlags}}
` + heading("Global Flags") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}` + `{{if .HasAvailableSubCommands}}
` + dim(`Use "{{.CommandPath}} [command] --help" for more information about a command.`) + `
{{end}}`
}
