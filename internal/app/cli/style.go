package cli

import (
	"github.com/charmbracelet/lipgloss"

	"screenlog/internal/config"
)

var (
	sectionHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginTop(1)
	commandName     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	exampleCode     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
	bodyText        = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	mutedText       = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true)
	errorText       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)
)

// RenderTitle renders the app title block with name, version, and description
func RenderTitle() string {
	title := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, bodyText.Render(config.AppDescription))
}

// RenderError renders an error line for the terminal
func RenderError(err error) string {
	return errorText.Render("Error:") + " " + err.Error()
}
