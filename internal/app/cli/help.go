package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type helpRow struct {
	usage string
	text  string
}

var (
	usageRows = []helpRow{
		{"screenlog [run] [--init] [--no-watch]", "Capture standard input into the sink"},
		{"screenlog console [--match <glob>]", "Accept devices and send them commands"},
		{"screenlog stored [--reset]", "Print or delete the stored entries"},
		{"screenlog version", "Show version"},
		{"screenlog help", "Show help"},
	}

	inputRows = []helpRow{
		{"warn: disk almost full", "Entry at the prefixed level (debug, log, info, warn, error)"},
		{`{"user":"ada","id":7}`, "JSON values are serialized like any other value"},
		{"::pause / ::resume", "Stop and restart output without losing entries"},
		{"::time <label> / ::timeEnd <label>", "Measure elapsed time"},
		{"::group <label> / ::groupEnd", "Indent the following entries"},
		{"::clear / ::enable / ::disable", "Clear the sink or toggle capturing"},
		{"::table <json>", "Record a JSON array or object as a table"},
	}

	exampleRows = []helpRow{
		{"make test 2>&1 | screenlog", "Mirror a build into the sink"},
		{"screenlog run --init", "Write screenlog.yaml and start"},
		{"screenlog console -m '*timeout*'", "Watch devices for timeouts"},
	}
)

// RenderHelp renders the usage text
func RenderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		sectionHeader.Render("Usage:"),
		renderRows(usageRows, commandName),
		sectionHeader.Render("Input:"),
		renderRows(inputRows, exampleCode),
		sectionHeader.Render("Examples:"),
		renderRows(exampleRows, exampleCode),
		mutedText.Render("Flag --config <path> selects the configuration file."),
	) + "\n"
}

func renderRows(rows []helpRow, style lipgloss.Style) string {
	width := 0
	for _, row := range rows {
		width = max(width, len(row.usage))
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		padding := width - len(row.usage) + 4
		lines[i] = bodyText.Render(fmt.Sprintf("  %s%*s%s", style.Render(row.usage), padding, "", row.text))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
