package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fiblike/internal/ui"
)

// Styles of the interactive mode, rebuilt from the ui theme by
// initTUIStyles.
var (
	panelStyle    lipgloss.Style
	titleStyle    lipgloss.Style
	labelStyle    lipgloss.Style
	valueStyle    lipgloss.Style
	progressStyle lipgloss.Style
	successStyle  lipgloss.Style
	errorStyle    lipgloss.Style
	dimStyle      lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again after app has applied --no-color.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	progressStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	successStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
