package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/fiblike/internal/cli"
	"github.com/agbru/fiblike/internal/format"
)

// resultEdges is how many leading and trailing characters of a long answer
// are shown.
const resultEdges = 40

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	title := "fiblike"
	if m.version != "" && m.version != "dev" {
		title += " " + m.version
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(dimStyle.Render(" | seed " + m.cfg.Seed.String()))
	b.WriteString("\n\n")

	numeric := "-"
	if len(m.engines) > 0 {
		numeric = m.engines[m.current].Name()
	}
	fmt.Fprintf(&b, "%s %s   %s %s\n\n",
		labelStyle.Render("Mode:"), valueStyle.Render(m.cfg.Mode),
		labelStyle.Render("Backend:"), valueStyle.Render(numeric))

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.running:
		b.WriteString(progressStyle.Render(format.FormatProgressBarWithETA(m.progress.Value, m.progress.ETA, 30)))
	case m.err != nil:
		b.WriteString(errorStyle.Render(statusText(m.err)))
	case m.result != nil:
		line := cli.FormatResultLine(*m.result, m.last)
		head, answer, _ := strings.Cut(line, "\n")
		b.WriteString(head + "\n")
		b.WriteString(successStyle.Render(format.Truncate(answer, 2*resultEdges+1, resultEdges)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("in " + format.FormatExecutionDuration(m.result.Duration)))
	default:
		b.WriteString(dimStyle.Render("Type a number and press enter."))
	}

	return panelStyle.Render(b.String()) + "\n" + m.help.View(m.keys)
}
