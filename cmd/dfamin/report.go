package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/geange/dfamin"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(10)
	valueStyle = lipgloss.NewStyle().
			Bold(true)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// summary is what one minimization run reports back.
type summary struct {
	input, output string
	source        *dfamin.Automaton
	trimmed       int
	minimized     *dfamin.Automaton
}

func describe(a *dfamin.Automaton) string {
	return fmt.Sprintf("%d states, %d transitions, %d accepting",
		a.GetNumStates(), a.GetNumTransitions(), len(a.AcceptStates()))
}

func renderSummary(s summary) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}
	rows := []string{
		titleStyle.Render("DFA minimized"),
		row("input", s.input),
		row("source", describe(s.source)),
	}
	if s.trimmed > 0 {
		rows = append(rows, row("trimmed", fmt.Sprintf("%d unreachable states", s.trimmed)))
	}
	rows = append(rows,
		row("minimal", describe(s.minimized)),
		row("output", s.output),
	)
	return boxStyle.Render(strings.Join(rows, "\n"))
}
