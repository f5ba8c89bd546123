// Package tui is the live BCQP residual-convergence dashboard: a
// bubbletea program that replays a solved scenario's residual history one
// iteration at a time, rendering an asciigraph sparkline styled with
// lipgloss (spec.md §4.7 ambient stack).
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/rodconstraint/internal/bcqp"
	"github.com/san-kum/rodconstraint/internal/driver"
	"github.com/san-kum/rodconstraint/internal/scenario"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	convergedText = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("converged")
	failedText    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("did not converge")
)

const tickInterval = 60 * time.Millisecond

type tickMsg time.Time

type model struct {
	fixtureName string
	result      bcqp.Result
	cursor      int
	done        bool
}

func newModel(name string, result bcqp.Result) model {
	return model{fixtureName: name, result: result}
}

func (m model) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		if m.cursor >= len(m.result.ResidualHistory)-1 {
			m.done = true
			return m, nil
		}
		m.cursor++
		return m, tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return m, nil
}

func (m model) View() string {
	history := m.result.ResidualHistory
	upto := m.cursor + 1
	if upto > len(history) {
		upto = len(history)
	}
	data := history[:upto]
	if len(data) == 0 {
		data = []float64{0}
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("BCQP residual (log scale not applied, raw L2)"),
	)

	status := failedText
	if m.result.Reason == bcqp.Converged {
		status = convergedText
	}

	footer := "press q to quit"
	if m.done {
		footer = fmt.Sprintf("%s, %d iterations, final residual %.3e (%s)",
			status, m.result.Iterations, m.result.Residual, footer)
	}

	return fmt.Sprintf("%s\n%s iteration %d/%d\n\n%s\n\n%s\n",
		titleStyle.Render("rodsim: "+m.fixtureName),
		labelStyle.Render("BCQP convergence"),
		upto, len(history),
		graph,
		footer,
	)
}

// Watch builds and solves fixture, then replays the BCQP residual
// history as a live dashboard until the user quits.
func Watch(fx scenario.Fixture, log *logrus.Entry) error {
	out, err := driver.Run(fx, log)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newModel(fx.Name, out.BCQP))
	_, err = p.Run()
	return err
}
