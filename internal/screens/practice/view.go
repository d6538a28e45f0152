package practice

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/explain"
	"github.com/abhisek/circuitz/internal/schematic"
	"github.com/abhisek/circuitz/internal/ui/theme"
)

// wideLayout is the width from which the schematic and objective panels
// sit side by side.
const wideLayout = 110

func (s *PracticeScreen) View(width, height int) string {
	tabs := lipgloss.PlaceHorizontal(width, lipgloss.Center, s.tabs.View())

	var body string
	if width >= wideLayout {
		left := (width - 4) * 7 / 12
		right := width - 4 - left
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			s.renderCircuitPanel(left),
			"  ",
			s.renderObjectivePanel(right),
		)
	} else {
		panelWidth := width - 2
		body = lipgloss.JoinVertical(lipgloss.Left,
			s.renderCircuitPanel(panelWidth),
			s.renderObjectivePanel(panelWidth),
		)
	}
	return tabs + "\n" + body
}

// renderCircuitPanel draws the schematic and the three given values.
func (s *PracticeScreen) renderCircuitPanel(width int) string {
	p := s.problem
	inner := max(width-4, 10)

	heading := theme.Label.Render("SCHEMATIC VIEW")
	solveFor := theme.Label.Render("SOLVE FOR: ") + theme.Unknown.Render(string(p.Target))
	gap := max(inner-lipgloss.Width(heading)-lipgloss.Width(solveFor), 1)

	var b strings.Builder
	b.WriteString(heading + strings.Repeat(" ", gap) + solveFor)
	b.WriteString("\n\n")
	b.WriteString(theme.Wire.Render(schematic.Render(p)))
	b.WriteString("\n\n")

	colWidth := max(inner/3-1, 8)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		given("SOURCE", p.VoltageLabel(), colWidth),
		given("TOTAL CURRENT", p.CurrentLabel(), colWidth),
		given("STATUS", "Calc required", colWidth),
	))

	return theme.Card.Width(width).Render(b.String())
}

func given(label, value string, width int) string {
	style := theme.Strong
	if value == "???" {
		style = theme.Unknown
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		theme.Label.Render(label) + "\n" + style.Render(value),
	)
}

// renderObjectivePanel draws the statement, answer field, verdict and the
// tutor section.
func (s *PracticeScreen) renderObjectivePanel(width int) string {
	inner := max(width-4, 10)
	wrap := lipgloss.NewStyle().Width(inner)

	var b strings.Builder
	b.WriteString(theme.Title.Align(lipgloss.Left).Render("CURRENT OBJECTIVE"))
	b.WriteString("\n\n")
	b.WriteString(wrap.Foreground(theme.Text).Render(s.problem.Statement()))
	b.WriteString("\n\n")
	b.WriteString("Answer: " + s.input.View())
	b.WriteString("\n")

	if s.verdict != nil {
		b.WriteString("\n")
		b.WriteString(verdictStyle(*s.verdict).Width(inner).Render(s.verdict.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Label.Foreground(theme.Secondary).Render("TUTOR ASSISTANCE"))
	b.WriteString("\n")
	switch {
	case s.explaining:
		b.WriteString(s.spinner.View() + " " + theme.Hint.Render("Analyzing circuit..."))
	case s.explanation != nil:
		b.WriteString(renderExplanation(*s.explanation, inner))
	default:
		b.WriteString(theme.Hint.Render("Press Ctrl+E for a step-by-step explanation."))
	}

	return theme.Card.Width(width).Render(b.String())
}

func verdictStyle(v circuit.Verdict) lipgloss.Style {
	if v.Correct() {
		return theme.Correct
	}
	return theme.Incorrect
}

// renderExplanation styles **bold** runs and wraps each line to width.
func renderExplanation(e explain.Explanation, width int) string {
	if !e.OK {
		return lipgloss.NewStyle().Width(width).Foreground(theme.Error).Render(e.Text)
	}
	lines := strings.Split(e.Text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		for _, seg := range explain.Segments(line) {
			if seg.Bold {
				b.WriteString(theme.Strong.Render(seg.Text))
			} else {
				b.WriteString(theme.Body.Render(seg.Text))
			}
		}
		out = append(out, lipgloss.NewStyle().Width(width).Render(b.String()))
	}
	return strings.Join(out, "\n")
}
