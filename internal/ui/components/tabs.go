package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/circuitz/internal/ui/theme"
)

// Tabs is a horizontal single-choice selector.
type Tabs struct {
	Labels   []string
	Selected int
}

func NewTabs(labels []string, selected int) Tabs {
	t := Tabs{Labels: labels}
	t.Select(selected)
	return t
}

// Select moves to index i, clamped to the valid range.
func (t *Tabs) Select(i int) {
	t.Selected = min(max(i, 0), max(len(t.Labels)-1, 0))
}

// Next and Prev wrap around.
func (t *Tabs) Next() {
	if len(t.Labels) > 0 {
		t.Selected = (t.Selected + 1) % len(t.Labels)
	}
}

func (t *Tabs) Prev() {
	if n := len(t.Labels); n > 0 {
		t.Selected = (t.Selected + n - 1) % n
	}
}

func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		label := " " + strings.ToUpper(l) + " "
		if i == t.Selected {
			parts[i] = theme.ButtonActive.Render(label)
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 2).Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
