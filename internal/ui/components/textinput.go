package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/circuitz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a unit suffix and a verdict mark.
type TextInput struct {
	Model textinput.Model
	// Unit is rendered after the field, e.g. "Ω".
	Unit string

	submitted bool
	valid     bool
}

// NewTextInput returns a focused input limited to maxWidth runes.
func NewTextInput(placeholder, unit string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return TextInput{Model: ti, Unit: unit}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards msg to the field. Editing clears a previous verdict mark.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.submitted = false
	}
	return t, cmd
}

func (t TextInput) View() string {
	view := t.Model.View()
	if t.Unit != "" {
		view += " " + theme.Unknown.Render(t.Unit)
	}
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit marks the input with a verdict.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
