// Package calculator is the keypad screen over the calculator state machine.
package calculator

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	calc "github.com/abhisek/circuitz/internal/calculator"
	"github.com/abhisek/circuitz/internal/router"
	"github.com/abhisek/circuitz/internal/screen"
	"github.com/abhisek/circuitz/internal/ui/components"
	"github.com/abhisek/circuitz/internal/ui/layout"
	"github.com/abhisek/circuitz/internal/ui/theme"
)

// keypad rows; the last row is the Clear key alone.
var keypad = [][]string{
	{"7", "8", "9", "÷"},
	{"4", "5", "6", "×"},
	{"1", "2", "3", "-"},
	{"0", ".", "=", "+"},
	{"C"},
}

const displayWidth = 28

// CalculatorScreen shows a calculator and its keypad. The calculator is
// shared with the caller so its state survives closing the screen.
type CalculatorScreen struct {
	calc     *calc.Calculator
	buttons  [][]components.Button
	row, col int
}

var _ screen.Screen = (*CalculatorScreen)(nil)
var _ screen.KeyHintProvider = (*CalculatorScreen)(nil)

// New returns a screen driving c. A nil c gets a fresh calculator.
func New(c *calc.Calculator) *CalculatorScreen {
	if c == nil {
		c = calc.New()
	}
	s := &CalculatorScreen{calc: c}
	s.buttons = make([][]components.Button, len(keypad))
	for r, keys := range keypad {
		for _, k := range keys {
			label := k
			if k == "C" {
				label = "CLEAR"
			}
			s.buttons[r] = append(s.buttons[r], components.NewButton(label, false, func() tea.Cmd {
				s.press(k)
				return nil
			}))
		}
	}
	s.focus()
	return s
}

func (s *CalculatorScreen) Init() tea.Cmd { return nil }

func (s *CalculatorScreen) Title() string { return "Calculator" }

func (s *CalculatorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "0-9 + - * /", Description: "Type"},
		{Key: "Arrows", Description: "Move"},
		{Key: "Enter", Description: "Press"},
		{Key: "Esc", Description: "Close"},
	}
}

func (s *CalculatorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key := kmsg.String(); key {
	case "ctrl+k":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up":
		s.move(-1, 0)
	case "down":
		s.move(1, 0)
	case "left":
		s.move(0, -1)
	case "right":
		s.move(0, 1)
	case "enter":
		var cmd tea.Cmd
		s.buttons[s.row][s.col], cmd = s.buttons[s.row][s.col].Update(msg)
		return s, cmd
	case "backspace", "delete":
		s.press("C")
	default:
		s.press(key)
	}
	return s, nil
}

// press feeds one key label to the calculator. Keys it does not know,
// such as tab, are ignored.
func (s *CalculatorScreen) press(key string) {
	_ = s.calc.Press(key)
}

// move shifts focus, clamping the column on the short Clear row.
func (s *CalculatorScreen) move(dr, dc int) {
	s.row = min(max(s.row+dr, 0), len(keypad)-1)
	s.col = min(max(s.col+dc, 0), len(keypad[s.row])-1)
	s.focus()
}

func (s *CalculatorScreen) focus() {
	for r := range s.buttons {
		for c := range s.buttons[r] {
			s.buttons[r][c].Active = r == s.row && c == s.col
		}
	}
}

func (s *CalculatorScreen) View(width, height int) string {
	right := lipgloss.NewStyle().Width(displayWidth).Align(lipgloss.Right)
	display := theme.Card.Render(
		theme.Hint.Render(right.Render(s.calc.Pending())) + "\n" +
			theme.Strong.Render(right.Render(s.calc.Display())),
	)

	rows := make([]string, 0, len(s.buttons))
	for _, row := range s.buttons {
		cells := make([]string, 0, len(row))
		for _, b := range row {
			cells = append(cells, lipgloss.NewStyle().Width(8).Align(lipgloss.Center).Render(b.View()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Label.Render("MATH TOOL"),
		"",
		display,
		"",
		lipgloss.JoinVertical(lipgloss.Center, rows...),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
