package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	fired := ""
	item := func(label string, disabled bool) MenuItem {
		return MenuItem{Label: label, Disabled: disabled, Action: func() tea.Cmd {
			fired = label
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("off", true), item("series", false), item("gone", true), item("quit", false)})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Fatalf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(keyPress('k'))
	if m.Selected != 1 {
		t.Fatalf("after k = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Fatalf("up past disabled head moved selection to %d", m.Selected)
	}

	m.Update(specialKey(tea.KeyEnter))
	if fired != "series" {
		t.Fatalf("enter fired %q", fired)
	}
}

func TestMenu_View(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Series", Hint: "R1 + R2 + R3"}, {Label: "Quit"}})
	v := m.View()
	if !strings.Contains(v, "▸ Series") || !strings.Contains(v, "R1 + R2 + R3") {
		t.Fatalf("view = %q", v)
	}
}

func TestTabs_Wrap(t *testing.T) {
	tabs := NewTabs([]string{"Series", "Parallel", "Combination"}, 0)
	tabs.Prev()
	if tabs.Selected != 2 {
		t.Fatalf("Prev from 0 = %d", tabs.Selected)
	}
	tabs.Next()
	if tabs.Selected != 0 {
		t.Fatalf("Next from 2 = %d", tabs.Selected)
	}
	tabs.Select(9)
	if tabs.Selected != 2 {
		t.Fatalf("Select(9) = %d", tabs.Selected)
	}
	if !strings.Contains(tabs.View(), "COMBINATION") {
		t.Fatalf("view = %q", tabs.View())
	}
}

func TestTextInput_SubmitMarkClearsOnEdit(t *testing.T) {
	in := NewTextInput("Value...", "Ω", 12)
	in, _ = in.Update(keyPress('6'))
	in, _ = in.Update(keyPress('0'))
	if in.Value() != "60" {
		t.Fatalf("value = %q", in.Value())
	}

	in.Submit(true)
	if !strings.Contains(in.View(), "✓") || !strings.Contains(in.View(), "Ω") {
		t.Fatalf("view = %q", in.View())
	}

	in, _ = in.Update(specialKey(tea.KeyBackspace))
	if strings.Contains(in.View(), "✓") {
		t.Fatal("verdict mark should clear after editing")
	}
}

func TestButton_Enter(t *testing.T) {
	pressed := false
	b := NewButton("=", false, func() tea.Cmd { pressed = true; return nil })
	b.Update(specialKey(tea.KeyEnter))
	if pressed {
		t.Fatal("inactive button fired")
	}
	b.Active = true
	b.Update(specialKey(tea.KeyEnter))
	if !pressed {
		t.Fatal("active button did not fire")
	}
}
