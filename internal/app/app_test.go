package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/circuitz/internal/circuit"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// drive applies msg and runs the returned command chain one level deep,
// the way the Bubble Tea runtime would for navigation messages.
func drive(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	model, cmd := m.Update(msg)
	m = model.(AppModel)
	if cmd != nil {
		if next := cmd(); next != nil {
			if _, quit := next.(tea.QuitMsg); !quit {
				model, _ = m.Update(next)
				m = model.(AppModel)
			}
		}
	}
	return m
}

func newTestModel() AppModel {
	return newAppModel(Options{Generator: circuit.NewSeededGenerator(11), TutorStatus: "tutor: off"})
}

func TestApp_NavigateToPracticeAndBack(t *testing.T) {
	m := newTestModel()
	m = drive(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m = drive(t, m, specialKey(tea.KeyEnter))
	if m.router.Depth() != 2 || m.router.Active().Title() != "Practice" {
		t.Fatalf("expected practice screen, got %q at depth %d", m.router.Active().Title(), m.router.Depth())
	}

	view := m.render()
	if !strings.Contains(view, "Ctrl+N") || !strings.Contains(view, "Series") {
		t.Errorf("practice frame should show its hints and topology status")
	}

	m = drive(t, m, specialKey(tea.KeyEscape))
	if m.router.Depth() != 1 {
		t.Fatalf("esc should pop back home, depth %d", m.router.Depth())
	}

	// Esc at the bottom is a no-op.
	m = drive(t, m, specialKey(tea.KeyEscape))
	if m.router.Depth() != 1 {
		t.Fatalf("depth %d after esc at home", m.router.Depth())
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := drive(t, newTestModel(), tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Fatal("expected the minimum size message")
	}
}

func TestApp_HomeHeader(t *testing.T) {
	m := drive(t, newTestModel(), tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.render()
	if !strings.Contains(view, "tutor: off") || !strings.Contains(view, "Navigate") {
		t.Errorf("home frame missing status or default hints")
	}
}
