package calculator

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	calc "github.com/abhisek/circuitz/internal/calculator"
	"github.com/abhisek/circuitz/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeKeys(s *CalculatorScreen, keys string) {
	for _, r := range keys {
		s.Update(keyPress(r))
	}
}

func TestCalculatorScreen_Typing(t *testing.T) {
	c := calc.New()
	s := New(c)

	typeKeys(s, "12+30=")
	if c.Display() != "42.00" {
		t.Fatalf("display = %q", c.Display())
	}
	if !strings.Contains(s.View(80, 24), "42.00") {
		t.Error("view should show the result")
	}
}

func TestCalculatorScreen_AsciiOperators(t *testing.T) {
	c := calc.New()
	s := New(c)
	typeKeys(s, "9/4=")
	if c.Display() != "2.25" {
		t.Fatalf("display = %q", c.Display())
	}
	typeKeys(s, "*2=")
	if c.Display() != "4.50" {
		t.Fatalf("display = %q", c.Display())
	}
}

func TestCalculatorScreen_KeypadNavigation(t *testing.T) {
	c := calc.New()
	s := New(c)

	// Focus starts on 7.
	s.Update(specialKey(tea.KeyEnter))
	if c.Display() != "7" {
		t.Fatalf("display = %q", c.Display())
	}

	// Right three times lands on ÷.
	for range 3 {
		s.Update(specialKey(tea.KeyRight))
	}
	s.Update(specialKey(tea.KeyEnter))
	if c.Pending() != "7.00 ÷" {
		t.Fatalf("pending = %q", c.Pending())
	}

	// Down to the Clear row clamps the column.
	for range 4 {
		s.Update(specialKey(tea.KeyDown))
	}
	if s.row != 4 || s.col != 0 {
		t.Fatalf("focus = (%d,%d), want (4,0)", s.row, s.col)
	}
	s.Update(specialKey(tea.KeyEnter))
	if c.Display() != "0" || c.Pending() != "" {
		t.Fatalf("after clear: display=%q pending=%q", c.Display(), c.Pending())
	}
}

func TestCalculatorScreen_DivideByZero(t *testing.T) {
	c := calc.New()
	s := New(c)
	typeKeys(s, "5/0=")
	if c.Display() != calc.ErrorDisplay {
		t.Fatalf("display = %q", c.Display())
	}
	typeKeys(s, "3")
	if c.Display() != "3" {
		t.Fatalf("digit after error = %q", c.Display())
	}
}

func TestCalculatorScreen_IgnoresUnknownKeys(t *testing.T) {
	c := calc.New()
	s := New(c)
	typeKeys(s, "4%")
	s.Update(specialKey(tea.KeyTab))
	if c.Display() != "4" {
		t.Fatalf("display = %q", c.Display())
	}
}

func TestCalculatorScreen_CtrlKCloses(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'k', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}
