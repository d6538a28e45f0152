package calculator

import (
	"errors"
	"testing"
)

func press(t *testing.T, c *Calculator, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if err := c.Press(k); err != nil {
			t.Fatalf("Press(%q): %v", k, err)
		}
	}
}

func TestCalculator_Sequences(t *testing.T) {
	tests := []struct {
		name        string
		keys        []string
		wantDisplay string
		wantPending string
	}{
		{"fresh", nil, "0", ""},
		{"digits", []string{"1", "2"}, "12", ""},
		{"leading zero replaced", []string{"0", "0", "7"}, "7", ""},
		{"addition", []string{"1", "2", "+", "3", "="}, "15.00", ""},
		{"subtraction", []string{"5", "-", "8", "="}, "-3.00", ""},
		{"multiplication symbol", []string{"6", "×", "7", "="}, "42.00", ""},
		{"multiplication ascii", []string{"6", "*", "7", "="}, "42.00", ""},
		{"division", []string{"2", "0", "÷", "3", "="}, "6.67", ""},
		{"pending shown", []string{"1", "2", "+"}, "12", "12.00 +"},
		{"chain evaluates left to right", []string{"2", "+", "3", "×"}, "5.00", "5.00 ×"},
		{"chain result", []string{"2", "+", "3", "×", "4", "="}, "20.00", ""},
		{"operator replaced", []string{"9", "+", "-", "4", "="}, "5.00", ""},
		{"decimal point", []string{".", "5"}, "0.5", ""},
		{"single point", []string{"1", ".", ".", "5"}, "1.5", ""},
		{"trailing point", []string{"3", ".", "+", "1", "="}, "4.00", ""},
		{"equals alone", []string{"7", "="}, "7.00", ""},
		{"result reused", []string{"1", "+", "1", "=", "+", "3", "="}, "5.00", ""},
		{"digit after result starts fresh", []string{"1", "+", "1", "=", "9"}, "9", ""},
		{"divide by zero", []string{"5", "÷", "0", "="}, ErrorDisplay, ""},
		{"recover from error", []string{"5", "/", "0", "=", "8"}, "8", ""},
		{"clear", []string{"5", "+", "C"}, "0", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			press(t, c, tc.keys...)
			if got := c.Display(); got != tc.wantDisplay {
				t.Errorf("Display() = %q, want %q", got, tc.wantDisplay)
			}
			if got := c.Pending(); got != tc.wantPending {
				t.Errorf("Pending() = %q, want %q", got, tc.wantPending)
			}
		})
	}
}

func TestCalculator_ResistanceWorkflow(t *testing.T) {
	// 1 / (1/20 + 1/20) evaluated step by step, as a learner would.
	c := New()
	press(t, c, "1", "÷", "2", "0", "=")
	if c.Display() != "0.05" {
		t.Fatalf("1/20 = %q", c.Display())
	}
	press(t, c, "×", "2", "=")
	if c.Display() != "0.10" {
		t.Fatalf("0.05*2 = %q", c.Display())
	}
}

func TestCalculator_UnknownKey(t *testing.T) {
	c := New()
	err := c.Press("%")
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if err := c.Digit(12); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey for digit 12, got %v", err)
	}
	if c.Display() != "0" {
		t.Errorf("display changed after bad key: %q", c.Display())
	}
}

func TestParseOperator(t *testing.T) {
	for key, want := range map[string]Operator{
		"+": OpAdd, "-": OpSubtract, "*": OpMultiply, "×": OpMultiply, "/": OpDivide, "÷": OpDivide,
	} {
		got, ok := ParseOperator(key)
		if !ok || got != want {
			t.Errorf("ParseOperator(%q) = %q, %v; want %q", key, got, ok, want)
		}
	}
	if _, ok := ParseOperator("="); ok {
		t.Error("= is not an operator")
	}
}
