// Package calculator implements the pocket calculator shown next to a
// problem. It is a small state machine (display buffer, pending operator,
// accumulator) and never evaluates expressions from strings.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operator is a binary arithmetic operator.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
)

// ErrorDisplay is shown after a division by zero or an overflow.
const ErrorDisplay = "Error"

var ErrUnknownKey = errors.New("unknown calculator key")

// ParseOperator maps a key label to an operator. ASCII "*" and "/" are
// accepted alongside the display symbols.
func ParseOperator(key string) (Operator, bool) {
	switch key {
	case "+":
		return OpAdd, true
	case "-":
		return OpSubtract, true
	case "×", "*", "x":
		return OpMultiply, true
	case "÷", "/":
		return OpDivide, true
	}
	return "", false
}

// Calculator holds the state of one calculator session. The zero value is
// not ready for use; call New.
type Calculator struct {
	display     string
	accumulator float64
	pending     Operator
	// fresh is set when the next digit replaces the display instead of
	// appending to it.
	fresh bool
}

// New returns a cleared calculator.
func New() *Calculator {
	c := &Calculator{}
	c.Clear()
	return c
}

// Display returns the current display text.
func (c *Calculator) Display() string {
	return c.display
}

// Pending returns the accumulated left operand and operator, e.g. "12 +",
// or "" when no operator is pending.
func (c *Calculator) Pending() string {
	if c.pending == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", format(c.accumulator), c.pending)
}

// Clear resets the calculator.
func (c *Calculator) Clear() {
	c.display = "0"
	c.accumulator = 0
	c.pending = ""
	c.fresh = true
}

// Digit appends a decimal digit (0-9) to the display.
func (c *Calculator) Digit(d int) error {
	if d < 0 || d > 9 {
		return fmt.Errorf("%w: digit %d", ErrUnknownKey, d)
	}
	s := strconv.Itoa(d)
	if c.fresh || c.display == "0" || c.display == ErrorDisplay {
		c.display = s
		c.fresh = false
		return nil
	}
	c.display += s
	return nil
}

// Point adds a decimal point unless the display already has one.
func (c *Calculator) Point() {
	if c.fresh || c.display == ErrorDisplay {
		c.display = "0."
		c.fresh = false
		return
	}
	if !strings.Contains(c.display, ".") {
		c.display += "."
	}
}

// Operator stores op as pending. If an operator is already pending and a
// new operand has been entered, the pending operation is applied first so
// chains evaluate left to right.
func (c *Calculator) Operator(op Operator) {
	if c.display == ErrorDisplay {
		return
	}
	if c.pending != "" && !c.fresh {
		if !c.apply() {
			return
		}
	} else if c.pending == "" {
		c.accumulator = c.operand()
	}
	c.pending = op
	c.fresh = true
}

// Equals applies the pending operator and shows the result with two
// decimals. With nothing pending it only normalizes the display.
func (c *Calculator) Equals() {
	if c.display == ErrorDisplay {
		return
	}
	if c.pending == "" {
		c.display = format(c.operand())
		c.fresh = true
		return
	}
	if c.apply() {
		c.pending = ""
	}
	c.fresh = true
}

// Press dispatches a key label: digits, ".", operators, "=" and "C".
func (c *Calculator) Press(key string) error {
	switch key {
	case "=", "enter":
		c.Equals()
		return nil
	case ".":
		c.Point()
		return nil
	case "c", "C":
		c.Clear()
		return nil
	}
	if op, ok := ParseOperator(key); ok {
		c.Operator(op)
		return nil
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return c.Digit(int(key[0] - '0'))
	}
	return fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// apply combines the accumulator with the display operand. It returns
// false and enters the error state when the result is not finite.
func (c *Calculator) apply() bool {
	rhs := c.operand()
	var result float64
	switch c.pending {
	case OpAdd:
		result = c.accumulator + rhs
	case OpSubtract:
		result = c.accumulator - rhs
	case OpMultiply:
		result = c.accumulator * rhs
	case OpDivide:
		if rhs == 0 {
			c.fail()
			return false
		}
		result = c.accumulator / rhs
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		c.fail()
		return false
	}
	c.accumulator = result
	c.display = format(result)
	return true
}

func (c *Calculator) fail() {
	c.display = ErrorDisplay
	c.accumulator = 0
	c.pending = ""
	c.fresh = true
}

// operand parses the display. A trailing point ("3.") parses as 3.
func (c *Calculator) operand() float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(c.display, "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
