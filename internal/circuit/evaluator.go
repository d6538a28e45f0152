package circuit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Outcome classifies a submitted answer.
type Outcome string

const (
	OutcomeCorrect      Outcome = "correct"
	OutcomeIncorrect    Outcome = "incorrect"
	OutcomeInvalidInput Outcome = "invalid_input"
)

// Verdict is the result of checking one answer against a problem.
type Verdict struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}

// Correct reports whether the answer was accepted.
func (v Verdict) Correct() bool { return v.Outcome == OutcomeCorrect }

// InvalidInputMessage is shown when the answer is not a number.
const InvalidInputMessage = "Please enter a numeric value."

// boundarySlack absorbs binary representation error so that a decimal answer
// sitting exactly on the tolerance boundary is accepted.
const boundarySlack = 1e-9

// Tolerance returns the maximum accepted deviation for answers to target.
// Resistance answers get more room because rounding compounds through the
// reciprocal sums.
func Tolerance(target Target) float64 {
	if target == TargetEquivalentResistance {
		return 0.5
	}
	return 0.1
}

// Evaluate checks raw against the problem's correct answer. It never
// modifies p and returns the same verdict for the same inputs.
func Evaluate(p Problem, raw string) Verdict {
	value, err := ParseAnswer(raw)
	if err != nil {
		return Verdict{Outcome: OutcomeInvalidInput, Message: InvalidInputMessage}
	}

	answer := FormatValue(p.CorrectAnswer) + p.Unit
	if math.Abs(value-p.CorrectAnswer) <= Tolerance(p.Target)+boundarySlack {
		return Verdict{
			Outcome: OutcomeCorrect,
			Message: fmt.Sprintf("Correct! The %s is %s.", p.Target, answer),
		}
	}
	return Verdict{
		Outcome: OutcomeIncorrect,
		Message: fmt.Sprintf("Not quite. Expected around %s. Check your steps!", answer),
	}
}

// ParseAnswer parses a learner's answer as a finite real number.
func ParseAnswer(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty answer")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q: not finite", s)
	}
	return v, nil
}

// FormatValue renders v in its shortest decimal form, e.g. 60, 0.33, 3.333.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
