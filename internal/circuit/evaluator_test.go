package circuit

import (
	"reflect"
	"testing"
)

func fixedProblem(target Target, answer float64) Problem {
	return Problem{
		Topology:      TopologySeries,
		SourceVoltage: 20,
		Resistors:     []Resistor{{"R1", 10}, {"R2", 20}, {"R3", 30}},
		Target:        target,
		CorrectAnswer: answer,
		Unit:          target.Unit(),
		GivenCurrent:  0.333,
	}
}

func TestEvaluate_ToleranceBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		answer float64
		input  string
		want   Outcome
	}{
		{"req exact", TargetEquivalentResistance, 10, "10", OutcomeCorrect},
		{"req upper edge", TargetEquivalentResistance, 10, "10.5", OutcomeCorrect},
		{"req lower edge", TargetEquivalentResistance, 10, "9.5", OutcomeCorrect},
		{"req past edge", TargetEquivalentResistance, 10, "10.51", OutcomeIncorrect},
		{"req below edge", TargetEquivalentResistance, 10, "9.49", OutcomeIncorrect},
		{"current upper edge", TargetTotalCurrent, 2, "2.1", OutcomeCorrect},
		{"current lower edge", TargetTotalCurrent, 2, "1.9", OutcomeCorrect},
		{"current past edge", TargetTotalCurrent, 2, "2.11", OutcomeIncorrect},
		{"voltage within", TargetTotalVoltage, 20, "20.05", OutcomeCorrect},
		{"voltage past edge", TargetTotalVoltage, 20, "20.2", OutcomeIncorrect},
		{"whitespace trimmed", TargetTotalCurrent, 2, "  2.0 ", OutcomeCorrect},
		{"scientific notation", TargetEquivalentResistance, 10, "1e1", OutcomeCorrect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := Evaluate(fixedProblem(tc.target, tc.answer), tc.input)
			if v.Outcome != tc.want {
				t.Errorf("Evaluate(%q) = %s (%q), want %s", tc.input, v.Outcome, v.Message, tc.want)
			}
		})
	}
}

func TestEvaluate_InvalidInput(t *testing.T) {
	p := fixedProblem(TargetTotalCurrent, 2)
	before := fixedProblem(TargetTotalCurrent, 2)

	for _, input := range []string{"abc", "", "   ", "12abc", "1.2.3", "NaN", "Inf", "-Inf"} {
		v := Evaluate(p, input)
		if v.Outcome != OutcomeInvalidInput {
			t.Errorf("Evaluate(%q) = %s, want invalid_input", input, v.Outcome)
		}
		if v.Message != InvalidInputMessage {
			t.Errorf("Evaluate(%q) message = %q", input, v.Message)
		}
	}

	if !reflect.DeepEqual(p, before) {
		t.Error("Evaluate modified the problem")
	}
}

func TestEvaluate_Messages(t *testing.T) {
	p, err := NewProblem(TopologySeries, 20, []float64{10, 20, 30}, TargetEquivalentResistance)
	if err != nil {
		t.Fatal(err)
	}

	v := Evaluate(p, "60")
	if !v.Correct() {
		t.Fatalf("expected correct, got %s", v.Outcome)
	}
	if want := "Correct! The Req is 60Ω."; v.Message != want {
		t.Errorf("message = %q, want %q", v.Message, want)
	}

	v = Evaluate(p, "50")
	if v.Correct() {
		t.Fatal("expected incorrect")
	}
	if want := "Not quite. Expected around 60Ω. Check your steps!"; v.Message != want {
		t.Errorf("message = %q, want %q", v.Message, want)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	g := NewSeededGenerator(3)
	for i := 0; i < 200; i++ {
		p := g.GenerateAny()
		for _, input := range []string{"1", "12.5", FormatValue(p.CorrectAnswer), "x"} {
			first := Evaluate(p, input)
			second := Evaluate(p, input)
			if first != second {
				t.Fatalf("non-deterministic verdict for %q: %+v vs %+v", input, first, second)
			}
		}
		if v := Evaluate(p, FormatValue(p.CorrectAnswer)); !v.Correct() {
			t.Fatalf("exact answer rejected: %+v -> %+v", p, v)
		}
	}
}

func TestTolerance(t *testing.T) {
	if got := Tolerance(TargetEquivalentResistance); got != 0.5 {
		t.Errorf("Tolerance(Req) = %v", got)
	}
	if got := Tolerance(TargetTotalCurrent); got != 0.1 {
		t.Errorf("Tolerance(Itotal) = %v", got)
	}
	if got := Tolerance(TargetTotalVoltage); got != 0.1 {
		t.Errorf("Tolerance(Vtotal) = %v", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := map[float64]string{
		60:    "60",
		0.33:  "0.33",
		3.333: "3.333",
		20.5:  "20.5",
	}
	for in, want := range tests {
		if got := FormatValue(in); got != want {
			t.Errorf("FormatValue(%v) = %q, want %q", in, got, want)
		}
	}
}
