package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/circuitz/internal/circuit"
)

const systemPrompt = `You are an expert electrical engineering tutor. Explain step by step how to solve the DC circuit problem you are given.

Formatting rules:
- Do not use LaTeX math delimiters ($$, \[ \]) or commands such as \frac or \Omega.
- Use plain characters for units: Ω for ohms, A for amps, V for volts.
- Write formulas as simple text, e.g. "R_total = R1 + R2" or "I = V / R".
- Keep each step short, clear and educational.
- Use Markdown only for **bold**; no headings, tables or code.`

// buildUserMessage describes p to the model. Hidden quantities are
// reported as unknown.
func buildUserMessage(p circuit.Problem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Circuit type: %s\n", p.Topology)
	if v, ok := p.KnownVoltage(); ok {
		fmt.Fprintf(&b, "Source voltage: %sV\n", circuit.FormatValue(v))
	} else {
		b.WriteString("Source voltage: Unknown\n")
	}

	parts := make([]string, len(p.Resistors))
	for i, r := range p.Resistors {
		parts[i] = fmt.Sprintf("%s = %sΩ", r.ID, circuit.FormatValue(r.Value))
	}
	fmt.Fprintf(&b, "Resistors: %s\n", strings.Join(parts, ", "))

	if p.Topology == circuit.TopologyCombination && len(p.Resistors) == circuit.ResistorCount {
		fmt.Fprintf(&b, "Wiring: %s in series with (%s parallel to %s)\n",
			p.Resistors[0].ID, p.Resistors[1].ID, p.Resistors[2].ID)
	}

	fmt.Fprintf(&b, "Objective: Find the %s.\n", p.Target.Name())
	if p.Target == circuit.TargetTotalVoltage {
		fmt.Fprintf(&b, "Known total current: %sA\n", circuit.FormatValue(p.GivenCurrent))
	}
	return b.String()
}
