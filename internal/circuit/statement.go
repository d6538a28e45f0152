package circuit

import "fmt"

// Statement returns the objective shown to the learner.
func (p Problem) Statement() string {
	switch p.Target {
	case TargetEquivalentResistance:
		return "Find the Total Equivalent Resistance (Req) of the entire circuit."
	case TargetTotalCurrent:
		return "Given the source voltage, find the Total Current (Itotal) flowing from the source."
	case TargetTotalVoltage:
		return fmt.Sprintf("Find the Source Voltage (Vtotal) required to produce a total current of %sA in this circuit.",
			FormatValue(p.GivenCurrent))
	}
	return ""
}

// VoltageLabel is the source voltage as displayed, or "???" when hidden.
func (p Problem) VoltageLabel() string {
	v, ok := p.KnownVoltage()
	if !ok {
		return "???"
	}
	return FormatValue(v) + "V"
}

// CurrentLabel is the total current as displayed, or "???" when hidden.
func (p Problem) CurrentLabel() string {
	i, ok := p.KnownCurrent()
	if !ok {
		return "???"
	}
	return FormatValue(i) + "A"
}
