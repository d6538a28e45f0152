package circuit

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Topology identifies how the three resistors are wired to the source.
type Topology string

const (
	// TopologySeries chains R1, R2 and R3 so the same current flows through each.
	TopologySeries Topology = "SERIES"

	// TopologyParallel connects R1, R2 and R3 across the same two nodes.
	TopologyParallel Topology = "PARALLEL"

	// TopologyCombination puts R1 in series with the parallel pair R2 || R3.
	TopologyCombination Topology = "COMBINATION"
)

// Topologies lists every supported topology in display order.
var Topologies = []Topology{TopologySeries, TopologyParallel, TopologyCombination}

// ParseTopology resolves a topology name, ignoring case and surrounding space.
func ParseTopology(s string) (Topology, error) {
	t := Topology(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTopology, s)
	}
	return t, nil
}

// Valid reports whether t is one of the supported topologies.
func (t Topology) Valid() bool {
	switch t {
	case TopologySeries, TopologyParallel, TopologyCombination:
		return true
	}
	return false
}

// Label is the title-cased topology name, e.g. "Series".
func (t Topology) Label() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// Target names the quantity hidden from the learner.
type Target string

const (
	TargetEquivalentResistance Target = "Req"
	TargetTotalCurrent         Target = "Itotal"
	TargetTotalVoltage         Target = "Vtotal"
)

// Targets lists every target the generator may pick.
var Targets = []Target{TargetEquivalentResistance, TargetTotalCurrent, TargetTotalVoltage}

// Valid reports whether t is a known target.
func (t Target) Valid() bool {
	switch t {
	case TargetEquivalentResistance, TargetTotalCurrent, TargetTotalVoltage:
		return true
	}
	return false
}

// Name returns the human-readable name of the quantity.
func (t Target) Name() string {
	switch t {
	case TargetEquivalentResistance:
		return "Total Equivalent Resistance (Req)"
	case TargetTotalCurrent:
		return "Total Current (Itotal)"
	case TargetTotalVoltage:
		return "Total Source Voltage (Vtotal)"
	}
	return string(t)
}

// Unit returns the unit symbol of the quantity.
func (t Target) Unit() string {
	switch t {
	case TargetEquivalentResistance:
		return "Ω"
	case TargetTotalCurrent:
		return "A"
	case TargetTotalVoltage:
		return "V"
	}
	return ""
}

// Resistor is a single labelled resistance in ohms.
type Resistor struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

// ResistorCount is the number of resistors in every problem.
const ResistorCount = 3

// Problem is one generated circuit exercise. Problems are values: callers
// never modify a Problem after it is built; a new exercise is a new Problem.
type Problem struct {
	Topology Topology `json:"topology"`

	// SourceVoltage is the true source voltage, even when it is the target.
	SourceVoltage float64 `json:"source_voltage"`

	// Resistors are ordered R1..R3. For combination circuits R1 is the
	// series element and R2, R3 form the parallel pair.
	Resistors []Resistor `json:"resistors"`

	Target Target `json:"target"`

	// CorrectAnswer is the true value of Target rounded to 2 decimals.
	CorrectAnswer float64 `json:"correct_answer"`

	// Unit is the unit of CorrectAnswer: "Ω", "A" or "V".
	Unit string `json:"unit"`

	// GivenCurrent is the total current rounded to 3 decimals. It is shown
	// to the learner whenever the current is not the target.
	GivenCurrent float64 `json:"given_current"`
}

var (
	ErrUnknownTopology = errors.New("unknown topology")
	ErrUnknownTarget   = errors.New("unknown target")
	ErrResistorCount   = errors.New("a problem needs exactly 3 resistors")
	ErrValueRange      = errors.New("values must be finite and positive")
)

// NewProblem builds a problem from explicit values, deriving the answer and
// given current the same way the generator does.
func NewProblem(topology Topology, voltage float64, values []float64, target Target) (Problem, error) {
	if !topology.Valid() {
		return Problem{}, fmt.Errorf("%w: %q", ErrUnknownTopology, topology)
	}
	if !target.Valid() {
		return Problem{}, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
	if len(values) != ResistorCount {
		return Problem{}, fmt.Errorf("%w: got %d", ErrResistorCount, len(values))
	}
	if !positive(voltage) {
		return Problem{}, fmt.Errorf("%w: source voltage %v", ErrValueRange, voltage)
	}
	for i, v := range values {
		if !positive(v) {
			return Problem{}, fmt.Errorf("%w: R%d = %v", ErrValueRange, i+1, v)
		}
	}
	return build(topology, voltage, values, target), nil
}

// build assembles a Problem from already-validated inputs.
func build(topology Topology, voltage float64, values []float64, target Target) Problem {
	resistors := make([]Resistor, len(values))
	for i, v := range values {
		resistors[i] = Resistor{ID: fmt.Sprintf("R%d", i+1), Value: v}
	}

	p := Problem{
		Topology:      topology,
		SourceVoltage: voltage,
		Resistors:     resistors,
		Target:        target,
		Unit:          target.Unit(),
	}
	p.CorrectAnswer = roundTo(p.TrueValue(), 2)
	p.GivenCurrent = roundTo(p.TotalCurrent(), 3)
	return p
}

// EquivalentResistance returns the unrounded equivalent resistance.
func (p Problem) EquivalentResistance() float64 {
	return EquivalentResistance(p.Topology, p.values())
}

// TotalCurrent returns the unrounded current drawn from the source.
func (p Problem) TotalCurrent() float64 {
	return p.SourceVoltage / p.EquivalentResistance()
}

// TrueValue returns the unrounded value of the target quantity.
func (p Problem) TrueValue() float64 {
	switch p.Target {
	case TargetEquivalentResistance:
		return p.EquivalentResistance()
	case TargetTotalCurrent:
		return p.TotalCurrent()
	default:
		return p.SourceVoltage
	}
}

// KnownCurrent returns the given current unless the current is the target.
func (p Problem) KnownCurrent() (float64, bool) {
	if p.Target == TargetTotalCurrent {
		return 0, false
	}
	return p.GivenCurrent, true
}

// KnownVoltage returns the source voltage unless it is the target.
func (p Problem) KnownVoltage() (float64, bool) {
	if p.Target == TargetTotalVoltage {
		return 0, false
	}
	return p.SourceVoltage, true
}

// ResistorValues returns a copy of the resistor magnitudes in order.
func (p Problem) ResistorValues() []float64 {
	return p.values()
}

func (p Problem) values() []float64 {
	out := make([]float64, len(p.Resistors))
	for i, r := range p.Resistors {
		out[i] = r.Value
	}
	return out
}

// EquivalentResistance computes Req for three resistors wired as topology.
// values must hold exactly ResistorCount positive entries.
func EquivalentResistance(topology Topology, values []float64) float64 {
	switch topology {
	case TopologySeries:
		return values[0] + values[1] + values[2]
	case TopologyParallel:
		return 1 / (1/values[0] + 1/values[1] + 1/values[2])
	case TopologyCombination:
		return values[0] + 1/(1/values[1]+1/values[2])
	}
	return math.NaN()
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// roundTo rounds v half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
