package explain

import (
	"strings"
	"testing"

	"github.com/abhisek/circuitz/internal/circuit"
)

func TestBuildUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		topology circuit.Topology
		target   circuit.Target
		contains []string
		excludes []string
	}{
		{
			name:     "resistance",
			topology: circuit.TopologySeries,
			target:   circuit.TargetEquivalentResistance,
			contains: []string{"Circuit type: SERIES", "Source voltage: 20V", "Resistors: R1 = 10Ω, R2 = 20Ω, R3 = 30Ω", "Objective: Find the Total Equivalent Resistance (Req)."},
			excludes: []string{"Known total current", "Wiring"},
		},
		{
			name:     "voltage hidden",
			topology: circuit.TopologyParallel,
			target:   circuit.TargetTotalVoltage,
			contains: []string{"Source voltage: Unknown", "Known total current: 3.667A", "Total Source Voltage (Vtotal)"},
			excludes: []string{"20V"},
		},
		{
			name:     "combination wiring",
			topology: circuit.TopologyCombination,
			target:   circuit.TargetTotalCurrent,
			contains: []string{"Wiring: R1 in series with (R2 parallel to R3)", "Total Current (Itotal)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := circuit.NewProblem(tt.topology, 20, []float64{10, 20, 30}, tt.target)
			if err != nil {
				t.Fatalf("NewProblem: %v", err)
			}
			msg := buildUserMessage(p)
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("message missing %q:\n%s", s, msg)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(msg, s) {
					t.Errorf("message should not contain %q:\n%s", s, msg)
				}
			}
		})
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		in   string
		want []Segment
	}{
		{"plain", []Segment{{"plain", false}}},
		{"a **b** c", []Segment{{"a ", false}, {"b", true}, {" c", false}}},
		{"**Answer: 60Ω**", []Segment{{"Answer: 60Ω", true}}},
		{"x ** y", []Segment{{"x ** y", false}}},
		{"**a** and **b", []Segment{{"a", true}, {" and **b", false}}},
		{"", nil},
	}
	for _, tt := range tests {
		got := Segments(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("Segments(%q) = %+v, want %+v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Segments(%q)[%d] = %+v, want %+v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
