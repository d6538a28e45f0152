package schematic

import (
	"strings"
	"testing"

	"github.com/abhisek/circuitz/internal/circuit"
)

func problem(t *testing.T, topology circuit.Topology, target circuit.Target) circuit.Problem {
	t.Helper()
	p, err := circuit.NewProblem(topology, 20, []float64{10, 20, 30}, target)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return p
}

func TestRender_Series(t *testing.T) {
	got := Render(problem(t, circuit.TopologySeries, circuit.TargetEquivalentResistance))
	want := strings.Join([]string{
		"  ┌───/\\/\\/\\──────/\\/\\/\\──────/\\/\\/\\───┐",
		"  │   R1 10Ω      R2 20Ω      R3 30Ω   │",
		" ─┴─ +" + strings.Repeat(" ", 33) + "│",
		" ╶┬╴ 20V" + strings.Repeat(" ", 31) + "│",
		"  │" + strings.Repeat(" ", 36) + "│",
		"  │" + strings.Repeat(" ", 36) + "│",
		"  └" + strings.Repeat("─", 36) + "┘",
	}, "\n")
	if got != want {
		t.Fatalf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Parallel(t *testing.T) {
	lines := strings.Split(Render(problem(t, circuit.TopologyParallel, circuit.TargetTotalCurrent)), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
	if want := "  ┌" + strings.Repeat("─", 11) + "┬" + strings.Repeat("─", 11) + "┬" + strings.Repeat("─", 11) + "┐"; lines[0] != want {
		t.Errorf("top rail = %q, want %q", lines[0], want)
	}
	if want := "  └" + strings.Repeat("─", 11) + "┴" + strings.Repeat("─", 11) + "┴" + strings.Repeat("─", 11) + "┘"; lines[6] != want {
		t.Errorf("bottom rail = %q, want %q", lines[6], want)
	}
	for _, label := range []string{"R1 10Ω", "R2 20Ω", "R3 30Ω", "20V"} {
		if !strings.Contains(lines[3], label) {
			t.Errorf("row 3 missing %q: %q", label, lines[3])
		}
	}
}

func TestRender_Combination(t *testing.T) {
	out := Render(problem(t, circuit.TopologyCombination, circuit.TargetEquivalentResistance))
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "/\\/\\/\\") || !strings.Contains(lines[1], "R1 10Ω") {
		t.Errorf("R1 should sit on the top rail:\n%s", out)
	}
	if strings.Count(lines[0], "┬")+strings.Count(lines[0], "┐") != 2 {
		t.Errorf("expected two parallel branches:\n%s", out)
	}
	if !strings.Contains(lines[3], "R2 20Ω") || !strings.Contains(lines[3], "R3 30Ω") {
		t.Errorf("R2 and R3 should be branches:\n%s", out)
	}
}

func TestRender_HiddenVoltage(t *testing.T) {
	for _, topo := range circuit.Topologies {
		out := Render(problem(t, topo, circuit.TargetTotalVoltage))
		if !strings.Contains(out, "??V") {
			t.Errorf("%s: expected ??V label:\n%s", topo, out)
		}
		if strings.Contains(out, "20V") {
			t.Errorf("%s: voltage leaked:\n%s", topo, out)
		}
	}
}

func TestRender_UnknownTopology(t *testing.T) {
	if got := Render(circuit.Problem{Topology: "STAR"}); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
