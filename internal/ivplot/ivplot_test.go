package ivplot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/circuitz/internal/circuit"
)

func testProblem(t *testing.T, target circuit.Target) circuit.Problem {
	t.Helper()
	p, err := circuit.NewProblem(circuit.TopologySeries, 20, []float64{10, 20, 30}, target)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return p
}

func TestNew_Axes(t *testing.T) {
	pl, err := New(testProblem(t, circuit.TargetTotalCurrent))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if pl.X.Max != 40 {
		t.Errorf("X.Max = %v, want 40", pl.X.Max)
	}
	if want := 2 * 20.0 / 60.0; pl.Y.Max != want {
		t.Errorf("Y.Max = %v, want %v", pl.Y.Max, want)
	}
	if pl.Title.Text != "Series network I-V line" {
		t.Errorf("title = %q", pl.Title.Text)
	}
}

func TestLabels_HideUnknown(t *testing.T) {
	tests := []struct {
		target    circuit.Target
		wantLine  string
		wantPoint string
	}{
		{circuit.TargetEquivalentResistance, "I = V / Req", "operating point (20V, 0.333A)"},
		{circuit.TargetTotalCurrent, "I = V / 60Ω", "operating point (20V, ???)"},
		{circuit.TargetTotalVoltage, "I = V / 60Ω", "operating point (???, 0.333A)"},
	}
	for _, tt := range tests {
		p := testProblem(t, tt.target)
		if got := lineLabel(p); got != tt.wantLine {
			t.Errorf("%s: lineLabel = %q, want %q", tt.target, got, tt.wantLine)
		}
		if got := pointLabel(p); got != tt.wantPoint {
			t.Errorf("%s: pointLabel = %q, want %q", tt.target, got, tt.wantPoint)
		}
	}
}

func TestWriteTo_SVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, testProblem(t, circuit.TargetTotalCurrent), "SVG", DefaultWidth, DefaultHeight); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Fatalf("output is not SVG: %.80s", buf.String())
	}
}

func TestSave_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iv.png")
	if err := Save(testProblem(t, circuit.TargetEquivalentResistance), path, DefaultWidth, DefaultHeight); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatal("file is not a PNG")
	}
}

func TestFormatErrors(t *testing.T) {
	p := testProblem(t, circuit.TargetTotalCurrent)
	if err := Save(p, filepath.Join(t.TempDir(), "iv.bmp"), DefaultWidth, DefaultHeight); !errors.Is(err, ErrFormat) {
		t.Errorf("Save(.bmp) err = %v", err)
	}
	if err := WriteTo(&bytes.Buffer{}, p, "gif", DefaultWidth, DefaultHeight); !errors.Is(err, ErrFormat) {
		t.Errorf("WriteTo(gif) err = %v", err)
	}
}

func TestNew_InvalidTopology(t *testing.T) {
	if _, err := New(circuit.Problem{Topology: "STAR", SourceVoltage: 10}); err == nil {
		t.Fatal("expected error")
	}
}
