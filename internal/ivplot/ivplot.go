// Package ivplot charts the current-voltage line of a problem's network
// with gonum/plot.
package ivplot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/abhisek/circuitz/internal/circuit"
)

// Formats lists the output formats accepted by WriteTo and Save.
var Formats = []string{"png", "svg", "pdf"}

var ErrFormat = errors.New("unsupported plot format")

// DefaultWidth and DefaultHeight size exported charts.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// New builds the chart for p: the line I = V / Req from 0 V to twice the
// source voltage, with the operating point marked. Quantities the learner
// is solving for are left out of the labels.
func New(p circuit.Problem) (*plot.Plot, error) {
	req := p.EquivalentResistance()
	if math.IsNaN(req) || req <= 0 {
		return nil, fmt.Errorf("plot %s network: %w", p.Topology, circuit.ErrUnknownTopology)
	}

	pl := plot.New()
	pl.Title.Text = title(p)
	pl.X.Label.Text = "Voltage (V)"
	pl.Y.Label.Text = "Current (A)"
	pl.X.Min = 0
	pl.Y.Min = 0
	pl.X.Max = 2 * p.SourceVoltage
	pl.Y.Max = 2 * p.TotalCurrent()
	pl.Add(plotter.NewGrid())

	line := plotter.NewFunction(func(v float64) float64 { return v / req })
	line.XMin, line.XMax = 0, pl.X.Max
	line.Samples = 2
	line.Width = vg.Points(1.5)

	op, err := plotter.NewScatter(plotter.XYs{{X: p.SourceVoltage, Y: p.TotalCurrent()}})
	if err != nil {
		return nil, fmt.Errorf("operating point: %w", err)
	}
	op.GlyphStyle.Shape = draw.CircleGlyph{}
	op.GlyphStyle.Radius = vg.Points(4)

	pl.Add(line, op)
	pl.Legend.Add(lineLabel(p), line)
	pl.Legend.Add(pointLabel(p), op)
	pl.Legend.Top = true
	pl.Legend.Left = true
	return pl, nil
}

// WriteTo renders the chart for p to w in the given format.
func WriteTo(w io.Writer, p circuit.Problem, format string, width, height vg.Length) error {
	format, err := checkFormat(format)
	if err != nil {
		return err
	}
	pl, err := New(p)
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}

// Save writes the chart for p to path; the extension picks the format.
func Save(p circuit.Problem, path string, width, height vg.Length) error {
	if _, err := checkFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err != nil {
		return err
	}
	pl, err := New(p)
	if err != nil {
		return err
	}
	if err := pl.Save(width, height, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

func checkFormat(format string) (string, error) {
	format = strings.ToLower(format)
	for _, f := range Formats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, format)
}

func title(p circuit.Problem) string {
	return p.Topology.Label() + " network I-V line"
}

func lineLabel(p circuit.Problem) string {
	if p.Target == circuit.TargetEquivalentResistance {
		return "I = V / Req"
	}
	return "I = V / " + circuit.FormatValue(roundTo2(p.EquivalentResistance())) + "Ω"
}

func pointLabel(p circuit.Problem) string {
	return "operating point (" + p.VoltageLabel() + ", " + p.CurrentLabel() + ")"
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
