// Package schematic draws a circuit problem as a box-drawing text diagram.
package schematic

import (
	"strings"

	"github.com/abhisek/circuitz/internal/circuit"
)

const (
	height    = 7 // rows 0..6; the top and bottom rails are rows 0 and 6
	batteryX  = 2
	cellWidth = 12
)

// Render returns the schematic for p. The battery is labelled with the
// source voltage, or "??V" when the voltage is what the learner solves for.
func Render(p circuit.Problem) string {
	c := newCanvas()
	right := 0
	switch p.Topology {
	case circuit.TopologySeries:
		right = drawSeries(c, p.Resistors)
	case circuit.TopologyParallel:
		right = drawParallel(c, p.Resistors)
	case circuit.TopologyCombination:
		right = drawCombination(c, p.Resistors)
	default:
		return ""
	}
	drawBattery(c, batteryLabel(p))
	c.put(batteryX, 0, "┌")
	c.put(batteryX, height-1, "└")
	c.hline(batteryX+1, right-1, height-1)
	return c.String()
}

func batteryLabel(p circuit.Problem) string {
	if v, ok := p.KnownVoltage(); ok {
		return circuit.FormatValue(v) + "V"
	}
	return "??V"
}

func resistorLabel(r circuit.Resistor) string {
	return r.ID + " " + circuit.FormatValue(r.Value) + "Ω"
}

func drawBattery(c *canvas, label string) {
	c.put(batteryX, 1, "│")
	c.put(batteryX-1, 2, "─┴─")
	c.put(batteryX+3, 2, "+")
	c.put(batteryX-1, 3, "╶┬╴")
	c.put(batteryX+3, 3, label)
	c.put(batteryX, 4, "│")
	c.put(batteryX, 5, "│")
}

// inline draws a horizontal resistor cell on the top rail starting at x,
// with its label underneath.
func inline(c *canvas, x int, r circuit.Resistor) {
	c.put(x, 0, "───/\\/\\/\\───")
	c.put(x+3, 1, resistorLabel(r))
}

// branch draws a vertical resistor between the rails at column x.
func branch(c *canvas, x int, r circuit.Resistor) {
	c.put(x, 1, "│")
	c.put(x, 2, ">")
	c.put(x, 3, "<")
	c.put(x+3, 3, resistorLabel(r))
	c.put(x, 4, ">")
	c.put(x, 5, "│")
}

func drawSeries(c *canvas, rs []circuit.Resistor) int {
	x := batteryX + 1
	for _, r := range rs {
		inline(c, x, r)
		x += cellWidth
	}
	c.put(x, 0, "┐")
	for y := 1; y < height-1; y++ {
		c.put(x, y, "│")
	}
	c.put(x, height-1, "┘")
	return x
}

func drawParallel(c *canvas, rs []circuit.Resistor) int {
	return drawBranches(c, batteryX+1, rs)
}

func drawCombination(c *canvas, rs []circuit.Resistor) int {
	if len(rs) == 0 {
		return drawBranches(c, batteryX+1, nil)
	}
	inline(c, batteryX+1, rs[0])
	return drawBranches(c, batteryX+1+cellWidth, rs[1:])
}

// drawBranches runs the top rail from x and drops one vertical branch per
// resistor, each cellWidth apart. It returns the last branch column.
func drawBranches(c *canvas, x int, rs []circuit.Resistor) int {
	col := x - 1
	for i, r := range rs {
		col += cellWidth
		c.hline(col-cellWidth+1, col-1, 0)
		top, bottom := "┬", "┴"
		if i == len(rs)-1 {
			top, bottom = "┐", "┘"
		}
		c.put(col, 0, top)
		c.put(col, height-1, bottom)
		branch(c, col, r)
	}
	return col
}

type canvas struct {
	rows [height][]rune
}

func newCanvas() *canvas {
	return &canvas{}
}

func (c *canvas) put(x, y int, s string) {
	row := c.rows[y]
	for _, r := range s {
		for len(row) <= x {
			row = append(row, ' ')
		}
		row[x] = r
		x++
	}
	c.rows[y] = row
}

// hline fills blank cells of row y between from and to with wire.
// Junctions already drawn are kept.
func (c *canvas) hline(from, to, y int) {
	for x := from; x <= to; x++ {
		if x < len(c.rows[y]) && c.rows[y][x] != ' ' {
			continue
		}
		c.put(x, y, "─")
	}
}

func (c *canvas) String() string {
	lines := make([]string, height)
	for i, row := range c.rows {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}
