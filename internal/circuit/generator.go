package circuit

import "math/rand/v2"

const (
	// MinValue and MaxValue bound every drawn voltage and resistance: values
	// are integers in [MinValue, MaxValue).
	MinValue = 10
	MaxValue = 50
)

// Source supplies uniform random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the process-wide math/rand/v2 generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Generator produces random, internally consistent circuit problems.
// A Generator is not safe for concurrent use unless its Source is.
type Generator struct {
	src Source
}

// NewGenerator returns a Generator drawing from src.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// NewSeededGenerator returns a Generator whose sequence of problems is fully
// determined by seed.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// DefaultGenerator returns a Generator backed by the global random source.
// It is safe for concurrent use.
func DefaultGenerator() *Generator {
	return NewGenerator(globalSource{})
}

// Generate draws a fresh problem for topology. Every call returns a new,
// independent sample; there is no failure path for a valid topology.
func (g *Generator) Generate(topology Topology) Problem {
	voltage := g.draw()
	values := make([]float64, ResistorCount)
	for i := range values {
		values[i] = g.draw()
	}
	target := Targets[g.src.IntN(len(Targets))]
	return build(topology, voltage, values, target)
}

// GenerateAny draws a problem for a randomly chosen topology.
func (g *Generator) GenerateAny() Problem {
	return g.Generate(Topologies[g.src.IntN(len(Topologies))])
}

// draw returns an integer value in [MinValue, MaxValue).
func (g *Generator) draw() float64 {
	return float64(MinValue + g.src.IntN(MaxValue-MinValue))
}
