// Package home is the start screen: pick a topology, open the calculator
// or quit.
package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	calc "github.com/abhisek/circuitz/internal/calculator"
	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/explain"
	"github.com/abhisek/circuitz/internal/router"
	"github.com/abhisek/circuitz/internal/screen"
	calcscreen "github.com/abhisek/circuitz/internal/screens/calculator"
	"github.com/abhisek/circuitz/internal/screens/practice"
	"github.com/abhisek/circuitz/internal/ui/components"
	"github.com/abhisek/circuitz/internal/ui/theme"
)

var topologyHints = map[circuit.Topology]string{
	circuit.TopologySeries:      "R1 + R2 + R3",
	circuit.TopologyParallel:    "R1 ∥ R2 ∥ R3",
	circuit.TopologyCombination: "R1 + (R2 ∥ R3)",
}

// HomeScreen is the root screen of the TUI.
type HomeScreen struct {
	menu   components.Menu
	status string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New builds the menu. status is shown in the header, e.g. the tutor model.
func New(gen *circuit.Generator, explainer explain.Explainer, c *calc.Calculator, status string) *HomeScreen {
	if gen == nil {
		gen = circuit.DefaultGenerator()
	}
	if c == nil {
		c = calc.New()
	}

	items := make([]components.MenuItem, 0, len(circuit.Topologies)+2)
	for _, t := range circuit.Topologies {
		items = append(items, components.MenuItem{
			Label: t.Label() + " circuit",
			Hint:  topologyHints[t],
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: practice.New(gen, explainer, c, t)}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "Calculator", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: calcscreen.New(c)}
			}
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{menu: components.NewMenu(items), status: status}
}

func (h *HomeScreen) Init() tea.Cmd { return nil }

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) Status() string { return h.status }

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		renderBanner(width),
		"",
		theme.Subtitle.Render("DC resistor networks: series, parallel, combination"),
		"",
		theme.Card.Render(h.menu.View()),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
