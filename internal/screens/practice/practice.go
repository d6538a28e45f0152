// Package practice is the main problem screen: schematic, givens, answer
// entry, verdict and the AI tutor panel.
package practice

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	calc "github.com/abhisek/circuitz/internal/calculator"
	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/explain"
	"github.com/abhisek/circuitz/internal/router"
	"github.com/abhisek/circuitz/internal/screen"
	calcscreen "github.com/abhisek/circuitz/internal/screens/calculator"
	"github.com/abhisek/circuitz/internal/ui/components"
	"github.com/abhisek/circuitz/internal/ui/layout"
)

// PracticeScreen owns exactly one current problem at a time. Generating a
// new problem clears the answer, verdict and explanation.
type PracticeScreen struct {
	gen       *circuit.Generator
	explainer explain.Explainer
	calc      *calc.Calculator

	tabs    components.Tabs
	problem circuit.Problem
	// seq increments with every new problem.
	seq uint64

	input   components.TextInput
	verdict *circuit.Verdict

	explanation *explain.Explanation
	explaining  bool
	cancel      context.CancelFunc
	spinner     spinner.Model
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)
var _ screen.BackgroundUpdater = (*PracticeScreen)(nil)
var _ screen.Leaver = (*PracticeScreen)(nil)

// New returns a practice screen showing a fresh problem for topology. A nil
// explainer disables the tutor; a nil calculator gets a private one.
func New(gen *circuit.Generator, explainer explain.Explainer, c *calc.Calculator, topology circuit.Topology) *PracticeScreen {
	if explainer == nil {
		explainer = explain.Disabled{}
	}
	if c == nil {
		c = calc.New()
	}

	labels := make([]string, len(circuit.Topologies))
	selected := 0
	for i, t := range circuit.Topologies {
		labels[i] = t.Label()
		if t == topology {
			selected = i
		}
	}

	s := &PracticeScreen{
		gen:       gen,
		explainer: explainer,
		calc:      c,
		tabs:      components.NewTabs(labels, selected),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.nextProblem()
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *PracticeScreen) Title() string { return "Practice" }

func (s *PracticeScreen) Status() string { return s.topology().Label() }

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+N", Description: "Next"},
		{Key: "Tab", Description: "Topology"},
		{Key: "Ctrl+E", Description: "Explain"},
		{Key: "Ctrl+K", Description: "Calc"},
		{Key: "Esc", Description: "Back"},
	}
}

// Problem returns the problem currently on screen.
func (s *PracticeScreen) Problem() circuit.Problem { return s.problem }

func (s *PracticeScreen) topology() circuit.Topology {
	return circuit.Topologies[s.tabs.Selected]
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explanationMsg, spinner.TickMsg:
		return s, s.UpdateBackground(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// UpdateBackground handles the explanation result and spinner ticks, also
// while the calculator covers the screen.
func (s *PracticeScreen) UpdateBackground(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case explanationMsg:
		s.handleExplanation(msg)
	case spinner.TickMsg:
		if !s.explaining {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

// Leave cancels an in-flight explanation when the screen is closed.
func (s *PracticeScreen) Leave() {
	s.stopExplaining()
	s.seq++
}

func (s *PracticeScreen) stopExplaining() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.explaining = false
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.submit()
		return s, nil
	case "ctrl+n":
		return s, s.nextProblem()
	case "tab":
		s.tabs.Next()
		return s, s.nextProblem()
	case "shift+tab":
		s.tabs.Prev()
		return s, s.nextProblem()
	case "ctrl+e":
		return s, s.requestExplanation()
	case "ctrl+k":
		c := s.calc
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: calcscreen.New(c)}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit evaluates the typed answer. The problem itself is never changed.
func (s *PracticeScreen) submit() {
	v := circuit.Evaluate(s.problem, s.input.Value())
	s.verdict = &v
	if v.Outcome != circuit.OutcomeInvalidInput {
		s.input.Submit(v.Correct())
	}
}

// nextProblem replaces the current problem and drops everything tied to
// the old one, including an in-flight explanation.
func (s *PracticeScreen) nextProblem() tea.Cmd {
	s.stopExplaining()
	s.seq++
	s.problem = s.gen.Generate(s.topology())
	s.input = components.NewTextInput("Value...", s.problem.Unit, 16)
	s.verdict = nil
	s.explanation = nil
	return s.input.Init()
}

func (s *PracticeScreen) requestExplanation() tea.Cmd {
	if s.explaining {
		return nil
	}
	s.explaining = true
	s.explanation = nil

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	explainer, p, seq := s.explainer, s.problem, s.seq
	explainCmd := func() tea.Msg {
		return explanationMsg{seq: seq, explanation: explainer.Explain(ctx, p)}
	}
	return tea.Batch(explainCmd, s.spinner.Tick)
}

func (s *PracticeScreen) handleExplanation(msg explanationMsg) {
	if msg.seq != s.seq {
		slog.Debug("discarding stale explanation", "seq", msg.seq, "current", s.seq)
		return
	}
	s.stopExplaining()
	s.explanation = &msg.explanation
}
