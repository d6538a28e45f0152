package practice

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	calc "github.com/abhisek/circuitz/internal/calculator"
	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/explain"
	"github.com/abhisek/circuitz/internal/llm"
	"github.com/abhisek/circuitz/internal/router"
	calcscreen "github.com/abhisek/circuitz/internal/screens/calculator"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(s *PracticeScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

// fakeExplainer records the context it was called with.
type fakeExplainer struct {
	mu    sync.Mutex
	ctxs  []context.Context
	reply explain.Explanation
}

func (f *fakeExplainer) Explain(ctx context.Context, _ circuit.Problem) explain.Explanation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctxs = append(f.ctxs, ctx)
	return f.reply
}

// explanationFrom runs cmd and returns the explanationMsg it produces,
// expanding batches. Spinner ticks are ignored.
func explanationFrom(t *testing.T, cmd tea.Cmd) explanationMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case explanationMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(explanationMsg); ok {
				return m
			}
		}
	}
	t.Fatal("no explanationMsg produced")
	return explanationMsg{}
}

func newScreen(explainer explain.Explainer) *PracticeScreen {
	return New(circuit.NewSeededGenerator(7), explainer, calc.New(), circuit.TopologySeries)
}

func TestNew_ShowsProblem(t *testing.T) {
	s := newScreen(nil)
	p := s.Problem()
	if p.Topology != circuit.TopologySeries {
		t.Fatalf("topology = %s", p.Topology)
	}
	if s.Status() != "Series" {
		t.Errorf("Status() = %q", s.Status())
	}

	view := s.View(120, 40)
	for _, want := range []string{"SERIES", "CURRENT OBJECTIVE", "R1", "Ctrl+E"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSubmit_Correct(t *testing.T) {
	s := newScreen(nil)
	p := s.Problem()

	typeText(s, circuit.FormatValue(p.CorrectAnswer))
	s.Update(specialKey(tea.KeyEnter))

	if s.verdict == nil || !s.verdict.Correct() {
		t.Fatalf("verdict = %+v", s.verdict)
	}
	if s.Problem().CorrectAnswer != p.CorrectAnswer || s.seq != 1 {
		t.Fatal("submitting must not change the problem")
	}
	if !strings.Contains(s.View(90, 40), "Correct!") {
		t.Error("view should show the verdict")
	}
}

func TestSubmit_Incorrect(t *testing.T) {
	s := newScreen(nil)
	p := s.Problem()

	typeText(s, circuit.FormatValue(p.CorrectAnswer+5))
	s.Update(specialKey(tea.KeyEnter))

	if s.verdict == nil || s.verdict.Outcome != circuit.OutcomeIncorrect {
		t.Fatalf("verdict = %+v", s.verdict)
	}
}

func TestSubmit_Invalid(t *testing.T) {
	s := newScreen(nil)
	typeText(s, "abc")
	s.Update(specialKey(tea.KeyEnter))

	if s.verdict == nil || s.verdict.Message != circuit.InvalidInputMessage {
		t.Fatalf("verdict = %+v", s.verdict)
	}
}

func TestNextProblem_ClearsState(t *testing.T) {
	s := newScreen(&fakeExplainer{reply: explain.Explanation{Text: "1. Add them.", OK: true}})
	typeText(s, "1")
	s.Update(specialKey(tea.KeyEnter))
	_, cmd := s.Update(ctrlKey('e'))
	s.Update(explanationFrom(t, cmd))
	if s.explanation == nil {
		t.Fatal("expected explanation before next")
	}

	s.Update(ctrlKey('n'))

	if s.seq != 2 {
		t.Fatalf("seq = %d, want 2", s.seq)
	}
	if s.verdict != nil || s.explanation != nil || s.input.Value() != "" {
		t.Fatal("next problem must clear answer, verdict and explanation")
	}
	if s.Problem().Topology != circuit.TopologySeries {
		t.Fatal("next problem keeps the topology")
	}
}

func TestTab_SwitchesTopology(t *testing.T) {
	s := newScreen(nil)

	s.Update(specialKey(tea.KeyTab))
	if got := s.Problem().Topology; got != circuit.TopologyParallel {
		t.Fatalf("after tab = %s", got)
	}
	s.Update(specialKey(tea.KeyTab))
	if got := s.Problem().Topology; got != circuit.TopologyCombination {
		t.Fatalf("after second tab = %s", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if got := s.Problem().Topology; got != circuit.TopologyParallel {
		t.Fatalf("after shift+tab = %s", got)
	}
	if s.seq != 4 {
		t.Fatalf("seq = %d, want 4", s.seq)
	}
}

func TestExplain_WithService(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"steps":[{"text":"Apply the rule for this network.","formula":"Req = R1 + R2 + R3"}],"answer":""}`,
	)})
	s := newScreen(explain.NewService(mock, explain.DefaultConfig()))

	_, cmd := s.Update(ctrlKey('e'))
	if !s.explaining {
		t.Fatal("expected explaining state")
	}
	if !strings.Contains(s.View(120, 40), "Analyzing circuit") {
		t.Error("view should show progress while explaining")
	}

	s.Update(explanationFrom(t, cmd))
	if s.explaining || s.explanation == nil || !s.explanation.OK {
		t.Fatalf("explanation = %+v", s.explanation)
	}
	view := s.View(120, 40)
	if !strings.Contains(view, "Req = R1 + R2 + R3") || strings.Contains(view, "**") {
		t.Errorf("formula should render bold without markers:\n%s", view)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("provider calls = %d", mock.CallCount())
	}
}

func TestExplain_IgnoredWhileInFlight(t *testing.T) {
	s := newScreen(&fakeExplainer{})
	_, first := s.Update(ctrlKey('e'))
	_, second := s.Update(ctrlKey('e'))
	if first == nil || second != nil {
		t.Fatal("a second request while one is in flight must be ignored")
	}
}

func TestExplain_StaleResultDiscarded(t *testing.T) {
	fake := &fakeExplainer{reply: explain.Explanation{Text: "old", OK: true}}
	s := newScreen(fake)

	_, cmd := s.Update(ctrlKey('e'))
	s.Update(ctrlKey('n'))
	msg := explanationFrom(t, cmd)

	fake.mu.Lock()
	ctx := fake.ctxs[0]
	fake.mu.Unlock()
	if ctx.Err() == nil {
		t.Error("moving on should cancel the in-flight request")
	}

	s.Update(msg)
	if s.explanation != nil {
		t.Fatal("stale explanation must be discarded")
	}
	if s.explaining {
		t.Fatal("new problem must not be in the explaining state")
	}
}

func TestExplain_Disabled(t *testing.T) {
	s := newScreen(nil)
	_, cmd := s.Update(ctrlKey('e'))
	s.Update(explanationFrom(t, cmd))
	if s.explanation == nil || s.explanation.Text != explain.DisabledMessage {
		t.Fatalf("explanation = %+v", s.explanation)
	}
}

func TestCtrlK_OpensCalculator(t *testing.T) {
	c := calc.New()
	s := New(circuit.NewSeededGenerator(1), nil, c, circuit.TopologyParallel)

	_, cmd := s.Update(ctrlKey('k'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	cs, ok := push.Screen.(*calcscreen.CalculatorScreen)
	if !ok {
		t.Fatalf("pushed %T", push.Screen)
	}

	// The pushed screen drives the shared calculator.
	cs.Update(keyPress('8'))
	if c.Display() != "8" {
		t.Fatalf("shared calculator display = %q", c.Display())
	}
}

func TestExplain_ArrivesWhileCalculatorOpen(t *testing.T) {
	fake := &fakeExplainer{reply: explain.Explanation{Text: "1. Add them up.", OK: true}}
	s := newScreen(fake)
	r := router.New(s)

	_, explainCmd := s.Update(ctrlKey('e'))
	msg := explanationFrom(t, explainCmd)

	_, calcCmd := s.Update(ctrlKey('k'))
	r.Update(calcCmd())
	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want calculator on top", r.Depth())
	}

	r.Update(msg)
	r.Update(router.PopScreenMsg{})

	if r.Active() != s {
		t.Fatalf("active = %T", r.Active())
	}
	if s.explaining {
		t.Fatal("practice screen still waiting for an explanation")
	}
	if s.explanation == nil || s.explanation.Text != "1. Add them up." {
		t.Fatalf("explanation = %+v", s.explanation)
	}
	if _, cmd := s.Update(ctrlKey('e')); cmd == nil {
		t.Fatal("tutor should accept a new request after returning")
	}
}

func TestSpinner_TicksWhileCovered(t *testing.T) {
	s := newScreen(&fakeExplainer{})
	r := router.New(s)
	s.Update(ctrlKey('e'))
	r.Push(calcscreen.New(calc.New()))

	if cmd := r.Update(s.spinner.Tick()); cmd == nil {
		t.Fatal("covered practice screen should keep its spinner running")
	}
}

func TestLeave_CancelsExplanation(t *testing.T) {
	fake := &fakeExplainer{reply: explain.Explanation{Text: "late", OK: true}}
	s := newScreen(fake)
	home := newScreen(nil)
	r := router.New(home)
	r.Push(s)

	_, cmd := s.Update(ctrlKey('e'))
	msg := explanationFrom(t, cmd)
	r.Update(router.PopScreenMsg{})

	fake.mu.Lock()
	ctx := fake.ctxs[0]
	fake.mu.Unlock()
	if ctx.Err() == nil {
		t.Error("leaving the screen should cancel the request")
	}
	if s.explaining {
		t.Error("closed screen should not be explaining")
	}
	s.Update(msg)
	if s.explanation != nil {
		t.Error("result for a closed screen must be dropped")
	}
}

func TestView_NarrowTerminal(t *testing.T) {
	s := newScreen(nil)
	view := s.View(80, 30)
	if !strings.Contains(view, "SCHEMATIC VIEW") || !strings.Contains(view, "CURRENT OBJECTIVE") {
		t.Fatalf("narrow layout missing panels:\n%s", view)
	}
}
