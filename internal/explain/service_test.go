package explain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/llm"
)

func seriesProblem(t *testing.T, target circuit.Target) circuit.Problem {
	t.Helper()
	p, err := circuit.NewProblem(circuit.TopologySeries, 20, []float64{10, 20, 30}, target)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}
	return p
}

func TestExplain_RendersSteps(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"steps": [
			{"text": "In series, resistances add.", "formula": "R_total = R1 + R2 + R3"},
			{"text": "Substitute the values.", "formula": "R_total = 10Ω + 20Ω + 30Ω = 60Ω"},
			{"text": "", "formula": ""}
		],
		"answer": "60Ω"
	}`)})
	svc := NewService(mock, DefaultConfig())

	got := svc.Explain(context.Background(), seriesProblem(t, circuit.TargetEquivalentResistance))
	if !got.OK {
		t.Fatalf("expected OK, got %+v", got)
	}
	want := "1. In series, resistances add.\n" +
		"   **R_total = R1 + R2 + R3**\n" +
		"2. Substitute the values.\n" +
		"   **R_total = 10Ω + 20Ω + 30Ω = 60Ω**\n" +
		"\n" +
		"**Answer: 60Ω**"
	if got.Text != want {
		t.Fatalf("text =\n%s\nwant\n%s", got.Text, want)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Schema != ExplanationSchema {
		t.Error("expected the explanation schema on the request")
	}
	if calls[0].MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d", calls[0].MaxTokens)
	}
}

func TestExplain_Failure(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("offline")}}},
		{"undecodable", llm.MockResponse{Content: json.RawMessage(`not json`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(llm.NewMockProvider(tt.resp), DefaultConfig())
			got := svc.Explain(context.Background(), seriesProblem(t, circuit.TargetTotalCurrent))
			if got.OK || got.Text != FailureMessage {
				t.Fatalf("got %+v, want failure message", got)
			}
		})
	}
}

func TestExplain_Empty(t *testing.T) {
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"steps":[],"answer":""}`)}), DefaultConfig())
	got := svc.Explain(context.Background(), seriesProblem(t, circuit.TargetTotalCurrent))
	if got.OK || got.Text != EmptyMessage {
		t.Fatalf("got %+v, want empty message", got)
	}
}

func TestExplain_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"steps":[],"answer":"1V"}`)}), DefaultConfig())
	if got := svc.Explain(ctx, seriesProblem(t, circuit.TargetTotalVoltage)); got.Text != FailureMessage {
		t.Fatalf("got %+v, want failure message", got)
	}
}

func TestExplain_FlagsWrongAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"steps":[{"text":"Add them.","formula":""}],"answer":"50Ω"}`)})
	got := NewService(mock, DefaultConfig()).Explain(context.Background(), seriesProblem(t, circuit.TargetEquivalentResistance))
	if !got.OK {
		t.Fatalf("expected OK, got %+v", got)
	}
	if !strings.HasSuffix(got.Text, "Note: the expected answer is 60Ω.") {
		t.Fatalf("missing correction note:\n%s", got.Text)
	}
}

func TestExplain_WithinToleranceNotFlagged(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"steps":[{"text":"Divide.","formula":"I = 20V / 60Ω"}],"answer":"0.333 A"}`)})
	got := NewService(mock, DefaultConfig()).Explain(context.Background(), seriesProblem(t, circuit.TargetTotalCurrent))
	if strings.Contains(got.Text, "Note:") {
		t.Fatalf("unexpected note:\n%s", got.Text)
	}
}

func TestExplain_PurposeIsTagged(t *testing.T) {
	var (
		seen    string
		subject llm.Subject
	)
	p := purposeSpy{fn: func(ctx context.Context) {
		seen = llm.PurposeFrom(ctx)
		subject = llm.SubjectFrom(ctx)
	}}
	NewService(p, DefaultConfig()).Explain(context.Background(), seriesProblem(t, circuit.TargetTotalCurrent))
	if seen != "explanation" {
		t.Fatalf("purpose = %q", seen)
	}
	if want := (llm.Subject{Topology: "SERIES", Target: "Itotal"}); subject != want {
		t.Fatalf("subject = %+v, want %+v", subject, want)
	}
}

type purposeSpy struct{ fn func(context.Context) }

func (s purposeSpy) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	s.fn(ctx)
	return nil, errors.New("spy")
}

func (purposeSpy) ModelID() string { return "spy" }

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"60Ω", 60, true},
		{" 0.33 A", 0.33, true},
		{"3.33Ω", 3.33, true},
		{"-2V", -2, true},
		{"1.5e1V", 15, true},
		{"Ω", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := leadingNumber(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("leadingNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDisabled(t *testing.T) {
	var e Explainer = Disabled{}
	got := e.Explain(context.Background(), seriesProblem(t, circuit.TargetTotalCurrent))
	if got.OK || got.Text != DisabledMessage {
		t.Fatalf("Disabled.Explain = %+v", got)
	}
}
