// Package explain asks a language model for a worked solution to a circuit
// problem. Failures never reach the caller as errors; they collapse to a
// fixed message.
package explain

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/llm"
)

const (
	FailureMessage = "Error connecting to AI tutor. Please check your internet connection."
	EmptyMessage   = "I'm sorry, I couldn't generate an explanation right now."
)

// Explanation is display text. OK is false when Text is one of the fixed
// fallback messages.
type Explanation struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

// Explainer produces explanations for a read-only problem snapshot.
type Explainer interface {
	Explain(ctx context.Context, p circuit.Problem) Explanation
}

// DisabledMessage is what Disabled answers with.
const DisabledMessage = "The AI tutor is not configured. Set GEMINI_API_KEY or another provider key to enable explanations."

// Disabled is the Explainer used when no language model is configured.
type Disabled struct{}

func (Disabled) Explain(context.Context, circuit.Problem) Explanation {
	return Explanation{Text: DisabledMessage}
}

// Config tunes the requests sent by Service.
type Config struct {
	MaxTokens   int           `yaml:"max_tokens" validate:"gte=0"`
	Temperature float64       `yaml:"temperature" validate:"gte=0,lte=1"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.3, Timeout: 30 * time.Second}
}

// Service implements Explainer on top of an llm.Provider.
type Service struct {
	provider llm.Provider
	config   Config
}

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

func (s *Service) Explain(ctx context.Context, p circuit.Problem) Explanation {
	ctx = llm.WithPurpose(ctx, "explanation")
	ctx = llm.WithSubject(ctx, llm.Subject{Topology: string(p.Topology), Target: string(p.Target)})
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(p)}},
		Schema:      ExplanationSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		slog.Warn("explanation request failed", "topology", p.Topology, "target", p.Target, "error", err)
		return Explanation{Text: FailureMessage}
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		slog.Warn("explanation response not decodable", "error", err)
		return Explanation{Text: FailureMessage}
	}

	text := render(out)
	if text == "" {
		return Explanation{Text: EmptyMessage}
	}
	if v, ok := leadingNumber(out.Answer); ok && !agrees(p, v) {
		// The core's answer is authoritative; flag the disagreement.
		slog.Warn("explanation answer disagrees with expected value",
			"model_answer", out.Answer, "expected", p.CorrectAnswer, "target", p.Target)
		text += "\n\nNote: the expected answer is " + circuit.FormatValue(p.CorrectAnswer) + p.Unit + "."
	}
	return Explanation{Text: text, OK: true}
}

// leadingNumber parses the numeric prefix of an answer such as "3.33Ω" or
// "0.33 A".
func leadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && strings.IndexByte("+-.0123456789eE", s[end]) >= 0 {
		end++
	}
	for end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v, true
		}
		end--
	}
	return 0, false
}

func agrees(p circuit.Problem, v float64) bool {
	return math.Abs(v-p.CorrectAnswer) <= circuit.Tolerance(p.Target)+1e-9
}
