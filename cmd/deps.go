package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/explain"
	"github.com/abhisek/circuitz/internal/llm"
	"github.com/abhisek/circuitz/internal/store"
)

// newExplainer builds the tutor from cfg. Without a usable provider it
// returns explain.Disabled and a status saying so. repo may be nil.
func newExplainer(ctx context.Context, repo store.EventRepo) (explain.Explainer, string) {
	llmCfg := cfg.LLM
	if !llmCfg.Discover() {
		slog.Warn("no LLM provider configured; explanations disabled", "provider", llmCfg.Provider)
		return explain.Disabled{}, "tutor: off"
	}
	provider, err := llm.NewProvider(ctx, llmCfg, repo)
	if err != nil {
		slog.Warn("LLM provider unavailable; explanations disabled", "provider", llmCfg.Provider, "error", err)
		return explain.Disabled{}, "tutor: off"
	}
	return explain.NewService(provider, cfg.Explain), "tutor: " + provider.ModelID()
}

// problemGenerator honours an optional --seed flag.
func problemGenerator(cmd *cobra.Command) *circuit.Generator {
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		seed, _ := cmd.Flags().GetUint64("seed")
		return circuit.NewSeededGenerator(seed)
	}
	return circuit.DefaultGenerator()
}

// generateOne draws a problem for the --topology flag, or any topology when
// the flag is empty or "any".
func generateOne(cmd *cobra.Command, gen *circuit.Generator) (circuit.Problem, error) {
	name, _ := cmd.Flags().GetString("topology")
	if name == "" || strings.EqualFold(name, "any") {
		return gen.GenerateAny(), nil
	}
	t, err := circuit.ParseTopology(name)
	if err != nil {
		return circuit.Problem{}, err
	}
	return gen.Generate(t), nil
}
