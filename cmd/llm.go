package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/llm"
	"github.com/abhisek/circuitz/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the audit trail of tutor requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent tutor requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOpts{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("purpose")
		if name, _ := cmd.Flags().GetString("topology"); name != "" {
			t, err := circuit.ParseTopology(name)
			if err != nil {
				return err
			}
			opts.Topology = string(t)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No tutor requests recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-12s  %-22s  %-24s  %6s  %6s  %s\n",
			"ID", "Time", "Topology", "Solving for", "Model", "Tokens", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 108))
		for _, e := range events {
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-22s  %-24s  %6d  %6d  %s\n",
				e.ID,
				e.Timestamp.Local().Format(timeLayout),
				topologyLabel(e.Topology),
				targetLabel(e.Target),
				truncate(e.Model, 24),
				e.InputTokens+e.OutputTokens,
				e.LatencyMs,
				mark(e.Success),
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and raw answer of one tutor request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return err
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %d (sequence %d)\n", e.ID, e.Sequence)
		fmt.Fprintf(out, "Time:        %s\n", e.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(out, "Backend:     %s / %s\n", e.Provider, e.Model)
		fmt.Fprintf(out, "Purpose:     %s\n", e.Purpose)
		if e.Topology != "" {
			fmt.Fprintf(out, "Circuit:     %s\n", topologyLabel(e.Topology))
			fmt.Fprintf(out, "Solving for: %s\n", targetLabel(e.Target))
		}
		fmt.Fprintf(out, "Tokens:      %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(out, "Latency:     %dms\n", e.LatencyMs)
		if e.Success {
			fmt.Fprintln(out, "Result:      ok")
		} else {
			fmt.Fprintf(out, "Result:      failed: %s\n", e.ErrorMessage)
		}

		section(out, "PROMPT", e.RequestBody)
		section(out, "ANSWER", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise tutor usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		out := cmd.OutOrStdout()
		rule := strings.Repeat("─", 64)

		byTopology, err := repo.LLMUsageByTopology(ctx)
		if err != nil {
			return err
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return err
		}
		if len(byTopology) == 0 && len(byModel) == 0 {
			fmt.Fprintln(out, "No tutor requests recorded.")
			return nil
		}

		if len(byTopology) > 0 {
			fmt.Fprintln(out, "Explanations by circuit")
			fmt.Fprintln(out, rule)
			fmt.Fprintf(out, "%-14s  %8s  %8s  %10s\n", "Topology", "Requests", "Failed", "Avg ms")
			fmt.Fprintln(out, rule)
			for _, u := range byTopology {
				fmt.Fprintf(out, "%-14s  %8d  %8d  %10d\n",
					topologyLabel(u.Topology), u.Calls, u.Failures, u.AvgLatencyMs)
			}
			fmt.Fprintln(out)
		}

		fmt.Fprintln(out, "Estimated cost (USD)")
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%-26s  %8s  %10s  %10s\n", "Model", "Requests", "Tokens", "Cost")
		fmt.Fprintln(out, rule)

		var (
			total   float64
			unknown []string
		)
		for _, mu := range byModel {
			cost := "?"
			if c := llm.LookupCost(mu.Model); c != nil {
				usd := c.Cost(mu.InputTokens, mu.OutputTokens)
				total += usd
				cost = formatCost(usd)
			} else {
				unknown = append(unknown, mu.Model)
			}
			fmt.Fprintf(out, "%-26s  %8d  %10d  %10s\n",
				truncate(mu.Model, 26), mu.Calls, mu.InputTokens+mu.OutputTokens, cost)
		}
		fmt.Fprintln(out, rule)
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(out, "%-26s  %8s  %10s  %10s\n", label, "", "", formatCost(total))
		if len(unknown) > 0 {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

// openStore opens the database chosen by --db, config or the default path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func topologyLabel(s string) string {
	if t := circuit.Topology(s); t.Valid() {
		return t.Label()
	}
	if s == "" {
		return "-"
	}
	return s
}

func targetLabel(s string) string {
	if t := circuit.Target(s); t.Valid() {
		return t.Name()
	}
	if s == "" {
		return "-"
	}
	return s
}

func section(w io.Writer, title, body string) {
	rule := strings.Repeat("─", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(w, body)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. explanation)")
	llmListCmd.Flags().StringP("topology", "t", "", "Filter by topology: series, parallel or combination")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
