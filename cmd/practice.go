package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/schematic"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer circuit problems on the command line (no TUI)",
	Long: `Generate problems and answer them line by line.

No database is opened and tutor calls are not recorded. Useful over SSH,
in scripts, or for checking the generator.`,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().String("topology", "", "series, parallel, combination or any")
	practiceCmd.Flags().Int("count", 5, "Number of problems")
	practiceCmd.Flags().Uint64("seed", 0, "Seed for reproducible problems")
	practiceCmd.Flags().Bool("explain", false, "Ask the tutor for a worked solution after each answer")
}

func runPractice(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	withExplain, _ := cmd.Flags().GetBool("explain")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}

	ctx := cmd.Context()
	gen := problemGenerator(cmd)
	explainer, status := newExplainer(ctx, nil)
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	if withExplain {
		fmt.Fprintf(out, "(%s)\n\n", status)
	}

	var correct, answered int
	for i := 1; i <= count; i++ {
		p, err := generateOne(cmd, gen)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "── Problem %d/%d · %s ──\n", i, count, p.Topology.Label())
		fmt.Fprintln(out, schematic.Render(p))
		fmt.Fprintln(out, p.Statement())

		v, ok := readVerdict(out, scanner, p)
		if !ok {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		switch {
		case v == nil:
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		case v.Correct():
			answered++
			correct++
			fmt.Fprintln(out, "\033[32m✓ "+v.Message+"\033[0m")
		default:
			answered++
			fmt.Fprintln(out, "\033[31m✗ "+v.Message+"\033[0m")
		}

		if withExplain {
			fmt.Fprintln(out, "\nTutor:")
			fmt.Fprintln(out, explainer.Explain(ctx, p).Text)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, answered)
	return nil
}

// readVerdict prompts until the answer parses, keeping the same problem.
// It returns a nil verdict for an empty answer and ok == false when input
// ends.
func readVerdict(out io.Writer, scanner *bufio.Scanner, p circuit.Problem) (v *circuit.Verdict, ok bool) {
	for {
		fmt.Fprintf(out, "\nYour answer (%s): ", p.Target.Unit())
		if !scanner.Scan() {
			return nil, false
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			return nil, true
		}
		verdict := circuit.Evaluate(p, answer)
		if verdict.Outcome == circuit.OutcomeInvalidInput {
			fmt.Fprintln(out, verdict.Message)
			continue
		}
		return &verdict, true
	}
}
