package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/schematic"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a generated problem",
	Long: `Print one problem with its schematic and statement. --answer adds the
correct answer. --json prints the complete problem, answer included, in the
form accepted by the HTTP API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		showAnswer, _ := cmd.Flags().GetBool("answer")

		p, err := generateOne(cmd, problemGenerator(cmd))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}

		fmt.Fprintln(out, schematic.Render(p))
		fmt.Fprintln(out, p.Statement())
		if showAnswer {
			fmt.Fprintf(out, "\nAnswer: %s %s\n", circuit.FormatValue(p.CorrectAnswer), p.Target.Unit())
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topology", "", "series, parallel, combination or any")
	generateCmd.Flags().Uint64("seed", 0, "Seed for reproducible problems")
	generateCmd.Flags().Bool("json", false, "Print the problem as JSON")
	generateCmd.Flags().Bool("answer", false, "Include the correct answer")
}
