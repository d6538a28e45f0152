package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/abhisek/circuitz/internal/ivplot"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Chart the I-V line of a generated network",
	Long: `Generate a problem and save the current-voltage line of its network.
The format follows the file extension: ` + strings.Join(ivplot.Formats, ", ") + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")
		if width <= 0 || height <= 0 {
			return fmt.Errorf("--width and --height must be positive")
		}

		p, err := generateOne(cmd, problemGenerator(cmd))
		if err != nil {
			return err
		}
		if err := ivplot.Save(p, out, vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch); err != nil {
			return fmt.Errorf("save plot: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\nWrote %s\n", p.Statement(), out)
		return nil
	},
}

func init() {
	plotCmd.Flags().StringP("output", "o", "circuit.svg", "Output file")
	plotCmd.Flags().String("topology", "", "series, parallel, combination or any")
	plotCmd.Flags().Uint64("seed", 0, "Seed for reproducible problems")
	plotCmd.Flags().Float64("width", 6, "Width in inches")
	plotCmd.Flags().Float64("height", 4, "Height in inches")
}
