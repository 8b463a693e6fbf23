package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/stats"
)

func init() {
	rootCmd.AddCommand(newSampleSizeCmd())
}

func newSampleSizeCmd() *cobra.Command {
	var (
		baseline  float64
		mde       float64
		alpha     float64
		power     float64
		oneTailed bool
	)

	cmd := &cobra.Command{
		Use:   "samplesize",
		Short: "Calculate the required sample size per variant",
		Long: `Calculate how many subjects each variant needs before a test can
detect a given relative lift over the baseline conversion rate.

Example:
  splitkit samplesize --baseline 0.05 --mde 0.20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := stats.SampleSize(baseline, mde, alpha, power, !oneTailed)
			if err != nil {
				return err
			}

			fmt.Printf("Baseline rate:              %s\n", formatPercent(baseline))
			fmt.Printf("Minimum detectable effect:  %.0f%% relative\n", mde*100)
			fmt.Printf("Alpha:                      %g\n", alpha)
			fmt.Printf("Power:                      %g\n", power)
			fmt.Println()
			fmt.Printf("Required sample size per variant: %s\n", formatNumber(n))
			fmt.Printf("Total for two variants:           %s\n", formatNumber(n*2))

			return nil
		},
	}

	cmd.Flags().Float64Var(&baseline, "baseline", 0, "baseline conversion rate, e.g. 0.05 (required)")
	cmd.Flags().Float64Var(&mde, "mde", 0, "minimum detectable relative effect, e.g. 0.2 for +20% (required)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level")
	cmd.Flags().Float64Var(&power, "power", 0.8, "statistical power")
	cmd.Flags().BoolVar(&oneTailed, "one-tailed", false, "plan for a one-tailed test")
	cmd.MarkFlagRequired("baseline")
	cmd.MarkFlagRequired("mde")

	return cmd
}
