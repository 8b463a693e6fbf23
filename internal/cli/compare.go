package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/stats"
	"github.com/splitkit/splitkit/internal/store"
)

func init() {
	rootCmd.AddCommand(newCompareCmd())
}

func newCompareCmd() *cobra.Command {
	var (
		control   string
		treatment string
		alpha     float64
		oneTailed bool
	)

	cmd := &cobra.Command{
		Use:   "compare <experiment>",
		Short: "Run a two-proportion z-test between two variants",
		Long: `Run an explicit two-proportion z-test between a control and a
treatment variant, reporting the z-score, p-value, standard error,
relative uplift, and the significance verdict at the chosen alpha.

Example:
  splitkit compare button-color --control control --treatment treatment`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				if _, err := s.GetExperiment(ctx, name); err != nil {
					if err == store.ErrNotFound {
						return fmt.Errorf("experiment '%s' not found", name)
					}
					return fmt.Errorf("failed to get experiment: %w", err)
				}

				variantStats, err := s.VariantStats(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to get stats: %w", err)
				}

				var ctrl, treat *store.VariantStats
				for i := range variantStats {
					switch variantStats[i].Variant {
					case control:
						ctrl = &variantStats[i]
					case treatment:
						treat = &variantStats[i]
					}
				}
				if ctrl == nil {
					return fmt.Errorf("no recorded events for control variant '%s'", control)
				}
				if treat == nil {
					return fmt.Errorf("no recorded events for treatment variant '%s'", treatment)
				}

				res, err := stats.ZTestProportions(
					treat.Conversions, treat.Exposures,
					ctrl.Conversions, ctrl.Exposures,
					!oneTailed,
				)
				if err != nil {
					return err
				}

				ctrlRate := float64(ctrl.Conversions) / float64(ctrl.Exposures)
				treatRate := float64(treat.Conversions) / float64(treat.Exposures)

				fmt.Printf("Control   %s: %d/%d (%s)\n", control, ctrl.Conversions, ctrl.Exposures, formatPercent(ctrlRate))
				fmt.Printf("Treatment %s: %d/%d (%s)\n", treatment, treat.Conversions, treat.Exposures, formatPercent(treatRate))
				fmt.Println()
				fmt.Printf("z-score:        %.4f\n", res.ZScore)
				fmt.Printf("p-value:        %.4f\n", res.PValue)
				fmt.Printf("std error:      %.4f\n", res.StdError)

				if uplift, err := stats.RelativeUplift(ctrlRate, treatRate); err == nil {
					fmt.Printf("relative uplift: %+.2f%%\n", uplift*100)
				}

				fmt.Println()
				if stats.IsStatisticallySignificant(res.PValue, alpha) {
					fmt.Printf("Significant at alpha=%g\n", alpha)
				} else {
					fmt.Printf("Not significant at alpha=%g\n", alpha)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&control, "control", "", "control variant name (required)")
	cmd.Flags().StringVar(&treatment, "treatment", "", "treatment variant name (required)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level")
	cmd.Flags().BoolVar(&oneTailed, "one-tailed", false, "use a one-tailed test (treatment > control)")
	cmd.MarkFlagRequired("control")
	cmd.MarkFlagRequired("treatment")

	return cmd
}
