package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/experiment"
	"github.com/splitkit/splitkit/internal/stats"
)

func init() {
	rootCmd.AddCommand(newSimulateCmd())
}

// runSimulation drives users through the experiment. Subject ids are
// sequential, so the assignment split is a pure function of the
// experiment name and variant set, and conversion draws come from a
// seeded source. A rerun with the same inputs reproduces every counter.
func runSimulation(exp *experiment.Experiment, trueRates map[string]float64, users int, seed int64) {
	convRng := rand.New(rand.NewSource(seed + 1))
	for i := 0; i < users; i++ {
		v := exp.Assign(fmt.Sprintf("user-%d", i))
		if convRng.Float64() < trueRates[v.Name] {
			exp.RecordConversion(v.Name)
		}
	}
}

func newSimulateCmd() *cobra.Command {
	var (
		variants string
		weights  string
		rates    string
		users    int
		seed     int64
		alpha    float64
	)

	cmd := &cobra.Command{
		Use:   "simulate <name>",
		Short: "Simulate an experiment end to end, in memory",
		Long: `Simulate traffic through an in-memory experiment and print the full
statistical readout. Simulated users get sequential subject ids and are
assigned deterministically; each converts with the true rate given for
their variant, drawn from a seeded source. Reruns with the same flags
produce identical results. Nothing touches the database.

Examples:
  splitkit simulate button-color --variants "control,treatment" --rates "0.10,0.12" --users 2000
  splitkit simulate rollout --variants "old,new" --weights "9,1" --rates "0.05,0.05" --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			variantList := parseVariants(variants)
			weightList, err := parseWeights(weights)
			if err != nil {
				return err
			}
			rateList, err := parseWeights(rates)
			if err != nil {
				return err
			}
			if len(rateList) != len(variantList) {
				return fmt.Errorf("got %d rates for %d variants", len(rateList), len(variantList))
			}
			if weightList != nil && len(weightList) != len(variantList) {
				return fmt.Errorf("got %d weights for %d variants", len(weightList), len(variantList))
			}
			if users < 1 {
				return fmt.Errorf("users must be at least 1, got %d", users)
			}

			vs := make([]*experiment.Variant, len(variantList))
			trueRates := make(map[string]float64, len(variantList))
			for i, vn := range variantList {
				w := 1.0
				if i < len(weightList) {
					w = weightList[i]
				}
				vs[i] = experiment.NewWeightedVariant(vn, w)
				trueRates[vn] = rateList[i]
			}

			exp, err := experiment.New(name, vs, experiment.WithSeed(seed))
			if err != nil {
				return err
			}

			fmt.Printf("Simulating %d users through '%s'...\n\n", users, name)
			runSimulation(exp, trueRates, users, seed)

			fmt.Print(exp.Summary())

			if len(exp.Variants) == 2 {
				a := exp.Variants[0]
				b := exp.Variants[1]

				res, err := stats.ZTestProportions(b.Conversions, b.Exposures, a.Conversions, a.Exposures, true)
				if err != nil {
					return err
				}

				fmt.Printf("z-test (%s vs %s):\n", b.Name, a.Name)
				fmt.Printf("  z-score: %.4f\n", res.ZScore)
				fmt.Printf("  p-value: %.4f\n", res.PValue)

				if a.ConversionRate() > 0 {
					uplift, err := stats.RelativeUplift(a.ConversionRate(), b.ConversionRate())
					if err == nil {
						fmt.Printf("  relative uplift: %+.2f%%\n", uplift*100)
					}
				}

				if stats.IsStatisticallySignificant(res.PValue, alpha) {
					fmt.Printf("  significant at alpha=%g\n", alpha)
				} else {
					fmt.Printf("  not significant at alpha=%g\n", alpha)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&variants, "variants", "v", "", "comma-separated variant names (required)")
	cmd.Flags().StringVarP(&weights, "weights", "w", "", "comma-separated assignment weights (optional)")
	cmd.Flags().StringVarP(&rates, "rates", "r", "", "comma-separated true conversion rates, one per variant (required)")
	cmd.Flags().IntVarP(&users, "users", "n", 1000, "number of simulated users")
	cmd.Flags().Int64Var(&seed, "seed", 42, "seed for the simulation")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance level for the readout")
	cmd.MarkFlagRequired("variants")
	cmd.MarkFlagRequired("rates")

	return cmd
}
