package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/experiment"
	"github.com/splitkit/splitkit/internal/store"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	var (
		variants string
		weights  string
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new experiment",
		Long: `Create a new experiment with the specified name and variants.

Weights are optional and normalized automatically; without them every
variant gets an equal share. A seed makes the random (subjectless)
assignment path reproducible.

Examples:
  splitkit create button-color --variants "control,treatment"
  splitkit create rollout --variants "old,new" --weights "9,1"
  splitkit create landing --variants "A,B,C" --seed 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			variantList := parseVariants(variants)
			weightList, err := parseWeights(weights)
			if err != nil {
				return err
			}
			if weightList != nil && len(weightList) != len(variantList) {
				return fmt.Errorf("got %d weights for %d variants", len(weightList), len(variantList))
			}

			// Validate through the core library before persisting, so the
			// stored definition is guaranteed to rebuild.
			probe := make([]*experiment.Variant, len(variantList))
			for i, vn := range variantList {
				w := 1.0
				if i < len(weightList) {
					w = weightList[i]
				}
				probe[i] = experiment.NewWeightedVariant(vn, w)
			}
			if _, err := experiment.New(name, probe); err != nil {
				return err
			}

			var seedPtr *int64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}

			return withStore(func(s *store.SQLiteStore) error {
				exp, err := s.CreateExperiment(context.Background(), name, variantList, weightList, seedPtr)
				if err != nil {
					return fmt.Errorf("failed to create experiment: %w", err)
				}

				fmt.Printf("Created experiment '%s' with %d variants:\n", exp.Name, len(exp.Variants))
				for i, v := range exp.Variants {
					if i < len(exp.Weights) {
						fmt.Printf("  %s (weight %g)\n", v, exp.Weights[i])
					} else {
						fmt.Printf("  %s\n", v)
					}
				}
				if seedPtr != nil {
					fmt.Printf("  Seed: %d\n", *seedPtr)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&variants, "variants", "v", "", "comma-separated variant names (required)")
	cmd.Flags().StringVarP(&weights, "weights", "w", "", "comma-separated weights, one per variant (optional)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for the random assignment path (optional)")
	cmd.MarkFlagRequired("variants")

	return cmd
}
