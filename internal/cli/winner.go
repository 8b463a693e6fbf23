package cli

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/store"
)

func init() {
	rootCmd.AddCommand(newWinnerCmd())
}

func newWinnerCmd() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "winner <experiment>",
		Short: "Declare a winning variant and complete the experiment",
		Long: `Declare a winning variant for an experiment and mark it completed.
Without --variant, the winner is picked interactively.

Example:
  splitkit winner button-color --variant treatment`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				exp, err := s.GetExperiment(ctx, name)
				if err != nil {
					if err == store.ErrNotFound {
						return fmt.Errorf("experiment '%s' not found", name)
					}
					return fmt.Errorf("failed to get experiment: %w", err)
				}

				if exp.State != store.StateRunning {
					return fmt.Errorf("experiment is not running (current state: %s)", exp.State)
				}

				if variant == "" {
					prompt := promptui.Select{
						Label: "Winning variant",
						Items: exp.Variants,
					}
					_, selected, err := prompt.Run()
					if err != nil {
						if err == promptui.ErrInterrupt {
							return fmt.Errorf("cancelled")
						}
						return fmt.Errorf("prompt failed: %w", err)
					}
					variant = selected
				}

				known := false
				for _, v := range exp.Variants {
					if v == variant {
						known = true
						break
					}
				}
				if !known {
					return fmt.Errorf("experiment '%s' has no variant '%s' (variants: %v)", name, variant, exp.Variants)
				}

				if err := s.SetWinner(ctx, name, variant); err != nil {
					return fmt.Errorf("failed to set winner: %w", err)
				}

				fmt.Printf("Declared winner for experiment '%s': \"%s\"\n", name, variant)
				fmt.Println("Experiment has been marked as completed.")

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&variant, "variant", "v", "", "winning variant name")

	return cmd
}
