package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/store"
)

func init() {
	rootCmd.AddCommand(newConvertCmd())
}

func newConvertCmd() *cobra.Command {
	var (
		variant string
		subject string
	)

	cmd := &cobra.Command{
		Use:   "convert <experiment>",
		Short: "Record a conversion for a variant",
		Long: `Record a conversion event for the named variant.

Example:
  splitkit convert button-color --variant treatment --subject user-1138`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				stored, err := s.GetExperiment(ctx, name)
				if err != nil {
					if err == store.ErrNotFound {
						return fmt.Errorf("experiment '%s' not found", name)
					}
					return fmt.Errorf("failed to get experiment: %w", err)
				}

				known := false
				for _, v := range stored.Variants {
					if v == variant {
						known = true
						break
					}
				}
				if !known {
					return fmt.Errorf("experiment '%s' has no variant '%s' (variants: %v)", name, variant, stored.Variants)
				}

				if err := s.RecordEvent(ctx, name, variant, store.EventConversion, subject); err != nil {
					return fmt.Errorf("failed to record conversion: %w", err)
				}

				fmt.Printf("Recorded conversion for '%s' variant '%s'\n", name, variant)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&variant, "variant", "v", "", "variant name (required)")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject id (optional)")
	cmd.MarkFlagRequired("variant")

	return cmd
}
