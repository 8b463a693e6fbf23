package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/store"
)

func init() {
	rootCmd.AddCommand(newAssignCmd())
}

func newAssignCmd() *cobra.Command {
	var (
		subject string
		count   int
	)

	cmd := &cobra.Command{
		Use:   "assign <experiment>",
		Short: "Assign one or more subjects to a variant",
		Long: `Assign subjects to variants and record the exposures.

With --subject the assignment is deterministic: the same subject always
lands on the same variant for a given experiment. Without it, each of the
-n assignments gets a freshly generated subject id.

Examples:
  splitkit assign button-color --subject user-1138
  splitkit assign button-color -n 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if subject != "" && count != 1 {
				return fmt.Errorf("use --subject or -n, not both")
			}
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				stored, err := s.GetExperiment(ctx, name)
				if err != nil {
					if err == store.ErrNotFound {
						return fmt.Errorf("experiment '%s' not found", name)
					}
					return fmt.Errorf("failed to get experiment: %w", err)
				}
				if stored.State != store.StateRunning {
					return fmt.Errorf("experiment is not running (current state: %s)", stored.State)
				}

				exp, err := buildExperiment(stored)
				if err != nil {
					return err
				}

				for i := 0; i < count; i++ {
					id := subject
					if id == "" {
						id = uuid.NewString()
					}

					v := exp.Assign(id)
					if err := s.RecordEvent(ctx, name, v.Name, store.EventExposure, id); err != nil {
						return fmt.Errorf("failed to record exposure: %w", err)
					}

					fmt.Printf("%s -> %s\n", id, v.Name)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject id for deterministic assignment")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of generated subjects to assign")

	return cmd
}
