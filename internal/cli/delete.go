package cli

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/store"
)

func init() {
	rootCmd.AddCommand(newDeleteCmd())
}

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <experiment>",
		Short: "Delete an experiment and all its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !yes {
				prompt := promptui.Prompt{
					Label:     fmt.Sprintf("Delete experiment '%s' and all its events", name),
					IsConfirm: true,
				}
				if _, err := prompt.Run(); err != nil {
					if err == promptui.ErrInterrupt || err == promptui.ErrAbort {
						fmt.Println("Cancelled.")
						return nil
					}
					return fmt.Errorf("prompt failed: %w", err)
				}
			}

			return withStore(func(s *store.SQLiteStore) error {
				err := s.DeleteExperiment(context.Background(), name)
				if err == store.ErrNotFound {
					return fmt.Errorf("experiment '%s' not found", name)
				}
				if err != nil {
					return fmt.Errorf("failed to delete experiment: %w", err)
				}

				fmt.Printf("Deleted experiment '%s'\n", name)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
