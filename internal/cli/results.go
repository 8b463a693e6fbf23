package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/splitkit/splitkit/internal/stats"
	"github.com/splitkit/splitkit/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results <experiment>",
	Short: "Show detailed results for an experiment",
	Long:  `Show detailed results including conversion rates and confidence intervals.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
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

		variantStats, err := s.VariantStats(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		result := stats.Analyze(exp, variantStats)

		// Print header
		fmt.Printf("EXPERIMENT: %s\n", exp.Name)
		fmt.Printf("STATE: %s\n", exp.State)
		if exp.Winner != nil {
			fmt.Printf("WINNER: %s\n", *exp.Winner)
		}
		fmt.Printf("CREATED: %s\n", exp.CreatedAt.Format("2006-01-02"))
		fmt.Println()

		// Print table header
		fmt.Println("VARIANT           EXPOSURES  CONVERSIONS  RATE     95% CI")
		fmt.Println(strings.Repeat("─", 64))

		for i, v := range result.Variants {
			indicator := ""
			if i == result.Leader && len(result.Variants) > 1 {
				indicator = " ← LEADING"
			}

			ciStr := fmt.Sprintf("[%.1f%%, %.1f%%]", v.CILower*100, v.CIUpper*100)
			if v.Exposures == 0 {
				ciStr = "N/A"
			}

			// Truncate name if too long
			name := v.Name
			if len(name) > 16 {
				name = name[:13] + "..."
			}

			fmt.Printf("%-16s  %-9d  %-11d  %-7s  %s%s\n",
				name,
				v.Exposures,
				v.Conversions,
				formatPercent(v.Rate),
				ciStr,
				indicator,
			)
		}

		fmt.Println()

		// Print significance message
		if len(result.Variants) > 1 {
			leaderName := result.Variants[result.Leader].Name
			confPct := result.ConfidenceLevel * 100

			if result.Confident {
				fmt.Printf("Statistical significance: %.1f%% confident \"%s\" is the winner\n", confPct, leaderName)
			} else if confPct >= 90 {
				fmt.Printf("Statistical significance: %.1f%% confident \"%s\" is ahead (not yet significant)\n", confPct, leaderName)
			} else {
				fmt.Println("Statistical significance: Not enough data to determine a winner")
			}
		}

		return nil
	})
}
