package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "splitkit",
	Short: "splitkit - deterministic A/B testing with classical statistics",
	Long: `splitkit assigns subjects to weighted experiment variants, records
exposures and conversions, and analyzes the results with classical
hypothesis tests (two-proportion z-test, t-test, chi-square, Wilson
intervals, sample-size planning).

Experiment definitions and events persist in an embedded SQLite database;
the statistical core itself is a pure in-memory library.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", getEnvOrDefault("SPLITKIT_DB", "./splitkit.db"), "database path")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
