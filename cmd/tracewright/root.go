package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracewright",
	Short: "Tracewright - OpenTelemetry-instrumented browser test suites",
	Long: `Tracewright runs end-to-end browser test suites described in YAML and
exports every run as a trace tree (suite, test case, action) with
trace-correlated error logs for failed cases.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Load .env if present so OTLP endpoints and credentials can live
	// outside the scenario file.
	_ = godotenv.Load()
}
