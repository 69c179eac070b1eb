package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arclabs/tracewright/driver/chromedriver"
	"github.com/arclabs/tracewright/scenario"
	"github.com/arclabs/tracewright/suite"
)

var runFlags struct {
	suiteName   string
	baseURL     string
	endpoint    string
	environment string
	trigger     string
	browser     string
	headed      bool
	width       int
	height      int
	stdout      bool
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a YAML scenario as an instrumented browser suite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sc, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		cfg := suite.Config{
			SuiteName:      firstNonEmpty(runFlags.suiteName, sc.Suite),
			BaseURL:        firstNonEmpty(runFlags.baseURL, sc.BaseURL),
			Endpoint:       runFlags.endpoint,
			Environment:    runFlags.environment,
			Trigger:        runFlags.trigger,
			Browser:        runFlags.browser,
			ViewportWidth:  runFlags.width,
			ViewportHeight: runFlags.height,
		}
		if runFlags.headed {
			headless := false
			cfg.Headless = &headless
		}
		if runFlags.stdout {
			cfg.TraceExporter = "stdout"
			cfg.LogExporter = "stdout"
			cfg.MetricExporter = "stdout"
		}

		s, err := suite.Start(ctx, cfg, chromedriver.New())
		if err != nil {
			return err
		}

		execErr := sc.Execute(ctx, s)
		closeErr := s.Close(ctx)

		fmt.Fprintf(cmd.OutOrStdout(), "suite %q: %d total, %d passed, %d failed (%s)\n",
			cfg.SuiteName, s.Total(), s.Passed(), s.Failed(), s.Result())

		if execErr != nil {
			return execErr
		}
		return closeErr
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	runCmd.Flags().StringVar(&runFlags.suiteName, "suite", "", "suite name (overrides the scenario file)")
	runCmd.Flags().StringVar(&runFlags.baseURL, "base-url", "", "base URL for relative navigation targets")
	runCmd.Flags().StringVar(&runFlags.endpoint, "endpoint", "", "OTLP gRPC endpoint (default from OTEL_EXPORTER_OTLP_ENDPOINT)")
	runCmd.Flags().StringVar(&runFlags.environment, "environment", "", "target environment label")
	runCmd.Flags().StringVar(&runFlags.trigger, "trigger", "", "run trigger label, e.g. manual or ci")
	runCmd.Flags().StringVar(&runFlags.browser, "browser", "", "browser engine name")
	runCmd.Flags().BoolVar(&runFlags.headed, "headed", false, "run the browser with a visible window")
	runCmd.Flags().IntVar(&runFlags.width, "viewport-width", 0, "viewport width in pixels")
	runCmd.Flags().IntVar(&runFlags.height, "viewport-height", 0, "viewport height in pixels")
	runCmd.Flags().BoolVar(&runFlags.stdout, "stdout", false, "print telemetry to stdout instead of OTLP")
	rootCmd.AddCommand(runCmd)
}
