package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arclabs/tracewright/telemetry"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tracewright version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tracewright %s\n", telemetry.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
