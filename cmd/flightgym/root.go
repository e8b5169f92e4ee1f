package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flightgym",
	Short: "Fixed-wing flight-control RL environment toolkit",
	Long:  "flightgym runs fixed-wing flight-control tasks as RL environments and records step traces for shaping analysis.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(rolloutCmd)
	rootCmd.AddCommand(replayCmd)
}
