package main

import (
	"flightgym/internal/logging"
	"flightgym/internal/trace"

	"github.com/spf13/cobra"
)

var (
	replayInput string
	replaySpeed float64
	replayTUI   bool
	replayDebug bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded step trace",
	Long:  "replay reads a JSONL step trace produced by rollout and plays it back at the recorded pace, optionally accelerated.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(replayDebug)

		var writer trace.StepWriter
		var cleanup func()
		if replayTUI {
			tw := trace.NewTUIWriter("replay")
			writer = tw
			cleanup = tw.Close
		} else {
			writer = &trace.StdoutWriter{}
			cleanup = func() {}
		}
		defer cleanup()

		log.Info("replaying trace", "input", replayInput, "speed", replaySpeed)
		return trace.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to JSONL step trace (required)")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed factor (0 disables pacing)")
	replayCmd.Flags().BoolVar(&replayTUI, "tui", false, "Render playback in the TUI")
	replayCmd.Flags().BoolVar(&replayDebug, "debug", false, "Enable debug logging")
	_ = replayCmd.MarkFlagRequired("input")
}
