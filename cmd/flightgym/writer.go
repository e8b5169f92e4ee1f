package main

import (
	"log/slog"
	"os"

	"flightgym/internal/trace"
)

// newWriters selects the step/episode writers: GreptimeDB when an endpoint
// is configured, STDOUT otherwise (suppressed under the TUI, which owns the
// terminal), with optional JSONL export. The returned cleanup closes any
// files and the TUI.
func newWriters(printOnly bool, logFile string, useTUI bool, taskID string, log *slog.Logger) (trace.StepWriter, trace.EpisodeWriter, func(), error) {
	var stepWriters []trace.StepWriter
	var epWriters []trace.EpisodeWriter
	cleanups := []func(){}

	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		if !useTUI {
			log.Info("print-only mode: step traces go to STDOUT")
			sw := &trace.StdoutWriter{}
			stepWriters = append(stepWriters, sw)
			epWriters = append(epWriters, sw)
		}
	} else {
		endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
		database := os.Getenv("GREPTIMEDB_DATABASE")
		if database == "" {
			database = "public"
		}
		gw, err := trace.NewGreptimeDBWriter(endpoint, database, log)
		if err != nil {
			return nil, nil, nil, err
		}
		stepWriters = append(stepWriters, gw)
		epWriters = append(epWriters, gw)
	}

	if logFile != "" {
		fw, err := trace.NewFileWriter(logFile, logFile+".episodes")
		if err != nil {
			return nil, nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = fw.Close() })
		stepWriters = append(stepWriters, fw)
		epWriters = append(epWriters, fw)
	}

	if useTUI {
		tw := trace.NewTUIWriter(taskID)
		cleanups = append(cleanups, tw.Close)
		stepWriters = append(stepWriters, tw)
		epWriters = append(epWriters, tw)
	}

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	return trace.NewMultiWriter(stepWriters, nil), trace.NewMultiWriter(nil, epWriters), cleanup, nil
}
