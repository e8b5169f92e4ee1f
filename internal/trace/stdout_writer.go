// Writer implementation printing step traces to STDOUT
package trace

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints step rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// WriteStep outputs a single step row.
func (w *StdoutWriter) WriteStep(row StepRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteSteps outputs multiple step rows.
func (w *StdoutWriter) WriteSteps(rows []StepRow) error {
	for _, r := range rows {
		_ = w.WriteStep(r)
	}
	return nil
}

// WriteEpisode prints an episode summary to STDOUT.
func (w *StdoutWriter) WriteEpisode(row EpisodeRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}
