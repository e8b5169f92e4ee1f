package trace

// MultiWriter fan-outs step and episode rows to multiple writers.
type MultiWriter struct {
	stepWriters    []StepWriter
	episodeWriters []EpisodeWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(sws []StepWriter, ews []EpisodeWriter) *MultiWriter {
	return &MultiWriter{stepWriters: sws, episodeWriters: ews}
}

// WriteStep sends a step row to all writers.
func (mw *MultiWriter) WriteStep(row StepRow) error {
	for _, w := range mw.stepWriters {
		if err := w.WriteStep(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSteps sends multiple step rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteSteps(rows []StepRow) error {
	for _, w := range mw.stepWriters {
		if bw, ok := w.(batchStepWriter); ok {
			if err := bw.WriteSteps(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteStep(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteEpisode sends an episode summary to all episode writers.
func (mw *MultiWriter) WriteEpisode(row EpisodeRow) error {
	for _, w := range mw.episodeWriters {
		if err := w.WriteEpisode(row); err != nil {
			return err
		}
	}
	return nil
}
