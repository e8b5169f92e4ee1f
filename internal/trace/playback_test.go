package trace

import (
	"strings"
	"testing"
	"time"
)

type captureWriter struct {
	steps    []StepRow
	episodes []EpisodeRow
}

func (c *captureWriter) WriteStep(row StepRow) error {
	c.steps = append(c.steps, row)
	return nil
}

func (c *captureWriter) WriteEpisode(row EpisodeRow) error {
	c.episodes = append(c.episodes, row)
	return nil
}

func TestReplayLog(t *testing.T) {
	log := `{"episode_id":"ep-1","task_id":"heading-hold/standard","step":1,"reward":-0.1,"ts":"2026-01-02T15:04:05Z"}
{"episode_id":"ep-1","task_id":"heading-hold/standard","step":2,"reward":-0.2,"ts":"2026-01-02T15:04:05.2Z"}
`
	w := &captureWriter{}
	if err := ReplayLog(strings.NewReader(log), w, 0); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if len(w.steps) != 2 {
		t.Fatalf("replayed %d rows, want 2", len(w.steps))
	}
	if w.steps[1].Step != 2 || w.steps[1].Reward != -0.2 {
		t.Errorf("unexpected second row: %+v", w.steps[1])
	}
}

func TestReplayLogBadInput(t *testing.T) {
	w := &captureWriter{}
	if err := ReplayLog(strings.NewReader("not json"), w, 0); err == nil {
		t.Error("expected decode error")
	}
}

func TestReplayPacing(t *testing.T) {
	// Two rows 100ms apart replayed at 10x should take well under 100ms.
	log := `{"episode_id":"e","task_id":"t","step":1,"ts":"2026-01-02T15:04:05Z"}
{"episode_id":"e","task_id":"t","step":2,"ts":"2026-01-02T15:04:05.1Z"}
`
	w := &captureWriter{}
	start := time.Now()
	if err := ReplayLog(strings.NewReader(log), w, 10); err != nil {
		t.Fatalf("ReplayLog: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 80*time.Millisecond {
		t.Errorf("10x replay took %v, expected ~10ms", elapsed)
	}
}
