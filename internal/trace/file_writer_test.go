package trace

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	stepPath := filepath.Join(dir, "steps.jsonl")
	epPath := filepath.Join(dir, "episodes.jsonl")

	fw, err := NewFileWriter(stepPath, epPath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	rows := []StepRow{
		{EpisodeID: "ep-1", TaskID: "heading-hold/standard", Step: 1, Reward: -0.3, Timestamp: time.Unix(1, 0).UTC()},
		{EpisodeID: "ep-1", TaskID: "heading-hold/standard", Step: 2, Reward: -0.1, Timestamp: time.Unix(2, 0).UTC()},
	}
	if err := fw.WriteSteps(rows); err != nil {
		t.Fatalf("WriteSteps: %v", err)
	}
	if err := fw.WriteEpisode(EpisodeRow{EpisodeID: "ep-1", Steps: 2, Outcome: "truncated"}); err != nil {
		t.Fatalf("WriteEpisode: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(stepPath)
	if err != nil {
		t.Fatalf("open steps: %v", err)
	}
	defer f.Close()
	var got []StepRow
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var row StepRow
		if err := json.Unmarshal(sc.Bytes(), &row); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		got = append(got, row)
	}
	if len(got) != 2 || got[0].Step != 1 || got[1].Reward != -0.1 {
		t.Errorf("unexpected rows: %+v", got)
	}
}

func TestFileWriterNoEpisodeLog(t *testing.T) {
	fw, err := NewFileWriter(filepath.Join(t.TempDir(), "steps.jsonl"), "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()
	// Episode writes are a no-op when disabled.
	if err := fw.WriteEpisode(EpisodeRow{EpisodeID: "ep-1"}); err != nil {
		t.Errorf("WriteEpisode: %v", err)
	}
}

func TestMultiWriterFanOut(t *testing.T) {
	a := &captureWriter{}
	b := &captureWriter{}
	mw := NewMultiWriter([]StepWriter{a, b}, []EpisodeWriter{a, b})

	if err := mw.WriteSteps([]StepRow{{EpisodeID: "ep-1", Step: 1}}); err != nil {
		t.Fatalf("WriteSteps: %v", err)
	}
	if err := mw.WriteEpisode(EpisodeRow{EpisodeID: "ep-1"}); err != nil {
		t.Fatalf("WriteEpisode: %v", err)
	}
	for i, w := range []*captureWriter{a, b} {
		if len(w.steps) != 1 || len(w.episodes) != 1 {
			t.Errorf("writer %d: steps=%d episodes=%d, want 1/1", i, len(w.steps), len(w.episodes))
		}
	}
}
