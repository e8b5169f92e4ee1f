package trace

import (
	"context"
	"log/slog"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
)

type mockGreptimeClient struct {
	table *table.Table
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, nil
}

func TestGreptimeWriterStepComponentsJSON(t *testing.T) {
	ts := time.Unix(0, 0).UTC()
	rows := []StepRow{
		{
			EpisodeID:  "ep-1",
			TaskID:     "heading-hold/standard",
			Step:       1,
			Reward:     -0.5,
			Components: map[string]float64{"track_error": -0.5},
			Timestamp:  ts,
		},
	}

	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, stepTable: "flight_steps", log: slog.Default()}

	if err := w.WriteSteps(rows); err != nil {
		t.Fatalf("WriteSteps: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}

	schema := m.table.GetRows().Schema
	if len(schema) < 5 {
		t.Fatalf("unexpected schema length: %d", len(schema))
	}
	if schema[4].Datatype != gpb.ColumnDataType_JSON {
		t.Fatalf("components column type = %v, want %v", schema[4].Datatype, gpb.ColumnDataType_JSON)
	}

	got := m.table.GetRows().Rows[0].Values[4].GetStringValue()
	want := "{\"track_error\":-0.5}"
	if got != want {
		t.Fatalf("components = %s, want %s", got, want)
	}
}

func TestGreptimeWriterEpisode(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, episodeTable: "flight_episodes", log: slog.Default()}

	row := EpisodeRow{
		EpisodeID:   "ep-1",
		TaskID:      "turn-heading/extra",
		Aircraft:    "c172",
		Shaping:     "extra",
		Steps:       300,
		TotalReward: -42.5,
		Outcome:     "truncated",
		Timestamp:   time.Unix(0, 0).UTC(),
	}
	if err := w.WriteEpisode(row); err != nil {
		t.Fatalf("WriteEpisode: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}
	if got := m.table.GetRows().Rows[0].Values[0].GetStringValue(); got != "ep-1" {
		t.Errorf("episode_id = %s, want ep-1", got)
	}
}

func TestGreptimeWriterEmptyBatch(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, stepTable: "flight_steps", log: slog.Default()}
	if err := w.WriteSteps(nil); err != nil {
		t.Fatalf("WriteSteps(nil): %v", err)
	}
	if m.table != nil {
		t.Error("empty batch must not issue a write")
	}
}
