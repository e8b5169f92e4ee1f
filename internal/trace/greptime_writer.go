package trace

import (
	"context"
	"encoding/json"
	"log/slog"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes step traces and episode summaries to GreptimeDB
// via the ingester client.
type GreptimeDBWriter struct {
	client       greptimeClient
	stepTable    string
	episodeTable string
	log          *slog.Logger
}

// NewGreptimeDBWriter creates a new GreptimeDB writer.
func NewGreptimeDBWriter(host, database string, log *slog.Logger) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(host).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &GreptimeDBWriter{
		client:       client,
		stepTable:    StepTableName,
		episodeTable: EpisodeTableName,
		log:          log,
	}, nil
}

// WriteStep inserts a single step row.
func (w *GreptimeDBWriter) WriteStep(row StepRow) error {
	return w.WriteSteps([]StepRow{row})
}

// WriteSteps inserts multiple step rows in one request.
func (w *GreptimeDBWriter) WriteSteps(rows []StepRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.stepTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("episode_id", types.STRING)
	tbl.AddTagColumn("task_id", types.STRING)
	tbl.AddFieldColumn("step", types.INT64)
	tbl.AddFieldColumn("reward", types.FLOAT64)
	tbl.AddFieldColumn("components", types.JSON)
	tbl.AddFieldColumn("altitude_ft", types.FLOAT64)
	tbl.AddFieldColumn("heading_deg", types.FLOAT64)
	tbl.AddFieldColumn("roll_deg", types.FLOAT64)
	tbl.AddFieldColumn("target_heading_deg", types.FLOAT64)
	tbl.AddFieldColumn("target_altitude_ft", types.FLOAT64)
	tbl.AddFieldColumn("terminated", types.BOOLEAN)
	tbl.AddFieldColumn("truncated", types.BOOLEAN)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		comps, err := json.Marshal(r.Components)
		if err != nil {
			return err
		}
		if err := tbl.AddRow(
			r.EpisodeID,
			r.TaskID,
			int64(r.Step),
			r.Reward,
			string(comps),
			r.AltitudeFt,
			r.HeadingDeg,
			r.RollDeg,
			r.TargetHeadingDeg,
			r.TargetAltitudeFt,
			r.Terminated,
			r.Truncated,
			r.Timestamp,
		); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.log.Error("step write failed", "rows", len(rows), "err", err)
		return err
	}
	w.log.Debug("wrote step rows", "rows", len(rows))
	return nil
}

// WriteEpisode inserts an episode summary row.
func (w *GreptimeDBWriter) WriteEpisode(row EpisodeRow) error {
	tbl, err := table.New(w.episodeTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("episode_id", types.STRING)
	tbl.AddTagColumn("task_id", types.STRING)
	tbl.AddFieldColumn("aircraft", types.STRING)
	tbl.AddFieldColumn("shaping", types.STRING)
	tbl.AddFieldColumn("steps", types.INT64)
	tbl.AddFieldColumn("total_reward", types.FLOAT64)
	tbl.AddFieldColumn("outcome", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(
		row.EpisodeID,
		row.TaskID,
		row.Aircraft,
		row.Shaping,
		int64(row.Steps),
		row.TotalReward,
		row.Outcome,
		row.Timestamp,
	); err != nil {
		return err
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.log.Error("episode write failed", "episode", row.EpisodeID, "err", err)
		return err
	}
	return nil
}
