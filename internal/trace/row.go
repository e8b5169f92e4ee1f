// Step trace structs with greptime tags
package trace

import (
	"os"
	"time"
)

// StepRow is one environment step record for analysis backends.
type StepRow struct {
	EpisodeID        string             `json:"episode_id"` // TAG
	TaskID           string             `json:"task_id"`    // TAG
	Step             int                `json:"step"`
	Reward           float64            `json:"reward"`
	Components       map[string]float64 `json:"components,omitempty"`
	AltitudeFt       float64            `json:"altitude_ft"`
	HeadingDeg       float64            `json:"heading_deg"`
	RollDeg          float64            `json:"roll_deg"`
	TargetHeadingDeg float64            `json:"target_heading_deg"`
	TargetAltitudeFt float64            `json:"target_altitude_ft"`
	Terminated       bool               `json:"terminated"`
	Truncated        bool               `json:"truncated"`
	Timestamp        time.Time          `json:"ts"` // TIME INDEX
}

// EpisodeRow summarizes one finished episode.
type EpisodeRow struct {
	EpisodeID   string    `json:"episode_id"` // TAG
	TaskID      string    `json:"task_id"`    // TAG
	Aircraft    string    `json:"aircraft"`
	Shaping     string    `json:"shaping"`
	Steps       int       `json:"steps"`
	TotalReward float64   `json:"total_reward"`
	Outcome     string    `json:"outcome"` // terminated | truncated
	Timestamp   time.Time `json:"ts"`      // TIME INDEX
}

// StepTableName holds the table name used when writing steps to GreptimeDB.
// It defaults to "flight_steps" but can be overridden via the
// FLIGHTGYM_STEP_TABLE environment variable.
var StepTableName = func() string {
	if env := os.Getenv("FLIGHTGYM_STEP_TABLE"); env != "" {
		return env
	}
	return "flight_steps"
}()

// EpisodeTableName is the episode summary table, overridable via
// FLIGHTGYM_EPISODE_TABLE.
var EpisodeTableName = func() string {
	if env := os.Getenv("FLIGHTGYM_EPISODE_TABLE"); env != "" {
		return env
	}
	return "flight_episodes"
}()

func (StepRow) TableName() string    { return StepTableName }
func (EpisodeRow) TableName() string { return EpisodeTableName }

// StepWriter is an interface to support different output writers.
type StepWriter interface {
	WriteStep(StepRow) error
}

// EpisodeWriter handles episode summary records.
type EpisodeWriter interface {
	WriteEpisode(EpisodeRow) error
}

// Optional: writers can also support batch mode.
type batchStepWriter interface {
	WriteSteps([]StepRow) error
}
