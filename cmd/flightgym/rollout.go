package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"flightgym/internal/agent"
	"flightgym/internal/aircraft"
	"flightgym/internal/config"
	"flightgym/internal/dynamics"
	"flightgym/internal/logging"
	"flightgym/internal/task"
	"flightgym/internal/trace"
)

var (
	rolloutConfigPath string
	rolloutSchemaPath string
	rolloutEpisodes   int
	rolloutAgent      string
	rolloutSeed       int64
	rolloutPrintOnly  bool
	rolloutLogFile    string
	rolloutTUI        bool
	rolloutDebug      bool
)

var rolloutCmd = &cobra.Command{
	Use:   "rollout",
	Short: "Run flight-control episodes with a scripted agent",
	Long:  "rollout runs one or more episodes of the configured task and writes per-step reward traces.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(rolloutDebug)

		cfg, err := config.Load(rolloutConfigPath, rolloutSchemaPath)
		if err != nil {
			return err
		}
		ac, err := aircraft.ByName(cfg.Aircraft)
		if err != nil {
			return err
		}

		taskID := fmt.Sprintf("%s/%s", cfg.Task, cfg.Shaping)
		stepW, epW, cleanup, err := newWriters(rolloutPrintOnly, rolloutLogFile, rolloutTUI, taskID, log)
		if err != nil {
			return err
		}
		defer cleanup()

		rng := rand.New(rand.NewSource(rolloutSeed))
		pilot, err := agent.New(rolloutAgent, rng)
		if err != nil {
			return err
		}

		fdm, err := dynamics.NewKinematic(dynamics.KinematicConfig{
			Aircraft:   ac,
			DT:         1.0 / float64(cfg.SimHz),
			AltitudeFt: cfg.InitialAltitudeFt,
			HeadingDeg: cfg.InitialHeadingDeg,
			Turbulence: cfg.Turbulence,
			RNG:        rng,
		})
		if err != nil {
			return err
		}
		tk, err := task.New(cfg, fdm)
		if err != nil {
			return err
		}

		log.Info("starting rollout",
			"task", cfg.Task, "shaping", cfg.Shaping,
			"aircraft", ac.Name, "episodes", rolloutEpisodes, "agent", rolloutAgent)

		for ep := 0; ep < rolloutEpisodes; ep++ {
			if err := runEpisode(tk, pilot, rng, taskID, cfg, stepW, epW, log); err != nil {
				return err
			}
		}
		return nil
	},
}

func runEpisode(tk *task.Task, pilot agent.Agent, rng *rand.Rand, taskID string, cfg *config.EnvironmentConfig, stepW trace.StepWriter, epW trace.EpisodeWriter, log *slog.Logger) error {
	obs, info, err := tk.Reset(rng)
	if err != nil {
		return err
	}
	episodeID := tk.Episode().ID
	log.Debug("episode reset", "episode", episodeID, "target_heading", info.Target.HeadingDeg)

	total := 0.0
	outcome := "truncated"

	for {
		res, err := tk.Step(pilot.Act(obs))
		if err != nil {
			return err
		}
		obs = res.Observation
		total += res.Reward

		sv := tk.State()
		row := trace.StepRow{
			EpisodeID:        episodeID,
			TaskID:           taskID,
			Step:             tk.Episode().StepCount,
			Reward:           res.Reward,
			Components:       res.Info.Components,
			AltitudeFt:       sv.AltitudeFt,
			HeadingDeg:       sv.HeadingDeg,
			RollDeg:          sv.RollRad * 180 / math.Pi,
			TargetHeadingDeg: res.Info.Target.HeadingDeg,
			TargetAltitudeFt: res.Info.Target.AltitudeFt,
			Terminated:       res.Terminated,
			Truncated:        res.Truncated,
			Timestamp:        time.Now().UTC(),
		}
		if err := stepW.WriteStep(row); err != nil {
			log.Error("step write failed", "episode", episodeID, "step", row.Step, "err", err)
		}

		if res.Terminated {
			outcome = "terminated"
			break
		}
		if res.Truncated {
			break
		}
	}

	row := trace.EpisodeRow{
		EpisodeID:   episodeID,
		TaskID:      taskID,
		Aircraft:    cfg.Aircraft,
		Shaping:     cfg.Shaping,
		Steps:       tk.Episode().StepCount,
		TotalReward: total,
		Outcome:     outcome,
		Timestamp:   time.Now().UTC(),
	}
	if err := epW.WriteEpisode(row); err != nil {
		return err
	}
	log.Info("episode finished", "episode", episodeID, "outcome", outcome,
		"steps", row.Steps, "total_reward", row.TotalReward)
	return nil
}

func init() {
	rolloutCmd.Flags().StringVar(&rolloutConfigPath, "config", "config/environment.yaml", "Path to environment configuration YAML")
	rolloutCmd.Flags().StringVar(&rolloutSchemaPath, "schema", "schemas/environment.cue", "Path to CUE schema file")
	rolloutCmd.Flags().IntVar(&rolloutEpisodes, "episodes", 1, "Number of episodes to run")
	rolloutCmd.Flags().StringVar(&rolloutAgent, "agent", "heading-hold", "Agent to fly with (random, heading-hold)")
	rolloutCmd.Flags().Int64Var(&rolloutSeed, "seed", 1, "Random seed for targets, turbulence, and agents")
	rolloutCmd.Flags().BoolVar(&rolloutPrintOnly, "print-only", false, "Print step traces to STDOUT instead of writing to DB")
	rolloutCmd.Flags().StringVar(&rolloutLogFile, "log-file", "", "Path to export step traces (JSONL)")
	rolloutCmd.Flags().BoolVar(&rolloutTUI, "tui", false, "Render a live TUI instead of STDOUT traces")
	rolloutCmd.Flags().BoolVar(&rolloutDebug, "debug", false, "Enable per-step debug logging")
}
