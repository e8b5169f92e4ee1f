// YAML environment config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Task variants.
const (
	TaskHeadingHold = "heading-hold"
	TaskTurnHeading = "turn-heading"
)

// Shaping modes.
const (
	ShapingStandard        = "standard"
	ShapingExtra           = "extra"
	ShapingExtraSequential = "extra-sequential"
)

// Reward holds the shaping weights and normalization scales. All scales must
// be positive; a zero scale is a configuration error, never a runtime
// fallback.
type Reward struct {
	AltitudeErrorScaleFt float64 `yaml:"altitude_error_scale_ft"`
	TrackErrorScaleDeg   float64 `yaml:"track_error_scale_deg"`
	AltitudeWeight       float64 `yaml:"altitude_weight"`
	TrackWeight          float64 `yaml:"track_weight"`
	SideslipScaleDeg     float64 `yaml:"sideslip_scale_deg"`
	SideslipWeight       float64 `yaml:"sideslip_weight"`
	RollRateScaleRadps   float64 `yaml:"roll_rate_scale_radps"`
	RollRateWeight       float64 `yaml:"roll_rate_weight"`
	ControlEffortScale   float64 `yaml:"control_effort_scale"`
	ControlEffortWeight  float64 `yaml:"control_effort_weight"`
	SequentialUnlock     float64 `yaml:"sequential_unlock_threshold"`
}

// Termination holds the episode failure bounds.
type Termination struct {
	MinAltitudeFt float64 `yaml:"min_altitude_ft"`
	MaxAltitudeFt float64 `yaml:"max_altitude_ft"`
	MaxRollDeg    float64 `yaml:"max_roll_deg"`
	MaxPitchDeg   float64 `yaml:"max_pitch_deg"`
}

// EnvironmentConfig is the root configuration for one environment instance.
type EnvironmentConfig struct {
	Task              string      `yaml:"task"`
	Shaping           string      `yaml:"shaping"`
	Aircraft          string      `yaml:"aircraft"`
	SimHz             int         `yaml:"sim_hz"`
	AgentHz           int         `yaml:"agent_hz"`
	MaxSteps          int         `yaml:"max_steps"`
	InitialAltitudeFt float64     `yaml:"initial_altitude_ft"`
	InitialHeadingDeg float64     `yaml:"initial_heading_deg"`
	Turbulence        float64     `yaml:"turbulence"`
	TurnMinDeltaDeg   float64     `yaml:"turn_min_delta_deg"`
	Reward            Reward      `yaml:"reward"`
	Termination       Termination `yaml:"termination"`
}

// Defaults returns the compiled-in configuration: heading hold in a C172 at
// 5000 ft with standard shaping.
func Defaults() *EnvironmentConfig {
	return &EnvironmentConfig{
		Task:              TaskHeadingHold,
		Shaping:           ShapingStandard,
		Aircraft:          "c172",
		SimHz:             60,
		AgentHz:           5,
		MaxSteps:          300,
		InitialAltitudeFt: 5000,
		InitialHeadingDeg: 270,
		Turbulence:        0,
		TurnMinDeltaDeg:   30,
		Reward: Reward{
			AltitudeErrorScaleFt: 100,
			TrackErrorScaleDeg:   45,
			AltitudeWeight:       0.5,
			TrackWeight:          0.5,
			SideslipScaleDeg:     10,
			SideslipWeight:       0.25,
			RollRateScaleRadps:   0.5,
			RollRateWeight:       0.25,
			ControlEffortScale:   1,
			ControlEffortWeight:  0.1,
			SequentialUnlock:     0.1,
		},
		Termination: Termination{
			MinAltitudeFt: 1000,
			MaxAltitudeFt: 85000,
			MaxRollDeg:    85,
			MaxPitchDeg:   80,
		},
	}
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*EnvironmentConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks semantic constraints the schema cannot express. Failures
// here are fatal configuration errors raised before any episode runs.
func (c *EnvironmentConfig) Validate() error {
	switch c.Task {
	case TaskHeadingHold, TaskTurnHeading:
	default:
		return fmt.Errorf("config: unknown task %q", c.Task)
	}
	switch c.Shaping {
	case ShapingStandard, ShapingExtra, ShapingExtraSequential:
	default:
		return fmt.Errorf("config: unknown shaping mode %q", c.Shaping)
	}
	if c.SimHz <= 0 || c.AgentHz <= 0 {
		return fmt.Errorf("config: sim_hz and agent_hz must be positive")
	}
	if c.AgentHz > c.SimHz {
		return fmt.Errorf("config: agent_hz %d exceeds sim_hz %d", c.AgentHz, c.SimHz)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("config: max_steps must be positive, got %d", c.MaxSteps)
	}
	r := c.Reward
	for name, scale := range map[string]float64{
		"altitude_error_scale_ft": r.AltitudeErrorScaleFt,
		"track_error_scale_deg":   r.TrackErrorScaleDeg,
		"sideslip_scale_deg":      r.SideslipScaleDeg,
		"roll_rate_scale_radps":   r.RollRateScaleRadps,
		"control_effort_scale":    r.ControlEffortScale,
	} {
		if scale <= 0 {
			return fmt.Errorf("config: reward scale %s must be positive, got %g", name, scale)
		}
	}
	for name, w := range map[string]float64{
		"altitude_weight":       r.AltitudeWeight,
		"track_weight":          r.TrackWeight,
		"sideslip_weight":       r.SideslipWeight,
		"roll_rate_weight":      r.RollRateWeight,
		"control_effort_weight": r.ControlEffortWeight,
	} {
		if w < 0 {
			return fmt.Errorf("config: reward weight %s must be non-negative, got %g", name, w)
		}
	}
	if r.SequentialUnlock <= 0 {
		return fmt.Errorf("config: sequential_unlock_threshold must be positive, got %g", r.SequentialUnlock)
	}
	t := c.Termination
	if t.MinAltitudeFt >= t.MaxAltitudeFt {
		return fmt.Errorf("config: termination altitude band [%g, %g] is empty", t.MinAltitudeFt, t.MaxAltitudeFt)
	}
	if t.MaxRollDeg <= 0 || t.MaxPitchDeg <= 0 {
		return fmt.Errorf("config: attitude limits must be positive")
	}
	if c.TurnMinDeltaDeg < 0 || c.TurnMinDeltaDeg >= 180 {
		return fmt.Errorf("config: turn_min_delta_deg must be in [0, 180), got %g", c.TurnMinDeltaDeg)
	}
	return nil
}
