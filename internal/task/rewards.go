package task

import (
	"fmt"
	"math"

	"flightgym/internal/config"
)

// ShapingMode selects the reward algebra. Fixed for the lifetime of a Task.
type ShapingMode int

const (
	// ShapingStandard rewards only negative altitude and track error.
	ShapingStandard ShapingMode = iota
	// ShapingExtra adds sideslip, roll-rate, and control-effort penalties.
	ShapingExtra
	// ShapingExtraSequential gates the altitude term behind a track-error
	// threshold, a curriculum-style decomposition of the task.
	ShapingExtraSequential
)

func (m ShapingMode) String() string {
	switch m {
	case ShapingStandard:
		return config.ShapingStandard
	case ShapingExtra:
		return config.ShapingExtra
	case ShapingExtraSequential:
		return config.ShapingExtraSequential
	}
	return fmt.Sprintf("shaping(%d)", int(m))
}

// ParseShapingMode maps a config string to a ShapingMode.
func ParseShapingMode(s string) (ShapingMode, error) {
	switch s {
	case config.ShapingStandard:
		return ShapingStandard, nil
	case config.ShapingExtra:
		return ShapingExtra, nil
	case config.ShapingExtraSequential:
		return ShapingExtraSequential, nil
	}
	return 0, fmt.Errorf("unknown shaping mode %q", s)
}

// Reward component keys in the info breakdown.
const (
	CompAltitudeError = "altitude_error"
	CompTrackError    = "track_error"
	CompSideslip      = "sideslip"
	CompRollRate      = "roll_rate"
	CompControlEffort = "control_effort"
	CompAltitudeGate  = "altitude_gate"
)

// Shaper computes the scalar reward and its component breakdown. It is a
// pure function of (prev, curr, target); the only episode-scoped state is
// the sequential unlock flag, which lives in EpisodeState.
type Shaper struct {
	mode ShapingMode
	cfg  config.Reward
}

// NewShaper validates the weight/scale configuration up front. Zero or
// negative scales are configuration errors.
func NewShaper(mode ShapingMode, cfg config.Reward) (*Shaper, error) {
	for name, scale := range map[string]float64{
		"altitude error": cfg.AltitudeErrorScaleFt,
		"track error":    cfg.TrackErrorScaleDeg,
		"sideslip":       cfg.SideslipScaleDeg,
		"roll rate":      cfg.RollRateScaleRadps,
		"control effort": cfg.ControlEffortScale,
	} {
		if scale <= 0 {
			return nil, fmt.Errorf("shaper: %s scale must be positive, got %g", name, scale)
		}
	}
	if mode == ShapingExtraSequential && cfg.SequentialUnlock <= 0 {
		return nil, fmt.Errorf("shaper: sequential unlock threshold must be positive, got %g", cfg.SequentialUnlock)
	}
	return &Shaper{mode: mode, cfg: cfg}, nil
}

// Mode returns the shaping mode the shaper was built with.
func (s *Shaper) Mode() ShapingMode { return s.mode }

// Compute maps the state transition into a reward. ep carries the sequential
// stage flag; it is only written in ShapingExtraSequential mode, and only
// ever from locked to unlocked.
func (s *Shaper) Compute(prev, curr StateVector, tgt Target, ep *EpisodeState) (float64, map[string]float64) {
	altNorm := math.Abs(curr.AltitudeFt-tgt.AltitudeFt) / s.cfg.AltitudeErrorScaleFt
	trackNorm := AngularDistanceDeg(curr.HeadingDeg, tgt.HeadingDeg) / s.cfg.TrackErrorScaleDeg
	effortNorm := surfaceDelta(prev, curr) / s.cfg.ControlEffortScale
	sideslipNorm := math.Abs(curr.SideslipDeg) / s.cfg.SideslipScaleDeg
	rollRateNorm := math.Abs(curr.PRadps) / s.cfg.RollRateScaleRadps

	components := map[string]float64{
		CompAltitudeError: -s.cfg.AltitudeWeight * altNorm,
		CompTrackError:    -s.cfg.TrackWeight * trackNorm,
	}

	switch s.mode {
	case ShapingStandard:
		// Two terms only.
	case ShapingExtra, ShapingExtraSequential:
		components[CompSideslip] = -s.cfg.SideslipWeight * sideslipNorm
		components[CompRollRate] = -s.cfg.RollRateWeight * rollRateNorm
		components[CompControlEffort] = -s.cfg.ControlEffortWeight * effortNorm
	}

	if s.mode == ShapingExtraSequential {
		// The unlock is one-way: a later regression in track error does not
		// re-lock the altitude stage.
		if !ep.AltitudeStageUnlocked && trackNorm <= s.cfg.SequentialUnlock {
			ep.AltitudeStageUnlocked = true
		}
		if ep.AltitudeStageUnlocked {
			components[CompAltitudeGate] = 1
		} else {
			components[CompAltitudeGate] = 0
			delete(components, CompAltitudeError)
		}
	}

	reward := 0.0
	for key, v := range components {
		if key == CompAltitudeGate {
			continue
		}
		reward += v
	}
	return reward, components
}

// AngularDistanceDeg returns the unsigned angular distance between two
// headings in degrees, in [0, 180]. Wraparound is handled: the distance
// between 179 and -179 is 2, not 358.
func AngularDistanceDeg(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// surfaceDelta is the mean absolute control-surface movement between two
// states, penalizing abrupt actuation.
func surfaceDelta(prev, curr StateVector) float64 {
	return (math.Abs(curr.AileronPos-prev.AileronPos) +
		math.Abs(curr.ElevatorPos-prev.ElevatorPos) +
		math.Abs(curr.RudderPos-prev.RudderPos)) / 3
}
