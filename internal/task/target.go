package task

import (
	"math"
	"math/rand"

	"flightgym/internal/props"
)

// Target is the per-episode goal condition. Heading is wrapped to
// [-180, 180); altitude is feet above sea level.
type Target struct {
	HeadingDeg float64 `json:"heading_deg"`
	AltitudeFt float64 `json:"altitude_ft"`
}

// TargetGenerator derives the episode goal from the aircraft's initial state.
// Implementations must be deterministic given the same random source.
type TargetGenerator interface {
	Generate(rng *rand.Rand, initial map[string]float64) Target
}

// HoldCurrent targets the initial heading and altitude: the task is to keep
// flying straight and level.
type HoldCurrent struct{}

func (HoldCurrent) Generate(_ *rand.Rand, initial map[string]float64) Target {
	return Target{
		HeadingDeg: wrapDeg(initial[props.HeadingDeg]),
		AltitudeFt: initial[props.AltitudeFt],
	}
}

// RandomTurn targets a uniformly sampled heading at least MinDeltaDeg away
// from the initial heading, so the episode always requires a real turn.
type RandomTurn struct {
	MinDeltaDeg float64
}

func (g RandomTurn) Generate(rng *rand.Rand, initial map[string]float64) Target {
	// Sample the turn delta directly from the allowed arc. This excludes the
	// (-min, min) neighborhood by construction instead of rejection sampling.
	span := 360 - 2*g.MinDeltaDeg
	delta := g.MinDeltaDeg + rng.Float64()*span
	return Target{
		HeadingDeg: wrapDeg(initial[props.HeadingDeg] + delta),
		AltitudeFt: initial[props.AltitudeFt],
	}
}

// wrapDeg wraps an angle in degrees to [-180, 180).
func wrapDeg(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}
