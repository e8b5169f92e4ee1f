// Package agent provides scripted pilots for driving environment rollouts.
// They are baselines and smoke-test drivers, not learned policies.
package agent

import (
	"fmt"
	"math"
	"math/rand"
)

// Observation component indices the pilots rely on. These match the
// environment's observation ordering.
const (
	obsAltitudeErr = 13
	obsRoll        = 2
	obsTrackErr    = 15
)

// Agent maps an observation to an action vector.
type Agent interface {
	Act(obs []float64) []float64
}

// Random samples uniform actions in [-1, 1]. Useful as a worst-case policy
// for exercising termination paths.
type Random struct {
	RNG *rand.Rand
}

func (a *Random) Act(obs []float64) []float64 {
	return []float64{
		a.RNG.Float64()*2 - 1,
		a.RNG.Float64()*2 - 1,
		a.RNG.Float64()*2 - 1,
	}
}

// HeadingHold is a proportional controller: it banks toward the target
// heading and pitches against the altitude error. It flies well enough to
// keep full-budget episodes alive.
type HeadingHold struct {
	TrackGain    float64 // aileron per degree of track error
	RollDamping  float64 // aileron per radian of bank
	AltitudeGain float64 // elevator per foot of altitude error
}

// NewHeadingHold returns a controller with gains tuned for the kinematic
// reference model.
func NewHeadingHold() *HeadingHold {
	return &HeadingHold{
		TrackGain:    0.02,
		RollDamping:  0.8,
		AltitudeGain: 0.002,
	}
}

func (a *HeadingHold) Act(obs []float64) []float64 {
	trackErr := obs[obsTrackErr]
	roll := obs[obsRoll]
	altErr := obs[obsAltitudeErr]

	// Bank opposite the track error, damped by current bank angle.
	aileron := clamp(-a.TrackGain*trackErr - a.RollDamping*roll)
	// Pitch against the altitude error.
	elevator := clamp(-a.AltitudeGain * altErr)
	return []float64{aileron, elevator, 0}
}

// New builds an agent by name.
func New(name string, rng *rand.Rand) (Agent, error) {
	switch name {
	case "random":
		return &Random{RNG: rng}, nil
	case "heading-hold":
		return NewHeadingHold(), nil
	}
	return nil, fmt.Errorf("unknown agent %q", name)
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, -1), 1)
}
