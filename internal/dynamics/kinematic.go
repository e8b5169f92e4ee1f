package dynamics

import (
	"fmt"
	"math"
	"math/rand"

	"flightgym/internal/aircraft"
	"flightgym/internal/props"
)

// Kinematic is a point-mass flight model with first-order surface response
// and coordinated-turn heading dynamics. It is not an aerodynamic model; it
// exists so episodes can run without an external FDM process.
type Kinematic struct {
	ac  aircraft.Aircraft
	dt  float64
	rng *rand.Rand

	// turbulence scales small random attitude disturbances; 0 disables
	turbulence float64

	initial map[string]float64

	altitudeFt float64
	pitchRad   float64
	rollRad    float64
	headingDeg float64
	uFps       float64
	vFps       float64
	wFps       float64
	pRadps     float64
	qRadps     float64
	rRadps     float64
	aileron    float64
	elevator   float64
	rudder     float64
	throttle   float64
	betaDeg    float64
}

// Response limits for the reference model.
const (
	surfaceTau      = 0.15    // surface actuator time constant [s]
	maxRollRate     = 1.2     // [rad/s] at full aileron
	maxPitchRate    = 0.4     // [rad/s] at full elevator
	maxSideslip     = 12.0    // [deg] at full rudder
	sideslipTau     = 0.8     // sideslip decay time constant [s]
	gravityFps2     = 32.174  // [ft/s^2]
	pitchLimitRad   = 1.2     // kinematic pitch excursion limit
)

// KinematicConfig sets up a Kinematic model.
type KinematicConfig struct {
	Aircraft    aircraft.Aircraft
	DT          float64 // integration timestep [s]
	AltitudeFt  float64 // initial altitude
	HeadingDeg  float64 // initial heading, [0, 360)
	Turbulence  float64 // disturbance scale, 0..1
	RNG         *rand.Rand
}

// NewKinematic creates a trimmed cruise state for the given aircraft.
func NewKinematic(cfg KinematicConfig) (*Kinematic, error) {
	if cfg.DT <= 0 {
		return nil, fmt.Errorf("kinematic model: timestep must be positive, got %g", cfg.DT)
	}
	rng := cfg.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	k := &Kinematic{
		ac:         cfg.Aircraft,
		dt:         cfg.DT,
		rng:        rng,
		turbulence: cfg.Turbulence,
		altitudeFt: cfg.AltitudeFt,
		headingDeg: normHeading(cfg.HeadingDeg),
		uFps:       cfg.Aircraft.CruiseSpeedFPS(),
		throttle:   0.8,
	}
	k.initial = k.snapshot()
	return k, nil
}

// Advance applies [aileron, elevator, rudder, throttle] and integrates one
// timestep.
func (k *Kinematic) Advance(command []float64) error {
	if len(command) != CommandLen {
		return fmt.Errorf("%w: got %d", ErrBadCommand, len(command))
	}
	dt := k.dt

	// Surface actuators lag the commands.
	lag := math.Min(1, dt/surfaceTau)
	k.aileron += (command[0] - k.aileron) * lag
	k.elevator += (command[1] - k.elevator) * lag
	k.rudder += (command[2] - k.rudder) * lag
	k.throttle += (command[3] - k.throttle) * lag

	// Attitude rates follow surface deflection.
	k.pRadps = maxRollRate * k.aileron
	k.qRadps = maxPitchRate * k.elevator
	if k.turbulence > 0 {
		k.pRadps += k.rng.NormFloat64() * 0.05 * k.turbulence
		k.qRadps += k.rng.NormFloat64() * 0.02 * k.turbulence
	}
	k.rollRad = wrapPi(k.rollRad + k.pRadps*dt)
	k.pitchRad = clamp(k.pitchRad+k.qRadps*dt, -pitchLimitRad, pitchLimitRad)

	// Coordinated turn: yaw rate from bank angle at current speed.
	speed := math.Max(k.uFps, 1)
	k.rRadps = gravityFps2 / speed * math.Tan(k.rollRad)
	k.headingDeg = normHeading(k.headingDeg + k.rRadps*dt*180/math.Pi)

	// Sideslip builds with rudder and decays on its own.
	target := maxSideslip * k.rudder
	k.betaDeg += (target - k.betaDeg) * math.Min(1, dt/sideslipTau)

	// Speed tracks throttle around the trimmed cruise point.
	cruise := k.ac.CruiseSpeedFPS()
	k.uFps += (cruise*(k.throttle/0.8) - k.uFps) * math.Min(1, dt/4)
	k.vFps = k.uFps * math.Sin(k.betaDeg*math.Pi/180)
	k.wFps = -k.uFps * math.Sin(k.pitchRad)

	// Climb follows the flight path angle.
	k.altitudeFt += k.uFps * math.Sin(k.pitchRad) * dt
	return nil
}

// Property reports a named state property.
func (k *Kinematic) Property(name string) (float64, error) {
	switch name {
	case props.AltitudeFt:
		return k.altitudeFt, nil
	case props.PitchRad:
		return k.pitchRad, nil
	case props.RollRad:
		return k.rollRad, nil
	case props.HeadingDeg:
		return k.headingDeg, nil
	case props.UFps:
		return k.uFps, nil
	case props.VFps:
		return k.vFps, nil
	case props.WFps:
		return k.wFps, nil
	case props.PRadps:
		return k.pRadps, nil
	case props.QRadps:
		return k.qRadps, nil
	case props.RRadps:
		return k.rRadps, nil
	case props.AileronPos:
		return k.aileron, nil
	case props.ElevatorPos:
		return k.elevator, nil
	case props.RudderPos:
		return k.rudder, nil
	case props.ThrottlePos:
		return k.throttle, nil
	case props.SideslipDeg:
		return k.betaDeg, nil
	}
	return 0, fmt.Errorf("kinematic model: %w: %s", props.ErrUnknownProperty, name)
}

// InitialState reports the trimmed state the model started from.
func (k *Kinematic) InitialState() map[string]float64 {
	out := make(map[string]float64, len(k.initial))
	for name, v := range k.initial {
		out[name] = v
	}
	return out
}

// Reset returns the model to its initial trimmed state.
func (k *Kinematic) Reset() error {
	k.altitudeFt = k.initial[props.AltitudeFt]
	k.headingDeg = k.initial[props.HeadingDeg]
	k.uFps = k.initial[props.UFps]
	k.pitchRad = 0
	k.rollRad = 0
	k.vFps = 0
	k.wFps = 0
	k.pRadps = 0
	k.qRadps = 0
	k.rRadps = 0
	k.aileron = 0
	k.elevator = 0
	k.rudder = 0
	k.throttle = 0.8
	k.betaDeg = 0
	return nil
}

func (k *Kinematic) snapshot() map[string]float64 {
	return map[string]float64{
		props.AltitudeFt:  k.altitudeFt,
		props.PitchRad:    k.pitchRad,
		props.RollRad:     k.rollRad,
		props.HeadingDeg:  k.headingDeg,
		props.UFps:        k.uFps,
		props.VFps:        k.vFps,
		props.WFps:        k.wFps,
		props.PRadps:      k.pRadps,
		props.QRadps:      k.qRadps,
		props.RRadps:      k.rRadps,
		props.AileronPos:  k.aileron,
		props.ElevatorPos: k.elevator,
		props.RudderPos:   k.rudder,
		props.ThrottlePos: k.throttle,
		props.SideslipDeg: k.betaDeg,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// wrapPi wraps an angle in radians to [-pi, pi].
func wrapPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// normHeading wraps a heading in degrees to [0, 360).
func normHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
