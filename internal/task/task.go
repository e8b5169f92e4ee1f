// Package task composes the property catalog, target generation, reward
// shaping, and episode lifecycle into the reset/step contract the
// environment shell consumes.
package task

import (
	"fmt"
	"math"
	"math/rand"

	"flightgym/internal/config"
	"flightgym/internal/dynamics"
	"flightgym/internal/props"
)

// FixedThrottle is the constant throttle setting; throttle is not under
// agent control.
const FixedThrottle = 0.8

// ActionLen is the agent action size: aileron, elevator, rudder.
const ActionLen = 3

// StateVector is one validated snapshot of the aircraft state. Every field
// has been clipped to its catalog bounds. HeadingDeg is carried for reward
// computation but is not part of the observation.
type StateVector struct {
	AltitudeFt     float64
	PitchRad       float64
	RollRad        float64
	UFps           float64
	VFps           float64
	WFps           float64
	PRadps         float64
	QRadps         float64
	RRadps         float64
	AileronPos     float64
	ElevatorPos    float64
	RudderPos      float64
	ThrottlePos    float64
	AltitudeErrFt  float64
	SideslipDeg    float64
	TrackErrDeg    float64
	StepsRemaining float64

	HeadingDeg float64
}

// Observation returns the 17 observation components in catalog order.
func (s StateVector) Observation() []float64 {
	return []float64{
		s.AltitudeFt,
		s.PitchRad,
		s.RollRad,
		s.UFps,
		s.VFps,
		s.WFps,
		s.PRadps,
		s.QRadps,
		s.RRadps,
		s.AileronPos,
		s.ElevatorPos,
		s.RudderPos,
		s.ThrottlePos,
		s.AltitudeErrFt,
		s.SideslipDeg,
		s.TrackErrDeg,
		s.StepsRemaining,
	}
}

// Info carries per-step debugging data alongside the observation. The agent
// does not consume it.
type Info struct {
	Components    map[string]float64 `json:"components,omitempty"`
	Target        Target             `json:"target"`
	Phase         string             `json:"phase"`
	ActionClamped bool               `json:"action_clamped,omitempty"`
}

// StepResult is the five-tuple produced by each step.
type StepResult struct {
	Observation []float64
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        Info
}

// Task binds one shaping mode, one target policy, the property catalog, and
// the episode state machine around a flight dynamics handle. Task instances
// share nothing mutable; concurrent episodes need independent Task and
// dynamics pairs.
type Task struct {
	cfg       *config.EnvironmentConfig
	catalog   *props.Catalog
	fdm       dynamics.FlightDynamics
	targetGen TargetGenerator
	shaper    *Shaper
	subSteps  int

	ep     *EpisodeState
	prev   StateVector
	curr   StateVector
	target Target
}

// resettable is implemented by dynamics models that can reinitialize in
// place instead of requiring a fresh handle per episode.
type resettable interface {
	Reset() error
}

// New validates the configuration and builds a task around fdm. All
// configuration errors surface here, before any episode runs.
func New(cfg *config.EnvironmentConfig, fdm dynamics.FlightDynamics) (*Task, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := ParseShapingMode(cfg.Shaping)
	if err != nil {
		return nil, err
	}
	shaper, err := NewShaper(mode, cfg.Reward)
	if err != nil {
		return nil, err
	}
	catalog, err := props.FlightCatalog(cfg.MaxSteps)
	if err != nil {
		return nil, err
	}
	var gen TargetGenerator
	switch cfg.Task {
	case config.TaskHeadingHold:
		gen = HoldCurrent{}
	case config.TaskTurnHeading:
		gen = RandomTurn{MinDeltaDeg: cfg.TurnMinDeltaDeg}
	default:
		return nil, fmt.Errorf("task: unknown variant %q", cfg.Task)
	}
	return &Task{
		cfg:       cfg,
		catalog:   catalog,
		fdm:       fdm,
		targetGen: gen,
		shaper:    shaper,
		subSteps:  cfg.SimHz / cfg.AgentHz,
	}, nil
}

// Reset starts a fresh episode: reinitializes the dynamics if it supports
// that, re-derives the target, and pulls the first observation without
// advancing the simulation.
func (t *Task) Reset(rng *rand.Rand) ([]float64, Info, error) {
	if r, ok := t.fdm.(resettable); ok {
		if err := r.Reset(); err != nil {
			return nil, Info{}, fmt.Errorf("task: dynamics reset: %w", err)
		}
	}
	t.ep = NewEpisode(t.cfg.MaxSteps)
	t.target = t.targetGen.Generate(rng, t.fdm.InitialState())

	sv, err := t.pullState()
	if err != nil {
		return nil, Info{}, err
	}
	t.curr = sv
	t.prev = sv
	return sv.Observation(), Info{Target: t.target, Phase: t.ep.Phase.String()}, nil
}

// Step runs one agent interaction: clamp the action, advance the dynamics
// by the decimation factor, assemble the observation, shape the reward, and
// evaluate termination/truncation.
func (t *Task) Step(action []float64) (StepResult, error) {
	if t.ep == nil {
		return StepResult{}, fmt.Errorf("task: step before reset")
	}
	if t.ep.Absorbed() {
		return StepResult{}, fmt.Errorf("task: %w (phase %s)", ErrEpisodeEnded, t.ep.Phase)
	}
	if len(action) != ActionLen {
		return StepResult{}, fmt.Errorf("task: action must have %d components, got %d", ActionLen, len(action))
	}

	// Out-of-range commands are clamped, not rejected: the environment
	// contract stays robust to imperfect policies, and the clamp is
	// reported through info.
	clamped := false
	command := make([]float64, 0, dynamics.CommandLen)
	for _, a := range action {
		c := math.Min(math.Max(a, -1), 1)
		if c != a {
			clamped = true
		}
		command = append(command, c)
	}
	command = append(command, FixedThrottle)

	for i := 0; i < t.subSteps; i++ {
		if err := t.fdm.Advance(command); err != nil {
			// Simulator failures surface unchanged; retrying a physically
			// advanced step is not safe to hide from the caller.
			return StepResult{}, fmt.Errorf("task: dynamics advance: %w", err)
		}
	}

	t.ep.StepCount++
	sv, err := t.pullState()
	if err != nil {
		return StepResult{}, err
	}
	t.prev = t.curr
	t.curr = sv

	reward, components := t.shaper.Compute(t.prev, t.curr, t.target, t.ep)

	terminated := t.terminated(sv)
	truncated := false
	if terminated {
		t.ep.Phase = PhaseTerminated
	} else if t.ep.StepCount >= t.ep.MaxSteps {
		// Truncation is only evaluated when termination is false; the two
		// are never reported together.
		truncated = true
		t.ep.Phase = PhaseTruncated
	} else {
		t.ep.Phase = PhaseRunning
	}

	return StepResult{
		Observation: sv.Observation(),
		Reward:      reward,
		Terminated:  terminated,
		Truncated:   truncated,
		Info: Info{
			Components:    components,
			Target:        t.target,
			Phase:         t.ep.Phase.String(),
			ActionClamped: clamped,
		},
	}, nil
}

// pullState reads raw property values from the dynamics model, clips each
// through the catalog, and derives the error components.
func (t *Task) pullState() (StateVector, error) {
	read := func(name string) (float64, error) {
		raw, err := t.fdm.Property(name)
		if err != nil {
			return 0, fmt.Errorf("task: read %s: %w", name, err)
		}
		return t.catalog.Clip(name, raw)
	}

	var sv StateVector
	var err error
	fields := []struct {
		name string
		dst  *float64
	}{
		{props.AltitudeFt, &sv.AltitudeFt},
		{props.PitchRad, &sv.PitchRad},
		{props.RollRad, &sv.RollRad},
		{props.HeadingDeg, &sv.HeadingDeg},
		{props.UFps, &sv.UFps},
		{props.VFps, &sv.VFps},
		{props.WFps, &sv.WFps},
		{props.PRadps, &sv.PRadps},
		{props.QRadps, &sv.QRadps},
		{props.RRadps, &sv.RRadps},
		{props.AileronPos, &sv.AileronPos},
		{props.ElevatorPos, &sv.ElevatorPos},
		{props.RudderPos, &sv.RudderPos},
		{props.ThrottlePos, &sv.ThrottlePos},
		{props.SideslipDeg, &sv.SideslipDeg},
	}
	for _, f := range fields {
		if *f.dst, err = read(f.name); err != nil {
			return StateVector{}, err
		}
	}

	altErr := sv.AltitudeFt - t.target.AltitudeFt
	if sv.AltitudeErrFt, err = t.catalog.Clip(props.AltitudeErrFt, altErr); err != nil {
		return StateVector{}, err
	}
	trackErr := wrapDeg(sv.HeadingDeg - t.target.HeadingDeg)
	if sv.TrackErrDeg, err = t.catalog.Clip(props.TrackErrDeg, trackErr); err != nil {
		return StateVector{}, err
	}
	sv.StepsRemaining = float64(t.ep.StepsRemaining())
	return sv, nil
}

// terminated evaluates the failure bounds on altitude and attitude.
func (t *Task) terminated(sv StateVector) bool {
	lim := t.cfg.Termination
	if sv.AltitudeFt < lim.MinAltitudeFt || sv.AltitudeFt > lim.MaxAltitudeFt {
		return true
	}
	if math.Abs(sv.RollRad) > lim.MaxRollDeg*math.Pi/180 {
		return true
	}
	if math.Abs(sv.PitchRad) > lim.MaxPitchDeg*math.Pi/180 {
		return true
	}
	return false
}

// ObservationBounds returns the declared observation-space properties in
// order, so the shell can describe spaces without re-deriving them.
func (t *Task) ObservationBounds() []props.Property {
	return t.bounds(props.StateNames)
}

// ActionBounds returns the declared action-space properties in order.
func (t *Task) ActionBounds() []props.Property {
	return t.bounds(props.ActionNames)
}

func (t *Task) bounds(names []string) []props.Property {
	out := make([]props.Property, 0, len(names))
	for _, name := range names {
		p, err := t.catalog.Lookup(name)
		if err != nil {
			// Catalog construction registered every name; a miss here is a
			// programmer error.
			panic(err)
		}
		out = append(out, p)
	}
	return out
}

// Episode exposes the current episode state. Nil before the first reset.
func (t *Task) Episode() *EpisodeState { return t.ep }

// State exposes the latest validated state vector for display collaborators.
func (t *Task) State() StateVector { return t.curr }

// TargetValue exposes the current episode goal for display collaborators.
func (t *Task) TargetValue() Target { return t.target }

// Shaping reports the shaping mode the task was built with.
func (t *Task) Shaping() ShapingMode { return t.shaper.Mode() }
