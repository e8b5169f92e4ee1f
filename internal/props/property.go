// Property definitions for observation and action components
package props

import "math"

// Property describes a named physical quantity with a declared valid range.
type Property struct {
	Name        string
	Description string
	Min         float64
	Max         float64
}

// Clip returns v clamped to the property's bounds.
func (p Property) Clip(v float64) float64 {
	return math.Min(math.Max(v, p.Min), p.Max)
}

// Contains reports whether v lies within the property's bounds.
func (p Property) Contains(v float64) bool {
	return v >= p.Min && v <= p.Max
}

// State property names. Observation order matches StateNames.
const (
	AltitudeFt     = "position/h-sl-ft"
	PitchRad       = "attitude/pitch-rad"
	RollRad        = "attitude/roll-rad"
	HeadingDeg     = "attitude/psi-deg"
	UFps           = "velocities/u-fps"
	VFps           = "velocities/v-fps"
	WFps           = "velocities/w-fps"
	PRadps         = "velocities/p-rad_sec"
	QRadps         = "velocities/q-rad_sec"
	RRadps         = "velocities/r-rad_sec"
	AileronPos     = "fcs/left-aileron-pos-norm"
	ElevatorPos    = "fcs/elevator-pos-norm"
	RudderPos      = "fcs/rudder-pos-norm"
	ThrottlePos    = "fcs/throttle-pos-norm"
	AltitudeErrFt  = "error/altitude-error-ft"
	SideslipDeg    = "aero/beta-deg"
	TrackErrDeg    = "error/track-error-deg"
	StepsRemaining = "info/steps-remaining"
)

// Action property names.
const (
	AileronCmd  = "fcs/aileron-cmd-norm"
	ElevatorCmd = "fcs/elevator-cmd-norm"
	RudderCmd   = "fcs/rudder-cmd-norm"
)

// StateNames lists the 17 observation components in order.
var StateNames = []string{
	AltitudeFt,
	PitchRad,
	RollRad,
	UFps,
	VFps,
	WFps,
	PRadps,
	QRadps,
	RRadps,
	AileronPos,
	ElevatorPos,
	RudderPos,
	ThrottlePos,
	AltitudeErrFt,
	SideslipDeg,
	TrackErrDeg,
	StepsRemaining,
}

// ActionNames lists the 3 action components in order.
var ActionNames = []string{
	AileronCmd,
	ElevatorCmd,
	RudderCmd,
}
