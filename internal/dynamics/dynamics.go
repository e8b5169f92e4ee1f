// Package dynamics defines the flight dynamics collaborator consumed by the
// task layer, plus an in-process kinematic reference model.
//
// The task layer treats the flight dynamics model as a black box: it sends a
// control-surface command vector, advances one timestep, and reads named
// state properties back. An external FDM bridge (e.g. JSBSim over a socket)
// satisfies the same interface.
package dynamics

import "errors"

// CommandLen is the length of the command vector passed to Advance:
// aileron, elevator, rudder, throttle.
const CommandLen = 4

// ErrBadCommand reports a malformed command vector.
var ErrBadCommand = errors.New("command vector must have 4 components")

// FlightDynamics is the external simulator collaborator.
type FlightDynamics interface {
	// Advance applies the command vector and integrates one timestep.
	Advance(command []float64) error

	// Property reports the current value of a named state property.
	Property(name string) (float64, error)

	// InitialState reports the state the model was initialized with,
	// keyed by property name.
	InitialState() map[string]float64
}
