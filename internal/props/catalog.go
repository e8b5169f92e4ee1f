package props

import (
	"errors"
	"fmt"
	"math"
)

// Catalog errors. Registration and lookup failures are programmer errors in
// catalog setup; ErrOutOfRange is returned only by the strict validation path.
var (
	ErrBadBounds         = errors.New("property min exceeds max")
	ErrDuplicateProperty = errors.New("property already registered")
	ErrUnknownProperty   = errors.New("unknown property")
	ErrOutOfRange        = errors.New("value out of property range")
)

// Catalog is a registry of named properties. It is populated once during
// setup and read-only afterwards, so it can be shared across task instances
// without locking.
type Catalog struct {
	byName map[string]Property
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]Property)}
}

// Register adds a property to the catalog.
func (c *Catalog) Register(p Property) error {
	if p.Min > p.Max {
		return fmt.Errorf("%w: %s (%g > %g)", ErrBadBounds, p.Name, p.Min, p.Max)
	}
	if _, ok := c.byName[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProperty, p.Name)
	}
	c.byName[p.Name] = p
	return nil
}

// Lookup returns the property registered under name.
func (c *Catalog) Lookup(name string) (Property, error) {
	p, ok := c.byName[name]
	if !ok {
		return Property{}, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return p, nil
}

// BoundsOf returns the declared bounds of a property.
func (c *Catalog) BoundsOf(name string) (min, max float64, err error) {
	p, err := c.Lookup(name)
	if err != nil {
		return 0, 0, err
	}
	return p.Min, p.Max, nil
}

// Clip returns v clamped to the property's bounds. This is the observation
// path: simulator readings slightly outside bounds are clamped, not rejected.
func (c *Catalog) Clip(name string, v float64) (float64, error) {
	p, err := c.Lookup(name)
	if err != nil {
		return 0, err
	}
	return p.Clip(v), nil
}

// Validate returns ErrOutOfRange if v lies outside the property's bounds.
// Used to sanity-check simulator output in tests; production observation
// assembly uses Clip instead.
func (c *Catalog) Validate(name string, v float64) error {
	p, err := c.Lookup(name)
	if err != nil {
		return err
	}
	if !p.Contains(v) {
		return fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrOutOfRange, name, v, p.Min, p.Max)
	}
	return nil
}

// FlightCatalog builds the catalog of fixed-wing state and action properties.
// maxSteps bounds the steps-remaining component.
func FlightCatalog(maxSteps int) (*Catalog, error) {
	c := NewCatalog()
	all := []Property{
		{AltitudeFt, "altitude above sea level [ft]", -1400, 85000},
		{PitchRad, "pitch attitude [rad]", -math.Pi / 2, math.Pi / 2},
		{RollRad, "roll attitude [rad]", -math.Pi, math.Pi},
		{HeadingDeg, "true heading [deg]", 0, 360},
		{UFps, "body frame x-axis velocity [ft/s]", -2200, 2200},
		{VFps, "body frame y-axis velocity [ft/s]", -2200, 2200},
		{WFps, "body frame z-axis velocity [ft/s]", -2200, 2200},
		{PRadps, "roll rate [rad/s]", -2 * math.Pi, 2 * math.Pi},
		{QRadps, "pitch rate [rad/s]", -2 * math.Pi, 2 * math.Pi},
		{RRadps, "yaw rate [rad/s]", -2 * math.Pi, 2 * math.Pi},
		{AileronPos, "aileron position, normalized", -1, 1},
		{ElevatorPos, "elevator position, normalized", -1, 1},
		{RudderPos, "rudder position, normalized", -1, 1},
		{ThrottlePos, "throttle position, normalized", 0, 1},
		{AltitudeErrFt, "altitude error to target [ft]", -85000, 85000},
		{SideslipDeg, "sideslip angle [deg]", -180, 180},
		{TrackErrDeg, "track error to target heading [deg]", -180, 180},
		{StepsRemaining, "steps remaining in episode", 0, float64(maxSteps)},
		{AileronCmd, "aileron command, normalized", -1, 1},
		{ElevatorCmd, "elevator command, normalized", -1, 1},
		{RudderCmd, "rudder command, normalized", -1, 1},
	}
	for _, p := range all {
		if err := c.Register(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustFlightCatalog is FlightCatalog for static initialization.
func MustFlightCatalog(maxSteps int) *Catalog {
	c, err := FlightCatalog(maxSteps)
	if err != nil {
		panic(err)
	}
	return c
}
