package props

import (
	"errors"
	"testing"
)

func TestRegisterDuplicate(t *testing.T) {
	c := NewCatalog()
	p := Property{Name: "test/value", Min: 0, Max: 1}
	if err := c.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := c.Register(p); !errors.Is(err, ErrDuplicateProperty) {
		t.Errorf("expected ErrDuplicateProperty, got %v", err)
	}
}

func TestRegisterBadBounds(t *testing.T) {
	c := NewCatalog()
	err := c.Register(Property{Name: "test/bad", Min: 2, Max: 1})
	if !errors.Is(err, ErrBadBounds) {
		t.Errorf("expected ErrBadBounds, got %v", err)
	}
}

func TestBoundsOfUnknown(t *testing.T) {
	c := NewCatalog()
	if _, _, err := c.BoundsOf("test/missing"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("expected ErrUnknownProperty, got %v", err)
	}
}

func TestClipAltitude(t *testing.T) {
	c := MustFlightCatalog(300)
	// Simulator reporting 90000 ft must clip to the 85000 ft ceiling.
	got, err := c.Clip(AltitudeFt, 90000)
	if err != nil {
		t.Fatalf("Clip: %v", err)
	}
	if got != 85000 {
		t.Errorf("Clip(altitude, 90000) = %g, want 85000", got)
	}
}

func TestClipIdempotent(t *testing.T) {
	c := MustFlightCatalog(300)
	for _, v := range []float64{-99999, -1400, 0, 5000, 85000, 90000} {
		once, err := c.Clip(AltitudeFt, v)
		if err != nil {
			t.Fatalf("Clip: %v", err)
		}
		twice, err := c.Clip(AltitudeFt, once)
		if err != nil {
			t.Fatalf("Clip: %v", err)
		}
		if once != twice {
			t.Errorf("clip not idempotent for %g: %g != %g", v, once, twice)
		}
		min, max, _ := c.BoundsOf(AltitudeFt)
		if once < min || once > max {
			t.Errorf("clipped value %g outside [%g, %g]", once, min, max)
		}
	}
}

func TestValidateStrict(t *testing.T) {
	c := MustFlightCatalog(300)
	if err := c.Validate(AltitudeFt, 5000); err != nil {
		t.Errorf("Validate(5000): %v", err)
	}
	if err := c.Validate(AltitudeFt, 90000); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestFlightCatalogComplete(t *testing.T) {
	c := MustFlightCatalog(300)
	for _, name := range StateNames {
		if _, err := c.Lookup(name); err != nil {
			t.Errorf("state property %s not registered: %v", name, err)
		}
	}
	for _, name := range ActionNames {
		min, max, err := c.BoundsOf(name)
		if err != nil {
			t.Errorf("action property %s not registered: %v", name, err)
			continue
		}
		if min != -1 || max != 1 {
			t.Errorf("action %s bounds = [%g, %g], want [-1, 1]", name, min, max)
		}
	}
	if len(StateNames) != 17 {
		t.Errorf("expected 17 state components, got %d", len(StateNames))
	}
}
