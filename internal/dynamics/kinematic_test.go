package dynamics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"flightgym/internal/aircraft"
	"flightgym/internal/props"
)

func newTestModel(t *testing.T) *Kinematic {
	t.Helper()
	k, err := NewKinematic(KinematicConfig{
		Aircraft:   aircraft.C172,
		DT:         1.0 / 60,
		AltitudeFt: 5000,
		HeadingDeg: 90,
		RNG:        rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("NewKinematic: %v", err)
	}
	return k
}

func TestInitialTrim(t *testing.T) {
	k := newTestModel(t)
	init := k.InitialState()
	if init[props.AltitudeFt] != 5000 {
		t.Errorf("initial altitude = %g, want 5000", init[props.AltitudeFt])
	}
	if init[props.HeadingDeg] != 90 {
		t.Errorf("initial heading = %g, want 90", init[props.HeadingDeg])
	}
	if init[props.ThrottlePos] != 0.8 {
		t.Errorf("initial throttle = %g, want 0.8", init[props.ThrottlePos])
	}
}

func TestAdvanceBadCommand(t *testing.T) {
	k := newTestModel(t)
	if err := k.Advance([]float64{0, 0}); !errors.Is(err, ErrBadCommand) {
		t.Errorf("expected ErrBadCommand, got %v", err)
	}
}

func TestNeutralControlsHoldCourse(t *testing.T) {
	k := newTestModel(t)
	for i := 0; i < 600; i++ {
		if err := k.Advance([]float64{0, 0, 0, 0.8}); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	alt, _ := k.Property(props.AltitudeFt)
	if math.Abs(alt-5000) > 50 {
		t.Errorf("altitude drifted to %g under neutral controls", alt)
	}
	hdg, _ := k.Property(props.HeadingDeg)
	if math.Abs(hdg-90) > 1 {
		t.Errorf("heading drifted to %g under neutral controls", hdg)
	}
}

func TestAileronRolls(t *testing.T) {
	k := newTestModel(t)
	for i := 0; i < 60; i++ {
		if err := k.Advance([]float64{0.5, 0, 0, 0.8}); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	roll, _ := k.Property(props.RollRad)
	if roll <= 0 {
		t.Errorf("expected positive roll after right aileron, got %g", roll)
	}
	// Bank must turn the aircraft.
	for i := 0; i < 300; i++ {
		if err := k.Advance([]float64{0, 0, 0, 0.8}); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	hdg, _ := k.Property(props.HeadingDeg)
	if hdg <= 90 || hdg > 270 {
		t.Errorf("expected right turn past heading 90, got %g", hdg)
	}
}

func TestElevatorClimbs(t *testing.T) {
	k := newTestModel(t)
	for i := 0; i < 300; i++ {
		if err := k.Advance([]float64{0, 0.3, 0, 0.8}); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	alt, _ := k.Property(props.AltitudeFt)
	if alt <= 5000 {
		t.Errorf("expected climb with up elevator, altitude = %g", alt)
	}
	pitch, _ := k.Property(props.PitchRad)
	if pitch <= 0 {
		t.Errorf("expected positive pitch, got %g", pitch)
	}
}

func TestResetRestoresTrim(t *testing.T) {
	k := newTestModel(t)
	for i := 0; i < 120; i++ {
		if err := k.Advance([]float64{1, 1, 1, 1}); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if err := k.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	for name, want := range k.InitialState() {
		got, err := k.Property(name)
		if err != nil {
			t.Fatalf("Property(%s): %v", name, err)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %g after reset, want %g", name, got, want)
		}
	}
}

func TestPropertyUnknown(t *testing.T) {
	k := newTestModel(t)
	if _, err := k.Property("nope"); !errors.Is(err, props.ErrUnknownProperty) {
		t.Errorf("expected ErrUnknownProperty, got %v", err)
	}
}
