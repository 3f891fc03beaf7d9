package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestDistanceOneDegreeLatitude(t *testing.T) {
	a := orb.Point{0, 0}
	b := orb.Point{0, 1}
	got, err := Distance(a, b)
	if err != nil {
		t.Fatal(err)
	}
	// One degree of latitude on the mean sphere.
	want := EarthRadiusMeters * math.Pi / 180
	if math.Abs(got-want) > 0.01 {
		t.Errorf("got %f, want %f", got, want)
	}

	back, err := Distance(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if back != got {
		t.Errorf("Expected symmetric distance, got %f and %f", got, back)
	}
}

func TestDistanceSamePoint(t *testing.T) {
	p := orb.Point{13.405, 52.52}
	got, err := Distance(p, p)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Expected exactly 0, but got %v", got)
	}
}

func TestDistanceBerlinHamburg(t *testing.T) {
	berlin := orb.Point{13.405, 52.52}
	hamburg := orb.Point{9.9937, 53.5511}
	got, err := Distance(berlin, hamburg)
	if err != nil {
		t.Fatal(err)
	}
	if got < 250_000 || got > 260_000 {
		t.Errorf("Expected roughly 255km, but got %fm", got)
	}
}

func TestDistanceInvalidCoordinate(t *testing.T) {
	bad := []orb.Point{
		{0, 90.1},
		{0, -91},
		{180.5, 0},
		{-181, 0},
	}
	ok := orb.Point{0, 0}
	for _, p := range bad {
		if _, err := Distance(p, ok); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Expected ErrInvalidCoordinate for %v, but got %v", p, err)
		}
		if _, err := Distance(ok, p); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Expected ErrInvalidCoordinate for %v, but got %v", p, err)
		}
	}
}

func TestValidatePointBoundary(t *testing.T) {
	edges := []orb.Point{
		{180, 90},
		{-180, -90},
		{0, 0},
	}
	for _, p := range edges {
		if err := ValidatePoint(p); err != nil {
			t.Errorf("Expected boundary point %v to validate, but got %v", p, err)
		}
	}
}
