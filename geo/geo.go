package geo

import (
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// EarthRadiusMeters is the mean earth radius.
const EarthRadiusMeters = 6371000.0

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ValidatePoint checks that p holds a plausible WGS84 coordinate.
func ValidatePoint(p orb.Point) error {
	if lat := p.Lat(); lat < -90 || lat > 90 {
		return fmt.Errorf("%w: lat=%.14f", ErrInvalidCoordinate, lat)
	}
	if lng := p.Lon(); lng < -180 || lng > 180 {
		return fmt.Errorf("%w: lng=%.14f", ErrInvalidCoordinate, lng)
	}
	return nil
}

// Distance returns the great-circle distance between a and b in meters,
// haversine on a sphere of EarthRadiusMeters.
func Distance(a, b orb.Point) (float64, error) {
	if err := ValidatePoint(a); err != nil {
		return 0, err
	}
	if err := ValidatePoint(b); err != nil {
		return 0, err
	}
	lla := s2.LatLngFromDegrees(a.Lat(), a.Lon())
	llb := s2.LatLngFromDegrees(b.Lat(), b.Lon())
	return lla.Distance(llb).Radians() * EarthRadiusMeters, nil
}
