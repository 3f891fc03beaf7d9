package tourpoint

import (
	"fmt"
	"time"

	"github.com/dotcs/kmt2es/geo"
)

// Timeline enriches a tour's raw coordinate stream into indexable points.
// Offsets become absolute dates on the tour's start time, and every point
// after the first gets the distance and speed relative to its predecessor.
// Output preserves input order and length. An invalid coordinate anywhere
// fails the whole tour; no partial timeline is returned.
func Timeline(coords []Coordinate, start time.Time, tourID int64, sport string) ([]TourPoint, error) {
	points := make([]TourPoint, 0, len(coords))
	for i, c := range coords {
		// Offsets count milliseconds: t*1000 microseconds here, t/1000
		// seconds in the speed denominator below.
		p := TourPoint{
			TourID:   tourID,
			Index:    i,
			Date:     start.Add(time.Duration(c.T) * time.Microsecond * 1000),
			Lat:      c.Lat,
			Lng:      c.Lng,
			Geopoint: c.Point(),
			Alt:      c.Alt,
			Sport:    sport,
		}
		if i == 0 {
			if err := geo.ValidatePoint(c.Point()); err != nil {
				return nil, fmt.Errorf("tour %d sample %d: %w", tourID, i, err)
			}
		} else {
			prev := coords[i-1]
			meters, err := geo.Distance(prev.Point(), c.Point())
			if err != nil {
				return nil, fmt.Errorf("tour %d sample %d: %w", tourID, i, err)
			}
			p.Distance = meters
			if seconds := float64(c.T-prev.T) / 1000; seconds != 0 {
				p.Speed = meters / seconds
			}
		}
		points = append(points, p)
	}
	return points, nil
}
