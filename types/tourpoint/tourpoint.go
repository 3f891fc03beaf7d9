package tourpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"
)

// ErrMalformedSample marks a coordinate stream item that cannot be used.
var ErrMalformedSample = errors.New("malformed coordinate sample")

// Coordinate is one raw sample of a tour's coordinate stream:
// a time offset from the tour start plus position and altitude.
type Coordinate struct {
	T   int64   `json:"t"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	Alt float64 `json:"alt"`
}

// UnmarshalJSON is a custom unmarshaler for Coordinate.
// It asserts that all four fields are present and that the time offset
// is not negative. A plain struct decode would zero-fill missing fields
// instead of failing.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	aux := &struct {
		T   *int64   `json:"t"`
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
		Alt *float64 `json:"alt"`
	}{}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if aux.T == nil || aux.Lat == nil || aux.Lng == nil || aux.Alt == nil {
		return fmt.Errorf("%w: missing field", ErrMalformedSample)
	}
	if *aux.T < 0 {
		return fmt.Errorf("%w: negative time offset %d", ErrMalformedSample, *aux.T)
	}
	c.T, c.Lat, c.Lng, c.Alt = *aux.T, *aux.Lat, *aux.Lng, *aux.Alt
	return nil
}

func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// TourPoint is one enriched point of a tour's timeline, ready for indexing.
// Geopoint is the [lng, lat] pair Elasticsearch expects for a geo_point.
type TourPoint struct {
	TourID   int64     `json:"tour_id"`
	Index    int       `json:"index"`
	Date     time.Time `json:"date"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Geopoint orb.Point `json:"geopoint"`
	Distance float64   `json:"distance"` // meters since the previous point
	Speed    float64   `json:"speed"`    // m/s since the previous point
	Alt      float64   `json:"alt"`
	Sport    string    `json:"sport"`
}

// DocID returns the point's stable document id.
// Reimporting a tour addresses the same documents.
func (p TourPoint) DocID() string {
	return fmt.Sprintf("%d_%d", p.TourID, p.Index)
}
