package tourpoint

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dotcs/kmt2es/geo"
)

func testStart() time.Time {
	return time.Date(2021, 6, 6, 13, 36, 12, 0, time.UTC)
}

func testCoords() []Coordinate {
	return []Coordinate{
		{T: 0, Lat: 52.5200, Lng: 13.4050, Alt: 34},
		{T: 2000, Lat: 52.5210, Lng: 13.4060, Alt: 36},
		{T: 5000, Lat: 52.5230, Lng: 13.4080, Alt: 35},
	}
}

func TestTimeline(t *testing.T) {
	start := testStart()
	coords := testCoords()
	points, err := Timeline(coords, start, 42, "racebike")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != len(coords) {
		t.Fatalf("got %d points, want %d", len(points), len(coords))
	}

	p0 := points[0]
	if !p0.Date.Equal(start) {
		t.Errorf("got %v, want %v", p0.Date, start)
	}
	if p0.Distance != 0 || p0.Speed != 0 {
		t.Errorf("Expected zeroed first point, but got distance=%f speed=%f", p0.Distance, p0.Speed)
	}
	if p0.Index != 0 || p0.TourID != 42 || p0.Sport != "racebike" || p0.Alt != 34 {
		t.Errorf("got %+v", p0)
	}

	d01, err := geo.Distance(coords[0].Point(), coords[1].Point())
	if err != nil {
		t.Fatal(err)
	}
	p1 := points[1]
	if !p1.Date.Equal(start.Add(2 * time.Second)) {
		t.Errorf("got %v, want %v", p1.Date, start.Add(2*time.Second))
	}
	if p1.Distance != d01 {
		t.Errorf("got %f, want %f", p1.Distance, d01)
	}
	if want := d01 / 2; p1.Speed != want {
		t.Errorf("got %f, want %f", p1.Speed, want)
	}

	d12, err := geo.Distance(coords[1].Point(), coords[2].Point())
	if err != nil {
		t.Fatal(err)
	}
	p2 := points[2]
	if !p2.Date.Equal(start.Add(5 * time.Second)) {
		t.Errorf("got %v, want %v", p2.Date, start.Add(5*time.Second))
	}
	if want := d12 / 3; p2.Speed != want {
		t.Errorf("got %f, want %f", p2.Speed, want)
	}
	if p2.Index != 2 {
		t.Errorf("got index %d, want 2", p2.Index)
	}
	if p2.Geopoint[0] != p2.Lng || p2.Geopoint[1] != p2.Lat {
		t.Errorf("Expected geopoint [lng lat], but got %v", p2.Geopoint)
	}
}

func TestTimelineFractionalSeconds(t *testing.T) {
	start := testStart()
	coords := []Coordinate{
		{T: 0, Lat: 52.52, Lng: 13.405, Alt: 0},
		{T: 1500, Lat: 52.521, Lng: 13.406, Alt: 0},
	}
	points, err := Timeline(coords, start, 1, "jogging")
	if err != nil {
		t.Fatal(err)
	}
	if want := start.Add(1500 * time.Millisecond); !points[1].Date.Equal(want) {
		t.Errorf("got %v, want %v", points[1].Date, want)
	}
	if want := points[1].Distance / 1.5; points[1].Speed != want {
		t.Errorf("got %f, want %f", points[1].Speed, want)
	}
}

func TestTimelineZeroElapsed(t *testing.T) {
	start := testStart()
	coords := []Coordinate{
		{T: 1000, Lat: 52.52, Lng: 13.405, Alt: 34},
		{T: 1000, Lat: 52.53, Lng: 13.415, Alt: 34},
	}
	points, err := Timeline(coords, start, 1, "hike")
	if err != nil {
		t.Fatal(err)
	}
	if points[1].Distance == 0 {
		t.Error("Expected nonzero distance")
	}
	if points[1].Speed != 0 {
		t.Errorf("Expected 0 speed for zero elapsed time, but got %f", points[1].Speed)
	}
}

func TestTimelineStationary(t *testing.T) {
	start := testStart()
	coords := []Coordinate{
		{T: 0, Lat: 52.52, Lng: 13.405, Alt: 34},
		{T: 3000, Lat: 52.52, Lng: 13.405, Alt: 34},
	}
	points, err := Timeline(coords, start, 1, "hike")
	if err != nil {
		t.Fatal(err)
	}
	if points[1].Distance != 0 {
		t.Errorf("Expected exactly 0 distance, but got %f", points[1].Distance)
	}
	if points[1].Speed != 0 {
		t.Errorf("Expected 0 speed, but got %f", points[1].Speed)
	}
}

func TestTimelineInvalidCoordinate(t *testing.T) {
	start := testStart()
	coords := []Coordinate{
		{T: 0, Lat: 52.52, Lng: 13.405, Alt: 0},
		{T: 1000, Lat: 95.0, Lng: 13.405, Alt: 0},
	}
	points, err := Timeline(coords, start, 7, "hike")
	if !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("Expected ErrInvalidCoordinate, but got %v", err)
	}
	if points != nil {
		t.Errorf("Expected no partial timeline, but got %d points", len(points))
	}

	// A single out-of-range sample fails too.
	if _, err := Timeline([]Coordinate{{T: 0, Lat: -100, Lng: 0, Alt: 0}}, start, 7, "hike"); !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("Expected ErrInvalidCoordinate, but got %v", err)
	}
}

func TestTimelineEmpty(t *testing.T) {
	points, err := Timeline(nil, testStart(), 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 0 {
		t.Errorf("Expected no points, but got %d", len(points))
	}
}

func TestSummarize(t *testing.T) {
	points, err := Timeline(testCoords(), testStart(), 42, "racebike")
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(points)
	if s.Points != 3 {
		t.Errorf("got %d, want 3", s.Points)
	}
	if s.Duration != 5*time.Second {
		t.Errorf("got %v, want 5s", s.Duration)
	}
	if want := math.Round(points[1].Distance + points[2].Distance); s.Distance != want {
		t.Errorf("got %f, want %f", s.Distance, want)
	}
	if want := decimalToFixed(math.Max(points[1].Speed, points[2].Speed), 2); s.SpeedMax != want {
		t.Errorf("got %f, want %f", s.SpeedMax, want)
	}
	if s.AltMin != 34 || s.AltMax != 36 {
		t.Errorf("got alt %f..%f, want 34..36", s.AltMin, s.AltMax)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Points != 0 || s.Distance != 0 || s.Duration != 0 {
		t.Errorf("Expected zero summary, but got %+v", s)
	}
}
