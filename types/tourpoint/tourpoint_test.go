package tourpoint

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func TestCoordinateUnmarshal(t *testing.T) {
	var c Coordinate
	if err := json.Unmarshal([]byte(`{"lat":52.52,"lng":13.405,"alt":34.1,"t":2000}`), &c); err != nil {
		t.Fatal(err)
	}
	if c.T != 2000 || c.Lat != 52.52 || c.Lng != 13.405 || c.Alt != 34.1 {
		t.Errorf("got %+v", c)
	}
	if p := c.Point(); p[0] != c.Lng || p[1] != c.Lat {
		t.Errorf("Expected [lng lat] point, but got %v", p)
	}
}

func TestCoordinateUnmarshalMalformed(t *testing.T) {
	malformed := []string{
		`{"lat":52.52,"lng":13.405,"alt":34.1}`,
		`{"t":0,"lng":13.405,"alt":34.1}`,
		`{"t":0,"lat":52.52,"alt":34.1}`,
		`{"t":0,"lat":52.52,"lng":13.405}`,
		`{"t":-5,"lat":52.52,"lng":13.405,"alt":34.1}`,
	}
	for _, in := range malformed {
		var c Coordinate
		err := json.Unmarshal([]byte(in), &c)
		if !errors.Is(err, ErrMalformedSample) {
			t.Errorf("Expected ErrMalformedSample for %s, but got %v", in, err)
		}
	}
}

func TestCoordinateUnmarshalList(t *testing.T) {
	// One malformed item fails the whole stream.
	data := []byte(`[{"t":0,"lat":1,"lng":2,"alt":3},{"t":1000,"lat":1,"lng":2}]`)
	var coords []Coordinate
	err := json.Unmarshal(data, &coords)
	if !errors.Is(err, ErrMalformedSample) {
		t.Errorf("Expected ErrMalformedSample, but got %v", err)
	}
}

func TestTourPointDocID(t *testing.T) {
	p := TourPoint{TourID: 103051515, Index: 12}
	if got, want := p.DocID(), "103051515_12"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	first := TourPoint{TourID: 1, Index: 0}
	if got, want := first.DocID(), "1_0"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTourPointGeopointJSON(t *testing.T) {
	p := TourPoint{Lat: 52.52, Lng: 13.405, Geopoint: orb.Point{13.405, 52.52}}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"geopoint":[13.405,52.52]`) {
		t.Errorf("Expected geopoint as [lng,lat] array, but got %s", out)
	}
}
