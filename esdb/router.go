package esdb

import (
	"fmt"
	"strings"
	"time"
)

// Template is an index name pattern with {year}, {month} and {day}
// placeholders, substituted zero-padded to two digits.
type Template string

func (t Template) Format(year, month, day int) string {
	s := strings.ReplaceAll(string(t), "{year}", fmt.Sprintf("%02d", year))
	s = strings.ReplaceAll(s, "{month}", fmt.Sprintf("%02d", month))
	s = strings.ReplaceAll(s, "{day}", fmt.Sprintf("%02d", day))
	return s
}

// Router names the target indices for a tour's documents.
// Both indices bucket by the tour's start date, so all points of a tour
// land beside their tour even when the track crosses a bucket boundary.
type Router struct {
	Tour        Template
	Coordinates Template
}

func (r Router) TourIndex(date time.Time) string {
	return r.Tour.Format(date.Year(), int(date.Month()), date.Day())
}

func (r Router) CoordinatesIndex(date time.Time) string {
	return r.Coordinates.Format(date.Year(), int(date.Month()), date.Day())
}
