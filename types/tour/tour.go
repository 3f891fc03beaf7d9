package tour

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// TypeRecorded marks tours with a recorded GPS track.
// Planned routes carry no coordinate stream worth importing.
const TypeRecorded = "tour_recorded"

// Tour is one element of the source tour listing, kept as raw JSON
// so the indexed metadata document matches the source byte for byte.
// Fields of interest are probed lazily.
type Tour struct {
	raw []byte
}

func FromRaw(data []byte) Tour {
	t := Tour{}
	t.raw = append(t.raw, data...)
	return t
}

func (t Tour) Raw() []byte { return t.raw }

// MarshalJSON returns the source object unmodified.
func (t Tour) MarshalJSON() ([]byte, error) {
	if len(t.raw) == 0 {
		return []byte("null"), nil
	}
	return t.raw, nil
}

func (t *Tour) UnmarshalJSON(data []byte) error {
	t.raw = append(t.raw[:0], data...)
	return nil
}

func (t Tour) ID() int64 {
	return gjson.GetBytes(t.raw, "id").Int()
}

func (t Tour) Type() string {
	return gjson.GetBytes(t.raw, "type").String()
}

func (t Tour) Name() string {
	return gjson.GetBytes(t.raw, "name").String()
}

func (t Tour) Sport() string {
	return gjson.GetBytes(t.raw, "sport").String()
}

func (t Tour) IsRecorded() bool {
	return t.Type() == TypeRecorded
}

// dateLayouts are the source's ISO-8601 variants; zone offsets appear
// with and without a colon. Fractional seconds parse under either.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

// Date returns the tour's start time, offset preserved.
func (t Tour) Date() (time.Time, error) {
	s := gjson.GetBytes(t.raw, "date").String()
	if s == "" {
		return time.Time{}, fmt.Errorf("tour %d: missing date", t.ID())
	}
	var err error
	for _, layout := range dateLayouts {
		var d time.Time
		if d, err = time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("tour %d: bad date %q: %w", t.ID(), s, err)
}
