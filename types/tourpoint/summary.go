package tourpoint

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// Summary aggregates a tour's enriched points for reporting.
type Summary struct {
	Points    int
	Duration  time.Duration
	Distance  float64
	SpeedMean float64
	SpeedMax  float64
	AltMin    float64
	AltMax    float64
}

func Summarize(points []TourPoint) Summary {
	s := Summary{Points: len(points)}
	if len(points) == 0 {
		return s
	}

	alts := make([]float64, 0, len(points))
	speeds := make([]float64, 0, len(points)-1)
	for i, p := range points {
		s.Distance += p.Distance
		alts = append(alts, p.Alt)
		if i > 0 {
			speeds = append(speeds, p.Speed)
		}
	}
	s.Duration = points[len(points)-1].Date.Sub(points[0].Date)

	statsMustFloat := func(fn func() (float64, error), def float64) float64 {
		out, err := fn()
		if err != nil {
			return def
		}
		return out
	}

	speedData := stats.Float64Data(speeds)
	altData := stats.Float64Data(alts)
	s.Distance = math.Round(s.Distance)
	s.SpeedMean = decimalToFixed(statsMustFloat(speedData.Mean, 0), 2)
	s.SpeedMax = decimalToFixed(statsMustFloat(speedData.Max, 0), 2)
	s.AltMin = decimalToFixed(statsMustFloat(altData.Min, 0), 0)
	s.AltMax = decimalToFixed(statsMustFloat(altData.Max, 0), 0)
	return s
}

func round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func decimalToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(round(num*output)) / output
}
