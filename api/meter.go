package api

import (
	"log/slog"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/metrics"
)

// importMeter tracks run progress and logs it at most once per interval.
// Marks come from the import loop itself, no background ticker; the
// pipeline is strictly sequential.
type importMeter struct {
	interval   time.Duration
	started    time.Time
	lastLog    time.Time
	logger     *slog.Logger
	reg        metrics.Registry
	tours      metrics.Counter
	points     metrics.Counter
	pointMeter metrics.Meter
}

func newImportMeter(logger *slog.Logger, interval time.Duration) *importMeter {
	// Enable metrics package.
	// Won't work without this global setting.
	metrics.Enabled = true

	reg := metrics.NewRegistry()
	m := &importMeter{
		interval:   interval,
		started:    time.Now(),
		lastLog:    time.Now(),
		logger:     logger,
		reg:        reg,
		tours:      metrics.NewCounter(),
		points:     metrics.NewCounter(),
		pointMeter: metrics.NewMeter(),
	}
	if err := reg.Register("tours.count", m.tours); err != nil {
		panic(err)
	}
	if err := reg.Register("points.count", m.points); err != nil {
		panic(err)
	}
	if err := reg.Register("points.meter", m.pointMeter); err != nil {
		panic(err)
	}
	return m
}

func (m *importMeter) mark(points int) {
	m.tours.Inc(1)
	m.points.Inc(int64(points))
	m.pointMeter.Mark(int64(points))
	if time.Since(m.lastLog) < m.interval {
		return
	}
	m.lastLog = time.Now()
	m.log()
}

func (m *importMeter) log() {
	snap := m.pointMeter.Snapshot()
	m.logger.Info("Importing",
		"tours", humanize.Comma(m.tours.Snapshot().Count()),
		"points", humanize.Comma(snap.Count()),
		"pps", math.Round(snap.Rate1()),
		"running", time.Since(m.started).Round(time.Second))
}

func (m *importMeter) stop() {
	if m == nil {
		return
	}
	m.pointMeter.Stop()
}
