package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/golang-lru/v2"

	"github.com/dotcs/kmt2es/esdb"
	"github.com/dotcs/kmt2es/types/tour"
	"github.com/dotcs/kmt2es/types/tourpoint"
)

// TourFetcher reads tour data from the source API.
type TourFetcher interface {
	Coordinates(ctx context.Context, tourID int64) ([]tourpoint.Coordinate, error)
}

// Store writes tours and their points to the search cluster.
type Store interface {
	EnsureIndex(ctx context.Context, name, mapping string) error
	IndexTour(ctx context.Context, index string, t tour.Tour) error
	BulkIndexPoints(ctx context.Context, index string, points []tourpoint.TourPoint) (esdb.BulkStats, error)
}

// ensuredCacheSize bounds the cache of index names created this run.
// A run touches two indices per distinct tour month.
const ensuredCacheSize = 64

// Importer drives the import pipeline per tour: route indices by start
// date, ensure they exist, upsert the metadata, fetch and enrich the
// coordinate stream, bulk load the points. Strictly sequential.
type Importer struct {
	fetcher TourFetcher
	store   Store
	router  esdb.Router
	logger  *slog.Logger
	meter   *importMeter
	ensured *lru.Cache[string, struct{}]
}

// Totals sums up one batch run.
type Totals struct {
	Imported int
	Skipped  int
	Failed   int
	Points   int
}

func NewImporter(fetcher TourFetcher, store Store, router esdb.Router) (*Importer, error) {
	ensured, err := lru.New[string, struct{}](ensuredCacheSize)
	if err != nil {
		return nil, err
	}
	logger := slog.With("api", "import")
	return &Importer{
		fetcher: fetcher,
		store:   store,
		router:  router,
		logger:  logger,
		meter:   newImportMeter(logger, 10*time.Second),
		ensured: ensured,
	}, nil
}

func (i *Importer) Close() {
	i.meter.stop()
}

func (i *Importer) ensureIndex(ctx context.Context, name, mapping string) error {
	if _, ok := i.ensured.Get(name); ok {
		return nil
	}
	if err := i.store.EnsureIndex(ctx, name, mapping); err != nil {
		return err
	}
	i.ensured.Add(name, struct{}{})
	return nil
}

// ImportTour runs the pipeline for a single tour.
// Tours without a recorded track are skipped without touching the fetcher
// or the store. Fetch and enrichment failures abort before any point is
// written; the metadata upsert may have happened by then, which a rerun
// overwrites in place.
func (i *Importer) ImportTour(ctx context.Context, t tour.Tour) error {
	if !t.IsRecorded() {
		i.logger.Debug("Skipping tour without recorded track", "tour", t.ID(), "type", t.Type())
		return nil
	}
	started := time.Now()

	date, err := t.Date()
	if err != nil {
		return err
	}
	tourIndex := i.router.TourIndex(date)
	coordsIndex := i.router.CoordinatesIndex(date)

	if err := i.ensureIndex(ctx, tourIndex, ""); err != nil {
		return err
	}
	if err := i.ensureIndex(ctx, coordsIndex, esdb.CoordinatesMapping); err != nil {
		return err
	}

	if err := i.store.IndexTour(ctx, tourIndex, t); err != nil {
		return err
	}

	coords, err := i.fetcher.Coordinates(ctx, t.ID())
	if err != nil {
		return err
	}
	points, err := tourpoint.Timeline(coords, date, t.ID(), t.Sport())
	if err != nil {
		return err
	}
	stats, err := i.store.BulkIndexPoints(ctx, coordsIndex, points)
	if err != nil {
		return err
	}

	summary := tourpoint.Summarize(points)
	i.logger.Info("Imported tour",
		"tour", t.ID(),
		"name", t.Name(),
		"sport", t.Sport(),
		"points", stats.Indexed,
		"distance", summary.Distance,
		"duration", summary.Duration,
		"speed.avg", summary.SpeedMean,
		"speed.max", summary.SpeedMax,
		"elapsed", time.Since(started).Round(time.Millisecond))
	i.meter.mark(stats.Indexed)
	return nil
}

// ImportTours imports a batch in listing order. One tour's failure is
// logged and counted, and the rest of the batch still runs.
func (i *Importer) ImportTours(ctx context.Context, tours []tour.Tour) Totals {
	totals := Totals{}
	started := time.Now()
	pointsBefore := i.meter.points.Snapshot().Count()

	for _, t := range tours {
		if ctx.Err() != nil {
			i.logger.Warn("Import interrupted", "error", ctx.Err())
			break
		}
		if !t.IsRecorded() {
			i.logger.Debug("Skipping tour without recorded track", "tour", t.ID(), "type", t.Type())
			totals.Skipped++
			continue
		}
		if err := i.ImportTour(ctx, t); err != nil {
			totals.Failed++
			i.logger.Error("Failed to import tour", "tour", t.ID(), "error", err)
			continue
		}
		totals.Imported++
	}

	totals.Points = int(i.meter.points.Snapshot().Count() - pointsBefore)
	i.logger.Info("Import done",
		"imported", totals.Imported,
		"skipped", totals.Skipped,
		"failed", totals.Failed,
		"points", humanize.Comma(int64(totals.Points)),
		"elapsed", time.Since(started).Round(time.Millisecond))
	return totals
}
