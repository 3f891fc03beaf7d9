package params

import "time"

// Index name templates. {year}, {month} and {day} are substituted from the
// tour's start date, zero-padded to two digits.
var (
	DefaultTourIndexTemplate        = "komoot-tour-{year}-{month}"
	DefaultCoordinatesIndexTemplate = "komoot-coordinates-{year}-{month}"
)

// DefaultBatchSize is the number of point documents per bulk request.
var DefaultBatchSize = 1000

// DefaultBulkTimeout bounds a single bulk request.
var DefaultBulkTimeout = 200 * time.Second

var (
	// EntriesPerPage is the listing page size for a quick, recent-only run.
	EntriesPerPage = 10
	// EntriesPerPageFull is the listing page size when walking the whole index.
	EntriesPerPageFull = 100
)

// The tour listing and the coordinate streams live on different hosts
// upstream, so both bases are configurable independently.
var (
	DefaultSiteURL = "https://www.komoot.de/api/v007"
	DefaultAPIURL  = "http://api.komoot.de/v007"
)
