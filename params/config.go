package params

import (
	"errors"
	"time"
)

// KomootConfig locates one user's tours on the source API.
type KomootConfig struct {
	// UserID is the numeric id of the user whose tours are imported.
	UserID string
	// Cookie is sent verbatim as the Cookie header. The API accepts a
	// logged-in browser session; there is no token auth.
	Cookie string
	// FullIndex walks every listing page instead of only the first.
	FullIndex bool
	SiteURL   string
	APIURL    string
}

func DefaultKomootConfig() *KomootConfig {
	return &KomootConfig{
		SiteURL: DefaultSiteURL,
		APIURL:  DefaultAPIURL,
	}
}

// PageSize returns the listing page size for this run.
func (c *KomootConfig) PageSize() int {
	if c.FullIndex {
		return EntriesPerPageFull
	}
	return EntriesPerPage
}

func (c *KomootConfig) Validate() error {
	if c.UserID == "" {
		return errors.New("missing user id")
	}
	if c.Cookie == "" {
		return errors.New("missing komoot session cookie")
	}
	if c.SiteURL == "" || c.APIURL == "" {
		return errors.New("missing komoot base url")
	}
	return nil
}

type ElasticsearchConfig struct {
	// Host is the root URL of the cluster, eg. http://localhost:9200.
	Host string
	// HTTPAuth is user:password for basic auth. Empty disables auth.
	HTTPAuth                 string
	TourIndexTemplate        string
	CoordinatesIndexTemplate string
	BatchSize                int
	BulkTimeout              time.Duration
}

func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		TourIndexTemplate:        DefaultTourIndexTemplate,
		CoordinatesIndexTemplate: DefaultCoordinatesIndexTemplate,
		BatchSize:                DefaultBatchSize,
		BulkTimeout:              DefaultBulkTimeout,
	}
}

func (c *ElasticsearchConfig) Validate() error {
	if c.Host == "" {
		return errors.New("missing elasticsearch host")
	}
	if c.TourIndexTemplate == "" || c.CoordinatesIndexTemplate == "" {
		return errors.New("missing index template")
	}
	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}
	return nil
}
