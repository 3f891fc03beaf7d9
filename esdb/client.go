package esdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dotcs/kmt2es/params"
	"github.com/dotcs/kmt2es/types/tour"
	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/tidwall/gjson"
)

// CoordinatesMapping types the geopoint field explicitly; dynamic mapping
// would store it as a plain float array instead of a geo_point.
const CoordinatesMapping = `{"mappings":{"properties":{"geopoint":{"type":"geo_point"}}}}`

// Client wraps the Elasticsearch cluster this importer writes to.
type Client struct {
	es     *elasticsearch.Client
	config *params.ElasticsearchConfig
	logger *slog.Logger
}

// NewClient connects to the cluster and logs its identity.
func NewClient(ctx context.Context, config *params.ElasticsearchConfig) (*Client, error) {
	esConfig := elasticsearch.Config{Addresses: []string{config.Host}}
	if config.HTTPAuth != "" {
		user, pass, ok := strings.Cut(config.HTTPAuth, ":")
		if !ok {
			return nil, errors.New("malformed http auth, want user:password")
		}
		esConfig.Username, esConfig.Password = user, pass
	}
	es, err := elasticsearch.NewClient(esConfig)
	if err != nil {
		return nil, err
	}
	c := &Client{es: es, config: config, logger: slog.With("sink", "elasticsearch")}

	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	info, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info: %s", info)
	}
	c.logger.Info("Connected to Elasticsearch",
		"name", gjson.GetBytes(info, "name").String(),
		"cluster", gjson.GetBytes(info, "cluster_name").String(),
		"version", gjson.GetBytes(info, "version.number").String())
	return c, nil
}

// EnsureIndex creates the index if it does not exist yet.
// An index that already exists is success, whoever created it.
func (c *Client) EnsureIndex(ctx context.Context, name, mapping string) error {
	opts := []func(*esapi.IndicesCreateRequest){
		c.es.Indices.Create.WithContext(ctx),
	}
	if mapping != "" {
		opts = append(opts, c.es.Indices.Create.WithBody(strings.NewReader(mapping)))
	}
	res, err := c.es.Indices.Create(name, opts...)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if !res.IsError() {
		c.logger.Debug("Created index", "index", name)
		return nil
	}
	if gjson.GetBytes(body, "error.type").String() == "resource_already_exists_exception" {
		return nil
	}
	return fmt.Errorf("create index %s: %s", name, body)
}

// IndexTour upserts the tour's metadata document, addressed by tour id.
// The body is the source listing object, unmodified.
func (c *Client) IndexTour(ctx context.Context, index string, t tour.Tour) error {
	res, err := c.es.Index(index, bytes.NewReader(t.Raw()),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(fmt.Sprint(t.ID())),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index tour %d: %s", t.ID(), body)
	}
	return nil
}
