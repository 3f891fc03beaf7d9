package esdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dotcs/kmt2es/types/tourpoint"
	"github.com/tidwall/gjson"
)

// BulkStats counts the outcome of a bulk load.
type BulkStats struct {
	Indexed int
	Failed  int
}

// BulkItemError is one rejected document of a bulk request.
type BulkItemError struct {
	DocID  string
	Reason string
}

func (e BulkItemError) Error() string {
	return fmt.Sprintf("doc %s: %s", e.DocID, e.Reason)
}

// BulkError reports the documents a bulk load could not index.
type BulkError struct {
	Failed []BulkItemError
}

func (e *BulkError) Error() string {
	keys := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		keys[i] = f.DocID
	}
	return fmt.Sprintf("bulk indexing failed for %d docs: %s", len(e.Failed), strings.Join(keys, ", "))
}

// BulkIndexPoints loads the points in batches of the configured size.
// Every batch is attempted even after item failures; rejected documents
// accumulate into a single BulkError so none go unreported.
func (c *Client) BulkIndexPoints(ctx context.Context, index string, points []tourpoint.TourPoint) (BulkStats, error) {
	stats := BulkStats{}
	if len(points) == 0 {
		return stats, nil
	}
	bulkErr := &BulkError{}
	for lo := 0; lo < len(points); lo += c.config.BatchSize {
		hi := lo + c.config.BatchSize
		if hi > len(points) {
			hi = len(points)
		}
		if err := c.bulkBatch(ctx, index, points[lo:hi], &stats, bulkErr); err != nil {
			return stats, err
		}
	}
	if len(bulkErr.Failed) > 0 {
		return stats, bulkErr
	}
	return stats, nil
}

func (c *Client) bulkBatch(ctx context.Context, index string, batch []tourpoint.TourPoint, stats *BulkStats, bulkErr *BulkError) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	for _, p := range batch {
		fmt.Fprintf(buf, "{\"index\":{\"_id\":%q}}\n", p.DocID())
		if err := enc.Encode(p); err != nil {
			return err
		}
	}

	bctx, cancel := context.WithTimeout(ctx, c.config.BulkTimeout)
	defer cancel()
	res, err := c.es.Bulk(bytes.NewReader(buf.Bytes()),
		c.es.Bulk.WithContext(bctx),
		c.es.Bulk.WithIndex(index),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("bulk to %s: %s", index, body)
	}
	if !gjson.GetBytes(body, "errors").Bool() {
		stats.Indexed += len(batch)
		return nil
	}
	for _, item := range gjson.GetBytes(body, "items").Array() {
		status := item.Get("index.status").Int()
		if status >= 200 && status < 300 {
			stats.Indexed++
			continue
		}
		stats.Failed++
		bulkErr.Failed = append(bulkErr.Failed, BulkItemError{
			DocID:  item.Get("index._id").String(),
			Reason: item.Get("index.error.reason").String(),
		})
	}
	return nil
}
