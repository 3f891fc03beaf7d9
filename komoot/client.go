package komoot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dotcs/kmt2es/params"
	"github.com/dotcs/kmt2es/types/tour"
	"github.com/dotcs/kmt2es/types/tourpoint"
	"github.com/tidwall/gjson"
)

// ErrRequestFailed marks a source API response with a failure status.
var ErrRequestFailed = errors.New("komoot request failed")

// acceptHeader is what a browser sends; the API answers JSON regardless.
const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Client reads a user's tours from the Komoot API.
// Auth is a logged-in browser session cookie, sent verbatim on every request.
type Client struct {
	config *params.KomootConfig
	http   *http.Client
	header http.Header
	logger *slog.Logger
}

func NewClient(config *params.KomootConfig) *Client {
	header := http.Header{}
	header.Set("Accept", acceptHeader)
	header.Set("Cookie", config.Cookie)
	return &Client{
		config: config,
		http:   &http.Client{},
		header: header,
		logger: slog.With("source", "komoot"),
	}
}

// TourPage is one page of a user's tour listing.
type TourPage struct {
	Tours      []tour.Tour
	Number     int64
	TotalPages int64
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header = c.header.Clone()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d (%s)", ErrRequestFailed, res.StatusCode, url)
	}
	return io.ReadAll(res.Body)
}

// ToursPage fetches one page of the tour listing.
func (c *Client) ToursPage(ctx context.Context, page, limit int) (*TourPage, error) {
	url := fmt.Sprintf("%s/users/%s/tours/?page=%d&limit=%d", c.config.SiteURL, c.config.UserID, page, limit)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	tp := &TourPage{
		Number:     gjson.GetBytes(body, "page.number").Int(),
		TotalPages: gjson.GetBytes(body, "page.totalPages").Int(),
	}
	for _, el := range gjson.GetBytes(body, "_embedded.tours").Array() {
		tp.Tours = append(tp.Tours, tour.FromRaw([]byte(el.Raw)))
	}
	c.logger.Debug("Fetched tour page", "page", tp.Number, "totalPages", tp.TotalPages, "tours", len(tp.Tours))
	return tp, nil
}

// Tours fetches the user's tour listing. A full-index run pages through the
// complete history; otherwise only the first page of recent tours is read.
func (c *Client) Tours(ctx context.Context) ([]tour.Tour, error) {
	limit := c.config.PageSize()
	page, err := c.ToursPage(ctx, 0, limit)
	if err != nil {
		return nil, err
	}
	tours := page.Tours
	if !c.config.FullIndex {
		return tours, nil
	}
	for page.Number < page.TotalPages-1 {
		if page, err = c.ToursPage(ctx, int(page.Number)+1, limit); err != nil {
			return nil, err
		}
		tours = append(tours, page.Tours...)
	}
	return tours, nil
}

// Coordinates fetches the raw coordinate stream of one tour.
// Items decode one at a time so a bad sample reports its position;
// any bad sample fails the whole fetch.
func (c *Client) Coordinates(ctx context.Context, tourID int64) ([]tourpoint.Coordinate, error) {
	url := fmt.Sprintf("%s/tours/%d/coordinates", c.config.APIURL, tourID)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("tour %d: %w", tourID, err)
	}
	coords := make([]tourpoint.Coordinate, 0, len(envelope.Items))
	for i, item := range envelope.Items {
		var coord tourpoint.Coordinate
		if err := json.Unmarshal(item, &coord); err != nil {
			return nil, fmt.Errorf("tour %d sample %d: %w", tourID, i, err)
		}
		coords = append(coords, coord)
	}
	c.logger.Debug("Fetched coordinates", "tour", tourID, "samples", len(coords))
	return coords, nil
}
