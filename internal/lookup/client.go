// Package lookup talks to the external address lookup API.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"addressbook/internal/address"
	stderrors "addressbook/internal/common/errors"
	commonhttp "addressbook/internal/common/http"
	"addressbook/internal/common/logger"
	"addressbook/internal/common/metrics"
)

// Searcher is the lookup capability consumed by the search workflow.
type Searcher interface {
	// Configured reports whether a base URL is set. The workflow fails a
	// submission with a configuration error when it is not.
	Configured() bool
	// Search returns the raw records for a postcode and house number. The
	// returned slice preserves response order and may be empty.
	Search(ctx context.Context, postcode, houseNumber string) ([]address.RawRecord, error)
}

type Client struct {
	baseURL string
	http    *commonhttp.Client
	cache   *Cache
	logger  logger.Logger
}

// NewClient creates a lookup client. cache may be nil to disable caching.
func NewClient(baseURL string, timeout time.Duration, cache *Cache, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    commonhttp.NewClient(timeout),
		cache:   cache,
		logger:  log,
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != ""
}

func (c *Client) Search(ctx context.Context, postcode, houseNumber string) ([]address.RawRecord, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, postcode, houseNumber); ok {
			records, err := parseResponse(body)
			if err == nil {
				metrics.LookupCacheHits.Inc()
				return records, nil
			}
			// A cached body that no longer parses is dropped, not surfaced.
			c.logger.Warn("discarding unparseable cached lookup response", map[string]interface{}{
				"postcode": postcode,
				"error":    err.Error(),
			})
		}
	}

	searchURL := fmt.Sprintf("%s?postcode=%s&streetnumber=%s",
		c.baseURL, url.QueryEscape(postcode), url.QueryEscape(houseNumber))

	resp, err := c.http.Get(ctx, searchURL)
	if err != nil {
		return nil, stderrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, stderrors.NewTransportError(fmt.Errorf("lookup API returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, stderrors.NewTransportError(err)
	}

	records, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, postcode, houseNumber, body)
	}

	return records, nil
}

// parseResponse decodes the lookup body. The success shape is an object with
// an "addresses" array of record objects.
func parseResponse(body []byte) ([]address.RawRecord, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, stderrors.NewInvalidResponseFormatError(err.Error())
	}

	rawAddresses, ok := payload["addresses"]
	if !ok {
		return nil, stderrors.NewInvalidResponseFormatError("missing addresses field")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(rawAddresses, &elements); err != nil {
		return nil, stderrors.NewAddressesNotArrayError()
	}
	// A JSON null decodes into a nil slice without error.
	if elements == nil {
		return nil, stderrors.NewAddressesNotArrayError()
	}

	records := make([]address.RawRecord, 0, len(elements))
	for i, element := range elements {
		var record address.RawRecord
		if err := json.Unmarshal(element, &record); err != nil {
			return nil, stderrors.NewMalformedRecordError(fmt.Sprintf("addresses[%d] is not an object", i))
		}
		records = append(records, record)
	}

	return records, nil
}

var _ Searcher = (*Client)(nil)
