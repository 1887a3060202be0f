// Package store fetches seller-submitted car records from the remote
// key-value record store over its REST surface and flattens the nested
// user -> record tree into a flat slice.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"carmarket-api/internal/common/config"
	commonerrors "carmarket-api/internal/common/errors"
	commonhttp "carmarket-api/internal/common/http"
	"carmarket-api/internal/common/logger"
)

type Client struct {
	httpClient *commonhttp.Client
	baseURL    string
	apiKey     string
	logger     logger.Logger
}

func NewClient(cfg config.StoreConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: commonhttp.NewClient(timeout),
		baseURL:    cfg.DatabaseURL,
		apiKey:     cfg.APIKey,
		logger:     log.WithFields(map[string]interface{}{"component": "store"}),
	}
}

// FetchSellListings retrieves every record under the sell tree. A null or
// empty tree yields an empty slice. Non-2xx responses surface the upstream
// status and body text.
func (c *Client) FetchSellListings(ctx context.Context) ([]Record, error) {
	url := fmt.Sprintf("%s/carRequests/sell.json?auth=%s", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, commonerrors.NewInternalError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, commonerrors.NewUpstreamFetchError(0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, commonerrors.NewUpstreamFetchError(resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, commonerrors.NewUpstreamFetchError(resp.StatusCode, string(body))
	}

	records, err := flattenSellTree(body)
	if err != nil {
		return nil, commonerrors.NewUpstreamFetchError(resp.StatusCode, err.Error())
	}

	c.logger.Info("fetched sell listings", map[string]interface{}{
		"count": len(records),
	})
	return records, nil
}

// flattenSellTree turns the nested {userId: {recordId: {...}}} document into
// a flat record slice. The store returns the JSON literal null for an empty
// tree; non-object leaves are skipped. Records come back sorted by user then
// id so the result is deterministic.
func flattenSellTree(body []byte) ([]Record, error) {
	var tree map[string]map[string]json.RawMessage
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("decode sell tree: %w", err)
	}

	records := []Record{}
	for userID, cars := range tree {
		for carID, raw := range cars {
			var fields map[string]interface{}
			if err := json.Unmarshal(raw, &fields); err != nil {
				continue
			}
			records = append(records, Record{
				ID:     carID,
				UserID: userID,
				Fields: fields,
			})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].UserID != records[j].UserID {
			return records[i].UserID < records[j].UserID
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}
