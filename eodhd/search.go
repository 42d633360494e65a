package eodhd

import (
	"context"
	"fmt"
)

// Search looks up securities on EODHD, to find the ticker of a ledger symbol.
// The search index changes slowly: responses are cached for the month.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing EODHD API key")
	}
	client := c.HTTPClient
	if client == nil {
		client = newMonthlyCachingClient()
	}
	return fetchSearch(ctx, client, c.baseURL(), c.APIKey, term)
}
