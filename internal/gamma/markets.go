package gamma

import (
	"context"
	"fmt"
	"net/url"
)

// MarketsBySlug retrieves all markets matching the given market slug.
// The API returns an empty list when no market carries the slug.
func (c *Client) MarketsBySlug(ctx context.Context, slug string) ([]Market, error) {
	query := url.Values{}
	query.Set("slug", slug)

	var markets []Market
	if err := c.get(ctx, "/markets", query, &markets); err != nil {
		return nil, fmt.Errorf("get markets by slug: %w", err)
	}

	return markets, nil
}
