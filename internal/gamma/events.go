package gamma

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// EventBySlug retrieves a single event by its event slug. The raw response
// body is retained on the returned Event for debug introspection.
func (c *Client) EventBySlug(ctx context.Context, slug string) (*Event, error) {
	path := "/events/slug/" + url.PathEscape(slug)

	body, err := c.doWithRetry(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("get event by slug: %w", err)
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	event.raw = body

	return &event, nil
}
