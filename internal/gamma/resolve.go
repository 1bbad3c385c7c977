package gamma

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/clobwatch/polymarket-data/internal/market"
)

// maxDebugExcerpt caps raw payload fragments in debug logs.
const maxDebugExcerpt = 300

// ResolveSlug turns an operator-supplied slug into a market descriptor.
//
// Polymarket URLs name either a market or an event, so resolution tries
// the market lookup first and falls back to the event lookup. A failed
// market lookup only logs a warning; a failed event lookup is fatal
// because it is the last resort.
func (c *Client) ResolveSlug(ctx context.Context, slug string) (*market.Descriptor, error) {
	c.logger.Info("resolving slug via markets lookup", "slug", slug)

	desc, err := c.resolveViaMarkets(ctx, slug)
	if err != nil {
		c.logger.Warn("markets lookup failed", "slug", slug, "error", err)
	} else if desc != nil {
		c.logger.Info("token ids found via markets lookup", "slug", slug)
		return desc, nil
	}

	c.logger.Info("falling back to event lookup", "slug", slug)

	desc, err = c.resolveViaEvent(ctx, slug)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, fmt.Errorf("could not find CLOB token IDs for %q via /markets or /events/slug", slug)
	}

	c.logger.Info("token ids found via event lookup", "slug", slug)
	return desc, nil
}

// resolveViaMarkets looks the slug up as a market slug. It returns
// (nil, nil) when the lookup succeeded but no returned market is usable.
func (c *Client) resolveViaMarkets(ctx context.Context, slug string) (*market.Descriptor, error) {
	markets, err := c.MarketsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, fmt.Errorf("no market with slug %q", slug)
	}

	for i := range markets {
		m := &markets[i]
		c.logger.Info("market candidate",
			"question", m.Question,
			"enable_order_book", m.EnableOrderBook,
		)
		if m.Usable() {
			return m.Descriptor(slug), nil
		}
	}

	return nil, nil
}

// resolveViaEvent looks the slug up as an event slug and scans the event's
// markets for the first usable one.
func (c *Client) resolveViaEvent(ctx context.Context, slug string) (*market.Descriptor, error) {
	event, err := c.EventBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("event lookup: %w", err)
	}

	for i := range event.Markets {
		m := &event.Markets[i]
		if m.Usable() {
			c.logger.Info("event market selected",
				"question", m.Question,
				"enable_order_book", m.EnableOrderBook,
			)
			return m.Descriptor(slug), nil
		}
	}

	if c.debug {
		c.debugEvent(event)
	}

	return nil, nil
}

// debugEvent dumps payload structure when resolution came up empty, the
// usual cause being a field encoding this package does not recognize yet.
func (c *Client) debugEvent(event *Event) {
	c.logger.Debug("event payload keys", "keys", jsonKeys(event.raw))

	var wrapper struct {
		Markets []json.RawMessage `json:"markets"`
	}
	if err := json.Unmarshal(event.raw, &wrapper); err != nil || len(wrapper.Markets) == 0 {
		return
	}

	m := &event.Markets[0]
	c.logger.Debug("event market payload",
		"keys", jsonKeys(wrapper.Markets[0]),
		"clob_token_ids", excerpt(m.ClobTokenIDs, maxDebugExcerpt),
		"clob_token_id", excerpt(m.ClobTokenID, maxDebugExcerpt),
		"outcomes", excerpt(m.Outcomes, maxDebugExcerpt),
	)
}

// jsonKeys returns the sorted top-level keys of a JSON object.
func jsonKeys(raw []byte) []string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// excerpt truncates a raw payload fragment for logging.
func excerpt(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n]) + "..."
}
