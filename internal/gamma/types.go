package gamma

import "encoding/json"

// Market represents a single market from the Gamma API.
//
// Token and outcome fields are kept as raw JSON because the API encodes
// them inconsistently: sometimes a JSON array, sometimes a string holding
// a JSON array, occasionally a bare string. Decoding is deferred to
// TokenIDs and OutcomeLabels.
type Market struct {
	ID              string          `json:"id"`
	Slug            string          `json:"slug"`
	Question        string          `json:"question"`
	Active          bool            `json:"active"`
	Closed          bool            `json:"closed"`
	EnableOrderBook bool            `json:"enableOrderBook"`
	ClobTokenIDs    json.RawMessage `json:"clobTokenIds"`
	ClobTokenID     json.RawMessage `json:"clobTokenId"`
	Outcomes        json.RawMessage `json:"outcomes"`
}

// Event represents an event from the Gamma API. An event groups one or
// more markets under a shared slug.
type Event struct {
	ID      string   `json:"id"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Active  bool     `json:"active"`
	Closed  bool     `json:"closed"`
	Markets []Market `json:"markets"`

	// raw holds the undecoded response body for debug introspection.
	raw []byte
}
