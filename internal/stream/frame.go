package stream

import (
	"bytes"
	"encoding/json"

	"github.com/clobwatch/polymarket-data/internal/quote"
)

// Update is one order-book update extracted from a feed frame. A frame
// carries either a single update object or an array of them.
type Update struct {
	EventType string // event_type, falling back to type, else "unknown"
	AssetID   string // asset_id as text, "" when absent
	FeedTSRaw string // timestamp field verbatim, "" when absent
	FeedTS    int64  // Exchange milliseconds; valid only when HasFeedTS
	HasFeedTS bool
	Bids      json.RawMessage
	Asks      json.RawMessage
}

// wireUpdate mirrors the frame fields the recorder reads. Everything stays
// raw because the feed mixes strings and numbers freely.
type wireUpdate struct {
	EventType json.RawMessage `json:"event_type"`
	Type      json.RawMessage `json:"type"`
	AssetID   json.RawMessage `json:"asset_id"`
	Timestamp json.RawMessage `json:"timestamp"`
	Bids      json.RawMessage `json:"bids"`
	Asks      json.RawMessage `json:"asks"`
}

// decodeFrame splits one raw frame into updates. ok is false when the frame
// is not decodable JSON or decodes to a bare scalar. Array elements that
// are not objects are dropped.
func decodeFrame(data []byte) ([]Update, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false
	}

	var wires []wireUpdate
	switch trimmed[0] {
	case '{':
		var w wireUpdate
		if err := json.Unmarshal(trimmed, &w); err != nil {
			return nil, false
		}
		wires = []wireUpdate{w}
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, false
		}
		wires = make([]wireUpdate, 0, len(elems))
		for _, elem := range elems {
			inner := bytes.TrimSpace(elem)
			if len(inner) == 0 || inner[0] != '{' {
				continue
			}
			var w wireUpdate
			if err := json.Unmarshal(inner, &w); err != nil {
				continue
			}
			wires = append(wires, w)
		}
	default:
		return nil, false
	}

	updates := make([]Update, 0, len(wires))
	for _, w := range wires {
		updates = append(updates, w.toUpdate())
	}
	return updates, true
}

func (w wireUpdate) toUpdate() Update {
	u := Update{
		EventType: firstNonEmpty(rawString(w.EventType), rawString(w.Type), "unknown"),
		AssetID:   rawString(w.AssetID),
		FeedTSRaw: rawString(w.Timestamp),
		Bids:      w.Bids,
		Asks:      w.Asks,
	}
	if ms, ok := quote.Int64(u.FeedTSRaw); ok {
		u.FeedTS = ms
		u.HasFeedTS = true
	}
	return u
}

// rawString renders a raw JSON value as text: strings decode to their
// value, null and absent become "", anything else keeps its literal JSON.
func rawString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
