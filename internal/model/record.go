package model

import (
	"strconv"
	"time"
)

// SchemaVersion identifies the persisted column layout. Version 1 was the
// 15-column layout without the raw_truncated flag.
const SchemaVersion = 2

// Columns is the fixed CSV column order. Appending is the only permitted
// change; readers key on position.
var Columns = []string{
	"utc_iso",
	"slug",
	"question",
	"asset_id",
	"event_type",
	"best_bid",
	"best_ask",
	"mid",
	"exch_ts_raw",
	"recv_ts_ns",
	"proc_end_ts_ns",
	"proc_latency_ms",
	"net_latency_ms",
	"e2e_latency_ms",
	"raw_json",
	"raw_truncated",
}

// Record is one normalized feed update, flattened for persistence.
// Records are immutable once constructed and written exactly once.
type Record struct {
	CapturedAt time.Time // Wall clock at record construction
	Slug       string    // Market slug the session was started with
	Question   string    // Resolved market question text
	AssetID    string    // Token the update concerns ("" when absent)
	EventType  string    // Normalized event type ("book", "price_change", ...)

	// Quote fields, present only when the update carried a usable book side.
	BestBid *float64
	BestAsk *float64
	Mid     *float64

	FeedTSRaw   string // Feed timestamp field verbatim ("" when absent)
	RecvTSNS    int64  // Wall clock when the frame was read, ns
	ProcEndTSNS int64  // Wall clock at end of processing, ns

	// Latencies in fractional milliseconds. Processing latency is always
	// measured; network and end-to-end exist only when the feed timestamp
	// parsed. Absent means absent, never zero.
	ProcLatencyMS float64
	NetLatencyMS  *float64
	E2ELatencyMS  *float64

	RawJSON      string // Frame payload, capped at the configured ceiling
	RawTruncated bool   // True when RawJSON lost bytes to the cap
}

// Row serializes the record in Columns order. Absent optional values
// serialize as empty cells.
func (r *Record) Row() []string {
	return []string{
		r.CapturedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		r.Slug,
		r.Question,
		r.AssetID,
		r.EventType,
		formatPrice(r.BestBid),
		formatPrice(r.BestAsk),
		formatPrice(r.Mid),
		r.FeedTSRaw,
		strconv.FormatInt(r.RecvTSNS, 10),
		strconv.FormatInt(r.ProcEndTSNS, 10),
		formatLatency(&r.ProcLatencyMS),
		formatLatency(r.NetLatencyMS),
		formatLatency(r.E2ELatencyMS),
		r.RawJSON,
		strconv.FormatBool(r.RawTruncated),
	}
}

// formatPrice renders a price with the fewest digits that round-trip.
func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatLatency renders a latency with fixed millisecond precision.
func formatLatency(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}
