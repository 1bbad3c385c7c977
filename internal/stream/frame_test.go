package stream

import (
	"testing"
)

func TestDecodeFrame(t *testing.T) {
	t.Run("single object", func(t *testing.T) {
		updates, ok := decodeFrame([]byte(`{"event_type":"book","asset_id":"111","timestamp":1000,"bids":[{"price":"0.4","size":"5"}],"asks":[]}`))
		if !ok {
			t.Fatal("decodeFrame not ok")
		}
		if len(updates) != 1 {
			t.Fatalf("len(updates) = %d, want 1", len(updates))
		}
		u := updates[0]
		if u.EventType != "book" {
			t.Errorf("EventType = %q, want book", u.EventType)
		}
		if u.AssetID != "111" {
			t.Errorf("AssetID = %q, want 111", u.AssetID)
		}
		if !u.HasFeedTS || u.FeedTS != 1000 {
			t.Errorf("FeedTS = %d (has=%v), want 1000", u.FeedTS, u.HasFeedTS)
		}
		if string(u.Bids) != `[{"price":"0.4","size":"5"}]` {
			t.Errorf("Bids = %s", u.Bids)
		}
	})

	t.Run("array of objects", func(t *testing.T) {
		updates, ok := decodeFrame([]byte(`[{"event_type":"book","asset_id":"1"},{"event_type":"book","asset_id":"2"}]`))
		if !ok {
			t.Fatal("decodeFrame not ok")
		}
		if len(updates) != 2 {
			t.Fatalf("len(updates) = %d, want 2", len(updates))
		}
		if updates[0].AssetID != "1" || updates[1].AssetID != "2" {
			t.Errorf("asset ids = %q, %q", updates[0].AssetID, updates[1].AssetID)
		}
	})

	t.Run("array drops non-objects", func(t *testing.T) {
		updates, ok := decodeFrame([]byte(`[1, {"event_type":"book","asset_id":"1"}, "x", null]`))
		if !ok {
			t.Fatal("decodeFrame not ok")
		}
		if len(updates) != 1 {
			t.Fatalf("len(updates) = %d, want 1", len(updates))
		}
	})

	t.Run("empty array", func(t *testing.T) {
		updates, ok := decodeFrame([]byte(`[]`))
		if !ok {
			t.Fatal("decodeFrame not ok")
		}
		if len(updates) != 0 {
			t.Errorf("len(updates) = %d, want 0", len(updates))
		}
	})

	t.Run("rejects scalars and garbage", func(t *testing.T) {
		for _, frame := range []string{`42`, `"hello"`, `true`, `null`, `{busted`, ``, `   `} {
			if _, ok := decodeFrame([]byte(frame)); ok {
				t.Errorf("decodeFrame(%q) ok, want not ok", frame)
			}
		}
	})
}

func TestUpdateFields(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		check func(t *testing.T, u Update)
	}{
		{
			"event_type preferred over type",
			`{"event_type":"book","type":"other"}`,
			func(t *testing.T, u Update) {
				if u.EventType != "book" {
					t.Errorf("EventType = %q, want book", u.EventType)
				}
			},
		},
		{
			"type fallback",
			`{"type":"price_change"}`,
			func(t *testing.T, u Update) {
				if u.EventType != "price_change" {
					t.Errorf("EventType = %q, want price_change", u.EventType)
				}
			},
		},
		{
			"empty event_type falls through",
			`{"event_type":"","type":"tick"}`,
			func(t *testing.T, u Update) {
				if u.EventType != "tick" {
					t.Errorf("EventType = %q, want tick", u.EventType)
				}
			},
		},
		{
			"null event_type falls through",
			`{"event_type":null,"type":"tick"}`,
			func(t *testing.T, u Update) {
				if u.EventType != "tick" {
					t.Errorf("EventType = %q, want tick", u.EventType)
				}
			},
		},
		{
			"unknown when both absent",
			`{"asset_id":"1"}`,
			func(t *testing.T, u Update) {
				if u.EventType != "unknown" {
					t.Errorf("EventType = %q, want unknown", u.EventType)
				}
			},
		},
		{
			"string timestamp",
			`{"timestamp":"1700000000123"}`,
			func(t *testing.T, u Update) {
				if u.FeedTSRaw != "1700000000123" {
					t.Errorf("FeedTSRaw = %q", u.FeedTSRaw)
				}
				if !u.HasFeedTS || u.FeedTS != 1700000000123 {
					t.Errorf("FeedTS = %d (has=%v)", u.FeedTS, u.HasFeedTS)
				}
			},
		},
		{
			"fractional timestamp kept raw but unparsed",
			`{"timestamp":"1000.5"}`,
			func(t *testing.T, u Update) {
				if u.FeedTSRaw != "1000.5" {
					t.Errorf("FeedTSRaw = %q, want 1000.5", u.FeedTSRaw)
				}
				if u.HasFeedTS {
					t.Error("HasFeedTS = true, want false")
				}
			},
		},
		{
			"absent timestamp",
			`{"event_type":"book"}`,
			func(t *testing.T, u Update) {
				if u.FeedTSRaw != "" || u.HasFeedTS {
					t.Errorf("FeedTSRaw = %q, HasFeedTS = %v", u.FeedTSRaw, u.HasFeedTS)
				}
			},
		},
		{
			"numeric asset id",
			`{"asset_id":123}`,
			func(t *testing.T, u Update) {
				if u.AssetID != "123" {
					t.Errorf("AssetID = %q, want 123", u.AssetID)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates, ok := decodeFrame([]byte(tt.frame))
			if !ok || len(updates) != 1 {
				t.Fatalf("decodeFrame(%q) = %d updates, ok=%v", tt.frame, len(updates), ok)
			}
			tt.check(t, updates[0])
		})
	}
}

func TestRawString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"book"`, "book"},
		{"number", `1000`, "1000"},
		{"absent", ``, ""},
		{"null", `null`, ""},
		{"object keeps literal", `{"a":1}`, `{"a":1}`},
		{"whitespace string preserved", `" "`, " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rawString([]byte(tt.raw)); got != tt.want {
				t.Errorf("rawString(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
