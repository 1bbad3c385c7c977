// Package quote extracts best bid/ask quotes from raw order-book level lists.
//
// The CLOB feed serializes prices and sizes as decimal strings, but numbers
// appear in the wild too. All numeric parsing here is best-effort: entries
// that do not parse are dropped, never guessed.
package quote

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Level is one resting order at a single price.
type Level struct {
	Price float64
	Size  float64
}

// wireLevel is a single level as it appears on the wire. Price and size are
// kept raw because they arrive as either strings or numbers.
type wireLevel struct {
	Price json.RawMessage `json:"price"`
	Size  json.RawMessage `json:"size"`
}

// ParseLevels decodes a JSON array of {price, size} objects into levels.
// Elements that are not objects, or whose price or size does not parse as a
// finite number, are skipped. Anything other than a JSON array yields nil.
func ParseLevels(raw json.RawMessage) []Level {
	if len(raw) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	levels := make([]Level, 0, len(elems))
	for _, elem := range elems {
		var wl wireLevel
		if err := json.Unmarshal(elem, &wl); err != nil {
			continue
		}
		price, ok := Number(wl.Price)
		if !ok {
			continue
		}
		size, ok := Number(wl.Size)
		if !ok {
			continue
		}
		levels = append(levels, Level{Price: price, Size: size})
	}

	return levels
}

// BestBid returns the level with the highest price. The first level wins on
// a tie. Returns false if there are no levels.
func BestBid(levels []Level) (Level, bool) {
	if len(levels) == 0 {
		return Level{}, false
	}
	best := levels[0]
	for _, lvl := range levels[1:] {
		if lvl.Price > best.Price {
			best = lvl
		}
	}
	return best, true
}

// BestAsk returns the level with the lowest price. The first level wins on
// a tie. Returns false if there are no levels.
func BestAsk(levels []Level) (Level, bool) {
	if len(levels) == 0 {
		return Level{}, false
	}
	best := levels[0]
	for _, lvl := range levels[1:] {
		if lvl.Price < best.Price {
			best = lvl
		}
	}
	return best, true
}

// Midpoint returns the arithmetic mean of the best bid and best ask, or nil
// unless both sides are present.
func Midpoint(bid, ask *float64) *float64 {
	if bid == nil || ask == nil {
		return nil
	}
	mid := (*bid + *ask) / 2.0
	return &mid
}

// Float parses a decimal string into a finite float64.
// Empty, malformed, NaN, and Inf inputs all report false.
func Float(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int64 parses an integral decimal string. Fractional values report false;
// the feed timestamp contract is whole milliseconds.
func Int64(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Number parses a raw JSON value that is either a number or a string holding
// a decimal, the two encodings the feed uses for prices and sizes.
func Number(raw json.RawMessage) (float64, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return 0, false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		return Float(s)
	}
	return Float(trimmed)
}
