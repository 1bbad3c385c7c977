// Package token normalizes CLOB token identifiers and outcome labels out
// of Gamma market descriptors.
//
// The descriptor's clobTokenIds and outcomes fields are not one shape
// across schema versions: each arrives as a JSON array of strings, a
// JSON-array-encoded string ('["111","222"]'), a bare string, or
// occasionally a list wrapping a single nested list. Token IDs are 256-bit
// integers, far past float64 precision, so decoding always preserves
// numbers as their literal text.
package token

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize flattens a decoded identifier value into an ordered,
// deduplicated list of non-empty trimmed strings.
//
// Accepted shapes: a single string, a JSON-array-encoded string, a flat list
// of strings or numbers, and a list wrapping exactly one nested list. List
// elements that are themselves JSON-array-encoded strings are expanded one
// level. Duplicates keep their first occurrence. Anything else yields nil.
func Normalize(v any) []string {
	return dedup(Flatten(v))
}

// NormalizeJSON decodes a raw JSON value and normalizes it. Undecodable or
// empty input yields nil.
func NormalizeJSON(raw []byte) []string {
	return dedup(FlattenJSON(raw))
}

// Flatten accepts the same shapes as Normalize but keeps duplicates.
// Outcome labels go through here: they are positional, index-aligned with
// their identifiers, so collapsing repeats would shift the alignment.
func Flatten(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if sub, ok := decodeList(s); ok {
			return flattenList(sub)
		}
		return []string{s}
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return flattenList(items)
	case []any:
		return flattenList(t)
	default:
		return nil
	}
}

// FlattenJSON decodes a raw JSON value and flattens it, keeping duplicates.
func FlattenJSON(raw []byte) []string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return Flatten(v)
}

func flattenList(items []any) []string {
	// A single nested list is the descriptor's [[...]] quirk; unwrap it.
	if len(items) == 1 {
		if sub, ok := items[0].([]any); ok {
			items = sub
		}
	}

	var out []string
	for _, item := range items {
		switch x := item.(type) {
		case nil:
			continue
		case string:
			s := strings.TrimSpace(x)
			if sub, ok := decodeList(s); ok {
				for _, y := range sub {
					if ys := stringify(y); ys != "" {
						out = append(out, ys)
					}
				}
				continue
			}
			if s != "" {
				out = append(out, s)
			}
		default:
			if s := stringify(x); s != "" {
				out = append(out, s)
			}
		}
	}

	return out
}

// decodeList decodes s as a JSON array when it looks like one, preserving
// number literals.
func decodeList(s string) ([]any, bool) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v []any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return strings.TrimSpace(x.String())
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func dedup(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
