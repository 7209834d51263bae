package models

import (
	"encoding/json"
	"math"
	"strings"
)

// MaxQty bounds for a single cart line of a product.
const (
	MaxQtyMin     = 1
	MaxQtyMax     = 5
	MaxQtyDefault = 5
)

// NormalizeStringList reduces a loosely typed list field (colors, sizes,
// campaigns) to a clean []string. Clients send these three ways: a real JSON
// array, a string containing a JSON array, or a comma-separated string.
// Precedence is array passthrough, then JSON parse, then comma split; the
// result keeps first occurrences only, trimmed, with empties dropped.
func NormalizeStringList(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return dedupTrimmed(val)
	case []interface{}:
		items := make([]string, 0, len(val))
		for _, it := range val {
			if s, ok := it.(string); ok {
				items = append(items, s)
			}
		}
		return dedupTrimmed(items)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return []string{}
		}
		if strings.HasPrefix(trimmed, "[") {
			var parsed []string
			if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
				return dedupTrimmed(parsed)
			}
		}
		return dedupTrimmed(strings.Split(trimmed, ","))
	default:
		return []string{}
	}
}

func dedupTrimmed(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// NormalizeAttributes coerces a free-form attribute field to a string map.
// Accepts an object or a JSON-object string; anything unparseable becomes an
// empty map rather than an error.
func NormalizeAttributes(v interface{}) map[string]string {
	switch val := v.(type) {
	case map[string]string:
		return val
	case map[string]interface{}:
		out := make(map[string]string, len(val))
		for k, item := range val {
			if s, ok := item.(string); ok {
				out[k] = s
			}
		}
		return out
	case string:
		var parsed map[string]string
		if err := json.Unmarshal([]byte(val), &parsed); err == nil && parsed != nil {
			return parsed
		}
		return map[string]string{}
	default:
		return map[string]string{}
	}
}

// ClampMaxQty forces a per-order quantity limit into [1,5]; zero or negative
// values mean "unset" on the wire and clamp up to the minimum.
func ClampMaxQty(q int) int {
	if q < MaxQtyMin {
		return MaxQtyMin
	}
	if q > MaxQtyMax {
		return MaxQtyMax
	}
	return q
}

// ValidDiscount reports whether v may be stored as a discount price: a
// positive finite number. Anything else leaves the discount unset; a zero or
// malformed discount is never coerced onto the product.
func ValidDiscount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
