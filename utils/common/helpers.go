package common

import (
	"encoding/json"
	"strconv"
	"strings"
)

// TruncateString truncates a string to maxLen characters, adding "..." if truncated
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// ExtractSlug extracts the event slug from a polymarket.com URL, or returns
// the input unchanged when it is already a slug.
func ExtractSlug(urlOrSlug string) string {
	idx := strings.Index(urlOrSlug, "polymarket.com")
	if idx < 0 {
		return urlOrSlug
	}

	path := urlOrSlug[idx+len("polymarket.com"):]
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	// event/slug-here -> slug-here
	return strings.TrimPrefix(path, "event/")
}

// ParseOutcomePrices decodes Gamma's outcomePrices field. The API serializes
// it either as a JSON array of numeric strings or as a JSON string containing
// that array; both forms decode to the same slice.
func ParseOutcomePrices(raw json.RawMessage) []float64 {
	if len(raw) == 0 {
		return nil
	}

	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		// String-encoded array: unwrap once and retry
		var wrapped string
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil
		}
		if err := json.Unmarshal([]byte(wrapped), &entries); err != nil {
			return nil
		}
	}

	prices := make([]float64, 0, len(entries))
	for _, e := range entries {
		price, err := strconv.ParseFloat(e, 64)
		if err != nil {
			price = 0
		}
		prices = append(prices, price)
	}
	return prices
}
