package stream

import (
	"encoding/json"
	"strconv"
	"strings"
)

type bookMsg struct {
	TokenID string               `json:"token_id"`
	AssetID string               `json:"asset_id"`
	Bids    [][2]json.RawMessage `json:"bids"` // [["0.52","100"], ...]
	Asks    [][2]json.RawMessage `json:"asks"`
}

// Top-level shape with string fields, e.g.
// {"price_changes":[...], "timestamp":"1730612345678"}
type gammaPriceChange struct {
	Market       string          `json:"market"`
	PriceChanges []gammaPCChange `json:"price_changes"`
	Timestamp    string          `json:"timestamp"` // ms as string
	EventType    string          `json:"event_type"`
}

type gammaPCChange struct {
	AssetID string `json:"asset_id"`
	Price   string `json:"price"`
	BestBid string `json:"best_bid"`
	BestAsk string `json:"best_ask"`
}

// Nested shape: {"token_id":"...", "price_changes":[{"best_bid":0.5,"best_ask":0.51}]}
type priceChangeMsg struct {
	TokenID string       `json:"token_id"`
	Changes []bestChange `json:"price_changes"`
}

type bestChange struct {
	BestBid float64 `json:"best_bid"`
	BestAsk float64 `json:"best_ask"`
}

func topOfBook(levels [][2]json.RawMessage) float64 {
	if len(levels) == 0 || len(levels[0]) < 1 {
		return 0
	}
	// Often strings; try string first
	var s string
	if err := json.Unmarshal(levels[0][0], &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	var f float64
	_ = json.Unmarshal(levels[0][0], &f)
	return f
}

func firstPresent(a, b json.RawMessage) json.RawMessage {
	if len(a) > 0 {
		return a
	}
	return b
}

func readString(m map[string]json.RawMessage, key string) string {
	if raw, ok := m[key]; ok && len(raw) > 0 {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func f64s(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
