package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuotesBook(t *testing.T) {
	frame := []byte(`{
		"event_type": "book",
		"asset_id": "token-1",
		"bids": [["0.52","100"],["0.51","250"]],
		"asks": [["0.54","80"]]
	}`)

	quotes := parseQuotes(frame)
	require.Len(t, quotes, 1)
	assert.Equal(t, "token-1", quotes[0].assetID)
	assert.Equal(t, 0.52, quotes[0].bestBid)
	assert.Equal(t, 0.54, quotes[0].bestAsk)
}

func TestParseQuotesPriceChangeStringVariant(t *testing.T) {
	frame := []byte(`{
		"event_type": "price_change",
		"timestamp": "1730612345678",
		"price_changes": [
			{"asset_id": "token-1", "best_bid": "0.40", "best_ask": "0.42"},
			{"asset_id": "token-2", "best_bid": "0.10", "best_ask": "0.12"}
		]
	}`)

	quotes := parseQuotes(frame)
	require.Len(t, quotes, 2)
	assert.Equal(t, "token-1", quotes[0].assetID)
	assert.Equal(t, 0.40, quotes[0].bestBid)
	assert.Equal(t, 0.42, quotes[0].bestAsk)

	want := time.Unix(0, 1730612345678*int64(time.Millisecond))
	assert.Equal(t, want, quotes[0].ts)
}

func TestParseQuotesPriceChangeNestedVariant(t *testing.T) {
	frame := []byte(`{
		"event": "price_change",
		"data": {
			"token_id": "token-9",
			"price_changes": [{"best_bid": 0.61, "best_ask": 0.63}]
		}
	}`)

	quotes := parseQuotes(frame)
	require.Len(t, quotes, 1)
	assert.Equal(t, "token-9", quotes[0].assetID)
	assert.Equal(t, 0.61, quotes[0].bestBid)
}

func TestParseQuotesIgnoresOtherFrames(t *testing.T) {
	assert.Nil(t, parseQuotes([]byte(`not json`)))
	assert.Nil(t, parseQuotes([]byte(`{"event_type":"last_trade_price","price":"0.5"}`)))
	assert.Nil(t, parseQuotes([]byte(`{"no_event_key": true}`)))

	// Book with one empty side carries no usable quote
	assert.Nil(t, parseQuotes([]byte(`{
		"event_type": "book",
		"asset_id": "token-1",
		"bids": [["0.52","100"]],
		"asks": []
	}`)))
}
