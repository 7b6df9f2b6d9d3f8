// Package stream tails the CLOB market websocket and surfaces best bid/ask
// updates for a set of outcome tokens.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// QuoteFunc receives one top-of-book update per asset.
type QuoteFunc func(assetID string, bestBid, bestAsk float64, ts time.Time)

// Watcher is the public interface the watch command uses.
type Watcher interface {
	Watch(ctx context.Context, url string, assetIDs []string, onQuote QuoteFunc) error
}

func NewWatcher(log *slog.Logger) Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &clobWS{log: log}
}

type clobWS struct {
	log *slog.Logger
}

func (c *clobWS) Watch(ctx context.Context, url string, assetIDs []string, onQuote QuoteFunc) error {
	if url == "" {
		return errors.New("ws url is empty")
	}
	if len(assetIDs) == 0 {
		return errors.New("no asset ids to watch")
	}

	dialer := websocket.Dialer{
		Proxy:             http.ProxyFromEnvironment,
		HandshakeTimeout:  10 * time.Second,
		EnableCompression: true,
	}

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Subscribe: {"type":"market","assets_ids":[...]}
	sub := map[string]any{"type": "market", "assets_ids": assetIDs}
	if err := conn.WriteJSON(sub); err != nil {
		return err
	}
	c.log.Debug("subscribed", "url", url, "assets", len(assetIDs))

	// Ping loop
	pingCtx, cancelPing := context.WithCancel(ctx)
	defer cancelPing()
	go func() {
		t := time.NewTicker(10 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-pingCtx.Done():
				return
			case <-t.C:
				_ = conn.WriteMessage(websocket.TextMessage, []byte("PING"))
			}
		}
	}()

	// Close the connection when ctx ends so ReadMessage unblocks
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		// PONGs are plain text
		if typ == websocket.TextMessage && string(data) == "PONG" {
			continue
		}

		for _, q := range parseQuotes(data) {
			onQuote(q.assetID, q.bestBid, q.bestAsk, q.ts)
		}
	}
}

type quote struct {
	assetID string
	bestBid float64
	bestAsk float64
	ts      time.Time
}

// parseQuotes extracts top-of-book updates from one websocket frame. Frames
// that carry no quote (trades, unknown events, malformed JSON) yield nil.
func parseQuotes(data []byte) []quote {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}

	// Event discriminator can be "type", "event", or "event_type"
	et := readString(env, "type")
	if et == "" {
		et = readString(env, "event")
	}
	if et == "" {
		et = readString(env, "event_type")
	}

	switch et {
	case "book":
		raw := firstPresent(env["data"], env["payload"])
		if len(raw) == 0 {
			raw = data
		}
		var b bookMsg
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil
		}
		asset := firstNonEmpty(b.TokenID, b.AssetID)
		bid, ask := topOfBook(b.Bids), topOfBook(b.Asks)
		if asset == "" || bid <= 0 || ask <= 0 {
			return nil
		}
		return []quote{{assetID: asset, bestBid: bid, bestAsk: ask, ts: time.Now()}}

	case "price_change":
		// Variant A: top-level with string fields
		var gpc gammaPriceChange
		if err := json.Unmarshal(data, &gpc); err == nil && len(gpc.PriceChanges) > 0 {
			ts := time.Now()
			if ms, err := strconv.ParseInt(gpc.Timestamp, 10, 64); err == nil && ms > 0 {
				ts = time.Unix(0, ms*int64(time.Millisecond))
			}
			var out []quote
			for _, ch := range gpc.PriceChanges {
				bid, ask := f64s(ch.BestBid), f64s(ch.BestAsk)
				if bid > 0 && ask > 0 {
					out = append(out, quote{assetID: ch.AssetID, bestBid: bid, bestAsk: ask, ts: ts})
				}
			}
			return out
		}
		// Variant B: nested payload
		raw := firstPresent(env["data"], env["payload"])
		if len(raw) == 0 {
			return nil
		}
		var pc priceChangeMsg
		if err := json.Unmarshal(raw, &pc); err != nil {
			return nil
		}
		var out []quote
		for _, ch := range pc.Changes {
			if ch.BestBid > 0 && ch.BestAsk > 0 {
				out = append(out, quote{assetID: pc.TokenID, bestBid: ch.BestBid, bestAsk: ch.BestAsk, ts: time.Now()})
			}
		}
		return out
	}

	return nil
}
