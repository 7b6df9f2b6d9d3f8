package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
	"github.com/OldEphraim/polymarket-market-finder/utils/common"
	"github.com/OldEphraim/polymarket-market-finder/utils/format"
	"github.com/OldEphraim/polymarket-market-finder/utils/market"
	"github.com/OldEphraim/polymarket-market-finder/utils/stream"
)

var watchCmd = &cobra.Command{
	Use:   "watch <slug-or-url> [outcome]...",
	Short: "Stream live best bid/ask for one market",
	Long: `Watch subscribes to the CLOB market websocket for one outcome's tokens and
prints top-of-book updates until interrupted. Without an outcome argument the
first active market in the event is watched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := common.ExtractSlug(args[0])
		outcome := strings.Join(args[1:], " ")

		event, err := gamma.GetEventBySlug(slug)
		if errors.Is(err, clients.ErrEventNotFound) {
			fmt.Printf("Event not found: %s\n", slug)
			return nil
		}
		if err != nil {
			return err
		}

		m := pickMarket(event, outcome)
		if m == nil {
			fmt.Printf("No market to watch in '%s'\n", event.Title)
			return nil
		}

		var tokenIDs []string
		if err := json.Unmarshal([]byte(m.ClobTokenIds), &tokenIDs); err != nil || len(tokenIDs) == 0 {
			return fmt.Errorf("market '%s' has no CLOB token ids", m.Question)
		}

		label := m.GroupItemTitle
		if label == "" {
			label = m.Question
		}
		fmt.Printf("Watching '%s' (%s). Ctrl-C to stop.\n", label, event.Title)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		yesToken := tokenIDs[0]
		err = stream.NewWatcher(logger).Watch(ctx, cfg.WebsocketURL, tokenIDs,
			func(assetID string, bestBid, bestAsk float64, ts time.Time) {
				side := "No "
				if assetID == yesToken {
					side = "Yes"
				}
				fmt.Printf("%s  %s  Bid: %s / Ask: %s\n",
					ts.Format("15:04:05"), side, format.Price(bestBid), format.Price(bestAsk))
			})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// pickMarket resolves the outcome argument, defaulting to the first active
// market when no outcome is given
func pickMarket(event *clients.GammaEvent, outcome string) *clients.GammaMarket {
	if outcome != "" {
		return market.MatchMarket(outcome, event)
	}
	for i := range event.Markets {
		if event.Markets[i].Active {
			return &event.Markets[i]
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
