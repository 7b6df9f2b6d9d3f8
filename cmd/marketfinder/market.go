package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
	"github.com/OldEphraim/polymarket-market-finder/utils/common"
	"github.com/OldEphraim/polymarket-market-finder/utils/format"
	"github.com/OldEphraim/polymarket-market-finder/utils/market"
)

var marketCmd = &cobra.Command{
	Use:   "market <slug-or-url> [outcome]...",
	Short: "Show one outcome within an event, or all of them",
	Args:  cobra.MinimumNArgs(1),
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

		if outcome == "" {
			if flagJSON {
				return printJSON(event.Markets)
			}
			fmt.Printf("** %s **\n\n", event.Title)
			for i := range event.Markets {
				fmt.Println(format.Market(&event.Markets[i], true))
				fmt.Println()
			}
			return nil
		}

		m := market.MatchMarket(outcome, event)
		if m == nil {
			fmt.Printf("Outcome '%s' not found\n", outcome)
			fmt.Println("\nAvailable outcomes:")
			for i, mk := range event.Markets {
				if i == 15 {
					break
				}
				name := mk.GroupItemTitle
				if name == "" {
					name = common.TruncateString(mk.Question, 40)
				}
				fmt.Printf("  - %s\n", name)
			}
			return nil
		}

		if flagJSON {
			return printJSON(m)
		}
		fmt.Println(format.Market(m, true))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)
}
