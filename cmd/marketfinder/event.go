package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
	"github.com/OldEphraim/polymarket-market-finder/utils/common"
)

var eventCmd = &cobra.Command{
	Use:   "event <slug-or-url>",
	Short: "Show one event by slug or polymarket.com URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := common.ExtractSlug(args[0])

		event, err := gamma.GetEventBySlug(slug)
		if errors.Is(err, clients.ErrEventNotFound) {
			// Partial slug match over the open catalog
			event, err = findByPartialSlug(slug)
			if errors.Is(err, clients.ErrEventNotFound) {
				fmt.Printf("Event not found: %s\n", slug)
				fmt.Println("\nTip: Search for it first:")
				fmt.Printf("  marketfinder search %s\n", strings.SplitN(slug, "-", 2)[0])
				return nil
			}
		}
		if err != nil {
			return err
		}

		return printEvents([]clients.GammaEvent{*event}, true)
	},
}

func findByPartialSlug(slug string) (*clients.GammaEvent, error) {
	events, err := gamma.ListOpenEvents(cfg.BulkFetchLimit)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(slug)
	for i := range events {
		if strings.Contains(strings.ToLower(events[i].Slug), needle) {
			return &events[i], nil
		}
	}
	return nil, clients.ErrEventNotFound
}

func init() {
	rootCmd.AddCommand(eventCmd)
}
