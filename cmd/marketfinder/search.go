package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
	"github.com/OldEphraim/polymarket-market-finder/utils/market"
)

var searchAllMarkets bool

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search markets with query expansion",
	Long: `Search finds events matching a natural-language query. An exact slug guess
is tried first; otherwise the query is expanded into variants (synonyms,
league names, stems, split words, stripped filler) and matched against the
open-event catalog.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		// Exact slug guess short-circuits the whole pipeline
		event, err := gamma.GetEventBySlug(market.Slugify(query))
		if err == nil {
			if !flagJSON {
				fmt.Printf("** Found: '%s' **\n\n", query)
			}
			return printEvents([]clients.GammaEvent{*event}, searchAllMarkets)
		}
		if !errors.Is(err, clients.ErrEventNotFound) {
			logger.Debug("slug lookup failed, trying bulk search", "err", err)
		}

		events, fromCache, err := candidateEvents(cmd.Context())
		if err != nil {
			return err
		}

		variants := market.Expand(query)
		matches := market.MatchEvents(variants, events)
		logger.Debug("expanded query", "variants", len(variants), "matches", len(matches))

		if store != nil {
			if err := store.RecordSearch(cmd.Context(), query, variants, len(matches)); err != nil {
				logger.Warn("failed to record search", "err", err)
			}
		}

		if !flagJSON {
			fmt.Printf("** Search: '%s' **\n\n", query)
			if fromCache {
				fmt.Println("(API unreachable; searching cached catalog)")
				fmt.Println()
			}
		}

		if len(matches) == 0 {
			if flagJSON {
				return printJSON([]clients.GammaEvent{})
			}
			fmt.Println("No markets found.")
			fmt.Println("\nTip: Try the full slug from the URL, e.g.:")
			fmt.Println("  marketfinder event where-will-giannis-be-traded")
			return nil
		}

		if len(matches) > limit() {
			matches = matches[:limit()]
		}
		return printEvents(matches, searchAllMarkets)
	},
}

// candidateEvents fetches the bulk open-event listing the matcher filters
// over. A fresh listing also refreshes the local cache; when the API is
// unreachable and a cache exists, the cache serves as the candidate list.
func candidateEvents(ctx context.Context) ([]clients.GammaEvent, bool, error) {
	events, err := gamma.ListOpenEvents(cfg.BulkFetchLimit)
	if err == nil {
		if store != nil {
			if cerr := store.UpsertEvents(ctx, events); cerr != nil {
				logger.Warn("failed to refresh event cache", "err", cerr)
			}
		}
		return events, false, nil
	}

	if store != nil {
		cached, cerr := store.CachedEvents(ctx, 24*time.Hour)
		if cerr == nil && len(cached) > 0 {
			logger.Warn("falling back to cached catalog", "err", err, "cached", len(cached))
			return cached, true, nil
		}
	}
	return nil, false, err
}

func init() {
	searchCmd.Flags().BoolVarP(&searchAllMarkets, "all", "a", false, "show every market in matched events")
	rootCmd.AddCommand(searchCmd)
}
