package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
)

// categoryKeywords maps each named category to the keywords matched against
// event titles and tag labels. An unknown category matches on its own name.
var categoryKeywords = map[string][]string{
	"politics":      {"politics", "election", "trump", "biden", "congress"},
	"crypto":        {"crypto", "bitcoin", "ethereum", "btc", "eth"},
	"sports":        {"sports", "nba", "nfl", "mlb", "soccer"},
	"tech":          {"tech", "ai", "apple", "google", "microsoft"},
	"entertainment": {"entertainment", "movie", "oscar", "grammy"},
	"science":       {"science", "space", "nasa", "climate"},
	"business":      {"business", "fed", "interest", "stock", "market"},
}

var categoryCmd = &cobra.Command{
	Use:   "category <name>",
	Short: "Show active markets in a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(strings.TrimSpace(args[0]))
		if name == "" {
			return fmt.Errorf("category name is empty")
		}
		keywords, ok := categoryKeywords[name]
		if !ok {
			keywords = []string{name}
		}

		events, err := gamma.ListTrendingEvents(100)
		if err != nil {
			return err
		}

		var matches []clients.GammaEvent
		for _, event := range events {
			if eventInCategory(event, keywords) {
				matches = append(matches, event)
			}
		}

		if !flagJSON {
			fmt.Printf("** Category: %s **\n\n", strings.ToUpper(name[:1])+name[1:])
		}

		if len(matches) == 0 {
			if flagJSON {
				return printJSON([]clients.GammaEvent{})
			}
			fmt.Printf("No markets found for '%s'\n", args[0])
			fmt.Println("\nAvailable categories: politics, crypto, sports, tech, entertainment, science, business")
			return nil
		}

		if len(matches) > limit() {
			matches = matches[:limit()]
		}
		return printEvents(matches, false)
	},
}

func eventInCategory(event clients.GammaEvent, keywords []string) bool {
	title := strings.ToLower(event.Title)

	var labels []string
	for _, tag := range event.Tags {
		labels = append(labels, strings.ToLower(tag.Label))
	}
	tagText := strings.Join(labels, " ")

	for _, kw := range keywords {
		if strings.Contains(title, kw) || strings.Contains(tagText, kw) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(categoryCmd)
}
