package market

import (
	"strings"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
)

// MatchEvents filters the bulk event listing down to events where at least one
// variant is a case-insensitive substring of the event's slug, title, or
// description, or of a nested market's question or group item title. The
// result preserves the input order and contains each event at most once.
// No scoring is applied; inclusion is binary.
func MatchEvents(variants []string, events []clients.GammaEvent) []clients.GammaEvent {
	var matched []clients.GammaEvent
	for _, event := range events {
		if eventMatches(variants, event) {
			matched = append(matched, event)
		}
	}
	return matched
}

// eventMatches checks the top-level fields first and short-circuits before
// scanning nested markets.
func eventMatches(variants []string, event clients.GammaEvent) bool {
	slug := strings.ToLower(event.Slug)
	title := strings.ToLower(event.Title)
	desc := strings.ToLower(event.Description)

	for _, v := range variants {
		if strings.Contains(slug, v) || strings.Contains(title, v) || strings.Contains(desc, v) {
			return true
		}
	}

	for _, m := range event.Markets {
		question := strings.ToLower(m.Question)
		label := strings.ToLower(m.GroupItemTitle)
		for _, v := range variants {
			if strings.Contains(question, v) || strings.Contains(label, v) {
				return true
			}
		}
	}

	return false
}

// MatchMarket finds the first market within an event whose question or group
// item title contains the outcome string, case-insensitively. Returns nil when
// nothing matches.
func MatchMarket(outcome string, event *clients.GammaEvent) *clients.GammaMarket {
	needle := strings.ToLower(strings.TrimSpace(outcome))
	if needle == "" {
		return nil
	}
	for i := range event.Markets {
		m := &event.Markets[i]
		if strings.Contains(strings.ToLower(m.GroupItemTitle), needle) ||
			strings.Contains(strings.ToLower(m.Question), needle) {
			return m
		}
	}
	return nil
}
