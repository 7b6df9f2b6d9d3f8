// Package format renders events and markets as human-readable text for the
// CLI. It consumes Gamma records as-is and never mutates them.
package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
	"github.com/OldEphraim/polymarket-market-finder/utils/common"
)

// Price formats a probability as a percentage
func Price(price float64) string {
	return fmt.Sprintf("%.1f%%", price*100)
}

// Volume formats a dollar volume in human readable form
func Volume(volume float64) string {
	switch {
	case volume >= 1_000_000:
		return fmt.Sprintf("$%.1fM", volume/1_000_000)
	case volume >= 1_000:
		return fmt.Sprintf("$%.1fK", volume/1_000)
	default:
		return fmt.Sprintf("$%.0f", volume)
	}
}

// Change formats a price delta with a direction arrow. A zero delta renders
// empty, since Gamma omits the field for markets without recent movement.
func Change(change float64) string {
	pct := change * 100
	switch {
	case pct > 0:
		return fmt.Sprintf("↑%.1f%%", pct)
	case pct < 0:
		return fmt.Sprintf("↓%.1f%%", -pct)
	default:
		return ""
	}
}

// TimeRemaining formats the time until the end date in coarse buckets
func TimeRemaining(end *time.Time) string {
	return timeRemainingAt(end, time.Now().UTC())
}

func timeRemainingAt(end *time.Time, now time.Time) string {
	if end == nil {
		return ""
	}

	delta := end.Sub(now)
	if delta < 0 {
		return "Ended"
	}

	days := int(delta.Hours() / 24)
	switch {
	case days == 0:
		hours := int(delta.Hours())
		if hours == 0 {
			return fmt.Sprintf("Ends in %dm", int(delta.Minutes()))
		}
		return fmt.Sprintf("Ends in %dh", hours)
	case days == 1:
		return "Ends tomorrow"
	case days < 7:
		return fmt.Sprintf("Ends in %dd", days)
	case days < 30:
		return fmt.Sprintf("Ends in %dw", days/7)
	default:
		return end.Format("Jan 02, 2006")
	}
}

// eventMarketLimit caps how many markets a non-verbose event listing shows
const eventMarketLimit = 10

// Event formats an event with its markets, sorted by yes price descending.
// Inactive markets with no volume are skipped. Unless showAll is set, only
// the top markets are listed.
func Event(event *clients.GammaEvent, showAll bool) string {
	var b strings.Builder

	title := event.Title
	if title == "" {
		title = "Unknown Event"
	}
	fmt.Fprintf(&b, "** %s **\n", title)

	if event.Volume > 0 {
		fmt.Fprintf(&b, "   Volume: %s", Volume(event.Volume))
		if event.Volume24hr > 0 {
			fmt.Fprintf(&b, " (24h: %s)", Volume(event.Volume24hr))
		}
		b.WriteString("\n")
	}

	if left := TimeRemaining(event.EndDate); left != "" {
		fmt.Fprintf(&b, "   %s\n", left)
	}

	type pricedMarket struct {
		market clients.GammaMarket
		yes    float64
	}
	var priced []pricedMarket
	for _, m := range event.Markets {
		if !m.Active && m.VolumeNum == 0 {
			continue
		}
		yes := 0.0
		if prices := common.ParseOutcomePrices(m.OutcomePrices); len(prices) > 0 {
			yes = prices[0]
		}
		priced = append(priced, pricedMarket{market: m, yes: yes})
	}
	sort.SliceStable(priced, func(i, j int) bool { return priced[i].yes > priced[j].yes })

	if len(priced) > 0 {
		fmt.Fprintf(&b, "   Markets: %d\n", len(priced))

		display := len(priced)
		if !showAll && display > eventMarketLimit {
			display = eventMarketLimit
		}
		for _, pm := range priced[:display] {
			name := pm.market.GroupItemTitle
			if name == "" {
				name = common.TruncateString(pm.market.Question, 40)
			}
			if pm.yes > 0 {
				line := fmt.Sprintf("   - %s: %s", name, Price(pm.yes))
				if change := Change(pm.market.OneDayPriceChange); change != "" {
					line += " " + change
				}
				line += fmt.Sprintf(" (%s)", Volume(pm.market.VolumeNum))
				b.WriteString(line + "\n")
			} else {
				fmt.Fprintf(&b, "   - %s\n", name)
			}
		}
		if len(priced) > display {
			fmt.Fprintf(&b, "   ... and %d more\n", len(priced)-display)
		}
	}

	if event.Slug != "" {
		fmt.Fprintf(&b, "   polymarket.com/event/%s\n", event.Slug)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Market formats a single market for display. Verbose adds longer-horizon
// price changes and liquidity.
func Market(m *clients.GammaMarket, verbose bool) string {
	var b strings.Builder

	question := m.Question
	if question == "" {
		question = m.GroupItemTitle
	}
	if question == "" {
		question = "Unknown"
	}
	fmt.Fprintf(&b, "** %s **\n", question)

	if prices := common.ParseOutcomePrices(m.OutcomePrices); len(prices) >= 2 {
		line := fmt.Sprintf("   Yes: %s", Price(prices[0]))
		if change := Change(m.OneDayPriceChange); change != "" {
			line += fmt.Sprintf(" (%s)", change)
		}
		line += fmt.Sprintf(" | No: %s", Price(prices[1]))
		b.WriteString(line + "\n")
	}

	if m.BestBid > 0 && m.BestAsk > 0 && m.BestAsk > m.BestBid {
		spread := m.BestAsk - m.BestBid
		fmt.Fprintf(&b, "   Spread: %.1f%% (Bid: %s / Ask: %s)\n",
			spread*100, Price(m.BestBid), Price(m.BestAsk))
	}

	if m.VolumeNum > 0 {
		fmt.Fprintf(&b, "   Volume: %s", Volume(m.VolumeNum))
		if m.Volume24hr > 0 {
			fmt.Fprintf(&b, " (24h: %s)", Volume(m.Volume24hr))
		}
		b.WriteString("\n")
	}

	if left := TimeRemaining(m.EndDate); left != "" {
		fmt.Fprintf(&b, "   %s\n", left)
	}

	if verbose {
		week := Change(m.OneWeekPriceChange)
		month := Change(m.OneMonthPriceChange)
		if week != "" || month != "" {
			if week == "" {
				week = "N/A"
			}
			if month == "" {
				month = "N/A"
			}
			fmt.Fprintf(&b, "   1w: %s | 1m: %s\n", week, month)
		}
		if m.LiquidityNum > 0 {
			fmt.Fprintf(&b, "   Liquidity: %s\n", Volume(m.LiquidityNum))
		}
	}

	if m.Slug != "" {
		fmt.Fprintf(&b, "   polymarket.com/event/%s\n", m.Slug)
	}

	return strings.TrimRight(b.String(), "\n")
}
