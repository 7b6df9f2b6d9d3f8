package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
)

func TestMatchEventsTopLevelFields(t *testing.T) {
	events := []clients.GammaEvent{
		{Slug: "super-bowl-winner", Title: "Super Bowl Winner"},
		{Slug: "rate-decision", Title: "Fed decision", Description: "Will the fed cut rates in September?"},
		{Slug: "unrelated", Title: "Something else"},
	}

	got := MatchEvents([]string{"super bowl", "super-bowl"}, events)
	require.Len(t, got, 1)
	assert.Equal(t, "super-bowl-winner", got[0].Slug)

	got = MatchEvents([]string{"cut rates"}, events)
	require.Len(t, got, 1)
	assert.Equal(t, "rate-decision", got[0].Slug)
}

func TestMatchEventsNestedMarkets(t *testing.T) {
	events := []clients.GammaEvent{
		{
			Slug:  "x",
			Title: "Unrelated",
			Markets: []clients.GammaMarket{
				{Question: "Will the Chiefs win the NFL championship?"},
			},
		},
		{
			Slug:  "y",
			Title: "Also unrelated",
			Markets: []clients.GammaMarket{
				{Question: "Something else entirely", GroupItemTitle: "Warriors"},
			},
		},
	}

	got := MatchEvents([]string{"chiefs"}, events)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Slug)

	// Group item title is matchable too
	got = MatchEvents([]string{"warriors"}, events)
	require.Len(t, got, 1)
	assert.Equal(t, "y", got[0].Slug)
}

func TestMatchEventsOrderPreserved(t *testing.T) {
	events := []clients.GammaEvent{
		{Slug: "r1", Title: "bitcoin above 100k"},
		{Slug: "r2", Title: "unrelated"},
		{Slug: "r3", Title: "bitcoin etf approval"},
	}

	got := MatchEvents([]string{"bitcoin"}, events)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].Slug)
	assert.Equal(t, "r3", got[1].Slug)
}

func TestMatchEventsDedup(t *testing.T) {
	// Title and a nested market both match; the event appears exactly once.
	events := []clients.GammaEvent{
		{
			Slug:  "nba-finals",
			Title: "NBA Finals Winner",
			Markets: []clients.GammaMarket{
				{Question: "Will the Celtics win the NBA finals?"},
				{Question: "Will the Lakers win the NBA finals?"},
			},
		},
	}

	got := MatchEvents([]string{"nba", "finals", "celtics"}, events)
	require.Len(t, got, 1)
	assert.Equal(t, "nba-finals", got[0].Slug)
}

func TestMatchEventsIdempotent(t *testing.T) {
	events := []clients.GammaEvent{
		{Slug: "a", Title: "bitcoin"},
		{Slug: "b", Title: "nothing"},
		{Slug: "c", Description: "a bitcoin market"},
	}
	variants := Expand("bitcoin")

	once := MatchEvents(variants, events)
	twice := MatchEvents(variants, once)
	assert.Equal(t, once, twice)
}

func TestMatchEventsEmptyInputs(t *testing.T) {
	assert.Empty(t, MatchEvents(Expand("bitcoin"), nil))
	assert.Empty(t, MatchEvents(Expand("zzzzxq"), []clients.GammaEvent{{Slug: "a", Title: "b"}}))
}

func TestMatchEventsCaseInsensitive(t *testing.T) {
	events := []clients.GammaEvent{
		{Slug: "a", Title: "BITCOIN Above $100K"},
	}
	got := MatchEvents(Expand("Bitcoin"), events)
	require.Len(t, got, 1)
}

func TestSearchPipelineEndToEnd(t *testing.T) {
	events := []clients.GammaEvent{
		{Slug: "super-bowl-winner", Title: "Super Bowl Winner"},
		{
			Slug:  "x",
			Title: "Unrelated",
			Markets: []clients.GammaMarket{
				{Question: "Will the Chiefs win the NFL championship?"},
			},
		},
	}

	got := MatchEvents(Expand("super bowl"), events)
	require.Len(t, got, 2, "title match plus synonym match through the nested question")
	assert.Equal(t, "super-bowl-winner", got[0].Slug)
	assert.Equal(t, "x", got[1].Slug)
}

func TestMatchMarket(t *testing.T) {
	event := &clients.GammaEvent{
		Title: "NBA Champion",
		Markets: []clients.GammaMarket{
			{Question: "Will the Celtics win?", GroupItemTitle: "Celtics"},
			{Question: "Will the Warriors win?", GroupItemTitle: "Warriors"},
		},
	}

	m := MatchMarket("warriors", event)
	require.NotNil(t, m)
	assert.Equal(t, "Warriors", m.GroupItemTitle)

	assert.Nil(t, MatchMarket("knicks", event))
	assert.Nil(t, MatchMarket("", event))
}
