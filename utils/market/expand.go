// Package market turns a free-text query into a working event lookup: a
// deterministic query expander plus a substring matcher over the bulk event
// listing. Both functions are pure and safe for concurrent use.
package market

import "strings"

// variantSet collects variants, deduplicated, in insertion order
type variantSet struct {
	seen  map[string]bool
	order []string
}

func newVariantSet() *variantSet {
	return &variantSet{seen: make(map[string]bool)}
}

func (vs *variantSet) add(v string) {
	if vs.seen[v] {
		return
	}
	vs.seen[v] = true
	vs.order = append(vs.order, v)
}

func (vs *variantSet) values() []string {
	return vs.order
}

// Expand derives the set of query variants for substring matching. The result
// always contains the lower-cased, trimmed query and its hyphen-slug
// rendering; the expansion rules union in synonyms, league/sport swaps,
// suffix stems, individual words, and filler-stripped forms. Every rule is
// evaluated against the original query text, never against other variants, so
// expansion stays one level deep.
func Expand(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))

	set := newVariantSet()
	set.add(q)
	set.add(strings.ReplaceAll(q, " ", "-"))

	if q == "" {
		return set.values()
	}

	// Synonym substitution
	for key, syns := range synonyms {
		if !strings.Contains(q, key) {
			continue
		}
		for _, syn := range syns {
			set.add(syn)
			set.add(strings.ReplaceAll(q, key, syn))
		}
	}

	// League <-> sport association, both directions
	for league, sports := range leagueSports {
		if strings.Contains(q, league) {
			for _, sport := range sports {
				set.add(sport)
				set.add(strings.ReplaceAll(q, league, sport))
			}
		}
		for _, sport := range sports {
			if strings.Contains(q, sport) {
				set.add(league)
			}
		}
	}

	// Morphological stemming
	words := strings.Fields(q)
	for _, word := range words {
		if len(word) < 4 {
			continue
		}
		for _, p := range stemSuffixes {
			if !strings.HasSuffix(word, p.suffix) {
				continue
			}
			stem := strings.TrimSuffix(word, p.suffix) + p.replacement
			if len(stem) >= 3 {
				set.add(stem)
			}
		}
	}

	// Word splitting
	if len(words) >= 2 {
		for _, word := range words {
			if len(word) >= 3 {
				set.add(word)
			}
		}
	}

	// Filler-phrase stripping
	for _, f := range fillerPhrases {
		if !strings.Contains(q, f.phrase) {
			continue
		}
		stripped := strings.Join(strings.Fields(strings.Replace(q, f.phrase, f.replacement, 1)), " ")
		if stripped != "" {
			set.add(stripped)
		}
	}

	return set.values()
}

// Slugify renders a query the way event slugs are written
func Slugify(query string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(query)), " ", "-")
}
