package market

import (
	"reflect"
	"testing"
)

func contains(variants []string, want string) bool {
	for _, v := range variants {
		if v == want {
			return true
		}
	}
	return false
}

func TestExpandAlwaysIncludesNormalizedQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"lower-cased", "Super Bowl", []string{"super bowl", "super-bowl"}},
		{"trimmed", "  march madness ", []string{"march madness", "march-madness"}},
		{"single word", "bitcoin", []string{"bitcoin"}},
		{"already slugged", "super-bowl-winner", []string{"super-bowl-winner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.query)
			if len(got) == 0 {
				t.Fatalf("Expand(%q) returned empty set", tt.query)
			}
			for _, want := range tt.want {
				if !contains(got, want) {
					t.Errorf("Expand(%q) = %v, missing %q", tt.query, got, want)
				}
			}
		})
	}
}

func TestExpandEmptyQuery(t *testing.T) {
	got := Expand("")
	if !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("Expand(\"\") = %v, want [\"\"]", got)
	}

	got = Expand("   ")
	if !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("Expand(\"   \") = %v, want [\"\"]", got)
	}
}

func TestExpandSynonyms(t *testing.T) {
	got := Expand("super bowl odds")

	for _, want := range []string{"nfl", "championship", "nfl odds"} {
		if !contains(got, want) {
			t.Errorf("Expand(%q) missing synonym variant %q (got %v)", "super bowl odds", want, got)
		}
	}
}

func TestExpandSynonymKeysCheckedIndependently(t *testing.T) {
	// "eth" is a substring of "ethereum"; both keys must still fire against
	// the original query text.
	got := Expand("ethereum")
	if !contains(got, "eth") {
		t.Errorf("Expand(\"ethereum\") missing %q: %v", "eth", got)
	}
	if !contains(got, "crypto") {
		t.Errorf("Expand(\"ethereum\") missing %q: %v", "crypto", got)
	}

	got = Expand("eth")
	if !contains(got, "ethereum") {
		t.Errorf("Expand(\"eth\") missing %q: %v", "ethereum", got)
	}
}

func TestExpandLeagueAssociation(t *testing.T) {
	got := Expand("nba finals")
	if !contains(got, "basketball") {
		t.Errorf("Expand(\"nba finals\") missing sport name: %v", got)
	}
	if !contains(got, "basketball finals") {
		t.Errorf("Expand(\"nba finals\") missing league-replaced query: %v", got)
	}

	// Symmetric direction: sport name adds the league key
	got = Expand("pro basketball champion")
	if !contains(got, "nba") {
		t.Errorf("Expand(\"pro basketball champion\") missing league key: %v", got)
	}
}

func TestExpandStemming(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"trading", "trad"},
		{"elected", "elect"},
		{"winner", "winn"},
		{"markets", "market"},
	}
	for _, tt := range tests {
		got := Expand(tt.query)
		if !contains(got, tt.want) {
			t.Errorf("Expand(%q) missing stem %q: %v", tt.query, tt.want, got)
		}
	}

	// Words shorter than 4 characters are never stemmed
	got := Expand("fed cut")
	if contains(got, "fe") {
		t.Errorf("Expand(\"fed cut\") stemmed a 3-letter word: %v", got)
	}

	// Stems shorter than 3 characters are dropped
	got = Expand("being here")
	if contains(got, "be") {
		t.Errorf("Expand(\"being here\") kept a 2-letter stem: %v", got)
	}
}

func TestExpandWordSplitting(t *testing.T) {
	got := Expand("chiefs win today")
	for _, want := range []string{"chiefs", "win", "today"} {
		if !contains(got, want) {
			t.Errorf("Expand missing split word %q: %v", want, got)
		}
	}

	// Single-word queries are not split (nothing to split), and two-letter
	// words are never added on their own.
	got = Expand("go big")
	if contains(got, "go") {
		t.Errorf("Expand(\"go big\") added a 2-letter word: %v", got)
	}
}

func TestExpandFillerStripping(t *testing.T) {
	got := Expand("who will win march madness")
	if !contains(got, "win march madness") {
		t.Errorf("Expand missing filler-stripped variant: %v", got)
	}

	got = Expand("what are the odds of a rate cut")
	if !contains(got, "the odds of a rate cut") {
		t.Errorf("Expand missing \"what are\"-stripped variant: %v", got)
	}
	if !contains(got, "what are of a rate cut") {
		t.Errorf("Expand missing \"the odds\"-stripped variant: %v", got)
	}

	// Contraction rewrites to the literal "what is"
	got = Expand("what's the fed doing")
	if !contains(got, "what is the fed doing") {
		t.Errorf("Expand missing contraction rewrite: %v", got)
	}
}

func TestExpandDeterministic(t *testing.T) {
	a := Expand("who will win the super bowl")
	b := Expand("who will win the super bowl")
	if len(a) != len(b) {
		t.Fatalf("Expand not deterministic: %d vs %d variants", len(a), len(b))
	}
	for _, v := range a {
		if !contains(b, v) {
			t.Errorf("Expand not deterministic: second run missing %q", v)
		}
	}
}

func TestExpandNoDuplicates(t *testing.T) {
	got := Expand("will the nfl championship game go to overtime")
	seen := make(map[string]bool, len(got))
	for _, v := range got {
		if seen[v] {
			t.Errorf("Expand returned duplicate variant %q", v)
		}
		seen[v] = true
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("Super Bowl Winner"); got != "super-bowl-winner" {
		t.Errorf("Slugify = %q, want %q", got, "super-bowl-winner")
	}
}
