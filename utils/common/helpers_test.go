package common

import (
	"encoding/json"
	"testing"
)

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString = %q, want unchanged", got)
	}
	if got := TruncateString("a very long market question", 10); got != "a very ..." {
		t.Errorf("TruncateString = %q", got)
	}
}

func TestExtractSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain slug", "super-bowl-winner", "super-bowl-winner"},
		{"event url", "https://polymarket.com/event/super-bowl-winner", "super-bowl-winner"},
		{"event url trailing slash", "https://polymarket.com/event/super-bowl-winner/", "super-bowl-winner"},
		{"bare path", "https://polymarket.com/who-wins", "who-wins"},
		{"no scheme", "polymarket.com/event/where-will-giannis-be-traded", "where-will-giannis-be-traded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSlug(tt.input); got != tt.want {
				t.Errorf("ExtractSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOutcomePrices(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []float64
	}{
		{"plain array", `["0.65","0.35"]`, []float64{0.65, 0.35}},
		{"string-encoded array", `"[\"0.65\", \"0.35\"]"`, []float64{0.65, 0.35}},
		{"garbage", `{"not":"prices"}`, nil},
		{"empty", ``, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOutcomePrices(json.RawMessage(tt.raw))
			if len(got) != len(tt.want) {
				t.Fatalf("ParseOutcomePrices(%s) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseOutcomePrices(%s)[%d] = %v, want %v", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}
