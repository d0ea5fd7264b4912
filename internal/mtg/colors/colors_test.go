package colors

import "testing"

func TestFromSymbols(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
		want    string
	}{
		{
			name:    "simple pair",
			symbols: []string{"B", "G"},
			want:    "BG",
		},
		{
			name:    "normalizes case and whitespace",
			symbols: []string{" b ", "g"},
			want:    "BG",
		},
		{
			name:    "full color names",
			symbols: []string{"White", "Blue"},
			want:    "WU",
		},
		{
			name:    "ignores unknown symbols",
			symbols: []string{"B", "X", ""},
			want:    "B",
		},
		{
			name:    "empty list is colorless",
			symbols: []string{},
			want:    "Colorless",
		},
		{
			name:    "all five in WUBRG order",
			symbols: []string{"G", "R", "B", "U", "W"},
			want:    "WUBRG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromSymbols(tt.symbols)
			if got.String() != tt.want {
				t.Errorf("FromSymbols(%v) = %q, want %q", tt.symbols, got.String(), tt.want)
			}
		})
	}
}

func TestFromManaCostAndText(t *testing.T) {
	tests := []struct {
		name     string
		manaCost string
		text     string
		want     string
	}{
		{
			name:     "plain cost",
			manaCost: "{1}{B}{G}",
			want:     "BG",
		},
		{
			name:     "hybrid symbol in cost",
			manaCost: "{W/U}{W/U}",
			want:     "WU",
		},
		{
			name: "activated ability in rules text",
			text: "{T}, {R}: Deal 1 damage to any target.",
			want: "R",
		},
		{
			name:     "generic cost only is colorless",
			manaCost: "{4}",
			want:     "Colorless",
		},
		{
			name: "empty inputs are colorless",
			want: "Colorless",
		},
		{
			name:     "cost and text combine",
			manaCost: "{2}{U}",
			text:     "{B}: Regenerate this creature.",
			want:     "UB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromManaCostAndText(tt.manaCost, tt.text)
			if got.String() != tt.want {
				t.Errorf("FromManaCostAndText(%q, %q) = %q, want %q",
					tt.manaCost, tt.text, got.String(), tt.want)
			}
		})
	}
}

func TestIsLegal(t *testing.T) {
	golgari := FromSymbols([]string{"B", "G"})
	mono := FromSymbols([]string{"R"})
	fiveColor := FromSymbols(AllColors)

	tests := []struct {
		name string
		card Identity
		lead Identity
		want bool
	}{
		{"exact match", golgari, golgari, true},
		{"subset", FromSymbols([]string{"B"}), golgari, true},
		{"colorless against colored lead", Colorless, golgari, true},
		{"colorless against colorless lead", Colorless, Colorless, true},
		{"off-color card vetoed", mono, golgari, false},
		{"colored card against colorless lead", mono, Colorless, false},
		{"partial overlap is illegal", FromSymbols([]string{"B", "R"}), golgari, false},
		{"anything against five-color lead", golgari, fiveColor, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLegal(tt.card, tt.lead); got != tt.want {
				t.Errorf("IsLegal(%v, %v) = %v, want %v", tt.card, tt.lead, got, tt.want)
			}
		})
	}
}

func TestIdentityCountAndSymbols(t *testing.T) {
	id := FromSymbols([]string{"G", "W"})
	if id.Count() != 2 {
		t.Errorf("Count() = %d, want 2", id.Count())
	}
	symbols := id.Symbols()
	if len(symbols) != 2 || symbols[0] != "W" || symbols[1] != "G" {
		t.Errorf("Symbols() = %v, want [W G]", symbols)
	}
	if !Colorless.IsColorless() {
		t.Error("Colorless.IsColorless() = false")
	}
	if id.IsColorless() {
		t.Error("WG identity reported as colorless")
	}
}
