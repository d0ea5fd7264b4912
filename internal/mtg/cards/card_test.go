package cards

import (
	"testing"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/colors"
)

func TestCanBeLead(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want bool
	}{
		{
			name: "legendary creature",
			card: Card{TypeLine: "Legendary Creature — Human Shaman"},
			want: true,
		},
		{
			name: "legendary planeswalker",
			card: Card{TypeLine: "Legendary Planeswalker — Teferi"},
			want: true,
		},
		{
			name: "plain creature",
			card: Card{TypeLine: "Creature — Snake Shaman"},
			want: false,
		},
		{
			name: "legendary artifact",
			card: Card{TypeLine: "Legendary Artifact"},
			want: false,
		},
		{
			name: "commander by rules text",
			card: Card{
				TypeLine:   "Legendary Artifact",
				OracleText: "This card can be your commander.",
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.CanBeLead(); got != tt.want {
				t.Errorf("CanBeLead() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBasicLand(t *testing.T) {
	basic := Card{TypeLine: "Basic Land — Forest"}
	if !basic.IsBasicLand() {
		t.Error("basic Forest not detected as basic land")
	}
	nonbasic := Card{TypeLine: "Land"}
	if nonbasic.IsBasicLand() {
		t.Error("plain Land detected as basic land")
	}
}

func TestMechanicSetNormalizes(t *testing.T) {
	card := Card{Mechanics: []string{" Sacrifice ", "TOKENS", "", "tokens"}}
	set := card.MechanicSet()
	if len(set) != 2 {
		t.Fatalf("MechanicSet() has %d entries, want 2", len(set))
	}
	for _, want := range []string{"sacrifice", "tokens"} {
		if _, ok := set[want]; !ok {
			t.Errorf("MechanicSet() missing %q", want)
		}
	}
}

func TestRarityRank(t *testing.T) {
	order := []string{"mythic", "rare", "uncommon", "common", "special"}
	for i := 0; i < len(order)-1; i++ {
		if RarityRank(order[i]) <= RarityRank(order[i+1]) {
			t.Errorf("RarityRank(%q) should outrank RarityRank(%q)", order[i], order[i+1])
		}
	}
	if RarityRank(" Rare ") != RarityRank("rare") {
		t.Error("RarityRank should normalize case and whitespace")
	}
}

func TestArchetypeFlags(t *testing.T) {
	f := ArchetypesFromNames([]string{"aristocrats", "Tokens", " ramp "})
	if f.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", f.Count())
	}

	active := f.Active()
	want := []string{"aristocrats", "ramp", "tokens"}
	if len(active) != len(want) {
		t.Fatalf("Active() = %v, want %v", active, want)
	}
	for i := range want {
		if active[i] != want[i] {
			t.Errorf("Active()[%d] = %q, want %q", i, active[i], want[i])
		}
	}

	other := ArchetypesFromNames([]string{"tokens", "graveyard"})
	if n := f.Intersection(other); n != 1 {
		t.Errorf("Intersection() = %d, want 1", n)
	}
	if n := f.Intersection(ArchetypeFlags{}); n != 0 {
		t.Errorf("Intersection with empty flags = %d, want 0", n)
	}
}

func TestDetectMechanics(t *testing.T) {
	mechanics := DetectMechanics("Flying. Sacrifice a creature: draw a card.")
	set := make(map[string]bool)
	for _, m := range mechanics {
		set[m] = true
	}
	for _, want := range []string{"flying", "sacrifice", "draw"} {
		if !set[want] {
			t.Errorf("DetectMechanics missing %q in %v", want, mechanics)
		}
	}
	if DetectMechanics("") != nil {
		t.Error("DetectMechanics(\"\") should be nil")
	}
}

func TestDetectArchetypes(t *testing.T) {
	f := DetectArchetypes(
		"Creature — Elf Druid",
		"{T}: Add {G}. Search your library for a land card.",
		1,
	)
	if !f.Ramp {
		t.Error("ramp text not flagged as ramp")
	}
	if f.Finisher {
		t.Error("one-drop flagged as finisher")
	}

	finisher := DetectArchetypes("Sorcery", "Deal 10 damage to any target.", 8)
	if !finisher.Finisher {
		t.Error("eight-drop not flagged as finisher")
	}
}

func TestCardDefaults(t *testing.T) {
	// A zero card must behave safely: colorless, no mechanics, no flags.
	var c Card
	if !c.Identity.IsColorless() {
		t.Error("zero card should be colorless")
	}
	if !colors.IsLegal(c.Identity, colors.Colorless) {
		t.Error("colorless zero card should be legal against a colorless lead")
	}
	if len(c.MechanicSet()) != 0 {
		t.Error("zero card should have no mechanics")
	}
	if c.Archetypes.Count() != 0 {
		t.Error("zero card should have no archetype flags")
	}
}
