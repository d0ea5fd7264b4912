package scryfall

import (
	"testing"
	"time"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/colors"
)

func strPtr(s string) *string { return &s }

func TestToCardTrustsColorIdentityField(t *testing.T) {
	sc := &Card{
		Name:          "Meren of Clan Nel Toth",
		ManaCost:      "{3}{B}{G}",
		CMC:           5,
		TypeLine:      "Legendary Creature - Human Shaman",
		OracleText:    "Sacrifice a creature: return it to the battlefield.",
		ColorIdentity: []string{"B", "G"},
		SetCode:       "c15",
		Rarity:        "mythic",
		ReleasedAt:    "2015-11-13",
		Legalities:    Legalities{Commander: "legal"},
		Prices:        Prices{USD: strPtr("4.50")},
	}

	card := sc.ToCard()

	want := colors.FromSymbols([]string{"B", "G"})
	if card.Identity != want {
		t.Errorf("Identity = %v, want %v", card.Identity, want)
	}
	if !card.CommanderLegal {
		t.Error("CommanderLegal = false")
	}
	if card.Price == nil || *card.Price != 4.5 {
		t.Errorf("Price = %v, want 4.5", card.Price)
	}
	wantDate := time.Date(2015, 11, 13, 0, 0, 0, 0, time.UTC)
	if !card.ReleasedAt.Equal(wantDate) {
		t.Errorf("ReleasedAt = %v, want %v", card.ReleasedAt, wantDate)
	}
	if len(card.Mechanics) == 0 {
		t.Error("expected mechanics detected from oracle text")
	}
}

func TestToCardDerivesIdentityWhenFieldMissing(t *testing.T) {
	sc := &Card{
		Name:       "Hybrid Creature",
		ManaCost:   "{1}{W/U}",
		TypeLine:   "Creature",
		OracleText: "{B}: regenerate.",
	}

	card := sc.ToCard()

	want := colors.FromSymbols([]string{"W", "U", "B"})
	if card.Identity != want {
		t.Errorf("Identity = %v, want %v", card.Identity, want)
	}
}

func TestToCardColorlessDefault(t *testing.T) {
	sc := &Card{Name: "Sol Ring", ManaCost: "{1}", TypeLine: "Artifact"}
	if card := sc.ToCard(); !card.Identity.IsColorless() {
		t.Errorf("Identity = %v, want colorless", card.Identity)
	}
}

func TestToCardFoldsCardFaces(t *testing.T) {
	sc := &Card{
		Name:   "Delver of Secrets // Insectile Aberration",
		Layout: "transform",
		CardFaces: []CardFace{
			{Name: "Delver of Secrets", ManaCost: "{U}", TypeLine: "Creature - Human Wizard",
				OracleText: "At the beginning of your upkeep, look at the top card of your library."},
			{Name: "Insectile Aberration", TypeLine: "Creature - Human Insect",
				OracleText: "Flying"},
		},
	}

	card := sc.ToCard()

	if card.TypeLine != "Creature - Human Wizard" {
		t.Errorf("TypeLine = %q, want front face", card.TypeLine)
	}
	if !card.OracleContains("flying") {
		t.Error("back-face text missing from folded oracle text")
	}
	want := colors.FromSymbols([]string{"U"})
	if card.Identity != want {
		t.Errorf("Identity = %v, want %v", card.Identity, want)
	}
}

func TestUSDValue(t *testing.T) {
	tests := []struct {
		name string
		usd  *string
		want *float64
	}{
		{"absent", nil, nil},
		{"malformed", strPtr("n/a"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Prices{USD: tt.usd}).USDValue(); got != nil {
				t.Errorf("USDValue = %v, want nil", *got)
			}
		})
	}

	got := (Prices{USD: strPtr("0.25")}).USDValue()
	if got == nil || *got != 0.25 {
		t.Errorf("USDValue = %v, want 0.25", got)
	}
}
