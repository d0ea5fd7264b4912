package recommendations

import (
	"fmt"
	"testing"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards"
)

func recN(category string, n int) []*CardRecommendation {
	recs := make([]*CardRecommendation, n)
	for i := range recs {
		recs[i] = &CardRecommendation{
			Name:     fmt.Sprintf("%s %03d", category, i),
			Score:    float64(100 - i),
			Category: category,
		}
	}
	return recs
}

func TestAssembleHonorsQuotas(t *testing.T) {
	var recs []*CardRecommendation
	for category, quota := range categoryQuotas {
		recs = append(recs, recN(category, quota+10)...)
	}

	assembled := assemble(recs)

	counts := make(map[string]int)
	nonLand := 0
	for _, rec := range assembled {
		counts[rec.Category]++
		if rec.Category != CategoryLands {
			nonLand++
		}
	}
	for category, count := range counts {
		if count > categoryQuotas[category] {
			t.Errorf("category %q admitted %d, quota %d", category, count, categoryQuotas[category])
		}
	}
	if nonLand > maxNonLand {
		t.Errorf("non-land total = %d, cap %d", nonLand, maxNonLand)
	}
}

func TestAssembleStopsAtNonLandCap(t *testing.T) {
	// Enough synergy+ramp+draw+removal+utility+finishers+protection to
	// pass 63 is impossible (quotas sum to 63), so the cap binds exactly
	// when every non-land quota fills.
	var recs []*CardRecommendation
	for category, quota := range categoryQuotas {
		if category == CategoryLands {
			continue
		}
		recs = append(recs, recN(category, quota)...)
	}

	assembled := assemble(recs)
	if len(assembled) != maxNonLand {
		t.Errorf("assembled %d non-land entries, want %d", len(assembled), maxNonLand)
	}
}

func TestAssembleGreedySkipIsPermanent(t *testing.T) {
	recs := []*CardRecommendation{
		{Name: "A", Score: 90, Category: CategoryProtection},
		{Name: "B", Score: 80, Category: CategoryProtection},
		{Name: "C", Score: 70, Category: CategoryProtection},
		{Name: "D", Score: 60, Category: CategoryProtection},
		{Name: "E", Score: 50, Category: CategorySynergy},
	}

	assembled := assemble(recs)

	names := make([]string, 0, len(assembled))
	for _, rec := range assembled {
		names = append(names, rec.Name)
	}
	// Protection quota is 3: D is skipped for good, E still admitted.
	want := []string{"A", "B", "C", "E"}
	if len(names) != len(want) {
		t.Fatalf("assembled = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("assembled[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestAssembleUnknownCategoryUsesSynergyQuota(t *testing.T) {
	recs := recN("mystery", categoryQuotas[CategorySynergy]+5)
	assembled := assemble(recs)
	if len(assembled) != categoryQuotas[CategorySynergy] {
		t.Errorf("unknown category admitted %d, want synergy quota %d",
			len(assembled), categoryQuotas[CategorySynergy])
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		card *cards.Card
		want string
	}{
		{"land", &cards.Card{TypeLine: "Land - Swamp"}, CategoryLands},
		{"mana rock", &cards.Card{TypeLine: "Artifact", OracleText: "{T}: Add {C}.", ManaValue: 1}, CategoryRamp},
		{"land tutor", &cards.Card{TypeLine: "Sorcery", OracleText: "Search your library for a land card.", ManaValue: 1}, CategoryRamp},
		{"spot removal", &cards.Card{TypeLine: "Instant", OracleText: "Destroy target creature.", ManaValue: 2}, CategoryRemoval},
		{"counterspell", &cards.Card{TypeLine: "Instant", OracleText: "Counter target spell.", ManaValue: 2}, CategoryRemoval},
		{"cantrip", &cards.Card{TypeLine: "Instant", OracleText: "Draw a card.", ManaValue: 1}, CategoryDraw},
		{"protection", &cards.Card{TypeLine: "Instant", OracleText: "Target creature gains hexproof.", ManaValue: 1}, CategoryProtection},
		{"big mana value", &cards.Card{TypeLine: "Creature - Dragon", ManaValue: 7}, CategoryFinishers},
		{"win condition", &cards.Card{TypeLine: "Enchantment", OracleText: "You win the game.", ManaValue: 5}, CategoryFinishers},
		{"tutor", &cards.Card{TypeLine: "Sorcery", OracleText: "Search your library for a card.", ManaValue: 2}, CategoryUtility},
		{"vanilla", &cards.Card{TypeLine: "Creature - Bear", ManaValue: 2}, CategorySynergy},
		{"ramp before removal", &cards.Card{TypeLine: "Sorcery", OracleText: "Add {G}. Destroy target artifact.", ManaValue: 2}, CategoryRamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.card); got != tt.want {
				t.Errorf("Categorize = %q, want %q", got, tt.want)
			}
		})
	}
}
