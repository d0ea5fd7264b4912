package recommendations

import (
	"strings"
	"testing"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/colors"
)

func manaBaseNames(base []*CardRecommendation) []string {
	names := make([]string, len(base))
	for i, rec := range base {
		names[i] = rec.Name
	}
	return names
}

func TestBuildManaBaseDistributesBasicsByColor(t *testing.T) {
	identity := colors.FromSymbols([]string{"B", "G"})

	base := buildManaBase(identity, nil, nil)
	names := manaBaseNames(base)

	for _, want := range []string{"Swamp", "Forest", "Command Tower", "Sol Ring", "Arcane Signet"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("mana base missing %s, got %v", want, names)
		}
	}

	// Two colors split twelve basics six and six.
	for _, rec := range base {
		if rec.Name != "Swamp" {
			continue
		}
		if rec.Category != CategoryLands {
			t.Errorf("Swamp category = %q, want %q", rec.Category, CategoryLands)
		}
		if len(rec.Reasons) == 0 || !strings.Contains(rec.Reasons[0], "6 copies") {
			t.Errorf("Swamp reasons = %v, want a 6-copy distribution", rec.Reasons)
		}
	}
}

func TestBuildManaBaseFiveColorFloor(t *testing.T) {
	identity := colors.FromSymbols([]string{"W", "U", "B", "R", "G"})

	base := buildManaBase(identity, nil, nil)

	basics := 0
	for _, rec := range base {
		if rec.Name == "Plains" || rec.Name == "Island" || rec.Name == "Swamp" ||
			rec.Name == "Mountain" || rec.Name == "Forest" {
			basics++
			if !strings.Contains(rec.Reasons[0], "3 copies") {
				t.Errorf("%s reasons = %v, want the 3-copy floor", rec.Name, rec.Reasons)
			}
		}
	}
	if basics != 5 {
		t.Errorf("basics = %d, want 5", basics)
	}
}

func TestBuildManaBaseColorlessLead(t *testing.T) {
	base := buildManaBase(colors.Colorless, nil, nil)

	names := manaBaseNames(base)
	if len(names) != len(manaStaples) {
		t.Fatalf("mana base = %v, want staples only", names)
	}
	if names[0] != "Command Tower" {
		t.Errorf("first staple = %q, want Command Tower", names[0])
	}
}

func TestBuildManaBaseBudgetDropsStaples(t *testing.T) {
	identity := colors.FromSymbols([]string{"G"})
	budget := 4.0

	base := buildManaBase(identity, &budget, nil)

	if len(base) != 1 || base[0].Name != "Forest" {
		t.Fatalf("mana base = %v, want basics only under a tight budget", manaBaseNames(base))
	}
}

func TestBuildManaBaseSkipsAssembledStaples(t *testing.T) {
	assembled := []*CardRecommendation{
		{Name: "Sol Ring", Category: CategoryRamp},
	}

	base := buildManaBase(colors.Colorless, nil, assembled)

	for _, rec := range base {
		if rec.Name == "Sol Ring" {
			t.Error("Sol Ring proposed twice")
		}
	}
	if len(base) != len(manaStaples)-1 {
		t.Errorf("staples = %v, want Sol Ring dropped", manaBaseNames(base))
	}
}
