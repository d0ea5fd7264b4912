package cards

import "strings"

// ArchetypeFlags marks a card's strategic roles. The thirteen flags are
// independent booleans; a card may carry several or none.
type ArchetypeFlags struct {
	Aristocrats bool
	Ramp        bool
	Removal     bool
	CardDraw    bool
	BoardWipe   bool
	Tokens      bool
	Counters    bool
	Graveyard   bool
	Voltron     bool
	Protection  bool
	Tutor       bool
	Finisher    bool
	Utility     bool
}

// ArchetypeNames lists the thirteen archetype identifiers in canonical order.
var ArchetypeNames = []string{
	"aristocrats", "ramp", "removal", "card_draw", "board_wipe",
	"tokens", "counters", "graveyard", "voltron", "protection",
	"tutor", "finisher", "utility",
}

func (f ArchetypeFlags) values() []bool {
	return []bool{
		f.Aristocrats, f.Ramp, f.Removal, f.CardDraw, f.BoardWipe,
		f.Tokens, f.Counters, f.Graveyard, f.Voltron, f.Protection,
		f.Tutor, f.Finisher, f.Utility,
	}
}

// Active returns the names of the set flags in canonical order.
func (f ArchetypeFlags) Active() []string {
	var active []string
	for i, v := range f.values() {
		if v {
			active = append(active, ArchetypeNames[i])
		}
	}
	return active
}

// Count returns the number of set flags.
func (f ArchetypeFlags) Count() int {
	n := 0
	for _, v := range f.values() {
		if v {
			n++
		}
	}
	return n
}

// Intersection returns how many flags are set in both f and other.
func (f ArchetypeFlags) Intersection(other ArchetypeFlags) int {
	a, b := f.values(), other.values()
	n := 0
	for i := range a {
		if a[i] && b[i] {
			n++
		}
	}
	return n
}

// ArchetypesFromNames builds flags from a list of archetype names.
// Names are normalized; unknown names are ignored.
func ArchetypesFromNames(names []string) ArchetypeFlags {
	var f ArchetypeFlags
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "aristocrats":
			f.Aristocrats = true
		case "ramp":
			f.Ramp = true
		case "removal":
			f.Removal = true
		case "card_draw", "draw":
			f.CardDraw = true
		case "board_wipe":
			f.BoardWipe = true
		case "tokens":
			f.Tokens = true
		case "counters":
			f.Counters = true
		case "graveyard":
			f.Graveyard = true
		case "voltron":
			f.Voltron = true
		case "protection":
			f.Protection = true
		case "tutor":
			f.Tutor = true
		case "finisher":
			f.Finisher = true
		case "utility":
			f.Utility = true
		}
	}
	return f
}
