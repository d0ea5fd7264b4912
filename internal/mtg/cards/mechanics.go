package cards

import (
	"sort"
	"strings"
)

// mechanicKeywords are the normalized mechanic tags recognized in rules
// text, checked as lower-case substrings. Every matching tag is recorded;
// "counter" and "counters" (or "token"/"tokens") may both appear for the
// same card, which is harmless for set-overlap scoring.
var mechanicKeywords = []string{
	"flying", "haste", "lifelink", "vigilance", "trample", "deathtouch",
	"hexproof", "shroud", "indestructible", "ward",
	"sacrifice", "tokens", "token", "counters", "counter",
	"draw", "ramp", "tutor", "graveyard", "recursion",
	"flashback", "delve", "mill", "discard", "bounce",
	"destroy", "exile", "burn", "drain",
	"aura", "equipment", "landfall", "proliferate",
}

// DetectMechanics parses mechanic tags out of rules text. It is the
// fallback used at corpus-load time when a record has no curated mechanics
// list. Returns a sorted, deduplicated slice of normalized tags; empty
// text yields nil.
func DetectMechanics(oracleText string) []string {
	if oracleText == "" {
		return nil
	}

	text := strings.ToLower(oracleText)
	found := make(map[string]struct{})
	for _, keyword := range mechanicKeywords {
		if strings.Contains(text, keyword) {
			found[keyword] = struct{}{}
		}
	}
	if len(found) == 0 {
		return nil
	}

	mechanics := make([]string, 0, len(found))
	for m := range found {
		mechanics = append(mechanics, m)
	}
	sort.Strings(mechanics)
	return mechanics
}

// DetectArchetypes derives archetype flags from a card's type line, rules
// text and mana value. Heuristic, keyword-based: used at import when no
// curated flags exist. A curated source always wins over this.
func DetectArchetypes(typeLine, oracleText string, manaValue float64) ArchetypeFlags {
	text := strings.ToLower(oracleText)
	types := strings.ToLower(typeLine)

	containsAny := func(keywords ...string) bool {
		for _, k := range keywords {
			if strings.Contains(text, k) {
				return true
			}
		}
		return false
	}

	var f ArchetypeFlags
	f.Aristocrats = containsAny("sacrifice a creature", "whenever a creature dies", "whenever another creature dies")
	f.Ramp = containsAny("search your library for a land", "add one mana", "add two mana", "add {")
	f.Removal = containsAny("destroy target", "exile target", "counter target spell", "return target")
	f.CardDraw = containsAny("draw a card", "draw cards", "draw two cards", "draw that many cards")
	f.BoardWipe = containsAny("destroy all", "exile all", "each creature")
	f.Tokens = containsAny("create a", "token")
	f.Counters = containsAny("+1/+1 counter", "proliferate", "charge counter")
	f.Graveyard = containsAny("graveyard", "flashback", "unearth", "return it to the battlefield")
	f.Voltron = strings.Contains(types, "equipment") || strings.Contains(types, "aura") || containsAny("attach", "equipped creature", "enchanted creature")
	f.Protection = containsAny("hexproof", "indestructible", "protection from", "ward {")
	f.Tutor = containsAny("search your library for a card", "search your library for a creature")
	f.Finisher = manaValue >= 6 || containsAny("win the game", "each opponent loses", "deal damage to each opponent")
	f.Utility = containsAny("choose one", "choose two")
	return f
}
